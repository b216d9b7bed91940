package notifications

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/onchainreach/creator-hub/internal/config"
	"github.com/onchainreach/creator-hub/internal/models"
	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// Summary keys understood by the report renderers
const (
	SummaryStatus       = "status"
	SummaryAverageScore = "average_score"
	SummaryTotalPayout  = "total_payout"
	SummaryTopEntries   = "top_submissions"
)

const reportListLimit = 10

// Service handles sending notifications via various channels
type Service struct {
	config *config.Config
	client *resty.Client
}

// Ensure Service implements NotificationInterface
var _ NotificationInterface = (*Service)(nil)

// TeamsMessage represents a Microsoft Teams message
type TeamsMessage struct {
	Type       string         `json:"@type"`
	Context    string         `json:"@context"`
	ThemeColor string         `json:"themeColor,omitempty"`
	Title      string         `json:"title"`
	Text       string         `json:"text"`
	Sections   []TeamsSection `json:"sections,omitempty"`
}

type TeamsSection struct {
	ActivityTitle    string      `json:"activityTitle,omitempty"`
	ActivitySubtitle string      `json:"activitySubtitle,omitempty"`
	ActivityText     string      `json:"activityText,omitempty"`
	Facts            []TeamsFact `json:"facts,omitempty"`
	Markdown         bool        `json:"markdown,omitempty"`
}

type TeamsFact struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// NewService creates a new notification service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
		client: resty.New().SetTimeout(30 * time.Second),
	}
}

// SendReport sends a report via configured notification channels
func (s *Service) SendReport(report *models.Report) error {
	if s.config.TeamsWebhookURL == "" && s.config.NotificationEmail == "" {
		logrus.Infof("No notification channel configured, skipping %s report (%d submissions)", report.Period, report.TotalSubmissions)
		return nil
	}

	var errors []string

	if s.config.TeamsWebhookURL != "" {
		if err := s.postToTeams(s.buildTeamsMessage(report)); err != nil {
			logrus.Errorf("Failed to send Teams notification: %v", err)
			errors = append(errors, fmt.Sprintf("Teams: %v", err))
		} else {
			logrus.Info("Successfully sent report to Teams")
		}
	}

	if s.config.NotificationEmail != "" {
		if err := s.sendEmail(report); err != nil {
			logrus.Errorf("Failed to send email notification: %v", err)
			errors = append(errors, fmt.Sprintf("Email: %v", err))
		} else {
			logrus.Info("Successfully sent report via email")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("notification errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

// SendAlert posts a single-submission alert to Teams
func (s *Service) SendAlert(alert *models.Alert) error {
	if s.config.TeamsWebhookURL == "" {
		logrus.Infof("Alert (no Teams webhook configured): %s - %s", alert.Type, alert.Title)
		return nil
	}

	if err := s.postToTeams(s.buildAlertMessage(alert)); err != nil {
		return fmt.Errorf("failed to send alert %s: %w", alert.ID, err)
	}

	logrus.Infof("Sent %s alert: %s", alert.Type, alert.Title)
	return nil
}

func (s *Service) postToTeams(message *TeamsMessage) error {
	resp, err := s.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(message).
		Post(s.config.TeamsWebhookURL)

	if err != nil {
		return fmt.Errorf("failed to send Teams message: %w", err)
	}

	if resp.StatusCode() != 200 {
		return fmt.Errorf("Teams webhook returned status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	return nil
}

func (s *Service) buildTeamsMessage(report *models.Report) *TeamsMessage {
	message := &TeamsMessage{
		Type:    "MessageCard",
		Context: "https://schema.org/extensions",
		Title:   fmt.Sprintf("Creator Hub Submissions Report - %s", titleCase(report.Period)),
		Text:    fmt.Sprintf("%d submissions tracked this %s", report.TotalSubmissions, periodNoun(report.Period)),
	}

	facts := []TeamsFact{
		{Name: "Total Submissions", Value: fmt.Sprintf("%d", report.TotalSubmissions)},
		{Name: "Generated", Value: report.GeneratedAt.UTC().Format("2006-01-02 15:04:05 UTC")},
	}
	if avg, ok := report.Summary[SummaryAverageScore].(int); ok {
		facts = append(facts, TeamsFact{Name: "Average Engagement Score", Value: fmt.Sprintf("%d", avg)})
	}
	if payout, ok := report.Summary[SummaryTotalPayout].(float64); ok {
		facts = append(facts, TeamsFact{Name: "Estimated Payouts", Value: fmt.Sprintf("%.2f", payout)})
	}
	if statuses, ok := report.Summary[SummaryStatus].(map[string]int); ok {
		for _, status := range []string{models.StatusVerified, models.StatusPending, models.StatusRejected} {
			facts = append(facts, TeamsFact{
				Name:  fmt.Sprintf("%s Submissions", titleCase(status)),
				Value: fmt.Sprintf("%d", statuses[status]),
			})
		}
	}

	message.Sections = append(message.Sections, TeamsSection{
		ActivityTitle: "Summary",
		Facts:         facts,
		Markdown:      true,
	})

	if len(report.Submissions) > 0 {
		var lines []string
		for i, sub := range report.Submissions {
			if i >= 5 {
				break
			}
			lines = append(lines, fmt.Sprintf("**[%s](%s)** - %s on %s (%s)",
				sub.CampaignTitle, sub.ContentURL, sub.Status, sub.ContentPlatform, sub.SubmittedAt.Format("Jan 2")))
		}

		message.Sections = append(message.Sections, TeamsSection{
			ActivityTitle: "Recent Submissions",
			ActivityText:  strings.Join(lines, "\n\n"),
			Markdown:      true,
		})
	}

	return message
}

func (s *Service) buildAlertMessage(alert *models.Alert) *TeamsMessage {
	message := &TeamsMessage{
		Type:       "MessageCard",
		Context:    "https://schema.org/extensions",
		ThemeColor: "d13438",
		Title:      alert.Title,
		Text:       alert.Message,
	}

	if sub := alert.Submission; sub != nil {
		message.Sections = append(message.Sections, TeamsSection{
			ActivityTitle:    sub.CampaignTitle,
			ActivitySubtitle: sub.Brand,
			Facts: []TeamsFact{
				{Name: "Submission", Value: sub.ID},
				{Name: "Platform", Value: sub.ContentPlatform},
				{Name: "URL", Value: sub.ContentURL},
				{Name: "Status", Value: sub.Status},
			},
			Markdown: true,
		})
	}

	return message
}

func (s *Service) sendEmail(report *models.Report) error {
	subject := fmt.Sprintf("Creator Hub Submissions Report - %s (%d submissions)",
		titleCase(report.Period), report.TotalSubmissions)

	htmlBody, err := s.buildEmailHTML(report)
	if err != nil {
		return fmt.Errorf("failed to build email HTML: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.config.SMTPUsername)
	m.SetHeader("To", s.config.NotificationEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", s.buildEmailText(report))
	m.AddAlternative("text/html", htmlBody)

	d := gomail.NewDialer(s.config.SMTPHost, s.config.SMTPPort, s.config.SMTPUsername, s.config.SMTPPassword)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

const emailTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Creator Hub Submissions Report</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; }
        .header { background-color: #0052ff; color: white; padding: 20px; border-radius: 5px; }
        .summary { background-color: #f5f5f5; padding: 15px; margin: 20px 0; border-radius: 5px; }
        .submission { border-left: 4px solid #605e5c; padding: 10px; margin: 10px 0; background-color: #fafafa; }
        .submission-meta { color: #666; font-size: 0.9em; }
        .verified { border-left-color: #107c10; }
        .rejected { border-left-color: #d13438; }
        .pending { border-left-color: #ffb900; }
    </style>
</head>
<body>
    <div class="header">
        <h1>Creator Hub Submissions Report</h1>
        <p>{{.Period | title}} report generated on {{.GeneratedAt.Format "January 2, 2006 at 3:04 PM MST"}}</p>
    </div>

    <div class="summary">
        <h2>Summary</h2>
        <p><strong>Total Submissions:</strong> {{.TotalSubmissions}}</p>
        {{with index .Summary "average_score"}}<p><strong>Average Engagement Score:</strong> {{.}}</p>{{end}}
        {{with index .Summary "total_payout"}}<p><strong>Estimated Payouts:</strong> {{printf "%.2f" .}}</p>{{end}}
        {{with index .Summary "status"}}
            {{range $status, $count := .}}
                <p><strong>{{$status | title}}:</strong> {{$count}}</p>
            {{end}}
        {{end}}
    </div>

    {{if .Submissions}}
    <h2>Recent Submissions</h2>
    {{range $index, $sub := .Submissions}}
        {{if lt $index 10}}
        <div class="submission {{$sub.Status}}">
            <div><a href="{{$sub.ContentURL}}" target="_blank">{{$sub.CampaignTitle}}</a> ({{$sub.Brand}})</div>
            <div class="submission-meta">
                {{$sub.ContentPlatform}} | {{$sub.Status}} | {{$sub.SubmittedAt.Format "Jan 2, 2006"}}
                {{with $sub.Metrics.EngagementScore}} | Score: {{.}}{{end}}
            </div>
            {{if $sub.Feedback}}<p>{{$sub.Feedback | truncate 200}}</p>{{end}}
        </div>
        {{end}}
    {{end}}
    {{end}}

    <hr>
    <p><small>This report was generated automatically by Creator Hub.</small></p>
</body>
</html>
`

func (s *Service) buildEmailHTML(report *models.Report) (string, error) {
	t, err := template.New("email").Funcs(template.FuncMap{
		"title":    titleCase,
		"truncate": truncate,
	}).Parse(emailTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, report); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func (s *Service) buildEmailText(report *models.Report) string {
	var text strings.Builder

	text.WriteString(fmt.Sprintf("Creator Hub Submissions Report - %s\n", titleCase(report.Period)))
	text.WriteString(fmt.Sprintf("Generated: %s\n\n", report.GeneratedAt.UTC().Format("2006-01-02 15:04:05 UTC")))

	text.WriteString("SUMMARY\n")
	text.WriteString("=======\n")
	text.WriteString(fmt.Sprintf("Total Submissions: %d\n", report.TotalSubmissions))

	if avg, ok := report.Summary[SummaryAverageScore].(int); ok {
		text.WriteString(fmt.Sprintf("Average Engagement Score: %d\n", avg))
	}
	if statuses, ok := report.Summary[SummaryStatus].(map[string]int); ok {
		for _, status := range []string{models.StatusVerified, models.StatusPending, models.StatusRejected} {
			text.WriteString(fmt.Sprintf("%s: %d\n", titleCase(status), statuses[status]))
		}
	}

	if len(report.Submissions) > 0 {
		text.WriteString("\nRECENT SUBMISSIONS\n")
		text.WriteString("==================\n")

		for i, sub := range report.Submissions {
			if i >= reportListLimit {
				break
			}
			text.WriteString(fmt.Sprintf("\n%d. %s (%s)\n", i+1, sub.CampaignTitle, sub.Brand))
			text.WriteString(fmt.Sprintf("   Platform: %s | Status: %s | Date: %s\n",
				sub.ContentPlatform, sub.Status, sub.SubmittedAt.Format("Jan 2, 2006")))
			text.WriteString(fmt.Sprintf("   URL: %s\n", sub.ContentURL))
			if sub.Feedback != "" {
				text.WriteString(fmt.Sprintf("   Feedback: %s\n", truncate(200, sub.Feedback)))
			}
		}
	}

	text.WriteString("\n---\nThis report was generated automatically by Creator Hub.\n")

	return text.String()
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func truncate(length int, s string) string {
	if len(s) <= length {
		return s
	}
	return s[:length] + "..."
}

func periodNoun(period string) string {
	switch period {
	case "daily":
		return "day"
	case "weekly":
		return "week"
	default:
		return "period"
	}
}
