package tracking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/onchainreach/creator-hub/internal/campaigns"
	"github.com/onchainreach/creator-hub/internal/config"
	"github.com/onchainreach/creator-hub/internal/engagement"
	"github.com/onchainreach/creator-hub/internal/models"
	"github.com/onchainreach/creator-hub/internal/notifications"
	"github.com/onchainreach/creator-hub/internal/sources"
	"github.com/onchainreach/creator-hub/internal/submissions"
	"github.com/onchainreach/creator-hub/internal/validation"
	"github.com/sirupsen/logrus"
)

// ErrInvalidInput is returned for submissions or decisions that cannot be
// processed as given
var ErrInvalidInput = errors.New("invalid input")

// Validation outcome counters
const (
	OutcomeVerified   = "verified"
	OutcomeRejected   = "rejected"
	OutcomePending    = "pending"
	OutcomeInvalidURL = "invalid_url"
)

// CampaignLookup resolves campaigns by id
type CampaignLookup interface {
	Get(id string) (campaigns.Campaign, error)
}

// SubmissionValidator checks content against campaign requirements
type SubmissionValidator interface {
	PrecheckURL(platform, rawURL string) (models.URLCheckResult, bool)
	ValidateSubmission(ctx context.Context, platform, rawURL string, reqs models.RequirementSet) models.ValidationResult
}

// Service tracks creator submissions from intake through moderation and
// keeps their engagement metrics current
type Service struct {
	config              *config.Config
	repo                submissions.Repository
	catalog             CampaignLookup
	validator           SubmissionValidator
	scorer              *engagement.Scorer
	notificationService notifications.NotificationInterface
	sources             []sources.MetricsSource
	metrics             *Metrics
	nowFn               func() time.Time
	mu                  sync.RWMutex
}

// Metrics holds service counters
type Metrics struct {
	TotalSubmissions    int            `json:"total_submissions"`
	LastRefresh         time.Time      `json:"last_refresh"`
	LastRefreshDuration string         `json:"last_refresh_duration"`
	SourceMetrics       map[string]int `json:"source_metrics"`
	ValidationOutcomes  map[string]int `json:"validation_outcomes"`
	LastReport          time.Time      `json:"last_report"`
	ErrorCount          int            `json:"error_count"`
}

// SubmitInput is a creator's content submission
type SubmitInput struct {
	CampaignID      string `json:"campaignId"`
	ContentURL      string `json:"contentUrl"`
	ContentPlatform string `json:"contentPlatform"`
	Notes           string `json:"notes"`
}

// ScoredSubmission is a submission with its resolved engagement score
type ScoredSubmission struct {
	models.Submission
	Score         int    `json:"score"`
	ScoreFeedback string `json:"scoreFeedback"`
}

// Stats summarizes a creator's submissions
type Stats struct {
	TotalSubmissions    int                `json:"totalSubmissions"`
	Verified            int                `json:"verified"`
	Pending             int                `json:"pending"`
	Rejected            int                `json:"rejected"`
	AverageScore        int                `json:"averageEngagementScore"`
	TotalPayout         float64            `json:"totalEstimatedPayout"`
	EngagementBreakdown models.PostMetrics `json:"engagementBreakdown"`
}

// NewService creates a new tracking service
func NewService(cfg *config.Config, repo submissions.Repository, catalog CampaignLookup, validator SubmissionValidator,
	scorer *engagement.Scorer, notificationService notifications.NotificationInterface) *Service {
	service := &Service{
		config:              cfg,
		repo:                repo,
		catalog:             catalog,
		validator:           validator,
		scorer:              scorer,
		notificationService: notificationService,
		nowFn:               time.Now,
		metrics: &Metrics{
			SourceMetrics:      make(map[string]int),
			ValidationOutcomes: make(map[string]int),
		},
	}

	// Initialize metrics collectors
	service.initializeSources()

	return service
}

func (s *Service) initializeSources() {
	all := []sources.MetricsSource{
		sources.NewTwitterSource(s.config.TwitterBearerToken),
		sources.NewFarcasterSource(s.config.NeynarAPIKey),
	}

	s.sources = nil
	for _, src := range all {
		if s.config.SourceDisabled(src.GetName()) {
			logrus.Infof("Metrics source %s disabled by configuration", src.GetName())
			continue
		}
		s.sources = append(s.sources, src)
	}
}

// SetSources replaces the metrics collectors
func (s *Service) SetSources(srcs ...sources.MetricsSource) {
	s.sources = srcs
}

// Submit validates content against its campaign and records the outcome.
// A malformed URL is refused with validation.ErrInvalidURL and nothing is
// stored.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (ScoredSubmission, error) {
	in.CampaignID = strings.TrimSpace(in.CampaignID)
	in.ContentURL = strings.TrimSpace(in.ContentURL)
	in.ContentPlatform = strings.ToLower(strings.TrimSpace(in.ContentPlatform))
	in.Notes = strings.TrimSpace(in.Notes)

	if in.CampaignID == "" || in.ContentURL == "" {
		return ScoredSubmission{}, fmt.Errorf("%w: campaignId and contentUrl are required", ErrInvalidInput)
	}
	if !models.IsValidPlatform(in.ContentPlatform) {
		return ScoredSubmission{}, fmt.Errorf("%w: unsupported platform %q", ErrInvalidInput, in.ContentPlatform)
	}

	campaign, err := s.catalog.Get(in.CampaignID)
	if err != nil {
		return ScoredSubmission{}, err
	}
	if campaign.Status == campaigns.StatusClosed {
		return ScoredSubmission{}, fmt.Errorf("%w: campaign %s is closed", ErrInvalidInput, campaign.ID)
	}

	if check, applies := s.validator.PrecheckURL(in.ContentPlatform, in.ContentURL); applies && !check.Valid {
		s.recordOutcome(OutcomeInvalidURL)
		return ScoredSubmission{}, fmt.Errorf("%w: %s", validation.ErrInvalidURL, check.Error)
	}

	result := s.validator.ValidateSubmission(ctx, in.ContentPlatform, in.ContentURL, campaigns.RequirementsFor(campaign))
	status, feedback := decide(in.ContentPlatform, result)

	sub, err := s.repo.Create(ctx, models.Submission{
		CampaignID:      campaign.ID,
		CampaignTitle:   campaign.Title,
		Brand:           campaign.Brand,
		ContentURL:      in.ContentURL,
		ContentPlatform: in.ContentPlatform,
		Notes:           in.Notes,
		Status:          status,
		Feedback:        feedback,
		Validation:      &result,
	})
	if err != nil {
		s.recordError()
		return ScoredSubmission{}, fmt.Errorf("failed to store submission: %w", err)
	}

	s.recordOutcome(status)
	logrus.Infof("Submission %s for campaign %s recorded as %s", sub.ID, campaign.ID, status)

	if status == models.StatusRejected {
		s.sendRejectionAlert(sub)
	}

	return s.score(sub), nil
}

// decide maps a validation result onto the initial submission status
func decide(platform string, result models.ValidationResult) (string, string) {
	switch {
	case !result.Success:
		return models.StatusPending, "Automatic validation unavailable, awaiting manual review"
	case result.Skipped:
		return models.StatusPending, fmt.Sprintf("Automatic validation is not available for %s, awaiting manual review", platform)
	case result.Passed:
		return models.StatusVerified, "All campaign requirements met"
	}

	if missing := result.MissingElements(); len(missing) > 0 {
		return models.StatusRejected, "Missing required elements: " + strings.Join(missing, ", ")
	}
	return models.StatusRejected, strings.Join(result.Errors, "; ")
}

func (s *Service) sendRejectionAlert(sub models.Submission) {
	alert := &models.Alert{
		ID:         "rejected-" + sub.ID,
		Type:       "rejected",
		Title:      fmt.Sprintf("Submission rejected: %s", sub.CampaignTitle),
		Message:    sub.Feedback,
		Submission: &sub,
		CreatedAt:  s.nowFn(),
	}

	if err := s.notificationService.SendAlert(alert); err != nil {
		logrus.Errorf("Failed to send rejection alert for %s: %v", sub.ID, err)
		s.recordError()
	}
}

// List returns the submissions of campaignID (all when empty) whose
// campaign title or brand contains query
func (s *Service) List(ctx context.Context, campaignID, query string) ([]ScoredSubmission, error) {
	subs, err := s.repo.List(ctx, strings.TrimSpace(campaignID))
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))
	scored := make([]ScoredSubmission, 0, len(subs))
	for _, sub := range subs {
		if query != "" &&
			!strings.Contains(strings.ToLower(sub.CampaignTitle), query) &&
			!strings.Contains(strings.ToLower(sub.Brand), query) {
			continue
		}
		scored = append(scored, s.score(sub))
	}

	return scored, nil
}

// Get returns a single scored submission
func (s *Service) Get(ctx context.Context, id string) (ScoredSubmission, error) {
	sub, err := s.repo.Get(ctx, id)
	if err != nil {
		return ScoredSubmission{}, err
	}
	return s.score(sub), nil
}

// Moderate records a manual verified or rejected decision
func (s *Service) Moderate(ctx context.Context, id, status, feedback string) (ScoredSubmission, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if status != models.StatusVerified && status != models.StatusRejected {
		return ScoredSubmission{}, fmt.Errorf("%w: status must be %s or %s", ErrInvalidInput, models.StatusVerified, models.StatusRejected)
	}

	sub, err := s.repo.UpdateStatus(ctx, id, status, strings.TrimSpace(feedback))
	if err != nil {
		return ScoredSubmission{}, err
	}

	return s.score(sub), nil
}

// Stats summarizes all submissions
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	subs, err := s.repo.List(ctx, "")
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{TotalSubmissions: len(subs)}
	inputs := make([]engagement.Input, 0, len(subs))
	for _, sub := range subs {
		switch sub.Status {
		case models.StatusVerified:
			stats.Verified++
		case models.StatusPending:
			stats.Pending++
		case models.StatusRejected:
			stats.Rejected++
		}

		stats.TotalPayout += sub.EstimatedPayout
		stats.EngagementBreakdown.Views += sub.Metrics.Views
		stats.EngagementBreakdown.Likes += sub.Metrics.Likes
		stats.EngagementBreakdown.Comments += sub.Metrics.Comments
		stats.EngagementBreakdown.Reposts += sub.Metrics.Reposts
		inputs = append(inputs, engagement.FromSubmission(sub))
	}
	stats.AverageScore = s.scorer.AverageScore(inputs)

	return stats, nil
}

type metricsUpdate struct {
	id      string
	source  string
	metrics models.PostMetrics
}

// RefreshMetrics fetches current engagement counts for every tracked
// submission from the collectors that support its platform
func (s *Service) RefreshMetrics(ctx context.Context) error {
	start := s.nowFn()
	logrus.Info("Starting metrics refresh")

	subs, err := s.repo.List(ctx, "")
	if err != nil {
		s.recordError()
		return fmt.Errorf("failed to list submissions: %w", err)
	}

	var active []sources.MetricsSource
	for _, src := range s.sources {
		if src.IsEnabled() {
			active = append(active, src)
		} else {
			logrus.Debugf("Metrics source %s disabled - missing credentials", src.GetName())
		}
	}

	var wg sync.WaitGroup
	capacity := len(subs) * len(active)
	updatesChan := make(chan metricsUpdate, capacity)
	errorsChan := make(chan error, capacity)

	// Fetch from all sources concurrently
	for _, source := range active {
		wg.Add(1)
		go func(src sources.MetricsSource) {
			defer wg.Done()

			for _, sub := range subs {
				if sub.Status == models.StatusRejected || !src.Supports(sub.ContentPlatform) {
					continue
				}

				metrics, err := src.FetchMetrics(ctx, sub.ContentURL)
				if err != nil {
					logrus.Errorf("Error fetching %s metrics for %s: %v", src.GetName(), sub.ID, err)
					errorsChan <- err
					if errors.Is(err, sources.ErrRateLimited) || ctx.Err() != nil {
						logrus.Warnf("Stopping %s refresh early", src.GetName())
						return
					}
					continue
				}

				updatesChan <- metricsUpdate{id: sub.ID, source: src.GetName(), metrics: metrics}
			}
		}(source)
	}

	// Close channels when all goroutines complete
	go func() {
		wg.Wait()
		close(updatesChan)
		close(errorsChan)
	}()

	perSource := make(map[string]int)
	errorCount := 0
	for update := range updatesChan {
		if _, err := s.repo.UpdateMetrics(ctx, update.id, update.metrics, s.nowFn()); err != nil {
			logrus.Errorf("Failed to store metrics for %s: %v", update.id, err)
			errorCount++
			continue
		}
		perSource[update.source]++
	}

	for range errorsChan {
		errorCount++
	}

	duration := s.nowFn().Sub(start)
	s.updateMetrics(len(subs), perSource, duration, errorCount)

	logrus.Infof("Metrics refresh completed in %v: %d submissions checked, %d errors", duration, len(subs), errorCount)
	return nil
}

// RunReport sends a summary of the submissions made during the report period
func (s *Service) RunReport(ctx context.Context) error {
	subs, err := s.repo.List(ctx, "")
	if err != nil {
		s.recordError()
		return fmt.Errorf("failed to list submissions: %w", err)
	}

	report := s.generateReport(subs)
	if err := s.notificationService.SendReport(report); err != nil {
		s.recordError()
		return err
	}

	s.mu.Lock()
	s.metrics.LastReport = report.GeneratedAt
	s.mu.Unlock()

	logrus.Infof("Sent %s report with %d submissions", report.Period, report.TotalSubmissions)
	return nil
}

func (s *Service) reportWindow() time.Duration {
	if s.config.ReportSchedule == "daily" {
		return 24 * time.Hour
	}
	return 7 * 24 * time.Hour
}

func (s *Service) generateReport(subs []models.Submission) *models.Report {
	now := s.nowFn()
	since := now.Add(-s.reportWindow())

	var recent []models.Submission
	for _, sub := range subs {
		if !sub.SubmittedAt.Before(since) {
			recent = append(recent, sub)
		}
	}

	report := &models.Report{
		GeneratedAt:      now,
		Period:           s.config.ReportSchedule,
		TotalSubmissions: len(recent),
		Submissions:      recent,
		Summary:          make(map[string]interface{}),
	}

	statusCount := make(map[string]int)
	totalPayout := 0.0
	inputs := make([]engagement.Input, 0, len(recent))
	for _, sub := range recent {
		statusCount[sub.Status]++
		totalPayout += sub.EstimatedPayout
		inputs = append(inputs, engagement.FromSubmission(sub))
	}

	report.Summary[notifications.SummaryStatus] = statusCount
	report.Summary[notifications.SummaryAverageScore] = s.scorer.AverageScore(inputs)
	report.Summary[notifications.SummaryTotalPayout] = totalPayout
	report.Summary[notifications.SummaryTopEntries] = s.topSubmissions(recent)

	return report
}

func (s *Service) topSubmissions(subs []models.Submission) []string {
	scored := make([]ScoredSubmission, 0, len(subs))
	for _, sub := range subs {
		scored = append(scored, s.score(sub))
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	var top []string
	for i, sub := range scored {
		if i >= 5 {
			break
		}
		top = append(top, fmt.Sprintf("%s (%d)", sub.CampaignTitle, sub.Score))
	}

	return top
}

func (s *Service) score(sub models.Submission) ScoredSubmission {
	score := s.scorer.Score(engagement.FromSubmission(sub))
	return ScoredSubmission{
		Submission:    sub,
		Score:         score,
		ScoreFeedback: engagement.Feedback(score),
	}
}

func (s *Service) updateMetrics(total int, perSource map[string]int, duration time.Duration, errorCount int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.metrics.TotalSubmissions = total
	s.metrics.LastRefresh = s.nowFn()
	s.metrics.LastRefreshDuration = duration.String()
	s.metrics.SourceMetrics = perSource
	s.metrics.ErrorCount += errorCount
}

func (s *Service) recordOutcome(outcome string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics.ValidationOutcomes[outcome]++
}

func (s *Service) recordError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics.ErrorCount++
}

// GetMetrics returns current metrics as JSON
func (s *Service) GetMetrics() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, _ := json.MarshalIndent(s.metrics, "", "  ")
	return string(data)
}
