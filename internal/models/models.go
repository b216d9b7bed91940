package models

import "time"

// Content platforms a creator can submit from
const (
	PlatformTwitter   = "twitter"
	PlatformFarcaster = "farcaster"
	PlatformLens      = "lens"
	PlatformOther     = "other"
)

// Submission statuses
const (
	StatusPending  = "pending"
	StatusVerified = "verified"
	StatusRejected = "rejected"
)

// Requirement categories as they appear on the wire
const (
	CategoryHashtags = "hashtags"
	CategoryMentions = "mentions"
	CategoryTopics   = "topics"
	CategoryURLs     = "urls"
)

// IsValidPlatform reports whether p is a known content platform
func IsValidPlatform(p string) bool {
	switch p {
	case PlatformTwitter, PlatformFarcaster, PlatformLens, PlatformOther:
		return true
	default:
		return false
	}
}

// PostMetrics holds the raw audience interaction counts of a single post
type PostMetrics struct {
	Views    int `json:"views"`
	Likes    int `json:"likes"`
	Comments int `json:"comments"`
	Reposts  int `json:"reposts"`
}

// SubmissionMetrics are the metrics stored on a submission. EngagementScore is
// set when the metrics collector supplied a score of its own.
type SubmissionMetrics struct {
	PostMetrics
	EngagementScore *int `json:"engagementScore,omitempty"`
}

// RequirementSet lists the elements a campaign mandates in submitted content.
// A nil URLs slice means the campaign does not ask about URLs at all.
type RequirementSet struct {
	Hashtags []string `json:"hashtags"`
	Mentions []string `json:"mentions"`
	Topics   []string `json:"topics"`
	URLs     []string `json:"urls,omitempty"`
}

// ValidationRequirement is the outcome for one requirement category
type ValidationRequirement struct {
	Passed   bool     `json:"passed"`
	Required []string `json:"required"`
	Missing  []string `json:"missing"`
}

// ValidationResult is the structured report of a submission validation.
// Success is false when the content inspector could not be consulted.
// Skipped is true when the platform policy accepted the content unchecked.
type ValidationResult struct {
	Success      bool                             `json:"success"`
	Passed       bool                             `json:"passed"`
	Skipped      bool                             `json:"skipped,omitempty"`
	Errors       []string                         `json:"errors"`
	Requirements map[string]ValidationRequirement `json:"requirements,omitempty"`
}

// MissingElements returns every missing element across categories in
// hashtags, mentions, topics, urls order
func (v ValidationResult) MissingElements() []string {
	var missing []string
	for _, category := range []string{CategoryHashtags, CategoryMentions, CategoryTopics, CategoryURLs} {
		if req, ok := v.Requirements[category]; ok {
			missing = append(missing, req.Missing...)
		}
	}
	return missing
}

// URLCheckResult is the outcome of the cheap URL shape pre-check
type URLCheckResult struct {
	Valid   bool   `json:"valid"`
	TweetID string `json:"tweetId,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Submission is a creator's claim of having produced content for a campaign
type Submission struct {
	ID                  string            `json:"id"`
	CampaignID          string            `json:"campaignId"`
	CampaignTitle       string            `json:"campaignTitle"`
	Brand               string            `json:"brand"`
	ContentURL          string            `json:"contentUrl"`
	ContentPlatform     string            `json:"contentPlatform"`
	Notes               string            `json:"notes,omitempty"`
	SubmittedAt         time.Time         `json:"submittedAt"`
	Status              string            `json:"status"`
	Feedback            string            `json:"feedback"`
	Metrics             SubmissionMetrics `json:"metrics"`
	LeaderboardPosition *int              `json:"leaderboardPosition"`
	EstimatedPayout     float64           `json:"estimatedPayout"`
	PayoutTxHash        *string           `json:"payoutTxHash"`
	Validation          *ValidationResult `json:"validation,omitempty"`
	MetricsUpdatedAt    *time.Time        `json:"metricsUpdatedAt,omitempty"`
}

// Report represents a periodic report of campaign submissions
type Report struct {
	GeneratedAt      time.Time              `json:"generated_at"`
	Period           string                 `json:"period"`
	TotalSubmissions int                    `json:"total_submissions"`
	Submissions      []Submission           `json:"submissions"`
	Summary          map[string]interface{} `json:"summary"`
}

// Alert represents an immediate notification about a single submission
type Alert struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"` // "rejected", "info"
	Title      string      `json:"title"`
	Message    string      `json:"message"`
	Submission *Submission `json:"submission,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}
