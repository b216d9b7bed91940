package validation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/onchainreach/creator-hub/internal/models"
	"github.com/sirupsen/logrus"
)

// Policy decides which platforms go through structured validation
type Policy string

const (
	// PolicyOptimistic validates twitter only and accepts other platforms unchecked
	PolicyOptimistic Policy = "optimistic"
	// PolicyStrict validates every platform
	PolicyStrict Policy = "strict"
)

const (
	msgNetworkError    = "network error"
	msgInvalidFormat   = "Invalid response format"
	msgURLNetworkError = "Network error while validating URL"

	defaultTimeout = 15 * time.Second
)

// IsValid reports whether p is a known policy
func (p Policy) IsValid() bool {
	return p == PolicyOptimistic || p == PolicyStrict
}

// Config configures a Validator
type Config struct {
	BaseURL string
	Timeout time.Duration
	Policy  Policy
}

// Validator checks submitted content against campaign requirements through
// the content inspector service. It never returns transport failures as
// errors; every outcome is a structured result.
type Validator struct {
	client  *resty.Client
	timeout time.Duration
	policy  Policy
}

type validatePayload struct {
	URL          string         `json:"url"`
	Requirements requirementsIn `json:"requirements"`
}

type requirementsIn struct {
	Hashtags []string `json:"hashtags"`
	Mentions []string `json:"mentions"`
	Topics   []string `json:"topics"`
	URLs     []string `json:"urls,omitempty"`
}

type urlCheckResponse struct {
	Valid   *bool  `json:"valid"`
	TweetID string `json:"tweetId"`
	Error   string `json:"error"`
}

// HealthStatus is the content inspector's answer to a health probe
type HealthStatus struct {
	Status  string                 `json:"status"`
	Message string                 `json:"message,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ScrapeResult is the content inspector's extraction of a URL
type ScrapeResult struct {
	Success bool                   `json:"success"`
	Error   string                 `json:"error,omitempty"`
	Data    map[string]interface{} `json:"data,omitempty"`
}

// NewValidator creates a Validator for the inspector at cfg.BaseURL
func NewValidator(cfg Config) *Validator {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	policy := cfg.Policy
	if !policy.IsValid() {
		policy = PolicyOptimistic
	}

	return &Validator{
		client: resty.New().
			SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
			SetHeader("User-Agent", "Creator-Hub/1.0").
			SetHeader("Content-Type", "application/json"),
		timeout: timeout,
		policy:  policy,
	}
}

// Policy returns the platform policy in effect
func (v *Validator) Policy() Policy {
	return v.policy
}

// PrecheckURL runs the local URL shape check for platform. applies is false
// when the policy or platform means no shape check is performed.
func (v *Validator) PrecheckURL(platform, rawURL string) (result models.URLCheckResult, applies bool) {
	platform = strings.ToLower(strings.TrimSpace(platform))
	if v.policy == PolicyOptimistic && platform != models.PlatformTwitter {
		return models.URLCheckResult{}, false
	}

	postID, ok, known := ParsePostURL(platform, rawURL)
	if !known {
		return models.URLCheckResult{}, false
	}
	if !ok {
		return models.URLCheckResult{Valid: false, Error: formatError(platform)}, true
	}

	result = models.URLCheckResult{Valid: true}
	if platform == models.PlatformTwitter {
		result.TweetID = postID
	}
	return result, true
}

// ValidateSubmission validates content from platform according to the
// configured policy
func (v *Validator) ValidateSubmission(ctx context.Context, platform, rawURL string, reqs models.RequirementSet) models.ValidationResult {
	platform = strings.ToLower(strings.TrimSpace(platform))

	if v.policy == PolicyOptimistic && platform != models.PlatformTwitter {
		logrus.Debugf("Accepting %s submission without validation (optimistic policy)", platform)
		return models.ValidationResult{Success: true, Passed: true, Skipped: true, Errors: []string{}}
	}

	if check, applies := v.PrecheckURL(platform, rawURL); applies && !check.Valid {
		return models.ValidationResult{Success: true, Passed: false, Errors: []string{check.Error}}
	}

	return v.Validate(ctx, rawURL, reqs)
}

// Validate asks the content inspector whether the content at rawURL meets
// reqs and normalizes its reply
func (v *Validator) Validate(ctx context.Context, rawURL string, reqs models.RequirementSet) models.ValidationResult {
	if nothingRequired(reqs) {
		logrus.Debugf("No requirements to check for %s", rawURL)
		return passedResult(reqs)
	}

	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	payload := validatePayload{
		URL: rawURL,
		Requirements: requirementsIn{
			Hashtags: cleanList(reqs.Hashtags),
			Mentions: cleanList(reqs.Mentions),
			Topics:   cleanList(reqs.Topics),
		},
	}
	if reqs.URLs != nil {
		payload.Requirements.URLs = cleanList(reqs.URLs)
	}

	logrus.Debugf("Validating %s against requirements %+v", rawURL, payload.Requirements)

	resp, err := v.client.R().
		SetContext(ctx).
		SetBody(payload).
		Post("/api/validate-tweet")

	if err != nil {
		logrus.Errorf("Content inspector request failed for %s: %v", rawURL, err)
		return failedResult(msgNetworkError)
	}

	if !resp.IsSuccess() {
		logrus.Errorf("Content inspector returned status %d for %s: %s", resp.StatusCode(), rawURL, string(resp.Body()))
		return failedResult(fmt.Sprintf("content inspector returned status %d", resp.StatusCode()))
	}

	decoded, err := decodeInspectorResponse(resp.Body())
	if err != nil {
		logrus.Errorf("Invalid content inspector response for %s: %s", rawURL, string(resp.Body()))
		return failedResult(msgInvalidFormat)
	}

	result := normalize(reqs, decoded)
	logrus.Debugf("Validation of %s passed=%v missing=%v", rawURL, result.Passed, result.MissingElements())
	return result
}

// CheckURLFormat checks that rawURL is a tweet URL, then confirms it with the
// content inspector. A URL with the wrong shape never reaches the network.
func (v *Validator) CheckURLFormat(ctx context.Context, rawURL string) models.URLCheckResult {
	tweetID, ok := ParseTweetURL(rawURL)
	if !ok {
		return models.URLCheckResult{Valid: false, Error: formatError(models.PlatformTwitter)}
	}

	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	resp, err := v.client.R().
		SetContext(ctx).
		SetBody(map[string]string{"url": rawURL}).
		Post("/api/check-tweet-id")

	if err != nil {
		logrus.Errorf("Tweet URL check failed for %s: %v", rawURL, err)
		return models.URLCheckResult{Valid: false, Error: msgURLNetworkError}
	}

	if !resp.IsSuccess() {
		logrus.Errorf("Tweet URL check returned status %d for %s", resp.StatusCode(), rawURL)
		return models.URLCheckResult{Valid: false, Error: fmt.Sprintf("URL check returned status %d", resp.StatusCode())}
	}

	var check urlCheckResponse
	if err := json.Unmarshal(resp.Body(), &check); err != nil || check.Valid == nil {
		logrus.Errorf("Invalid URL check response for %s: %s", rawURL, string(resp.Body()))
		return models.URLCheckResult{Valid: false, Error: msgInvalidFormat}
	}

	result := models.URLCheckResult{Valid: *check.Valid, TweetID: check.TweetID, Error: check.Error}
	if result.Valid && result.TweetID == "" {
		result.TweetID = tweetID
	}
	return result
}

// CheckHealth probes the content inspector. An unreachable inspector is
// reported as status "error".
func (v *Validator) CheckHealth(ctx context.Context) HealthStatus {
	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	resp, err := v.client.R().
		SetContext(ctx).
		Get("/")

	if err != nil || !resp.IsSuccess() {
		if err == nil {
			err = fmt.Errorf("status %d", resp.StatusCode())
		}
		logrus.Warnf("Content inspector health check failed: %v", err)
		return HealthStatus{Status: "error", Message: "API unavailable"}
	}

	var details map[string]interface{}
	if err := json.Unmarshal(resp.Body(), &details); err != nil {
		return HealthStatus{Status: "ok", Message: strings.TrimSpace(string(resp.Body()))}
	}

	status := HealthStatus{Status: "ok", Details: details}
	if s, ok := details["status"].(string); ok && s != "" {
		status.Status = s
	}
	if m, ok := details["message"].(string); ok {
		status.Message = m
	}
	return status
}

// ScrapeURL asks the content inspector to extract the content at rawURL,
// highlighting keywords
func (v *Validator) ScrapeURL(ctx context.Context, rawURL string, keywords []string) ScrapeResult {
	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	if keywords == nil {
		keywords = []string{}
	}

	resp, err := v.client.R().
		SetContext(ctx).
		SetBody(map[string]interface{}{"url": rawURL, "keywords": keywords}).
		Post("/api/scrape-url")

	if err != nil {
		logrus.Errorf("Scrape request failed for %s: %v", rawURL, err)
		return ScrapeResult{Success: false, Error: "Network error while scraping URL"}
	}

	if !resp.IsSuccess() {
		return ScrapeResult{Success: false, Error: fmt.Sprintf("scrape returned status %d", resp.StatusCode())}
	}

	var data map[string]interface{}
	if err := json.Unmarshal(resp.Body(), &data); err != nil || data == nil {
		return ScrapeResult{Success: false, Error: msgInvalidFormat}
	}

	result := ScrapeResult{Success: true, Data: data}
	if success, ok := data["success"].(bool); ok {
		result.Success = success
	}
	if e, ok := data["error"].(string); ok {
		result.Error = e
	}
	return result
}
