package tracking

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/onchainreach/creator-hub/internal/campaigns"
	"github.com/onchainreach/creator-hub/internal/config"
	"github.com/onchainreach/creator-hub/internal/engagement"
	"github.com/onchainreach/creator-hub/internal/models"
	"github.com/onchainreach/creator-hub/internal/notifications"
	"github.com/onchainreach/creator-hub/internal/sources"
	"github.com/onchainreach/creator-hub/internal/storage"
	"github.com/onchainreach/creator-hub/internal/submissions"
	"github.com/onchainreach/creator-hub/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockNotificationService is a mock implementation of the notification service
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) SendReport(report *models.Report) error {
	args := m.Called(report)
	return args.Error(0)
}

func (m *MockNotificationService) SendAlert(alert *models.Alert) error {
	args := m.Called(alert)
	return args.Error(0)
}

// MockValidator is a mock implementation of the submission validator
type MockValidator struct {
	mock.Mock
}

func (m *MockValidator) PrecheckURL(platform, rawURL string) (models.URLCheckResult, bool) {
	args := m.Called(platform, rawURL)
	return args.Get(0).(models.URLCheckResult), args.Bool(1)
}

func (m *MockValidator) ValidateSubmission(ctx context.Context, platform, rawURL string, reqs models.RequirementSet) models.ValidationResult {
	args := m.Called(platform, rawURL, reqs)
	return args.Get(0).(models.ValidationResult)
}

// MockSource is a mock implementation of a metrics source
type MockSource struct {
	mock.Mock
	name     string
	platform string
}

func (m *MockSource) GetName() string               { return m.name }
func (m *MockSource) IsEnabled() bool               { return true }
func (m *MockSource) Supports(platform string) bool { return platform == m.platform }

func (m *MockSource) FetchMetrics(ctx context.Context, contentURL string) (models.PostMetrics, error) {
	args := m.Called(contentURL)
	return args.Get(0).(models.PostMetrics), args.Error(1)
}

var fixedNow = time.Date(2025, 4, 13, 0, 0, 0, 0, time.UTC)

type testEnv struct {
	service   *Service
	store     *submissions.Store
	validator *MockValidator
	notifier  *MockNotificationService
}

func newTestEnv(t *testing.T) *testEnv {
	backend, err := storage.NewFileStorage(t.TempDir())
	require.NoError(t, err)

	store := submissions.NewStore(backend)
	require.NoError(t, store.Seed(context.Background(), submissions.DefaultSubmissions()))

	validator := &MockValidator{}
	notifier := &MockNotificationService{}
	cfg := &config.Config{ReportSchedule: "weekly"}

	service := NewService(cfg, store, campaigns.NewCatalog(campaigns.DefaultCampaigns), validator, engagement.NewDefaultScorer(), notifier)
	service.nowFn = func() time.Time { return fixedNow }
	service.SetSources()

	return &testEnv{service: service, store: store, validator: validator, notifier: notifier}
}

func inspectedResult(passed bool, missingHashtags ...string) models.ValidationResult {
	hashtags := models.ValidationRequirement{Passed: len(missingHashtags) == 0, Required: []string{"#DeFiSuccess", "#BuildOnBase"}, Missing: missingHashtags}
	if hashtags.Missing == nil {
		hashtags.Missing = []string{}
	}
	return models.ValidationResult{
		Success: true,
		Passed:  passed,
		Errors:  []string{},
		Requirements: map[string]models.ValidationRequirement{
			models.CategoryHashtags: hashtags,
			models.CategoryMentions: {Passed: true, Required: []string{"@defialliance"}, Missing: []string{}},
			models.CategoryTopics:   {Passed: true, Required: []string{}, Missing: []string{}},
		},
	}
}

func TestService_SubmitOutcomes(t *testing.T) {
	tweetURL := "https://twitter.com/creator/status/1790000000000000000"

	tests := []struct {
		name             string
		platform         string
		url              string
		result           models.ValidationResult
		expectedStatus   string
		expectedFeedback string
		expectAlert      bool
	}{
		{
			name:             "Inspected and passed",
			platform:         models.PlatformTwitter,
			url:              tweetURL,
			result:           inspectedResult(true),
			expectedStatus:   models.StatusVerified,
			expectedFeedback: "All campaign requirements met",
		},
		{
			name:             "Missing hashtag",
			platform:         models.PlatformTwitter,
			url:              tweetURL,
			result:           inspectedResult(false, "#BuildOnBase"),
			expectedStatus:   models.StatusRejected,
			expectedFeedback: "Missing required elements: #BuildOnBase",
			expectAlert:      true,
		},
		{
			name:             "Inspector unavailable",
			platform:         models.PlatformTwitter,
			url:              tweetURL,
			result:           models.ValidationResult{Success: false, Passed: false, Errors: []string{"network error"}},
			expectedStatus:   models.StatusPending,
			expectedFeedback: "Automatic validation unavailable, awaiting manual review",
		},
		{
			name:             "Optimistic skip",
			platform:         models.PlatformFarcaster,
			url:              "https://warpcast.com/~/cast/0xabc123",
			result:           models.ValidationResult{Success: true, Passed: true, Skipped: true, Errors: []string{}},
			expectedStatus:   models.StatusPending,
			expectedFeedback: "Automatic validation is not available for farcaster, awaiting manual review",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.validator.On("PrecheckURL", tt.platform, tt.url).Return(models.URLCheckResult{Valid: true}, tt.platform == models.PlatformTwitter)
			env.validator.On("ValidateSubmission", tt.platform, tt.url, mock.Anything).Return(tt.result)
			if tt.expectAlert {
				env.notifier.On("SendAlert", mock.MatchedBy(func(a *models.Alert) bool {
					return a.Type == "rejected" && a.Submission != nil && a.Message == tt.expectedFeedback
				})).Return(nil).Once()
			}

			got, err := env.service.Submit(context.Background(), SubmitInput{
				CampaignID:      " c001 ",
				ContentURL:      tt.url,
				ContentPlatform: " " + tt.platform,
			})
			require.NoError(t, err)

			assert.Equal(t, tt.expectedStatus, got.Status)
			assert.Equal(t, tt.expectedFeedback, got.Feedback)
			assert.Equal(t, "Share Your DeFi Success Story", got.CampaignTitle)
			assert.Equal(t, "DeFi Alliance", got.Brand)
			require.NotNil(t, got.Validation)
			assert.Equal(t, 0, got.Score)

			stored, err := env.store.Get(context.Background(), got.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, stored.Status)

			env.validator.AssertExpectations(t)
			env.notifier.AssertExpectations(t)
		})
	}
}

func TestService_SubmitRequirementsFromCampaign(t *testing.T) {
	env := newTestEnv(t)
	url := "https://x.com/creator/status/42"
	expected := models.RequirementSet{
		Hashtags: []string{"#DeFiSuccess", "#BuildOnBase"},
		Mentions: []string{"@defialliance"},
		Topics:   []string{},
	}

	env.validator.On("PrecheckURL", models.PlatformTwitter, url).Return(models.URLCheckResult{Valid: true, TweetID: "42"}, true)
	env.validator.On("ValidateSubmission", models.PlatformTwitter, url, expected).Return(inspectedResult(true))

	_, err := env.service.Submit(context.Background(), SubmitInput{CampaignID: "c001", ContentURL: url, ContentPlatform: "Twitter"})
	require.NoError(t, err)
	env.validator.AssertExpectations(t)
}

func TestService_SubmitInvalidURLStoresNothing(t *testing.T) {
	env := newTestEnv(t)
	url := "https://twitter.com/creator"
	message := "URL must be a valid Twitter/X tweet URL (e.g., https://twitter.com/username/status/123456789)"
	env.validator.On("PrecheckURL", models.PlatformTwitter, url).Return(models.URLCheckResult{Valid: false, Error: message}, true)

	_, err := env.service.Submit(context.Background(), SubmitInput{CampaignID: "c001", ContentURL: url, ContentPlatform: models.PlatformTwitter})

	require.ErrorIs(t, err, validation.ErrInvalidURL)
	assert.Contains(t, err.Error(), message)
	env.validator.AssertNotCalled(t, "ValidateSubmission", mock.Anything, mock.Anything, mock.Anything)

	subs, err := env.store.List(context.Background(), "c001")
	require.NoError(t, err)
	assert.Len(t, subs, 1, "only the seeded submission remains")
	assert.Contains(t, env.service.GetMetrics(), `"invalid_url": 1`)
}

func TestService_SubmitInputErrors(t *testing.T) {
	tests := []struct {
		name        string
		input       SubmitInput
		expectedErr error
	}{
		{name: "Missing campaign", input: SubmitInput{ContentURL: "https://x.com/a/status/1", ContentPlatform: "twitter"}, expectedErr: ErrInvalidInput},
		{name: "Missing URL", input: SubmitInput{CampaignID: "c001", ContentURL: "  ", ContentPlatform: "twitter"}, expectedErr: ErrInvalidInput},
		{name: "Unknown platform", input: SubmitInput{CampaignID: "c001", ContentURL: "https://x.com/a/status/1", ContentPlatform: "myspace"}, expectedErr: ErrInvalidInput},
		{name: "Unknown campaign", input: SubmitInput{CampaignID: "c999", ContentURL: "https://x.com/a/status/1", ContentPlatform: "twitter"}, expectedErr: campaigns.ErrNotFound},
		{name: "Closed campaign", input: SubmitInput{CampaignID: "c006", ContentURL: "https://x.com/a/status/1", ContentPlatform: "twitter"}, expectedErr: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			_, err := env.service.Submit(context.Background(), tt.input)
			assert.ErrorIs(t, err, tt.expectedErr)
			env.validator.AssertNotCalled(t, "ValidateSubmission", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestService_ListAndGet(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	all, err := env.service.List(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, all, 3)

	byBrand, err := env.service.List(ctx, "", "pixel")
	require.NoError(t, err)
	require.Len(t, byBrand, 1)
	assert.Equal(t, "s003", byBrand[0].ID)

	byCampaign, err := env.service.List(ctx, "c002", "")
	require.NoError(t, err)
	require.Len(t, byCampaign, 1)
	assert.Equal(t, 64, byCampaign[0].Score)
	assert.Equal(t, "Good engagement", byCampaign[0].ScoreFeedback)

	sub, err := env.service.Get(ctx, "s001")
	require.NoError(t, err)
	assert.Equal(t, 78, sub.Score)
	assert.Equal(t, "High engagement", sub.ScoreFeedback)

	_, err = env.service.Get(ctx, "s404")
	assert.ErrorIs(t, err, submissions.ErrNotFound)
}

func TestService_ScoredSubmissionJSON(t *testing.T) {
	env := newTestEnv(t)
	sub, err := env.service.Get(context.Background(), "s001")
	require.NoError(t, err)

	data, err := json.Marshal(sub)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "s001", decoded["id"])
	assert.Equal(t, float64(78), decoded["score"])
	assert.Equal(t, "High engagement", decoded["scoreFeedback"])
}

func TestService_Moderate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	sub, err := env.service.Moderate(ctx, "s002", "Verified", "Looks great")
	require.NoError(t, err)
	assert.Equal(t, models.StatusVerified, sub.Status)
	assert.Equal(t, "Looks great", sub.Feedback)

	_, err = env.service.Moderate(ctx, "s002", models.StatusPending, "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = env.service.Moderate(ctx, "s001", models.StatusRejected, "")
	assert.ErrorIs(t, err, submissions.ErrInvalidTransition)

	_, err = env.service.Moderate(ctx, "s404", models.StatusRejected, "")
	assert.ErrorIs(t, err, submissions.ErrNotFound)
}

func TestService_Stats(t *testing.T) {
	env := newTestEnv(t)

	stats, err := env.service.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalSubmissions)
	assert.Equal(t, 1, stats.Verified)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 1, stats.Rejected)
	assert.Equal(t, 59, stats.AverageScore)
	assert.Equal(t, 465.0, stats.TotalPayout)
	assert.Equal(t, models.PostMetrics{Views: 4585, Likes: 265, Comments: 83, Reposts: 58}, stats.EngagementBreakdown)
}

func TestService_RefreshMetrics(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	twitter := &MockSource{name: "twitter", platform: models.PlatformTwitter}
	fresh := models.PostMetrics{Views: 1000, Likes: 100, Comments: 50, Reposts: 20}
	twitter.On("FetchMetrics", "https://twitter.com/user/status/123456789").Return(fresh, nil).Once()

	farcaster := &MockSource{name: "farcaster", platform: models.PlatformFarcaster}
	farcaster.On("FetchMetrics", "https://warpcast.com/~/cast/0x123456").Return(models.PostMetrics{}, sources.ErrRateLimited).Once()

	env.service.SetSources(twitter, farcaster)
	require.NoError(t, env.service.RefreshMetrics(ctx))

	twitter.AssertExpectations(t)
	farcaster.AssertExpectations(t)
	twitter.AssertNotCalled(t, "FetchMetrics", "https://twitter.com/user/status/987654321")

	refreshed, err := env.service.Get(ctx, "s001")
	require.NoError(t, err)
	assert.Equal(t, fresh, refreshed.Metrics.PostMetrics)
	assert.Nil(t, refreshed.Metrics.EngagementScore)
	assert.Equal(t, 9, refreshed.Score, "score follows the fresh counts")
	assert.Equal(t, models.StatusVerified, refreshed.Status)

	untouched, err := env.service.Get(ctx, "s002")
	require.NoError(t, err)
	assert.Equal(t, 64, untouched.Score)

	var metrics Metrics
	require.NoError(t, json.Unmarshal([]byte(env.service.GetMetrics()), &metrics))
	assert.Equal(t, 3, metrics.TotalSubmissions)
	assert.Equal(t, 1, metrics.SourceMetrics["twitter"])
	assert.Equal(t, 1, metrics.ErrorCount)
	assert.True(t, metrics.LastRefresh.Equal(fixedNow))
}

func TestService_RunReport(t *testing.T) {
	env := newTestEnv(t)

	var sent *models.Report
	env.notifier.On("SendReport", mock.AnythingOfType("*models.Report")).
		Run(func(args mock.Arguments) { sent = args.Get(0).(*models.Report) }).
		Return(nil).Once()

	require.NoError(t, env.service.RunReport(context.Background()))
	require.NotNil(t, sent)

	assert.Equal(t, "weekly", sent.Period)
	assert.Equal(t, 2, sent.TotalSubmissions, "s003 is older than a week")
	assert.Equal(t, map[string]int{models.StatusVerified: 1, models.StatusPending: 1}, sent.Summary[notifications.SummaryStatus])
	assert.Equal(t, 71, sent.Summary[notifications.SummaryAverageScore])
	assert.Equal(t, 465.0, sent.Summary[notifications.SummaryTotalPayout])
	assert.Equal(t, []string{"Share Your DeFi Success Story (78)", "Onchain Gaming Highlights (64)"}, sent.Summary[notifications.SummaryTopEntries])
	assert.Contains(t, env.service.GetMetrics(), `"last_report": "2025-04-13T00:00:00Z"`)
}

func TestService_RunReportNotificationFailure(t *testing.T) {
	env := newTestEnv(t)
	env.notifier.On("SendReport", mock.Anything).Return(errors.New("webhook down"))

	assert.Error(t, env.service.RunReport(context.Background()))
}
