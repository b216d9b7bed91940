package submissions

import (
	"time"

	"github.com/onchainreach/creator-hub/internal/models"
)

func intPtr(v int) *int { return &v }

func mustTime(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return t
}

// DefaultSubmissions returns the fixture submissions used to seed a new store
func DefaultSubmissions() []models.Submission {
	position := 3
	return []models.Submission{
		{
			ID:              "s001",
			CampaignID:      "c001",
			CampaignTitle:   "Share Your DeFi Success Story",
			Brand:           "DeFi Alliance",
			ContentURL:      "https://twitter.com/user/status/123456789",
			ContentPlatform: models.PlatformTwitter,
			SubmittedAt:     mustTime("2025-04-10T14:30:00Z"),
			Status:          models.StatusVerified,
			Feedback:        "Great story with compelling personal experience. Consider adding more specific numbers next time.",
			Metrics: models.SubmissionMetrics{
				PostMetrics:     models.PostMetrics{Views: 2460, Likes: 128, Comments: 42, Reposts: 35},
				EngagementScore: intPtr(78),
			},
			LeaderboardPosition: &position,
			EstimatedPayout:     320,
		},
		{
			ID:              "s002",
			CampaignID:      "c002",
			CampaignTitle:   "Onchain Gaming Highlights",
			Brand:           "ChainQuest Games",
			ContentURL:      "https://warpcast.com/~/cast/0x123456",
			ContentPlatform: models.PlatformFarcaster,
			SubmittedAt:     mustTime("2025-04-08T10:15:00Z"),
			Status:          models.StatusPending,
			Metrics: models.SubmissionMetrics{
				PostMetrics:     models.PostMetrics{Views: 1250, Likes: 95, Comments: 28, Reposts: 15},
				EngagementScore: intPtr(64),
			},
			EstimatedPayout: 145,
		},
		{
			ID:              "s003",
			CampaignID:      "c003",
			CampaignTitle:   "NFT Collection Review",
			Brand:           "PixelVerse",
			ContentURL:      "https://twitter.com/user/status/987654321",
			ContentPlatform: models.PlatformTwitter,
			SubmittedAt:     mustTime("2025-04-05T16:45:00Z"),
			Status:          models.StatusRejected,
			Feedback:        "Missing required hashtags and didn't focus enough on the collection specifics.",
			Metrics: models.SubmissionMetrics{
				PostMetrics:     models.PostMetrics{Views: 875, Likes: 42, Comments: 13, Reposts: 8},
				EngagementScore: intPtr(35),
			},
			EstimatedPayout: 0,
		},
	}
}
