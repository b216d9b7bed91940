package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/onchainreach/creator-hub/internal/models"
	"github.com/onchainreach/creator-hub/internal/validation"
	"github.com/sirupsen/logrus"
)

const defaultTwitterBaseURL = "https://api.twitter.com"

// TwitterSource reads public metrics of tweets through the X API v2
type TwitterSource struct {
	bearerToken string
	baseURL     string
	client      *resty.Client
}

type twitterTweetResponse struct {
	Data *struct {
		ID            string `json:"id"`
		PublicMetrics struct {
			ImpressionCount int `json:"impression_count"`
			LikeCount       int `json:"like_count"`
			ReplyCount      int `json:"reply_count"`
			RetweetCount    int `json:"retweet_count"`
			QuoteCount      int `json:"quote_count"`
		} `json:"public_metrics"`
	} `json:"data"`
	Errors []struct {
		Title  string `json:"title"`
		Detail string `json:"detail"`
	} `json:"errors"`
}

// NewTwitterSource creates a new Twitter source
func NewTwitterSource(bearerToken string) *TwitterSource {
	return &TwitterSource{
		bearerToken: bearerToken,
		baseURL:     defaultTwitterBaseURL,
		client: resty.New().
			SetTimeout(30*time.Second).
			SetHeader("User-Agent", "Creator-Hub/1.0"),
	}
}

// WithBaseURL points the source at another API host
func (t *TwitterSource) WithBaseURL(baseURL string) *TwitterSource {
	t.baseURL = strings.TrimRight(baseURL, "/")
	return t
}

func (t *TwitterSource) GetName() string {
	return "twitter"
}

func (t *TwitterSource) IsEnabled() bool {
	return t.bearerToken != ""
}

func (t *TwitterSource) Supports(platform string) bool {
	return platform == models.PlatformTwitter
}

func (t *TwitterSource) FetchMetrics(ctx context.Context, contentURL string) (models.PostMetrics, error) {
	tweetID, ok := validation.ParseTweetURL(contentURL)
	if !ok {
		return models.PostMetrics{}, fmt.Errorf("%w: %s", validation.ErrInvalidURL, contentURL)
	}

	resp, err := t.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+t.bearerToken).
		SetQueryParam("tweet.fields", "public_metrics").
		Get(fmt.Sprintf("%s/2/tweets/%s", t.baseURL, tweetID))
	if err != nil {
		return models.PostMetrics{}, err
	}

	if resp.StatusCode() == 429 {
		if reset := resp.Header().Get("x-rate-limit-reset"); reset != "" {
			logrus.Infof("Twitter rate limit will reset at: %s", reset)
		}
		return models.PostMetrics{}, ErrRateLimited
	}

	if resp.StatusCode() != 200 {
		return models.PostMetrics{}, fmt.Errorf("twitter API returned status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	var tweetResp twitterTweetResponse
	if err := json.Unmarshal(resp.Body(), &tweetResp); err != nil {
		return models.PostMetrics{}, fmt.Errorf("failed to parse Twitter response: %w", err)
	}

	if tweetResp.Data == nil {
		if len(tweetResp.Errors) > 0 {
			return models.PostMetrics{}, fmt.Errorf("twitter API error: %s", tweetResp.Errors[0].Detail)
		}
		return models.PostMetrics{}, fmt.Errorf("tweet %s not found", tweetID)
	}

	pm := tweetResp.Data.PublicMetrics
	logrus.Debugf("Fetched Twitter metrics for tweet %s", tweetID)

	return models.PostMetrics{
		Views:    pm.ImpressionCount,
		Likes:    pm.LikeCount,
		Comments: pm.ReplyCount,
		Reposts:  pm.RetweetCount + pm.QuoteCount,
	}, nil
}
