package sources

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

const defaultNeynarBaseURL = "https://api.neynar.com"

// FarcasterSource reads cast reactions through the Neynar API
type FarcasterSource struct {
	apiKey  string
	baseURL string
	client  *resty.Client
}

type neynarCastResponse struct {
	Cast *struct {
		Hash      string `json:"hash"`
		Reactions struct {
			LikesCount   int `json:"likes_count"`
			RecastsCount int `json:"recasts_count"`
		} `json:"reactions"`
		Replies struct {
			Count int `json:"count"`
		} `json:"replies"`
	} `json:"cast"`
}

// NewFarcasterSource creates a new Farcaster source
func NewFarcasterSource(apiKey string) *FarcasterSource {
	return &FarcasterSource{
		apiKey:  apiKey,
		baseURL: defaultNeynarBaseURL,
		client: resty.New().
			SetTimeout(30*time.Second).
			SetHeader("User-Agent", "Creator-Hub/1.0"),
	}
}

// WithBaseURL points the source at another API host
func (f *FarcasterSource) WithBaseURL(baseURL string) *FarcasterSource {
	f.baseURL = strings.TrimRight(baseURL, "/")
	return f
}

func (f *FarcasterSource) GetName() string {
	return "farcaster"
}

func (f *FarcasterSource) IsEnabled() bool {
	return f.apiKey != ""
}

func (f *FarcasterSource) Supports(platform string) bool {
	return platform == models.PlatformFarcaster
}

// FetchMetrics looks the cast up by its URL. Neynar exposes no view counts.
func (f *FarcasterSource) FetchMetrics(ctx context.Context, contentURL string) (models.PostMetrics, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		SetHeader("api_key", f.apiKey).
		SetHeader("Accept", "application/json").
		SetQueryParams(map[string]string{
			"identifier": contentURL,
			"type":       "url",
		}).
		Get(f.baseURL + "/v2/farcaster/cast")
	if err != nil {
		return models.PostMetrics{}, err
	}

	if resp.StatusCode() == 429 {
		return models.PostMetrics{}, ErrRateLimited
	}

	if resp.StatusCode() != 200 {
		return models.PostMetrics{}, fmt.Errorf("neynar API returned status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	var castResp neynarCastResponse
	if err := json.Unmarshal(resp.Body(), &castResp); err != nil {
		return models.PostMetrics{}, fmt.Errorf("failed to parse Neynar response: %w", err)
	}
	if castResp.Cast == nil {
		return models.PostMetrics{}, fmt.Errorf("cast not found for %s", contentURL)
	}

	logrus.Debugf("Fetched Farcaster metrics for cast %s", castResp.Cast.Hash)

	return models.PostMetrics{
		Likes:    castResp.Cast.Reactions.LikesCount,
		Comments: castResp.Cast.Replies.Count,
		Reposts:  castResp.Cast.Reactions.RecastsCount,
	}, nil
}
