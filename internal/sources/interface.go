package sources

import (
	"context"
	"errors"

	"github.com/onchainreach/creator-hub/internal/models"
)

// ErrRateLimited is returned when a platform API refuses a request with 429
var ErrRateLimited = errors.New("rate limited")

// MetricsSource defines the contract for all engagement metrics collectors
type MetricsSource interface {
	GetName() string
	IsEnabled() bool
	Supports(platform string) bool
	FetchMetrics(ctx context.Context, contentURL string) (models.PostMetrics, error)
}
