package submissions

import (
	"context"
	"errors"

	"github.com/onchainreach/creator-hub/internal/models"
	"github.com/sirupsen/logrus"
)

// FallbackRepository serves fixture data when the underlying store cannot be
// read. Writes always go to the underlying store.
type FallbackRepository struct {
	Repository
	fixtures []models.Submission
}

// WithFallback wraps repo so failed reads fall back to fixtures
func WithFallback(repo Repository, fixtures []models.Submission) *FallbackRepository {
	return &FallbackRepository{Repository: repo, fixtures: fixtures}
}

// Get returns the stored submission, or the matching fixture when the store
// is unavailable
func (f *FallbackRepository) Get(ctx context.Context, id string) (models.Submission, error) {
	sub, err := f.Repository.Get(ctx, id)
	if err == nil || errors.Is(err, ErrNotFound) {
		return sub, err
	}

	logrus.Warnf("Submission store read failed, serving fixture for %s: %v", id, err)
	for _, fixture := range f.fixtures {
		if fixture.ID == id {
			return fixture, nil
		}
	}
	return models.Submission{}, ErrNotFound
}

// List returns stored submissions, or fixtures when the store is unavailable
func (f *FallbackRepository) List(ctx context.Context, campaignID string) ([]models.Submission, error) {
	subs, err := f.Repository.List(ctx, campaignID)
	if err == nil {
		return subs, nil
	}

	logrus.Warnf("Submission store list failed, serving fixtures: %v", err)
	var out []models.Submission
	for _, fixture := range f.fixtures {
		if campaignID == "" || fixture.CampaignID == campaignID {
			out = append(out, fixture)
		}
	}
	return out, nil
}
