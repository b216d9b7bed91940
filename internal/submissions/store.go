package submissions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/onchainreach/creator-hub/internal/models"
	"github.com/onchainreach/creator-hub/internal/storage"
	"github.com/sirupsen/logrus"
)

var (
	ErrNotFound          = errors.New("submission not found")
	ErrInvalidTransition = errors.New("invalid status transition")
)

const keyPrefix = "submissions/"

// Repository is the Submission Store contract
type Repository interface {
	Create(ctx context.Context, s models.Submission) (models.Submission, error)
	Get(ctx context.Context, id string) (models.Submission, error)
	List(ctx context.Context, campaignID string) ([]models.Submission, error)
	Save(ctx context.Context, s models.Submission) error
	UpdateStatus(ctx context.Context, id, status, feedback string) (models.Submission, error)
	UpdateMetrics(ctx context.Context, id string, metrics models.PostMetrics, at time.Time) (models.Submission, error)
}

// Store persists submissions as one JSON object per submission
type Store struct {
	storage storage.StorageInterface
	nowFn   func() time.Time
	mu      sync.Mutex
}

// Ensure Store implements Repository
var _ Repository = (*Store)(nil)

// NewStore creates a submission store over the given storage backend
func NewStore(backend storage.StorageInterface) *Store {
	return &Store{storage: backend, nowFn: time.Now}
}

func key(id string) string {
	return keyPrefix + id + ".json"
}

// CanTransition reports whether moderation may move a submission from one
// status to another. Only pending submissions can be decided.
func CanTransition(from, to string) bool {
	return from == models.StatusPending && (to == models.StatusVerified || to == models.StatusRejected)
}

// Create stores a new submission, filling in id, timestamp and status
func (s *Store) Create(ctx context.Context, sub models.Submission) (models.Submission, error) {
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	if sub.SubmittedAt.IsZero() {
		sub.SubmittedAt = s.nowFn().UTC()
	}
	if sub.Status == "" {
		sub.Status = models.StatusPending
	}

	if err := s.Save(ctx, sub); err != nil {
		return models.Submission{}, err
	}

	logrus.Infof("Created submission %s for campaign %s (%s)", sub.ID, sub.CampaignID, sub.Status)
	return sub, nil
}

// Get returns the submission with id
func (s *Store) Get(ctx context.Context, id string) (models.Submission, error) {
	id = strings.TrimSpace(id)
	if id == "" || strings.ContainsAny(id, "/\\") {
		return models.Submission{}, ErrNotFound
	}

	data, err := s.storage.Retrieve(ctx, key(id))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Submission{}, ErrNotFound
		}
		return models.Submission{}, fmt.Errorf("failed to retrieve submission %s: %w", id, err)
	}

	var sub models.Submission
	if err := json.Unmarshal(data, &sub); err != nil {
		return models.Submission{}, fmt.Errorf("failed to decode submission %s: %w", id, err)
	}
	return sub, nil
}

// List returns the submissions of campaignID, or all submissions when
// campaignID is empty, most recent first
func (s *Store) List(ctx context.Context, campaignID string) ([]models.Submission, error) {
	names, err := s.storage.List(ctx, keyPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}

	subs := make([]models.Submission, 0, len(names))
	for _, name := range names {
		if !strings.HasSuffix(name, ".json") {
			continue
		}

		data, err := s.storage.Retrieve(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to retrieve %s: %w", name, err)
		}

		var sub models.Submission
		if err := json.Unmarshal(data, &sub); err != nil {
			logrus.Warnf("Skipping undecodable submission %s: %v", name, err)
			continue
		}

		if campaignID != "" && sub.CampaignID != campaignID {
			continue
		}
		subs = append(subs, sub)
	}

	sort.SliceStable(subs, func(i, j int) bool {
		return subs[i].SubmittedAt.After(subs[j].SubmittedAt)
	})

	return subs, nil
}

// Save writes sub, replacing any stored version
func (s *Store) Save(ctx context.Context, sub models.Submission) error {
	if sub.ID == "" || strings.ContainsAny(sub.ID, "/\\") {
		return fmt.Errorf("invalid submission id %q", sub.ID)
	}

	data, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("failed to marshal submission %s: %w", sub.ID, err)
	}

	return s.storage.Store(ctx, key(sub.ID), data)
}

// UpdateStatus records a moderation decision
func (s *Store) UpdateStatus(ctx context.Context, id, status, feedback string) (models.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, err := s.Get(ctx, id)
	if err != nil {
		return models.Submission{}, err
	}

	if !CanTransition(sub.Status, status) {
		return models.Submission{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, sub.Status, status)
	}

	sub.Status = status
	if feedback != "" {
		sub.Feedback = feedback
	}

	if err := s.Save(ctx, sub); err != nil {
		return models.Submission{}, err
	}

	logrus.Infof("Submission %s moved to %s", sub.ID, status)
	return sub, nil
}

// UpdateMetrics replaces the engagement counts of a submission. Any
// precomputed score is dropped so the score follows the new counts.
func (s *Store) UpdateMetrics(ctx context.Context, id string, metrics models.PostMetrics, at time.Time) (models.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, err := s.Get(ctx, id)
	if err != nil {
		return models.Submission{}, err
	}

	sub.Metrics = models.SubmissionMetrics{PostMetrics: metrics}
	updated := at.UTC()
	sub.MetricsUpdatedAt = &updated

	if err := s.Save(ctx, sub); err != nil {
		return models.Submission{}, err
	}

	logrus.Debugf("Updated metrics of submission %s", sub.ID)
	return sub, nil
}

// Seed stores each fixture that is not already present
func (s *Store) Seed(ctx context.Context, fixtures []models.Submission) error {
	seeded := 0
	for _, sub := range fixtures {
		_, err := s.Get(ctx, sub.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrNotFound) {
			return err
		}
		if err := s.Save(ctx, sub); err != nil {
			return fmt.Errorf("failed to seed submission %s: %w", sub.ID, err)
		}
		seeded++
	}

	if seeded > 0 {
		logrus.Infof("Seeded %d fixture submissions", seeded)
	}
	return nil
}
