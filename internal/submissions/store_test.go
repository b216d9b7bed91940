package submissions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/onchainreach/creator-hub/internal/models"
	"github.com/onchainreach/creator-hub/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockStorage is a mock implementation of the storage interface
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Store(ctx context.Context, name string, data []byte) error {
	args := m.Called(name, data)
	return args.Error(0)
}

func (m *MockStorage) Retrieve(ctx context.Context, name string) ([]byte, error) {
	args := m.Called(name)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func (m *MockStorage) List(ctx context.Context, prefix string) ([]string, error) {
	args := m.Called(prefix)
	names, _ := args.Get(0).([]string)
	return names, args.Error(1)
}

func (m *MockStorage) Delete(ctx context.Context, name string) error {
	args := m.Called(name)
	return args.Error(0)
}

func newFileStore(t *testing.T) *Store {
	backend, err := storage.NewFileStorage(t.TempDir())
	require.NoError(t, err)
	store := NewStore(backend)
	store.nowFn = func() time.Time { return time.Date(2025, 4, 12, 9, 0, 0, 0, time.UTC) }
	return store
}

func TestStore_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	store := newFileStore(t)

	created, err := store.Create(ctx, models.Submission{
		CampaignID:      "c001",
		ContentURL:      "https://twitter.com/creator/status/42",
		ContentPlatform: models.PlatformTwitter,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, models.StatusPending, created.Status)
	assert.Equal(t, time.Date(2025, 4, 12, 9, 0, 0, 0, time.UTC), created.SubmittedAt)

	fetched, err := store.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ContentURL, fetched.ContentURL)
	assert.True(t, created.SubmittedAt.Equal(fetched.SubmittedAt))

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Get(ctx, "../etc")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_List(t *testing.T) {
	ctx := context.Background()
	store := newFileStore(t)
	require.NoError(t, store.Seed(ctx, DefaultSubmissions()))

	all, err := store.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"s001", "s002", "s003"}, []string{all[0].ID, all[1].ID, all[2].ID}, "most recent first")

	filtered, err := store.List(ctx, "c002")
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "s002", filtered[0].ID)
	require.NotNil(t, filtered[0].Metrics.EngagementScore)
	assert.Equal(t, 64, *filtered[0].Metrics.EngagementScore)
}

func TestStore_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	store := newFileStore(t)
	require.NoError(t, store.Seed(ctx, DefaultSubmissions()))

	tests := []struct {
		name        string
		id          string
		status      string
		expectedErr error
	}{
		{name: "Pending to verified", id: "s002", status: models.StatusVerified},
		{name: "Verified cannot change again", id: "s002", status: models.StatusRejected, expectedErr: ErrInvalidTransition},
		{name: "Rejected cannot be verified", id: "s003", status: models.StatusVerified, expectedErr: ErrInvalidTransition},
		{name: "Unknown submission", id: "s999", status: models.StatusVerified, expectedErr: ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub, err := store.UpdateStatus(ctx, tt.id, tt.status, "Reviewed")
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.status, sub.Status)
			assert.Equal(t, "Reviewed", sub.Feedback)

			stored, err := store.Get(ctx, tt.id)
			require.NoError(t, err)
			assert.Equal(t, tt.status, stored.Status)
		})
	}
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(models.StatusPending, models.StatusVerified))
	assert.True(t, CanTransition(models.StatusPending, models.StatusRejected))
	assert.False(t, CanTransition(models.StatusPending, models.StatusPending))
	assert.False(t, CanTransition(models.StatusVerified, models.StatusPending))
	assert.False(t, CanTransition(models.StatusRejected, "archived"))
}

func TestStore_UpdateMetrics(t *testing.T) {
	ctx := context.Background()
	store := newFileStore(t)
	require.NoError(t, store.Seed(ctx, DefaultSubmissions()))

	at := time.Date(2025, 4, 13, 12, 0, 0, 0, time.UTC)
	fresh := models.PostMetrics{Views: 5000, Likes: 300, Comments: 60, Reposts: 40}

	sub, err := store.UpdateMetrics(ctx, "s001", fresh, at)
	require.NoError(t, err)
	assert.Equal(t, fresh, sub.Metrics.PostMetrics)
	assert.Nil(t, sub.Metrics.EngagementScore, "precomputed score is cleared")
	require.NotNil(t, sub.MetricsUpdatedAt)
	assert.True(t, at.Equal(*sub.MetricsUpdatedAt))

	stored, err := store.Get(ctx, "s001")
	require.NoError(t, err)
	assert.Equal(t, models.StatusVerified, stored.Status)
	assert.Equal(t, fresh, stored.Metrics.PostMetrics)

	_, err = store.UpdateMetrics(ctx, "s999", fresh, at)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_SeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newFileStore(t)
	require.NoError(t, store.Seed(ctx, DefaultSubmissions()))

	_, err := store.UpdateStatus(ctx, "s002", models.StatusRejected, "Off brief")
	require.NoError(t, err)

	require.NoError(t, store.Seed(ctx, DefaultSubmissions()))
	sub, err := store.Get(ctx, "s002")
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, sub.Status, "seeding must not overwrite existing records")
}

func TestStore_GetPropagatesBackendErrors(t *testing.T) {
	backend := &MockStorage{}
	backend.On("Retrieve", "submissions/s001.json").Return(nil, errors.New("connection reset"))

	_, err := NewStore(backend).Get(context.Background(), "s001")

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	backend.AssertExpectations(t)
}

func TestStore_SaveRejectsInvalidIDs(t *testing.T) {
	backend := &MockStorage{}
	store := NewStore(backend)

	assert.Error(t, store.Save(context.Background(), models.Submission{}))
	assert.Error(t, store.Save(context.Background(), models.Submission{ID: "a/b"}))
	backend.AssertNotCalled(t, "Store", mock.Anything, mock.Anything)
}

func TestFallbackRepository(t *testing.T) {
	ctx := context.Background()
	backend := &MockStorage{}
	backend.On("List", "submissions/").Return(nil, errors.New("storage unavailable"))
	backend.On("Retrieve", "submissions/s003.json").Return(nil, errors.New("storage unavailable"))
	backend.On("Retrieve", "submissions/s404.json").Return(nil, storage.ErrNotFound)

	repo := WithFallback(NewStore(backend), DefaultSubmissions())

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	filtered, err := repo.List(ctx, "c001")
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "s001", filtered[0].ID)

	sub, err := repo.Get(ctx, "s003")
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, sub.Status)

	_, err = repo.Get(ctx, "s404")
	assert.ErrorIs(t, err, ErrNotFound, "a genuine miss is not masked by fixtures")
}
