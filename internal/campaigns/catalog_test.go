package campaigns

import (
	"testing"

	"github.com/onchainreach/creator-hub/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_Search(t *testing.T) {
	catalog := NewCatalog(DefaultCampaigns)

	tests := []struct {
		name        string
		query       string
		expectedIDs []string
	}{
		{
			name:        "Empty query returns everything in order",
			query:       "",
			expectedIDs: []string{"c007", "c001", "c002", "c003", "c004", "c005", "c006"},
		},
		{
			name:        "Matches title ignoring case",
			query:       "nft COLLECTION",
			expectedIDs: []string{"c003"},
		},
		{
			name:        "Matches brand",
			query:       "scalenet",
			expectedIDs: []string{"c005"},
		},
		{
			name:        "Matches brief",
			query:       "wallet",
			expectedIDs: []string{"c004"},
		},
		{
			name:        "No match",
			query:       "solana",
			expectedIDs: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ids []string
			for _, campaign := range catalog.Search(tt.query) {
				ids = append(ids, campaign.ID)
			}
			assert.Equal(t, tt.expectedIDs, ids)
		})
	}
}

func TestByStatus(t *testing.T) {
	catalog := NewCatalog(DefaultCampaigns)

	assert.Len(t, ByStatus(catalog.All(), StatusLive), 5)
	assert.Len(t, ByStatus(catalog.All(), StatusPending), 1)

	closed := ByStatus(catalog.All(), StatusClosed)
	require.Len(t, closed, 1)
	assert.Equal(t, "c006", closed[0].ID)
}

func TestCatalog_Get(t *testing.T) {
	catalog := NewCatalog(DefaultCampaigns)

	campaign, err := catalog.Get(" c002 ")
	require.NoError(t, err)
	assert.Equal(t, "Onchain Gaming Highlights", campaign.Title)

	_, err = catalog.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRequirementsFor(t *testing.T) {
	tests := []struct {
		name     string
		tags     []string
		expected models.RequirementSet
	}{
		{
			name: "All four categories",
			tags: []string{"#BuildOnBase", "base.org/batches", "@base", "Base Batches"},
			expected: models.RequirementSet{
				Hashtags: []string{"#BuildOnBase"},
				Mentions: []string{"@base"},
				Topics:   []string{"Base Batches"},
				URLs:     []string{"base.org/batches"},
			},
		},
		{
			name: "No URL requirement leaves urls unset",
			tags: []string{"#DeFiSuccess", "#BuildOnBase", "@defialliance", " "},
			expected: models.RequirementSet{
				Hashtags: []string{"#DeFiSuccess", "#BuildOnBase"},
				Mentions: []string{"@defialliance"},
				Topics:   []string{},
			},
		},
		{
			name: "No tags",
			tags: nil,
			expected: models.RequirementSet{
				Hashtags: []string{},
				Mentions: []string{},
				Topics:   []string{},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reqs := RequirementsFor(Campaign{RequiredTags: tt.tags})
			assert.Equal(t, tt.expected, reqs)
		})
	}
}
