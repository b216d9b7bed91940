package campaigns

import (
	"errors"
	"strings"

	"github.com/onchainreach/creator-hub/internal/models"
)

// ErrNotFound is returned when no campaign has the requested id
var ErrNotFound = errors.New("campaign not found")

// Campaign statuses
const (
	StatusLive    = "live"
	StatusPending = "pending"
	StatusClosed  = "closed"
)

// Campaign is a brand's call for creator content
type Campaign struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Brief           string   `json:"brief"`
	Brand           string   `json:"brand"`
	BrandLogo       string   `json:"brandLogo"`
	MinReward       float64  `json:"minReward"`
	MaxReward       float64  `json:"maxReward"`
	Deadline        string   `json:"deadline"`
	Status          string   `json:"status"`
	RequiredTags    []string `json:"requiredTags"`
	Submissions     int      `json:"submissions"`
	BudgetRemaining float64  `json:"budgetRemaining"`
	PayoutModel     string   `json:"payoutModel"` // "fixed", "engagement", "hybrid"
}

// Catalog is a read-only, ordered set of campaigns
type Catalog struct {
	campaigns []Campaign
	byID      map[string]int
}

// NewCatalog creates a catalog over campaigns, keeping their order
func NewCatalog(campaigns []Campaign) *Catalog {
	c := &Catalog{
		campaigns: append([]Campaign(nil), campaigns...),
		byID:      make(map[string]int, len(campaigns)),
	}
	for i, campaign := range c.campaigns {
		c.byID[campaign.ID] = i
	}
	return c
}

// All returns every campaign
func (c *Catalog) All() []Campaign {
	return append([]Campaign(nil), c.campaigns...)
}

// Get returns the campaign with id
func (c *Catalog) Get(id string) (Campaign, error) {
	i, ok := c.byID[strings.TrimSpace(id)]
	if !ok {
		return Campaign{}, ErrNotFound
	}
	return c.campaigns[i], nil
}

// Search returns campaigns whose title, brand or brief contains query,
// ignoring case. An empty query matches everything.
func (c *Catalog) Search(query string) []Campaign {
	query = strings.ToLower(strings.TrimSpace(query))

	var matched []Campaign
	for _, campaign := range c.campaigns {
		if query == "" ||
			strings.Contains(strings.ToLower(campaign.Title), query) ||
			strings.Contains(strings.ToLower(campaign.Brand), query) ||
			strings.Contains(strings.ToLower(campaign.Brief), query) {
			matched = append(matched, campaign)
		}
	}
	return matched
}

// ByStatus filters campaigns down to those with status
func ByStatus(campaigns []Campaign, status string) []Campaign {
	var filtered []Campaign
	for _, campaign := range campaigns {
		if campaign.Status == status {
			filtered = append(filtered, campaign)
		}
	}
	return filtered
}

// RequirementsFor derives the requirement set from a campaign's required
// tags: "#tag" is a hashtag, "@handle" a mention, a spaceless tag with a dot
// or slash a URL, anything else a topic.
func RequirementsFor(campaign Campaign) models.RequirementSet {
	reqs := models.RequirementSet{
		Hashtags: []string{},
		Mentions: []string{},
		Topics:   []string{},
	}

	for _, tag := range campaign.RequiredTags {
		tag = strings.TrimSpace(tag)
		switch {
		case tag == "":
			continue
		case strings.HasPrefix(tag, "#"):
			reqs.Hashtags = append(reqs.Hashtags, tag)
		case strings.HasPrefix(tag, "@"):
			reqs.Mentions = append(reqs.Mentions, tag)
		case !strings.Contains(tag, " ") && strings.ContainsAny(tag, "./"):
			reqs.URLs = append(reqs.URLs, tag)
		default:
			reqs.Topics = append(reqs.Topics, tag)
		}
	}

	return reqs
}
