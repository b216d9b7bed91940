package api

import (
	"context"

	"github.com/gorilla/mux"
	"github.com/onchainreach/creator-hub/internal/campaigns"
	"github.com/onchainreach/creator-hub/internal/models"
	"github.com/onchainreach/creator-hub/internal/tracking"
)

// Tracker is the submission tracking surface served over HTTP
type Tracker interface {
	Submit(ctx context.Context, in tracking.SubmitInput) (tracking.ScoredSubmission, error)
	List(ctx context.Context, campaignID, query string) ([]tracking.ScoredSubmission, error)
	Get(ctx context.Context, id string) (tracking.ScoredSubmission, error)
	Moderate(ctx context.Context, id, status, feedback string) (tracking.ScoredSubmission, error)
	Stats(ctx context.Context) (tracking.Stats, error)
	RefreshMetrics(ctx context.Context) error
	GetMetrics() string
}

// Checker runs URL and requirement checks without storing anything
type Checker interface {
	CheckURLFormat(ctx context.Context, rawURL string) models.URLCheckResult
	ValidateSubmission(ctx context.Context, platform, rawURL string, reqs models.RequirementSet) models.ValidationResult
}

// Server holds the HTTP handlers
type Server struct {
	catalog *campaigns.Catalog
	checker Checker
	tracker Tracker
}

// NewServer creates the HTTP handlers over the given services
func NewServer(catalog *campaigns.Catalog, checker Checker, tracker Tracker) *Server {
	return &Server{catalog: catalog, checker: checker, tracker: tracker}
}

// Router returns the routes of the service
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()

	// Health check endpoint
	router.HandleFunc("/health", healthCheckHandler).Methods("GET")

	// Metrics endpoint
	router.HandleFunc("/metrics", s.metricsHandler).Methods("GET")

	// Manual refresh trigger
	router.HandleFunc("/trigger", s.triggerHandler).Methods("POST")

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/campaigns", s.listCampaigns).Methods("GET")
	api.HandleFunc("/campaigns/{id}", s.getCampaign).Methods("GET")
	api.HandleFunc("/check-url", s.checkURL).Methods("POST")
	api.HandleFunc("/validate", s.validate).Methods("POST")
	api.HandleFunc("/submissions", s.listSubmissions).Methods("GET")
	api.HandleFunc("/submissions", s.createSubmission).Methods("POST")
	api.HandleFunc("/submissions/{id}", s.getSubmission).Methods("GET")
	api.HandleFunc("/submissions/{id}/status", s.moderateSubmission).Methods("PATCH")
	api.HandleFunc("/stats", s.stats).Methods("GET")

	return router
}
