package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/onchainreach/creator-hub/internal/campaigns"
	"github.com/onchainreach/creator-hub/internal/models"
	"github.com/onchainreach/creator-hub/internal/tracking"
	"github.com/sirupsen/logrus"
)

const refreshTimeout = 30 * time.Minute

type campaignDetail struct {
	campaigns.Campaign
	Requirements models.RequirementSet `json:"requirements"`
}

type checkURLRequest struct {
	URL string `json:"url"`
}

type validateRequest struct {
	CampaignID      string                 `json:"campaignId"`
	ContentURL      string                 `json:"contentUrl"`
	ContentPlatform string                 `json:"contentPlatform"`
	Requirements    *models.RequirementSet `json:"requirements"`
}

type moderateRequest struct {
	Status   string `json:"status"`
	Feedback string `json:"feedback"`
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy","timestamp":"` + time.Now().Format(time.RFC3339) + `"}`))
}

func (s *Server) metricsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(s.tracker.GetMetrics()))
}

func (s *Server) triggerHandler(w http.ResponseWriter, r *http.Request) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()
		if err := s.tracker.RefreshMetrics(ctx); err != nil {
			logrus.Errorf("Manual metrics refresh failed: %v", err)
		}
	}()

	writeJSON(w, http.StatusOK, map[string]string{"message": "Metrics refresh triggered successfully"})
}

func (s *Server) listCampaigns(w http.ResponseWriter, r *http.Request) {
	results := s.catalog.Search(r.URL.Query().Get("q"))
	if status := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("status"))); status != "" {
		results = campaigns.ByStatus(results, status)
	}
	if results == nil {
		results = []campaigns.Campaign{}
	}
	writeJSON(w, http.StatusOK, results)
}

func (s *Server) getCampaign(w http.ResponseWriter, r *http.Request) {
	campaign, err := s.catalog.Get(mux.Vars(r)["id"])
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, campaignDetail{Campaign: campaign, Requirements: campaigns.RequirementsFor(campaign)})
}

func (s *Server) checkURL(w http.ResponseWriter, r *http.Request) {
	var req checkURLRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return
	}
	writeJSON(w, http.StatusOK, s.checker.CheckURLFormat(r.Context(), strings.TrimSpace(req.URL)))
}

func (s *Server) validate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	req.ContentURL = strings.TrimSpace(req.ContentURL)
	req.ContentPlatform = strings.ToLower(strings.TrimSpace(req.ContentPlatform))
	if req.ContentPlatform == "" {
		req.ContentPlatform = models.PlatformTwitter
	}
	if req.ContentURL == "" {
		writeError(w, http.StatusBadRequest, "contentUrl is required")
		return
	}

	var reqs models.RequirementSet
	switch {
	case strings.TrimSpace(req.CampaignID) != "":
		campaign, err := s.catalog.Get(req.CampaignID)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		reqs = campaigns.RequirementsFor(campaign)
	case req.Requirements != nil:
		reqs = *req.Requirements
	default:
		writeError(w, http.StatusBadRequest, "campaignId or requirements is required")
		return
	}

	writeJSON(w, http.StatusOK, s.checker.ValidateSubmission(r.Context(), req.ContentPlatform, req.ContentURL, reqs))
}

func (s *Server) listSubmissions(w http.ResponseWriter, r *http.Request) {
	subs, err := s.tracker.List(r.Context(), r.URL.Query().Get("campaignId"), r.URL.Query().Get("q"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, subs)
}

func (s *Server) getSubmission(w http.ResponseWriter, r *http.Request) {
	sub, err := s.tracker.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

func (s *Server) createSubmission(w http.ResponseWriter, r *http.Request) {
	var in tracking.SubmitInput
	if !decodeBody(w, r, &in) {
		return
	}

	sub, err := s.tracker.Submit(r.Context(), in)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, sub)
}

func (s *Server) moderateSubmission(w http.ResponseWriter, r *http.Request) {
	var req moderateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	sub, err := s.tracker.Moderate(r.Context(), mux.Vars(r)["id"], req.Status, req.Feedback)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

func (s *Server) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.tracker.Stats(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
