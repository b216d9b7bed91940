package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/onchainreach/creator-hub/internal/config"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const (
	refreshTimeout = 30 * time.Minute
	reportTimeout  = 5 * time.Minute
)

// Tracker is the work the scheduler triggers
type Tracker interface {
	RefreshMetrics(ctx context.Context) error
	RunReport(ctx context.Context) error
}

// Service handles scheduling of tracking tasks
type Service struct {
	config  *config.Config
	tracker Tracker
	cron    *cron.Cron
}

// NewService creates a new scheduler service
func NewService(cfg *config.Config, tracker Tracker) (*Service, error) {
	location, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.TimeZone, err)
	}

	return &Service{
		config:  cfg,
		tracker: tracker,
		cron:    cron.New(cron.WithSeconds(), cron.WithLocation(location)),
	}, nil
}

// RefreshExpression returns the cron expression of the metrics refresh
func RefreshExpression(schedule string) string {
	if schedule == "daily" {
		// Daily at 6 AM
		return "0 0 6 * * *"
	}
	// Top of every hour
	return "0 0 * * * *"
}

// ReportExpression returns the cron expression of the submissions report
func ReportExpression(schedule string) string {
	if schedule == "daily" {
		// Daily at 9 AM
		return "0 0 9 * * *"
	}
	// Weekly on Monday at 9 AM
	return "0 0 9 * * MON"
}

// Start begins the scheduled tasks
func (s *Service) Start() error {
	_, err := s.cron.AddFunc(RefreshExpression(s.config.RefreshSchedule), s.runRefresh)
	if err != nil {
		return err
	}

	_, err = s.cron.AddFunc(ReportExpression(s.config.ReportSchedule), s.runReport)
	if err != nil {
		return err
	}

	s.cron.Start()
	logrus.Infof("Scheduler started with %s metrics refresh and %s report (%s)",
		s.config.RefreshSchedule, s.config.ReportSchedule, s.config.TimeZone)
	return nil
}

func (s *Service) runRefresh() {
	logrus.Info("Starting scheduled metrics refresh")
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	if err := s.tracker.RefreshMetrics(ctx); err != nil {
		logrus.Errorf("Scheduled metrics refresh failed: %v", err)
	}
}

func (s *Service) runReport() {
	logrus.Info("Starting scheduled report")
	ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
	defer cancel()

	if err := s.tracker.RunReport(ctx); err != nil {
		logrus.Errorf("Scheduled report failed: %v", err)
	}
}

// Entries returns the number of registered jobs
func (s *Service) Entries() int {
	return len(s.cron.Entries())
}

// Stop stops the scheduler and waits for running jobs
func (s *Service) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
		logrus.Info("Scheduler stopped")
	}
}
