// Package scheduler implements background retention jobs
package scheduler

import (
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/khudaiyar/aerora/config"
	"github.com/khudaiyar/aerora/service"
)

// Scheduler periodically prunes persisted weather observations that have
// aged past the configured retention window.
type Scheduler struct {
	scheduler   *gocron.Scheduler
	weatherRepo service.WeatherRepositoryInterface
	config      config.SchedulerConfig
}

// NewScheduler creates and configures the retention scheduler
func NewScheduler(weatherRepo service.WeatherRepositoryInterface, cfg config.SchedulerConfig) *Scheduler {
	return &Scheduler{
		scheduler:   gocron.NewScheduler(time.UTC),
		weatherRepo: weatherRepo,
		config:      cfg,
	}
}

// Start schedules the retention job and starts the underlying scheduler
func (s *Scheduler) Start() error {
	minutes := int(s.config.CleanupInterval().Minutes())
	if minutes <= 0 {
		minutes = 1440
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(s.pruneObservations)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	slog.Info("retention scheduler started", "interval_minutes", minutes, "retention_days", s.config.RetentionDays)
	return nil
}

// Stop stops the scheduler and cancels any future jobs
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

func (s *Scheduler) pruneObservations() {
	cutoff := time.Now().Add(-s.config.Retention())

	rows, err := s.weatherRepo.DeleteOlderThan(cutoff)
	if err != nil {
		slog.Error("prune weather observations", "error", err)
		return
	}

	slog.Info("pruned weather observations", "rows", rows, "cutoff", cutoff)
}
