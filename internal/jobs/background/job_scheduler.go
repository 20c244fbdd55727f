package background

import (
	"context"
	"log"
	"time"

	"dinepos/internal/services"
	"dinepos/internal/session"

	"github.com/go-co-op/gocron/v2"
)

// JobScheduler manages the service's periodic housekeeping
type JobScheduler struct {
	scheduler  gocron.Scheduler
	catalogSvc services.CatalogService
	sessions   *session.Manager
}

// NewJobScheduler creates a new job scheduler
func NewJobScheduler(catalogSvc services.CatalogService, sessions *session.Manager) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler:  scheduler,
		catalogSvc: catalogSvc,
		sessions:   sessions,
	}

	if err := js.registerJobs(); err != nil {
		return nil, err
	}
	return js, nil
}

// Start starts the job scheduler
func (js *JobScheduler) Start() {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
}

// Stop stops the job scheduler
func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() error {
	// Keep the menu cache warm so the ordering screen mostly hits Redis.
	_, err := js.scheduler.NewJob(
		gocron.DurationJob(5*time.Minute),
		gocron.NewTask(js.refreshMenuCache),
		gocron.WithName("menu-cache-refresh"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}

	_, err = js.scheduler.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(js.purgeSessions),
		gocron.WithName("session-purge"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	return err
}

func (js *JobScheduler) refreshMenuCache() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := js.catalogSvc.RefreshMenuCache(ctx); err != nil {
		log.Printf("menu cache refresh failed: %v", err)
	}
}

func (js *JobScheduler) purgeSessions() {
	if purged := js.sessions.PurgeExpired(); purged > 0 {
		log.Printf("purged %d expired sessions", purged)
	}
}
