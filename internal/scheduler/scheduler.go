package scheduler

import (
	"context"
	"snowreport/internal/models"
	"snowreport/internal/providers"
	"snowreport/internal/services"
	"snowreport/internal/structures"
	"sync"

	"github.com/roylee0704/gron"
	"go.uber.org/atomic"
)

type SchedulerInterface interface {
	Init()
	Stop()
	RunOnce(ctx context.Context) int
}

// Scheduler periodically scrapes every catalog resort and stores the result.
type Scheduler struct {
	config  *structures.Config
	logger  providers.Logger
	service services.ScrapeServiceInterface
	cron    *gron.Cron
	running atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc
	opsMu   sync.Mutex
}

func (s *Scheduler) Init() {
	if !s.config.Scheduler.Enabled {
		s.logger.Infof(providers.TypeApp, "Scheduler disabled")
		return
	}

	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.cron = gron.New()
	interval := s.config.Scheduler.Interval

	s.cron.AddFunc(gron.Every(interval), func() {
		// a slow run keeps going; the overlapping tick is dropped
		if !s.running.CompareAndSwap(false, true) {
			s.logger.Warnf(providers.TypeApp, "Previous scrape run still in progress, skipping")
			return
		}
		defer s.running.Store(false)

		s.RunOnce(s.ctx)
	})

	s.cron.Start()
	s.logger.Infof(providers.TypeApp, "Scheduler started, scraping every %s", interval)
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
	if s.cancel != nil {
		s.cancel()
	}
}

// RunOnce scrapes and saves each resort in turn and returns how many were
// stored. A failing resort is logged and skipped.
func (s *Scheduler) RunOnce(ctx context.Context) int {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.logger.Infof(providers.TypeApp, "Scraping %d resorts...", len(models.Resorts))
	saved := 0
	for _, resort := range models.Resorts {
		if ctx.Err() != nil {
			break
		}
		rec, err := s.service.ScrapeAndSave(ctx, resort.Slug)
		if err != nil {
			s.logger.Errorf(providers.TypeApp, "Scheduled scrape of %s failed: %s", resort.Slug, err)
			continue
		}
		s.logger.Debugf(providers.TypeApp, "Scheduled scrape of %s stored as %d", resort.Slug, rec.ID)
		saved++
	}
	s.logger.Infof(providers.TypeApp, "Scheduled run stored %d/%d resorts", saved, len(models.Resorts))
	return saved
}

func NewScheduler(config *structures.Config, logger providers.Logger, service services.ScrapeServiceInterface) SchedulerInterface {
	return &Scheduler{
		config:  config,
		logger:  logger,
		service: service,
	}
}
