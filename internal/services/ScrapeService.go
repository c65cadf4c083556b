package services

import (
	"context"
	"errors"
	"fmt"
	"snowreport/internal/archive"
	"snowreport/internal/models"
	"snowreport/internal/providers"
	"snowreport/internal/scraper"
	"snowreport/internal/storage"
	"snowreport/internal/structures"
	"time"

	json "github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"
)

type ScrapeServiceInterface interface {
	Scrape(ctx context.Context, slug string) (*models.ScrapeResult, error)
	ScrapeAll(ctx context.Context) *models.StationList
	ScrapeAndSave(ctx context.Context, slug string) (*models.ResortRecord, error)
}

type ScrapeService struct {
	config    *structures.Config
	fetcher   scraper.FetcherInterface
	extractor *scraper.Extractor
	archive   archive.PageArchiveInterface
	store     storage.RecordStoreInterface
	cache     providers.CacheProviderInterface
	logger    providers.Logger
	metrics   providers.MetricsProviderInterface
	now       func() time.Time
}

func NewScrapeService(
	config *structures.Config,
	fetcher scraper.FetcherInterface,
	pages archive.PageArchiveInterface,
	store storage.RecordStoreInterface,
	cache providers.CacheProviderInterface,
	logger providers.Logger,
	metrics providers.MetricsProviderInterface,
) *ScrapeService {
	return &ScrapeService{
		config:    config,
		fetcher:   fetcher,
		extractor: scraper.NewDefaultExtractor(),
		archive:   pages,
		store:     store,
		cache:     cache,
		logger:    logger,
		metrics:   metrics,
		now:       time.Now,
	}
}

func cacheKey(slug string) string {
	return "scrape:" + slug
}

// Scrape returns the current status of one resort. Unknown slugs fail with
// models.ErrUnknownResort before any request is sent. Fresh results are kept
// in the response cache.
func (s *ScrapeService) Scrape(ctx context.Context, slug string) (*models.ScrapeResult, error) {
	resort, err := models.LookupResort(slug)
	if err != nil {
		return nil, err
	}

	if cached, ok := s.cache.Get(cacheKey(resort.Slug)); ok {
		var res models.ScrapeResult
		if err := json.Unmarshal(cached, &res); err == nil {
			return &res, nil
		}
		s.logger.Warnf(providers.TypeScrape, "Dropping unreadable cache entry for %s", resort.Slug)
	}

	return s.scrape(ctx, resort)
}

func (s *ScrapeService) scrape(ctx context.Context, resort models.Resort) (*models.ScrapeResult, error) {
	url := resort.SourceURL(s.config.Scraper.SourceBaseURL)

	start := time.Now()
	page, err := s.fetcher.Fetch(ctx, url)
	s.metrics.ObserveFetchDuration(resort.Slug, time.Since(start))
	s.countAttempts(resort.Slug, page, err)
	if err != nil {
		s.metrics.IncScrapeFailures(resort.Slug)
		s.logger.Errorf(providers.TypeScrape, "Scrape of %s failed: %s", resort.Slug, err)
		return nil, err
	}

	now := s.now()
	if _, err := s.archive.Save(resort.Slug, []byte(page.Body), now); err != nil {
		s.logger.Warnf(providers.TypeScrape, "Could not archive page for %s: %s", resort.Slug, err)
	}

	fields := s.extractor.Extract(page.Body)
	for name, m := range fields {
		if m == nil {
			s.logger.Warnf(providers.TypeScrape, "Field %s not found on %s", name, url)
		}
	}
	res := scraper.Normalize(resort, s.extractor.ExtractName(page.Body), fields, now)

	if data, err := json.Marshal(res); err == nil {
		s.cache.Set(cacheKey(resort.Slug), data)
	}
	s.logger.Debugf(providers.TypeScrape, "Scraped %s in %d attempt(s)", resort.Slug, page.Attempts)
	return res, nil
}

func (s *ScrapeService) countAttempts(slug string, page *scraper.Page, err error) {
	attempts := 1
	var fe *scraper.FetchError
	switch {
	case page != nil:
		attempts = page.Attempts
	case errors.As(err, &fe):
		attempts = fe.Attempts
	}
	for range attempts {
		s.metrics.IncScrapeAttempts(slug)
	}
}

// ScrapeAll scrapes every catalog resort concurrently. A failing resort is
// reported inline and never fails the listing.
func (s *ScrapeService) ScrapeAll(ctx context.Context) *models.StationList {
	statuses := make([]*models.StationStatus, len(models.Resorts))

	var g errgroup.Group
	for i, resort := range models.Resorts {
		g.Go(func() error {
			res, err := s.Scrape(ctx, resort.Slug)
			if err != nil {
				statuses[i] = models.NewFailedStationStatus(resort, models.FormatTimestamp(s.now()), err)
				return nil
			}
			statuses[i] = models.NewStationStatus(res)
			return nil
		})
	}
	_ = g.Wait()

	return &models.StationList{
		Estaciones:          statuses,
		Total:               len(statuses),
		UltimaActualizacion: models.FormatTimestamp(s.now()),
	}
}

// ScrapeAndSave always fetches a fresh page and appends it to the history.
func (s *ScrapeService) ScrapeAndSave(ctx context.Context, slug string) (*models.ResortRecord, error) {
	resort, err := models.LookupResort(slug)
	if err != nil {
		return nil, err
	}
	res, err := s.scrape(ctx, resort)
	if err != nil {
		return nil, err
	}
	stored, err := s.store.Insert(ctx, res.Record())
	if err != nil {
		return nil, fmt.Errorf("saving %s: %w", resort.Slug, err)
	}
	s.logger.Infof(providers.TypeStore, "Saved scrape of %s as record %d", resort.Slug, stored.ID)
	return stored, nil
}

var _ ScrapeServiceInterface = (*ScrapeService)(nil)
