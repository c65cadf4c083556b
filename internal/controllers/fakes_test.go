package controllers

import (
	"context"
	"errors"
	"sync"

	"snowreport/internal/models"
	"snowreport/internal/services"
)

type fakeScrapeService struct {
	mu      sync.Mutex
	result  *models.ScrapeResult
	list    *models.StationList
	record  *models.ResortRecord
	err     error
	scraped []string
}

func (f *fakeScrapeService) Scrape(_ context.Context, slug string) (*models.ScrapeResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := models.LookupResort(slug); err != nil {
		return nil, err
	}
	f.scraped = append(f.scraped, slug)
	return f.result, f.err
}

func (f *fakeScrapeService) ScrapeAll(context.Context) *models.StationList {
	return f.list
}

func (f *fakeScrapeService) ScrapeAndSave(_ context.Context, slug string) (*models.ResortRecord, error) {
	if _, err := models.LookupResort(slug); err != nil {
		return nil, err
	}
	return f.record, f.err
}

type fakeRecordService struct {
	records   []*models.ResortRecord
	err       error
	lastSlugs []string
	lastLimit int
	saved     *models.RecordInput
}

func (f *fakeRecordService) Save(_ context.Context, input *models.RecordInput) (*models.ResortRecord, error) {
	if input.Slug == "" {
		return nil, services.ErrMissingSlug
	}
	if f.err != nil {
		return nil, f.err
	}
	f.saved = input
	rec, err := input.Record(fixedTime)
	if err != nil {
		return nil, err
	}
	rec.ID = 7
	return rec, nil
}

func (f *fakeRecordService) Get(_ context.Context, slug string) (*models.ResortRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, rec := range f.records {
		if rec.Slug == slug {
			return rec, nil
		}
	}
	return nil, nil
}

func (f *fakeRecordService) List(_ context.Context, slugs []string, limit int) ([]*models.ResortRecord, error) {
	f.lastSlugs = slugs
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

type fakePinger struct {
	err error
}

func (p *fakePinger) Insert(context.Context, *models.ResortRecord) (*models.ResortRecord, error) {
	return nil, errors.New("not used")
}
func (p *fakePinger) Latest(context.Context, int) ([]*models.ResortRecord, error) { return nil, nil }
func (p *fakePinger) LatestBySlug(context.Context, string) (*models.ResortRecord, error) {
	return nil, nil
}
func (p *fakePinger) LatestForSlugs(context.Context, []string) ([]*models.ResortRecord, error) {
	return nil, nil
}
func (p *fakePinger) Ping(context.Context) error { return p.err }
