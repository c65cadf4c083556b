package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"snowreport/internal/models"
	"snowreport/internal/scraper"
	"snowreport/internal/structures"
)

const resortPage = `<html><head><title>Infonieve</title></head><body>
<h1>Candanchú</h1>
<p>Remontes<br><strong class="verde">12</strong><em>/20</em></p>
<p>Kilómetros<br><strong class="verde">35,5</strong><em>/50,6</em></p>
<p>Nieve<br><strong class="azul">80-120</strong><em>cm</em></p>
</body></html>`

func serviceConfig() *structures.Config {
	return &structures.Config{
		Scraper: structures.ScraperConfig{SourceBaseURL: "https://snow.test/estacion-esqui"},
	}
}

var fixedNow = time.Date(2026, 1, 10, 8, 30, 0, 0, time.UTC)

// fakeFetcher serves pages by URL substring and fails everything else.
type fakeFetcher struct {
	mu    sync.Mutex
	pages map[string]string
	fail  map[string]error
	calls []string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (*scraper.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, url)
	for key, err := range f.fail {
		if strings.Contains(url, key) {
			return nil, &scraper.FetchError{URL: url, Attempts: 3, Err: err}
		}
	}
	for key, body := range f.pages {
		if strings.Contains(url, key) {
			return &scraper.Page{URL: url, Body: body, Attempts: 1}, nil
		}
	}
	return nil, &scraper.FetchError{URL: url, Attempts: 1, Err: &scraper.StatusError{Code: 404, URL: url}}
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeStore struct {
	mu        sync.Mutex
	records   []*models.ResortRecord
	insertErr error
	queryErr  error
	lastLimit int
	bySlugs   bool
}

func (s *fakeStore) Insert(_ context.Context, rec *models.ResortRecord) (*models.ResortRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.insertErr != nil {
		return nil, s.insertErr
	}
	stored := *rec
	stored.ID = int64(len(s.records) + 1)
	s.records = append(s.records, &stored)
	return &stored, nil
}

func (s *fakeStore) Latest(_ context.Context, limit int) ([]*models.ResortRecord, error) {
	s.lastLimit = limit
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	if limit > len(s.records) {
		limit = len(s.records)
	}
	return s.records[:limit], nil
}

func (s *fakeStore) LatestBySlug(_ context.Context, slug string) (*models.ResortRecord, error) {
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	for i := len(s.records) - 1; i >= 0; i-- {
		if s.records[i].Slug == slug {
			return s.records[i], nil
		}
	}
	return nil, nil
}

func (s *fakeStore) LatestForSlugs(_ context.Context, slugs []string) ([]*models.ResortRecord, error) {
	s.bySlugs = true
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	out := []*models.ResortRecord{}
	for _, slug := range slugs {
		rec, _ := s.LatestBySlug(context.Background(), slug)
		if rec != nil {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (s *fakeStore) Ping(context.Context) error { return s.queryErr }

type fakeArchive struct {
	mu    sync.Mutex
	saved []string
	err   error
}

func (a *fakeArchive) Save(slug string, _ []byte, _ time.Time) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.err != nil {
		return "", a.err
	}
	a.saved = append(a.saved, slug)
	return slug, nil
}

func (a *fakeArchive) Load(string) ([]byte, error) { return nil, errors.New("not stored") }
func (a *fakeArchive) Close()                      {}
