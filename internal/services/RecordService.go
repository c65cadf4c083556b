package services

import (
	"context"
	"errors"
	"snowreport/internal/models"
	"snowreport/internal/providers"
	"snowreport/internal/storage"
	"strings"
	"time"
)

var ErrMissingSlug = errors.New("missing slug")

type RecordServiceInterface interface {
	Save(ctx context.Context, input *models.RecordInput) (*models.ResortRecord, error)
	Get(ctx context.Context, slug string) (*models.ResortRecord, error)
	List(ctx context.Context, slugs []string, limit int) ([]*models.ResortRecord, error)
}

type RecordService struct {
	store  storage.RecordStoreInterface
	logger providers.Logger
	now    func() time.Time
}

func NewRecordService(store storage.RecordStoreInterface, logger providers.Logger) *RecordService {
	return &RecordService{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Save normalizes a submitted record and appends it. Slugs are stored as
// given; the catalog only restricts what can be scraped.
func (rs *RecordService) Save(ctx context.Context, input *models.RecordInput) (*models.ResortRecord, error) {
	if strings.TrimSpace(input.Slug) == "" {
		return nil, ErrMissingSlug
	}
	rec, err := input.Record(rs.now())
	if err != nil {
		return nil, err
	}
	return rs.store.Insert(ctx, rec)
}

// Get returns nil when the slug has no stored records.
func (rs *RecordService) Get(ctx context.Context, slug string) (*models.ResortRecord, error) {
	return rs.store.LatestBySlug(ctx, slug)
}

// List returns the newest record of each requested slug, or the newest
// records overall when slugs is nil. An empty non-nil filter matches nothing.
func (rs *RecordService) List(ctx context.Context, slugs []string, limit int) ([]*models.ResortRecord, error) {
	if slugs != nil {
		return rs.store.LatestForSlugs(ctx, slugs)
	}
	if limit <= 0 {
		limit = storage.DefaultLimit
	}
	return rs.store.Latest(ctx, limit)
}

var _ RecordServiceInterface = (*RecordService)(nil)
