package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"snowreport/internal/models"
	"snowreport/internal/providers"
	"strings"
	"time"
)

const DefaultLimit = 50

const selectColumns = `SELECT id, slug, remontes_abiertos, remontes_totales, kilometros_abiertos, kilometros_totales, nieve, timestamp FROM estaciones`

type RecordStoreInterface interface {
	Insert(ctx context.Context, rec *models.ResortRecord) (*models.ResortRecord, error)
	Latest(ctx context.Context, limit int) ([]*models.ResortRecord, error)
	LatestBySlug(ctx context.Context, slug string) (*models.ResortRecord, error)
	LatestForSlugs(ctx context.Context, slugs []string) ([]*models.ResortRecord, error)
	Ping(ctx context.Context) error
}

type Store struct {
	db      *sql.DB
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func NewStore(db *sql.DB, logger providers.Logger, metrics providers.MetricsProviderInterface) RecordStoreInterface {
	return &Store{db: db, logger: logger, metrics: metrics}
}

func (s *Store) observe(op string, start time.Time) {
	s.metrics.ObserveStoreDuration(op, time.Since(start))
}

func (s *Store) Insert(ctx context.Context, rec *models.ResortRecord) (*models.ResortRecord, error) {
	defer s.observe("insert", time.Now())

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO estaciones (slug, remontes_abiertos, remontes_totales, kilometros_abiertos, kilometros_totales, nieve, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.Slug,
		nullable(rec.RemontesAbiertos),
		nullable(rec.RemontesTotales),
		nullable(rec.KilometrosAbiertos),
		nullable(rec.KilometrosTotales),
		nullable(rec.Nieve),
		rec.Timestamp,
	)
	if err != nil {
		s.logger.Errorf(providers.TypeStore, "Insert for %s failed: %s", rec.Slug, err)
		return nil, fmt.Errorf("inserting record: %w", err)
	}

	stored := *rec
	if id, err := res.LastInsertId(); err == nil {
		stored.ID = id
	}
	s.metrics.IncRecordsInserted(rec.Slug)
	s.logger.Debugf(providers.TypeStore, "Stored record %d for %s", stored.ID, rec.Slug)
	return &stored, nil
}

func (s *Store) Latest(ctx context.Context, limit int) ([]*models.ResortRecord, error) {
	defer s.observe("latest", time.Now())

	if limit <= 0 {
		limit = DefaultLimit
	}
	rows, err := s.db.QueryContext(ctx, selectColumns+` ORDER BY timestamp DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying latest records: %w", err)
	}
	return scanRecords(rows)
}

// LatestBySlug returns nil without an error when the slug has no rows.
func (s *Store) LatestBySlug(ctx context.Context, slug string) (*models.ResortRecord, error) {
	defer s.observe("latest_by_slug", time.Now())

	row := s.db.QueryRowContext(ctx, selectColumns+` WHERE slug = ? ORDER BY timestamp DESC, id DESC LIMIT 1`, slug)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying record for %s: %w", slug, err)
	}
	return rec, nil
}

// LatestForSlugs returns at most one record per slug, the newest, in
// descending timestamp order.
func (s *Store) LatestForSlugs(ctx context.Context, slugs []string) ([]*models.ResortRecord, error) {
	defer s.observe("latest_for_slugs", time.Now())

	if len(slugs) == 0 {
		return []*models.ResortRecord{}, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(slugs)), ",")
	args := make([]any, len(slugs))
	for i, slug := range slugs {
		args[i] = slug
	}

	rows, err := s.db.QueryContext(ctx, selectColumns+` WHERE slug IN (`+placeholders+`) ORDER BY timestamp DESC, id DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("querying records for %d slugs: %w", len(slugs), err)
	}
	all, err := scanRecords(rows)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(slugs))
	latest := make([]*models.ResortRecord, 0, len(slugs))
	for _, rec := range all {
		if _, ok := seen[rec.Slug]; ok {
			continue
		}
		seen[rec.Slug] = struct{}{}
		latest = append(latest, rec)
	}
	return latest, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*models.ResortRecord, error) {
	var (
		rec                                    models.ResortRecord
		liftsOpen, liftsTotal, kmOpen, kmTotal sql.NullString
		snow                                   sql.NullString
	)
	err := row.Scan(&rec.ID, &rec.Slug, &liftsOpen, &liftsTotal, &kmOpen, &kmTotal, &snow, &rec.Timestamp)
	if err != nil {
		return nil, err
	}
	rec.RemontesAbiertos = fromNull(liftsOpen)
	rec.RemontesTotales = fromNull(liftsTotal)
	rec.KilometrosAbiertos = fromNull(kmOpen)
	rec.KilometrosTotales = fromNull(kmTotal)
	rec.Nieve = fromNull(snow)
	return &rec, nil
}

func scanRecords(rows *sql.Rows) ([]*models.ResortRecord, error) {
	defer rows.Close()

	records := make([]*models.ResortRecord, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}
	return records, nil
}

func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNull(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
