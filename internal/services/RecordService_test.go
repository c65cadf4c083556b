package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"snowreport/internal/models"
	"snowreport/internal/storage"
	"snowreport/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecordService(store *fakeStore) *RecordService {
	rs := NewRecordService(store, &testutil.MockLogger{})
	rs.now = func() time.Time { return fixedNow }
	return rs
}

func TestRecordService_Save(t *testing.T) {
	store := &fakeStore{}
	rs := newRecordService(store)

	rec, err := rs.Save(context.Background(), &models.RecordInput{
		Slug:       "candanchu",
		Remontes:   "12/20",
		Kilometros: "30 / 50",
		Nieve:      "80 cm",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), rec.ID)
	assert.Equal(t, "12", *rec.RemontesAbiertos)
	assert.Equal(t, "20", *rec.RemontesTotales)
	assert.Equal(t, "30", *rec.KilometrosAbiertos)
	assert.Equal(t, "50", *rec.KilometrosTotales)
	assert.Equal(t, "80 cm", *rec.Nieve)
	assert.Equal(t, "2026-01-10T08:30:00.000Z", rec.Timestamp)
}

func TestRecordService_SaveKeepsTimestamp(t *testing.T) {
	rs := newRecordService(&fakeStore{})

	rec, err := rs.Save(context.Background(), &models.RecordInput{Slug: "x", Timestamp: "2025-12-01T00:00:00.000Z"})
	require.NoError(t, err)
	assert.Equal(t, "2025-12-01T00:00:00.000Z", rec.Timestamp)
	assert.Nil(t, rec.RemontesAbiertos)
	assert.Nil(t, rec.Nieve)
}

func TestRecordService_SaveNormalizesTimestamp(t *testing.T) {
	rs := newRecordService(&fakeStore{})

	rec, err := rs.Save(context.Background(), &models.RecordInput{Slug: "x", Timestamp: "2025-12-01T01:00:00+01:00"})
	require.NoError(t, err)
	assert.Equal(t, "2025-12-01T00:00:00.000Z", rec.Timestamp)
}

func TestRecordService_SaveInvalidTimestamp(t *testing.T) {
	store := &fakeStore{}
	rs := newRecordService(store)

	_, err := rs.Save(context.Background(), &models.RecordInput{Slug: "x", Timestamp: "yesterday"})
	assert.ErrorIs(t, err, models.ErrInvalidTimestamp)
	assert.Empty(t, store.records)
}

func TestRecordService_SaveMissingSlug(t *testing.T) {
	store := &fakeStore{}
	rs := newRecordService(store)

	_, err := rs.Save(context.Background(), &models.RecordInput{Slug: "  "})
	assert.ErrorIs(t, err, ErrMissingSlug)
	assert.Empty(t, store.records)
}

func TestRecordService_Get(t *testing.T) {
	store := &fakeStore{}
	rs := newRecordService(store)
	_, err := rs.Save(context.Background(), &models.RecordInput{Slug: "candanchu", Remontes: "1/2"})
	require.NoError(t, err)

	rec, err := rs.Get(context.Background(), "candanchu")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "candanchu", rec.Slug)

	missing, err := rs.Get(context.Background(), "nope")
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRecordService_ListBySlugs(t *testing.T) {
	store := &fakeStore{}
	rs := newRecordService(store)
	for _, slug := range []string{"a", "b", "c"} {
		_, err := rs.Save(context.Background(), &models.RecordInput{Slug: slug})
		require.NoError(t, err)
	}

	recs, err := rs.List(context.Background(), []string{"a", "c"}, 0)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "a", recs[0].Slug)
	assert.Equal(t, "c", recs[1].Slug)
}

func TestRecordService_ListEmptyFilter(t *testing.T) {
	store := &fakeStore{}
	rs := newRecordService(store)
	_, err := rs.Save(context.Background(), &models.RecordInput{Slug: "a"})
	require.NoError(t, err)

	recs, err := rs.List(context.Background(), []string{}, 0)
	require.NoError(t, err)
	assert.Empty(t, recs)
	assert.True(t, store.bySlugs)
	assert.Zero(t, store.lastLimit)
}

func TestRecordService_ListDefaultLimit(t *testing.T) {
	store := &fakeStore{}
	rs := newRecordService(store)

	_, err := rs.List(context.Background(), nil, 0)
	require.NoError(t, err)
	assert.Equal(t, storage.DefaultLimit, store.lastLimit)

	_, err = rs.List(context.Background(), nil, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, store.lastLimit)
}

func TestRecordService_ListError(t *testing.T) {
	rs := newRecordService(&fakeStore{queryErr: errors.New("offline")})

	_, err := rs.List(context.Background(), nil, 10)
	assert.EqualError(t, err, "offline")
}
