package controllers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"snowreport/internal/models"
	"snowreport/internal/testutil"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2026, 1, 10, 8, 30, 0, 0, time.UTC)

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func TestGetSlopes_MissingStation(t *testing.T) {
	svc := &fakeScrapeService{}
	sc := NewScrapeController(&testutil.MockLogger{}, svc)

	rr := httptest.NewRecorder()
	sc.GetSlopes(rr, httptest.NewRequest(http.MethodGet, "/api/pistas", nil))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error":"Parámetro estacion requerido"}`, rr.Body.String())
	assert.Empty(t, svc.scraped)
}

func TestGetSlopes_UnsupportedStation(t *testing.T) {
	svc := &fakeScrapeService{}
	sc := NewScrapeController(&testutil.MockLogger{}, svc)

	rr := httptest.NewRecorder()
	sc.GetSlopes(rr, httptest.NewRequest(http.MethodGet, "/api/pistas?estacion=baqueira", nil))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error":"Estación no soportada"}`, rr.Body.String())
	assert.Empty(t, svc.scraped)
}

func TestGetSlopes_Success(t *testing.T) {
	svc := &fakeScrapeService{result: &models.ScrapeResult{
		Estacion:  "candanchu",
		Nombre:    "Candanchú",
		Timestamp: "2026-01-10T08:30:00.000Z",
		Remontes:  &models.Count{Abiertos: "12", Total: "20"},
	}}
	sc := NewScrapeController(&testutil.MockLogger{}, svc)

	rr := httptest.NewRecorder()
	sc.GetSlopes(rr, httptest.NewRequest(http.MethodGet, "/api/pistas?estacion=CANDANCHU", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{
		"estacion":"candanchu","nombre":"Candanchú","timestamp":"2026-01-10T08:30:00.000Z",
		"remontes":{"abiertos":"12","total":"20"},"kilometros":null,"nieve":null
	}`, rr.Body.String())
}

func TestGetSlopes_ScrapeFailure(t *testing.T) {
	svc := &fakeScrapeService{err: errors.New("HTTP 503")}
	logger := &testutil.MockLogger{}
	sc := NewScrapeController(logger, svc)

	rr := httptest.NewRecorder()
	sc.GetSlopes(rr, httptest.NewRequest(http.MethodGet, "/api/pistas?estacion=candanchu", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"Error al obtener información de pistas","message":"HTTP 503"}`, rr.Body.String())
	assert.Equal(t, 1, logger.Count("error"))
}

func TestGetStation_PathValue(t *testing.T) {
	svc := &fakeScrapeService{result: &models.ScrapeResult{Estacion: "boi-taull"}}
	sc := NewScrapeController(&testutil.MockLogger{}, svc)

	mux := http.NewServeMux()
	mux.HandleFunc("/estacion/{slug}", sc.GetStation)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/estacion/boi-taull", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "boi-taull", decode(t, rr)["estacion"])
	assert.Equal(t, []string{"boi-taull"}, svc.scraped)
}

func TestGetStations(t *testing.T) {
	remontes := "3/10"
	svc := &fakeScrapeService{list: &models.StationList{
		Estaciones: []*models.StationStatus{
			{Slug: "candanchu", Remontes: &remontes, Estado: models.StateSuccess},
			{Slug: "boi-taull", Estado: models.StateError, Error: "timeout"},
		},
		Total:               2,
		UltimaActualizacion: "2026-01-10T08:30:00.000Z",
	}}
	sc := NewScrapeController(&testutil.MockLogger{}, svc)

	rr := httptest.NewRecorder()
	sc.GetStations(rr, httptest.NewRequest(http.MethodGet, "/estaciones", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	body := decode(t, rr)
	assert.Equal(t, float64(2), body["total"])
	assert.Len(t, body["estaciones"], 2)
}

func TestScrapeAndSave_Success(t *testing.T) {
	svc := &fakeScrapeService{record: &models.ResortRecord{ID: 3, Slug: "candanchu", Timestamp: "t"}}
	sc := NewScrapeController(&testutil.MockLogger{}, svc)

	rr := httptest.NewRecorder()
	sc.ScrapeAndSave(rr, httptest.NewRequest(http.MethodPost, "/api/scrape-and-save?estacion=candanchu", nil))

	assert.Equal(t, http.StatusCreated, rr.Code)
	body := decode(t, rr)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(3), body["data"].(map[string]any)["id"])
}

func TestScrapeAndSave_Errors(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		err    error
		status int
		body   string
	}{
		{"missing", "/api/scrape-and-save", nil, http.StatusBadRequest, `{"error":"Parámetro estacion requerido"}`},
		{"unsupported", "/api/scrape-and-save?estacion=x", nil, http.StatusBadRequest, `{"error":"Estación no soportada"}`},
		{"failure", "/api/scrape-and-save?estacion=candanchu", errors.New("boom"), http.StatusInternalServerError, `{"success":false,"error":"boom"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := NewScrapeController(&testutil.MockLogger{}, &fakeScrapeService{err: tt.err})

			rr := httptest.NewRecorder()
			sc.ScrapeAndSave(rr, httptest.NewRequest(http.MethodPost, tt.url, nil))

			assert.Equal(t, tt.status, rr.Code)
			assert.JSONEq(t, tt.body, rr.Body.String())
		})
	}
}
