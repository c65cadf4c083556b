package controllers

import (
	"errors"
	"net/http"
	"snowreport/internal/models"
	"snowreport/internal/providers"
	"snowreport/internal/services"
	"snowreport/internal/storage"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

const (
	msgSlugMissing     = "Slug no proporcionado"
	msgStationNotFound = "Estación no encontrada"
	msgGetFailed       = "Error al obtener la estación"
	msgListFailed      = "Error al obtener estaciones"
	msgSaveFailed      = "Error al guardar la estación"
	msgSlugRequired    = "Falta campo requerido: slug"
	msgInvalidBody     = "Cuerpo JSON inválido"
	msgInvalidTime     = "timestamp inválido"
)

// StationController serves stored resort records.
type StationController struct {
	logger  providers.Logger
	service services.RecordServiceInterface
}

func NewStationController(logger providers.Logger, service services.RecordServiceInterface) *StationController {
	return &StationController{
		logger:  logger,
		service: service,
	}
}

func (sc *StationController) GetStored(w http.ResponseWriter, r *http.Request) {
	slug := strings.TrimSpace(r.PathValue("slug"))
	if slug == "" {
		writeError(w, http.StatusBadRequest, errorBody{Error: msgSlugMissing})
		return
	}

	rec, err := sc.service.Get(r.Context(), slug)
	if err != nil {
		sc.logger.Errorf(providers.GetLogTypeByRequestType(r.Method), "Loading %s failed: %s", slug, err)
		writeError(w, http.StatusInternalServerError, errorBody{Error: msgGetFailed, Details: err.Error()})
		return
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, errorBody{Error: msgStationNotFound, Slug: slug})
		return
	}

	writeJSON(w, http.StatusOK, dataBody{Success: true, Data: rec})
}

// ListStored returns the newest record per slug whenever ?slugs= is present,
// even if it names no slug, otherwise the newest ?limit=N records overall.
func (sc *StationController) ListStored(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	var slugs []string
	if query.Has("slugs") {
		slugs = parseSlugs(query.Get("slugs"))
	}
	limit := parseLimit(query.Get("limit"))

	recs, err := sc.service.List(r.Context(), slugs, limit)
	if err != nil {
		sc.logger.Errorf(providers.GetLogTypeByRequestType(r.Method), "Listing records failed: %s", err)
		writeError(w, http.StatusInternalServerError, errorBody{Error: msgListFailed, Details: err.Error()})
		return
	}

	total := len(recs)
	writeJSON(w, http.StatusOK, dataBody{Success: true, Data: recs, Total: &total})
}

func (sc *StationController) Save(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

	var input models.RecordInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		sc.logger.Debugf(providers.GetLogTypeByRequestType(r.Method), "Rejected body: %s", err)
		writeError(w, http.StatusBadRequest, errorBody{Error: msgInvalidBody, Details: err.Error()})
		return
	}

	rec, err := sc.service.Save(r.Context(), &input)
	if errors.Is(err, services.ErrMissingSlug) {
		writeError(w, http.StatusBadRequest, errorBody{Error: msgSlugRequired})
		return
	}
	if errors.Is(err, models.ErrInvalidTimestamp) {
		writeError(w, http.StatusBadRequest, errorBody{Error: msgInvalidTime, Details: err.Error()})
		return
	}
	if err != nil {
		sc.logger.Errorf(providers.GetLogTypeByRequestType(r.Method), "Saving %s failed: %s", input.Slug, err)
		writeError(w, http.StatusInternalServerError, errorBody{Error: msgSaveFailed, Details: err.Error()})
		return
	}

	writeJSON(w, http.StatusCreated, dataBody{Success: true, Data: rec})
}

func parseSlugs(raw string) []string {
	slugs := []string{}
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			slugs = append(slugs, s)
		}
	}
	return slugs
}

// parseLimit falls back to the default page size for anything that is not a
// positive integer.
func parseLimit(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return storage.DefaultLimit
	}
	return n
}
