package controllers

import (
	"errors"
	"net/http"
	"snowreport/internal/models"
	"snowreport/internal/providers"
	"snowreport/internal/services"
	"strings"
)

const (
	msgStationRequired    = "Parámetro estacion requerido"
	msgStationUnsupported = "Estación no soportada"
	msgScrapeFailed       = "Error al obtener información de pistas"
)

type ScrapeController struct {
	logger  providers.Logger
	service services.ScrapeServiceInterface
}

func NewScrapeController(logger providers.Logger, service services.ScrapeServiceInterface) *ScrapeController {
	return &ScrapeController{
		logger:  logger,
		service: service,
	}
}

// GetSlopes serves /api/pistas?estacion=<slug>.
func (sc *ScrapeController) GetSlopes(w http.ResponseWriter, r *http.Request) {
	sc.scrape(w, r, r.URL.Query().Get("estacion"))
}

// GetStation serves /estacion/{slug}.
func (sc *ScrapeController) GetStation(w http.ResponseWriter, r *http.Request) {
	sc.scrape(w, r, r.PathValue("slug"))
}

func (sc *ScrapeController) scrape(w http.ResponseWriter, r *http.Request, slug string) {
	if strings.TrimSpace(slug) == "" {
		writeError(w, http.StatusBadRequest, errorBody{Error: msgStationRequired})
		return
	}

	res, err := sc.service.Scrape(r.Context(), slug)
	if errors.Is(err, models.ErrUnknownResort) {
		sc.logger.Debugf(providers.GetLogTypeByRequestType(r.Method), "Unsupported station requested: %q", slug)
		writeError(w, http.StatusBadRequest, errorBody{Error: msgStationUnsupported})
		return
	}
	if err != nil {
		sc.logger.Errorf(providers.GetLogTypeByRequestType(r.Method), "Scrape for %s failed: %s", slug, err)
		writeError(w, http.StatusInternalServerError, errorBody{Error: msgScrapeFailed, Message: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// GetStations serves /estaciones: every resort scraped live.
func (sc *ScrapeController) GetStations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sc.service.ScrapeAll(r.Context()))
}

// ScrapeAndSave serves POST /api/scrape-and-save?estacion=<slug>.
func (sc *ScrapeController) ScrapeAndSave(w http.ResponseWriter, r *http.Request) {
	slug := r.URL.Query().Get("estacion")
	if strings.TrimSpace(slug) == "" {
		writeError(w, http.StatusBadRequest, errorBody{Error: msgStationRequired})
		return
	}

	rec, err := sc.service.ScrapeAndSave(r.Context(), slug)
	if errors.Is(err, models.ErrUnknownResort) {
		writeError(w, http.StatusBadRequest, errorBody{Error: msgStationUnsupported})
		return
	}
	if err != nil {
		sc.logger.Errorf(providers.GetLogTypeByRequestType(r.Method), "Scrape and save for %s failed: %s", slug, err)
		writeJSON(w, http.StatusInternalServerError, failureBody{Success: false, Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusCreated, dataBody{Success: true, Data: rec})
}
