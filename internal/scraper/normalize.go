package scraper

import (
	"snowreport/internal/models"
	"time"
)

// Normalize builds the response shape for one resort from extractor output.
func Normalize(resort models.Resort, name string, fields map[string]*Match, now time.Time) *models.ScrapeResult {
	if name == "" {
		name = resort.Name
	}
	result := &models.ScrapeResult{
		Estacion:  resort.Slug,
		Nombre:    name,
		Timestamp: models.FormatTimestamp(now),
	}
	if m := fields[FieldLifts]; m != nil {
		result.Remontes = &models.Count{Abiertos: m.Value, Total: m.Extra}
	}
	if m := fields[FieldDistance]; m != nil {
		result.Kilometros = &models.Count{Abiertos: m.Value, Total: m.Extra}
	}
	if m := fields[FieldSnow]; m != nil {
		result.Nieve = &models.SnowDepth{Altura: m.Value, Unidad: m.Extra}
	}
	return result
}
