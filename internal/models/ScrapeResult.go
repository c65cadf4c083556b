package models

import "strings"

type Count struct {
	Abiertos string `json:"abiertos"`
	Total    string `json:"total"`
}

type SnowDepth struct {
	Altura string `json:"altura"`
	Unidad string `json:"unidad"`
}

// ScrapeResult is the response shape of a live scrape. Fields whose pattern
// did not match the page are nil and encode as JSON null.
type ScrapeResult struct {
	Estacion   string     `json:"estacion"`
	Nombre     string     `json:"nombre,omitempty"`
	Timestamp  string     `json:"timestamp"`
	Remontes   *Count     `json:"remontes"`
	Kilometros *Count     `json:"kilometros"`
	Nieve      *SnowDepth `json:"nieve"`
}

// Record flattens the scrape into the persisted shape.
func (s *ScrapeResult) Record() *ResortRecord {
	rec := &ResortRecord{
		Slug:      s.Estacion,
		Timestamp: s.Timestamp,
	}
	if s.Remontes != nil {
		rec.RemontesAbiertos = optional(s.Remontes.Abiertos)
		rec.RemontesTotales = optional(s.Remontes.Total)
	}
	if s.Kilometros != nil {
		rec.KilometrosAbiertos = optional(s.Kilometros.Abiertos)
		rec.KilometrosTotales = optional(s.Kilometros.Total)
	}
	if s.Nieve != nil {
		rec.Nieve = optional(strings.TrimSpace(s.Nieve.Altura + " " + s.Nieve.Unidad))
	}
	return rec
}
