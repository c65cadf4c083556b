package models

// ResortRecord is one row of the append-only resort history. The newest
// timestamp for a slug is its current state.
type ResortRecord struct {
	ID                 int64   `json:"id,omitempty"`
	Slug               string  `json:"slug"`
	RemontesAbiertos   *string `json:"remontes_abiertos"`
	RemontesTotales    *string `json:"remontes_totales"`
	KilometrosAbiertos *string `json:"kilometros_abiertos"`
	KilometrosTotales  *string `json:"kilometros_totales"`
	Nieve              *string `json:"nieve"`
	Timestamp          string  `json:"timestamp"`
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
