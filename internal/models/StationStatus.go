package models

const (
	StateSuccess = "success"
	StateError   = "error"
)

// StationStatus is the flat per-resort entry of the all-resorts listing.
// Pairs are rendered as "open/total" text.
type StationStatus struct {
	Slug       string  `json:"slug"`
	Nombre     string  `json:"nombre"`
	Remontes   *string `json:"remontes"`
	Kilometros *string `json:"kilometros"`
	Nieve      *string `json:"nieve"`
	Timestamp  string  `json:"timestamp"`
	Estado     string  `json:"estado"`
	Error      string  `json:"error,omitempty"`
}

// StationList is the body of the all-resorts listing.
type StationList struct {
	Estaciones          []*StationStatus `json:"estaciones"`
	Total               int              `json:"total"`
	UltimaActualizacion string           `json:"ultima_actualizacion"`
}

func (c *Count) String() string {
	return c.Abiertos + "/" + c.Total
}

func NewStationStatus(res *ScrapeResult) *StationStatus {
	st := &StationStatus{
		Slug:      res.Estacion,
		Nombre:    res.Nombre,
		Timestamp: res.Timestamp,
		Estado:    StateSuccess,
	}
	if res.Remontes != nil {
		st.Remontes = optional(res.Remontes.String())
	}
	if res.Kilometros != nil {
		st.Kilometros = optional(res.Kilometros.String())
	}
	if res.Nieve != nil {
		rec := res.Record()
		st.Nieve = rec.Nieve
	}
	return st
}

func NewFailedStationStatus(resort Resort, timestamp string, err error) *StationStatus {
	return &StationStatus{
		Slug:      resort.Slug,
		Nombre:    resort.Name,
		Timestamp: timestamp,
		Estado:    StateError,
		Error:     err.Error(),
	}
}
