package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

var ErrInvalidTimestamp = errors.New("invalid timestamp")

// FlexText decodes a JSON string or number verbatim, and also accepts the
// nested objects of a scrape response so that one can be posted back as is:
// {"abiertos","total"} becomes "abiertos/total" and {"altura","unidad"}
// becomes "altura unidad".
type FlexText string

func (f *FlexText) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexText(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexText(n.String())
		return nil
	}
	var obj struct {
		Count
		SnowDepth
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	switch {
	case obj.Abiertos != "" || obj.Total != "":
		*f = FlexText(obj.Abiertos + "/" + obj.Total)
	default:
		*f = FlexText(strings.TrimSpace(obj.Altura + " " + obj.Unidad))
	}
	return nil
}

// RecordInput is the body accepted when a record is stored directly.
// Remontes and Kilometros carry "open/total" text.
type RecordInput struct {
	Slug       string   `json:"slug"`
	Remontes   FlexText `json:"remontes"`
	Kilometros FlexText `json:"kilometros"`
	Nieve      FlexText `json:"nieve"`
	Timestamp  string   `json:"timestamp"`
}

// SplitCombined splits "open/total" into its trimmed halves. Text without a
// separator yields two nils; anything after a second separator is ignored.
func SplitCombined(combined string) (open, total *string) {
	if !strings.Contains(combined, "/") {
		return nil, nil
	}
	parts := strings.Split(combined, "/")
	o := strings.TrimSpace(parts[0])
	t := strings.TrimSpace(parts[1])
	return &o, &t
}

// Record normalizes the input into a storable row. A supplied timestamp may
// use any RFC 3339 form; it is rewritten as UTC milliseconds so that text
// order in the table is time order.
func (in *RecordInput) Record(now time.Time) (*ResortRecord, error) {
	rec := &ResortRecord{
		Slug:      in.Slug,
		Nieve:     optional(string(in.Nieve)),
		Timestamp: FormatTimestamp(now),
	}
	rec.RemontesAbiertos, rec.RemontesTotales = SplitCombined(string(in.Remontes))
	rec.KilometrosAbiertos, rec.KilometrosTotales = SplitCombined(string(in.Kilometros))
	if ts := strings.TrimSpace(in.Timestamp); ts != "" {
		parsed, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidTimestamp, in.Timestamp)
		}
		rec.Timestamp = FormatTimestamp(parsed)
	}
	return rec, nil
}
