package models

import (
	"errors"
	"strings"
)

var ErrUnknownResort = errors.New("unknown resort")

type Resort struct {
	Slug string `json:"slug"`
	Name string `json:"nombre"`
}

// Resorts is the fixed set of stations the service knows how to scrape.
var Resorts = []Resort{
	{Slug: "sierra-nevada", Name: "Sierra Nevada"},
	{Slug: "candanchu", Name: "Candanchú"},
	{Slug: "boi-taull", Name: "Boí Taüll"},
	{Slug: "valdelinares", Name: "Valdelinares"},
}

// LookupResort matches the slug case-insensitively, ignoring surrounding spaces.
func LookupResort(slug string) (Resort, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	for _, r := range Resorts {
		if r.Slug == slug {
			return r, nil
		}
	}
	return Resort{}, ErrUnknownResort
}

// SourceURL joins the resort slug onto the status page base URL.
func (r Resort) SourceURL(base string) string {
	return strings.TrimRight(base, "/") + "/" + r.Slug + "/"
}

func ResortSlugs() []string {
	slugs := make([]string, len(Resorts))
	for i, r := range Resorts {
		slugs[i] = r.Slug
	}
	return slugs
}
