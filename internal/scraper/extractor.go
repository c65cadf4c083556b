package scraper

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	FieldLifts    = "remontes"
	FieldDistance = "kilometros"
	FieldSnow     = "nieve"
)

// Pattern is a named expression with exactly two capture groups.
type Pattern struct {
	Name string
	Expr *regexp.Regexp
}

// Match holds the two captured values, trimmed.
type Match struct {
	Value string
	Extra string
}

// DefaultPatterns follow the infonieve.es station widget, where each figure
// is a label, a bold open value and an italic total or unit.
var DefaultPatterns = []Pattern{
	{Name: FieldLifts, Expr: regexp.MustCompile(`Remontes<br><strong[^>]*>([^<]*)</strong><em>/(\d+)`)},
	{Name: FieldDistance, Expr: regexp.MustCompile(`Kilómetros<br><strong[^>]*>([^<]*)</strong><em>/([^<]*)</em>`)},
	{Name: FieldSnow, Expr: regexp.MustCompile(`Nieve<br><strong[^>]*>([^<]*)</strong><em>([^<]*)</em>`)},
}

type Extractor struct {
	patterns []Pattern
}

func NewExtractor(patterns []Pattern) *Extractor {
	return &Extractor{patterns: patterns}
}

func NewDefaultExtractor() *Extractor {
	return NewExtractor(DefaultPatterns)
}

// Extract applies every pattern to html. Every pattern name is present in the
// result; the value is nil when the pattern did not match.
func (e *Extractor) Extract(html string) map[string]*Match {
	fields := make(map[string]*Match, len(e.patterns))
	for _, p := range e.patterns {
		groups := p.Expr.FindStringSubmatch(html)
		if len(groups) < 3 {
			fields[p.Name] = nil
			continue
		}
		fields[p.Name] = &Match{
			Value: strings.TrimSpace(groups[1]),
			Extra: strings.TrimSpace(groups[2]),
		}
	}
	return fields
}

var innerWhitespace = regexp.MustCompile(`\s+`)

// ExtractName returns the page heading, falling back to the document title.
// Markup that cannot be parsed yields "".
func (e *Extractor) ExtractName(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	for _, selector := range []string{"h1", "title"} {
		text := strings.TrimSpace(doc.Find(selector).First().Text())
		if text != "" {
			return innerWhitespace.ReplaceAllString(text, " ")
		}
	}
	return ""
}
