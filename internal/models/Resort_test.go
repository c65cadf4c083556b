package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupResort_Known(t *testing.T) {
	for _, slug := range []string{"sierra-nevada", "candanchu", "boi-taull", "valdelinares"} {
		r, err := LookupResort(slug)
		require.NoError(t, err, slug)
		assert.Equal(t, slug, r.Slug)
	}
}

func TestLookupResort_CaseInsensitive(t *testing.T) {
	r, err := LookupResort("  Sierra-Nevada ")
	require.NoError(t, err)
	assert.Equal(t, "sierra-nevada", r.Slug)
}

func TestLookupResort_Unknown(t *testing.T) {
	_, err := LookupResort("baqueira")
	assert.ErrorIs(t, err, ErrUnknownResort)

	_, err = LookupResort("")
	assert.ErrorIs(t, err, ErrUnknownResort)
}

func TestResort_SourceURL(t *testing.T) {
	r := Resort{Slug: "candanchu"}
	assert.Equal(t, "https://www.infonieve.es/estacion-esqui/candanchu/", r.SourceURL("https://www.infonieve.es/estacion-esqui/"))
	assert.Equal(t, "http://127.0.0.1:1234/candanchu/", r.SourceURL("http://127.0.0.1:1234"))
}

func TestResortSlugs(t *testing.T) {
	assert.Equal(t, []string{"sierra-nevada", "candanchu", "boi-taull", "valdelinares"}, ResortSlugs())
}
