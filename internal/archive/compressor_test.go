package archive

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZstdCompression_RoundTrip(t *testing.T) {
	c, err := NewZstdCompressor()
	require.NoError(t, err)
	defer c.Close()

	page := []byte(strings.Repeat("<div class=\"remontes\">12/20</div>", 200))
	compressed, err := c.Compress(page)
	require.NoError(t, err)
	assert.Less(t, len(compressed), len(page))

	restored, err := c.Decompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, page, restored)
}

func TestZstdCompression_Empty(t *testing.T) {
	c, err := NewZstdCompressor()
	require.NoError(t, err)
	defer c.Close()

	compressed, err := c.Compress(nil)
	require.NoError(t, err)

	restored, err := c.Decompress(compressed)
	require.NoError(t, err)
	assert.Empty(t, restored)
}

func TestZstdCompression_Garbage(t *testing.T) {
	c, err := NewZstdCompressor()
	require.NoError(t, err)
	defer c.Close()

	_, err = c.Decompress([]byte("not zstd"))
	assert.Error(t, err)
}
