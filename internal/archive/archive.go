package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"snowreport/internal/providers"
	"snowreport/internal/structures"
	"strconv"
	"time"
)

const fileExt = ".html.zst"

// PageArchiveInterface keeps raw source pages so extraction failures can be
// replayed after the markup changes.
type PageArchiveInterface interface {
	Save(slug string, body []byte, at time.Time) (string, error)
	Load(path string) ([]byte, error)
	Close()
}

type PageArchive struct {
	dir        string
	compressor CompressorInterface
	logger     providers.Logger
}

func NewPageArchive(dir string, compressor CompressorInterface, logger providers.Logger) *PageArchive {
	return &PageArchive{
		dir:        dir,
		compressor: compressor,
		logger:     logger,
	}
}

// NewArchiveProvider builds the archive described by the config. A disabled
// archive accepts and discards every page.
func NewArchiveProvider(conf *structures.Config, logger providers.Logger) (PageArchiveInterface, func(), error) {
	if !conf.Archive.Enabled {
		return noopArchive{}, func() {}, nil
	}
	compressor, err := NewZstdCompressor()
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(conf.Archive.Dir, 0o755); err != nil {
		compressor.Close()
		return nil, nil, fmt.Errorf("failed to create archive dir: %w", err)
	}
	logger.Infof(providers.TypeApp, "Archiving raw pages to %s", conf.Archive.Dir)

	a := NewPageArchive(conf.Archive.Dir, compressor, logger)
	return a, a.Close, nil
}

// Save writes <dir>/<slug>/<unix-nano>.html.zst and returns its path.
func (a *PageArchive) Save(slug string, body []byte, at time.Time) (string, error) {
	data, err := a.compressor.Compress(body)
	if err != nil {
		return "", fmt.Errorf("compressing page: %w", err)
	}

	dir := filepath.Join(a.dir, slug)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	fileName := filepath.Join(dir, strconv.FormatInt(at.UnixNano(), 10)+fileExt)

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return "", err
	}

	if _, err = file.Write(data); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return "", err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return "", err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return "", err
	}

	if err = os.Rename(tmpFile, fileName); err != nil {
		return "", err
	}
	a.logger.Debugf(providers.TypeScrape, "Archived %d bytes for %s to %s", len(body), slug, fileName)
	return fileName, nil
}

func (a *PageArchive) Load(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return a.compressor.Decompress(data)
}

func (a *PageArchive) Close() {
	a.compressor.Close()
}

type noopArchive struct{}

func (noopArchive) Save(string, []byte, time.Time) (string, error) { return "", nil }
func (noopArchive) Load(string) ([]byte, error)                    { return nil, os.ErrNotExist }
func (noopArchive) Close()                                          {}
