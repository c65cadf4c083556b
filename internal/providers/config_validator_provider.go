package providers

import (
	"errors"
	"fmt"
	"snowreport/internal/structures"

	"github.com/gookit/validate"
)

// maxCacheSizeMB bounds cache.size, which freecache allocates up front.
const maxCacheSizeMB = 4096

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

// Validate runs the struct tag rules and then the cross-field checks that
// tags cannot express.
func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if !v.Validate() {
		return v.Errors
	}

	if cv.conf.Scheduler.Enabled && cv.conf.Scheduler.Interval <= 0 {
		return errors.New("scheduler.interval must be positive when the scheduler is enabled")
	}
	if cv.conf.Archive.Enabled && cv.conf.Archive.Dir == "" {
		return errors.New("archive.dir is required when the archive is enabled")
	}
	if cv.conf.Cache.Enabled && cv.conf.Cache.TTL < 0 {
		return errors.New("cache.ttl must not be negative")
	}
	if cv.conf.Cache.Enabled && (cv.conf.Cache.Size < 0 || cv.conf.Cache.Size > maxCacheSizeMB) {
		return fmt.Errorf("cache.size is in megabytes and must be between 0 and %d, got %d", maxCacheSizeMB, cv.conf.Cache.Size)
	}
	return nil
}
