package providers

import (
	"fmt"
	"path/filepath"
	"snowreport/internal/structures"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	AppName    = "SnowReport"
	AppVersion = "1.2.0"
)

func setConfigDefaults(v *viper.Viper) {
	v.SetDefault("webServer.host", "0.0.0.0")
	v.SetDefault("webServer.port", 8080)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", 0644)
	v.SetDefault("scraper.sourceBaseUrl", "https://www.infonieve.es/estacion-esqui/")
	v.SetDefault("scraper.userAgent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	v.SetDefault("scraper.timeout", 10*time.Second)
	v.SetDefault("scraper.attempts", 3)
	v.SetDefault("scraper.backoffBase", time.Second)
	v.SetDefault("scraper.requestsPerSecond", 2)
	v.SetDefault("cache.size", 10)
	v.SetDefault("cache.ttl", time.Minute)
	v.SetDefault("scheduler.interval", time.Hour)
	v.SetDefault("remote.baseUrl", "https://api-esqui-scraping-production.up.railway.app")
	v.SetDefault("remote.timeout", 30*time.Second)
}

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	setConfigDefaults(v)

	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	_ = v.BindEnv("logger.level", "SNOW_LOG_LEVEL")
	_ = v.BindEnv("logger.dir", "SNOW_LOG_DIR")
	_ = v.BindEnv("webServer.port", "SNOW_PORT")
	_ = v.BindEnv("database.url", "SNOW_DATABASE_URL")
	_ = v.BindEnv("database.authToken", "SNOW_DATABASE_TOKEN")
	_ = v.BindEnv("cache.enabled", "SNOW_CACHE_ENABLED")
	_ = v.BindEnv("cache.size", "SNOW_CACHE_SIZE")
	_ = v.BindEnv("scheduler.enabled", "SNOW_SCHEDULER_ENABLED")
	_ = v.BindEnv("scheduler.interval", "SNOW_SCHEDULER_INTERVAL")
	_ = v.BindEnv("remote.baseUrl", "SNOW_REMOTE_URL")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = AppName
	conf.Version = AppVersion
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
