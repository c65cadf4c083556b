package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required"`
}

type ScraperConfig struct {
	SourceBaseURL     string        `yaml:"sourceBaseUrl" validate:"required|fullUrl"`
	UserAgent         string        `yaml:"userAgent" validate:"required"`
	Timeout           time.Duration `yaml:"timeout" validate:"required|min:1"`
	Attempts          int           `yaml:"attempts" validate:"required|min:1"`
	BackoffBase       time.Duration `yaml:"backoffBase"`
	RequestsPerSecond float64       `yaml:"requestsPerSecond"`
	RetryAll          bool          `yaml:"retryAll"`
}

type DatabaseConfig struct {
	URL       string `yaml:"url" validate:"required"`
	AuthToken string `yaml:"authToken"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type SchedulerConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Interval time.Duration `yaml:"interval"`
}

type ArchiveConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}

type RemoteConfig struct {
	BaseURL string        `yaml:"baseUrl"`
	Timeout time.Duration `yaml:"timeout"`
}

type Config struct {
	AppName   string
	Version   string
	Debug     bool
	Path      string
	WebServer Server          `yaml:"webServer"`
	Logger    LoggerConfig    `yaml:"logger"`
	Scraper   ScraperConfig   `yaml:"scraper"`
	Database  DatabaseConfig  `yaml:"database"`
	Cache     CacheConfig     `yaml:"cache"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Archive   ArchiveConfig   `yaml:"archive"`
	Remote    RemoteConfig    `yaml:"remote"`
}
