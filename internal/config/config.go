package config

import "time"

// ReporterConfig is the root configuration for one reporter run.
type ReporterConfig struct {
	API     APIConfig     `yaml:"api"`
	Sources SourcesConfig `yaml:"sources"`
	Store   StoreConfig   `yaml:"store"`
	Rates   RatesConfig   `yaml:"rates"`
	Report  ReportConfig  `yaml:"report"`
}

// APIConfig holds upstream platform API settings.
type APIConfig struct {
	BearerToken string        `yaml:"bearer_token"` // usually ${TOKEN_BEARER}
	Origin      string        `yaml:"origin"`
	PageSize    int           `yaml:"page_size"`
	Timeout     time.Duration `yaml:"timeout"`
	MaxRetries  int           `yaml:"max_retries"`
	RetryDelay  time.Duration `yaml:"retry_delay"`
	PageDelay   time.Duration `yaml:"page_delay"` // politeness delay between history pages
}

// SourceConfig identifies one paginated data source.
type SourceConfig struct {
	Key    string `yaml:"key"`
	URL    string `yaml:"url"`
	IDFrom string `yaml:"id_from"` // "id" (default) or "create_time"
}

// SourcesConfig lists the watermark-driven sources and the day-bucketed
// history source.
type SourcesConfig struct {
	Watermark []SourceConfig `yaml:"watermark"`
	History   SourceConfig   `yaml:"history"`
}

// StoreConfig holds record-store paths.
type StoreConfig struct {
	Dir              string `yaml:"dir"`
	UntrackedGames   string `yaml:"untracked_games"`
	UntrackedRewards string `yaml:"untracked_rewards"`
}

// RatesConfig holds rate-table sources.
type RatesConfig struct {
	DailyURL  string `yaml:"daily_url"`
	ForexPath string `yaml:"forex_path"`
}

// ReportConfig holds report output settings.
type ReportConfig struct {
	OutputDir string `yaml:"output_dir"`
}
