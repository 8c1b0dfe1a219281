package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultOrigin     = "https://metawin.com"
	DefaultPageSize   = 100
	DefaultAPITimeout = 30 * time.Second
	DefaultMaxRetries = 10
	DefaultRetryDelay = 1 * time.Second
	DefaultPageDelay  = 300 * time.Millisecond

	DefaultStoreDir         = "data"
	DefaultUntrackedGames   = "untracked-games.json"
	DefaultUntrackedRewards = "untracked-rewards.json"

	DefaultDailyRatesURL = "https://min-api.cryptocompare.com/data/v2/histoday?fsym=ETH&tsym=USD&limit=1095"
	DefaultForexPath     = "forex.json"

	DefaultOutputDir = "output"

	DefaultHistoryKey = "HISTORY"
	DefaultHistoryURL = "https://api.prod.platform.mwapp.io/game/action"
)

// defaultWatermarkSources mirrors the platform's reward-adjacent endpoints.
func defaultWatermarkSources() []SourceConfig {
	return []SourceConfig{
		{Key: "NOTIFICATIONS", URL: "https://api.prod.platform.metawin.com/notification"},
		{Key: "CLAIMS", URL: "https://api.prod.platform.metawin.com/inventory"},
		{Key: "REWARDS", URL: "https://api.prod.platform.metawin.com/reward"},
	}
}

func (c *ReporterConfig) applyDefaults() {
	// API defaults
	if c.API.Origin == "" {
		c.API.Origin = DefaultOrigin
	}
	if c.API.PageSize == 0 {
		c.API.PageSize = DefaultPageSize
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = DefaultAPITimeout
	}
	if c.API.MaxRetries == 0 {
		c.API.MaxRetries = DefaultMaxRetries
	}
	if c.API.RetryDelay == 0 {
		c.API.RetryDelay = DefaultRetryDelay
	}
	if c.API.PageDelay == 0 {
		c.API.PageDelay = DefaultPageDelay
	}

	// Source defaults
	if len(c.Sources.Watermark) == 0 {
		c.Sources.Watermark = defaultWatermarkSources()
	}
	if c.Sources.History.Key == "" {
		c.Sources.History.Key = DefaultHistoryKey
	}
	if c.Sources.History.URL == "" {
		c.Sources.History.URL = DefaultHistoryURL
	}

	// Store defaults
	if c.Store.Dir == "" {
		c.Store.Dir = DefaultStoreDir
	}
	if c.Store.UntrackedGames == "" {
		c.Store.UntrackedGames = DefaultUntrackedGames
	}
	if c.Store.UntrackedRewards == "" {
		c.Store.UntrackedRewards = DefaultUntrackedRewards
	}

	// Rates defaults
	if c.Rates.DailyURL == "" {
		c.Rates.DailyURL = DefaultDailyRatesURL
	}
	if c.Rates.ForexPath == "" {
		c.Rates.ForexPath = DefaultForexPath
	}

	// Report defaults
	if c.Report.OutputDir == "" {
		c.Report.OutputDir = DefaultOutputDir
	}
}
