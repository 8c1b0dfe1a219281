package config

import (
	"errors"
	"fmt"
)

// Validate checks that all required fields are set and values are valid.
func (c *ReporterConfig) Validate() error {
	if c.API.BearerToken == "" {
		return errors.New("api.bearer_token is required (set TOKEN_BEARER)")
	}
	if c.API.PageSize < 1 {
		return errors.New("api.page_size must be >= 1")
	}
	if c.API.MaxRetries < 1 {
		return errors.New("api.max_retries must be >= 1")
	}

	seen := map[string]bool{}
	for i, src := range c.Sources.Watermark {
		if err := src.validate(fmt.Sprintf("sources.watermark[%d]", i)); err != nil {
			return err
		}
		if seen[src.Key] {
			return fmt.Errorf("sources.watermark has duplicate key %q", src.Key)
		}
		seen[src.Key] = true
	}
	if err := c.Sources.History.validate("sources.history"); err != nil {
		return err
	}

	if c.Store.Dir == "" {
		return errors.New("store.dir is required")
	}
	if c.Report.OutputDir == "" {
		return errors.New("report.output_dir is required")
	}

	return nil
}

func (s *SourceConfig) validate(prefix string) error {
	if s.Key == "" {
		return fmt.Errorf("%s.key is required", prefix)
	}
	if s.URL == "" {
		return fmt.Errorf("%s.url is required", prefix)
	}
	switch s.IDFrom {
	case "", "id", "create_time":
	default:
		return fmt.Errorf("%s.id_from must be \"id\" or \"create_time\", got %q", prefix, s.IDFrom)
	}
	return nil
}
