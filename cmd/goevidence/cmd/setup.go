package cmd

import (
	"fmt"

	"github.com/dfirlab/goevidence/internal/config"
	"github.com/dfirlab/goevidence/internal/detect"
	"github.com/dfirlab/goevidence/internal/extractor"
	"github.com/dfirlab/goevidence/internal/logger"
)

// loadConfig loads the configuration file (falling back to defaults when
// it does not exist) and applies CLI flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(GetConfigFile())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	overrides := GetCLIOverrides()
	var entityList []string
	if overrides.Entities != "" {
		entityList = config.ParseEntities(overrides.Entities)
	}
	cfg.ApplyOverrides(overrides.LogLevel, overrides.LogFmt, entityList,
		overrides.Limit, overrides.MaxPairs)

	return cfg, nil
}

// newLogger builds the runtime logger from the effective configuration.
func newLogger(cfg *config.Config) (*logger.Logger, error) {
	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return log, nil
}

// detectorConfig derives the detector configuration from tuning settings.
func detectorConfig(cfg *config.Config) *detect.Config {
	dc := detect.DefaultConfig()
	if cfg.Tuning.MaxRelationPairs > 0 {
		dc.MaxRelationPairs = cfg.Tuning.MaxRelationPairs
	}
	return dc
}

// buildRequest maps the selected entity classes onto an extraction request.
func buildRequest(cfg *config.Config) extractor.Request {
	return extractor.Request{
		Identifier: cfg.Extraction.HasEntity(config.EntityIdentifier),
		Temporal:   cfg.Extraction.HasEntity(config.EntityTemporal),
		Relational: cfg.Extraction.HasEntity(config.EntityRelational),
		Limit:      cfg.Extraction.Limit,
	}
}
