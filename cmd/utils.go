package cmd

import (
	"fmt"

	"github.com/rubiojr/fhsearch/pkg/config"
	"github.com/rubiojr/fhsearch/pkg/funeralhomes"
	"github.com/rubiojr/fhsearch/pkg/log"
	"github.com/rubiojr/fhsearch/pkg/version"
)

// loadConfig reads the configuration and warns when no API base URL is set.
// A missing base URL is not fatal: every request reports it instead.
func loadConfig(configPath string) (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if !cfg.HasAPIBaseURL() {
		log.ForService("config").Warnf("No API base URL configured. Set api_base_url in %s or %s", configPath, config.EnvAPIBaseURL)
	}
	return cfg, nil
}

// newClient builds the API client described by cfg.
func newClient(cfg *config.Config) *funeralhomes.Client {
	return funeralhomes.New(cfg.APIBaseURL,
		funeralhomes.WithTimeout(cfg.RequestTimeout.Duration),
		funeralhomes.WithUserAgent(version.UserAgent()),
	)
}
