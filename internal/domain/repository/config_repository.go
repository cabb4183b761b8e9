package repository

import (
	"github.com/diillson/covid-stats-dashboard-go/internal/shared/types"
)

// ConfigRepository defines the interface for loading configuration.
type ConfigRepository interface {
	// LoadConfigFile reads a TOML, YAML or JSON file.
	LoadConfigFile(filePath string) (*types.Config, error)
	// Resolve merges the optional config file, COVIDSTATS_* environment variables
	// and the explicitly set CLI flags, applies defaults and validates the result.
	Resolve(args *types.CLIArgs) (*types.Config, error)
}
