package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"

	"github.com/diillson/covid-stats-dashboard-go/internal/domain/entity"
	"github.com/diillson/covid-stats-dashboard-go/internal/domain/repository"
	"github.com/diillson/covid-stats-dashboard-go/internal/shared/types"
)

// EnvPrefix is the prefix of the environment variables read by Resolve.
const EnvPrefix = "COVIDSTATS"

// Defaults applied to fields left empty by every source.
const (
	DefaultInput       = "COVID-19 Daily.csv"
	DefaultChartFormat = "png"
	DefaultChartWidth  = 1000
	DefaultChartHeight = 600
)

// ConfigRepositoryImpl implementa o ConfigRepository.
type ConfigRepositoryImpl struct {
	validate *validator.Validate
	envFile  string
}

// NewConfigRepository cria uma nova implementação do ConfigRepository.
func NewConfigRepository() repository.ConfigRepository {
	return &ConfigRepositoryImpl{
		validate: validator.New(),
		envFile:  ".env",
	}
}

// LoadConfigFile carrega um arquivo de configuração TOML, YAML ou JSON.
func (r *ConfigRepositoryImpl) LoadConfigFile(filePath string) (*types.Config, error) {
	fileExtension := strings.ToLower(filepath.Ext(filePath))

	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("error accessing config file: %w", err)
	}

	if fileInfo.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a file", filePath)
	}

	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config types.Config

	switch fileExtension {
	case ".toml":
		if err := toml.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing TOML file: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing YAML file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing JSON file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s", fileExtension)
	}

	return &config, nil
}

// Resolve builds the effective configuration: file, then environment, then the
// flags the user actually typed.
func (r *ConfigRepositoryImpl) Resolve(args *types.CLIArgs) (*types.Config, error) {
	if err := godotenv.Load(r.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading %s: %w", r.envFile, err)
	}

	cfg := &types.Config{}
	if args.ConfigFile != "" {
		loaded, err := r.LoadConfigFile(args.ConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	mergeFlags(cfg, args)

	if err := applyDefaults(cfg); err != nil {
		return nil, err
	}

	if err := r.validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	// Métricas aceitam a chave ("cases") ou o nome da coluna ("Daily Cases").
	if _, err := entity.ParseMetrics(cfg.Metrics); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// mergeFlags copia para a configuração apenas as flags informadas explicitamente.
func mergeFlags(cfg *types.Config, args *types.CLIArgs) {
	set := func(name string) bool { return args.Changed[name] }

	if set("input") {
		cfg.Input = args.Input
	}
	if set("dir") {
		cfg.Dir = args.Dir
	}
	if set("report-name") {
		cfg.ReportName = args.ReportName
	}
	if set("report-type") {
		cfg.ReportType = args.ReportType
	}
	if set("no-charts") {
		enabled := !args.NoCharts
		cfg.Charts = &enabled
	}
	if set("chart-format") {
		cfg.ChartFormat = args.ChartFormat
	}
	if set("metrics") {
		cfg.Metrics = args.Metrics
	}
	if set("granularity") {
		cfg.Granularity = args.Granularity
	}
	if set("strict") {
		cfg.Strict = args.Strict
	}
	if set("day-first") {
		cfg.DayFirst = args.DayFirst
	}
	if set("delimiter") {
		cfg.Delimiter = args.Delimiter
	}
	if set("sheet") {
		cfg.Sheet = args.Sheet
	}
	if set("profile") {
		cfg.Profile = args.Profile
	}
	if set("region") {
		cfg.Region = args.Region
	}
	if set("upload") {
		cfg.Upload = args.Upload
	}
	if set("trend") {
		cfg.Trend = args.Trend
	}
}

func applyDefaults(cfg *types.Config) error {
	if cfg.Input == "" {
		cfg.Input = DefaultInput
	}

	if cfg.Dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		cfg.Dir = cwd
	} else {
		absDir, err := filepath.Abs(cfg.Dir)
		if err != nil {
			return err
		}
		cfg.Dir = absDir
	}

	if len(cfg.ReportType) == 0 {
		cfg.ReportType = []string{"csv"}
	}
	cfg.ReportType = normalizeList(cfg.ReportType)
	cfg.Metrics = normalizeList(cfg.Metrics)
	cfg.Granularity = normalizeList(cfg.Granularity)

	cfg.ChartFormat = strings.ToLower(strings.TrimSpace(cfg.ChartFormat))
	if cfg.ChartFormat == "" {
		cfg.ChartFormat = DefaultChartFormat
	}
	if cfg.ChartWidth == 0 {
		cfg.ChartWidth = DefaultChartWidth
	}
	if cfg.ChartHeight == 0 {
		cfg.ChartHeight = DefaultChartHeight
	}
	if cfg.Delimiter == `\t` {
		cfg.Delimiter = "\t"
	}
	return nil
}

func normalizeList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.ToLower(strings.TrimSpace(item))
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
