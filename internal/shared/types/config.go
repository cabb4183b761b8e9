package types

// Config represents the application configuration that can be loaded from a file
// and overridden by COVIDSTATS_* environment variables. Only the AWS fields also
// fall back to the unprefixed AWS_PROFILE and AWS_REGION.
type Config struct {
	Input       string   `json:"input" yaml:"input" toml:"input" split_words:"true" validate:"required"`
	Dir         string   `json:"dir" yaml:"dir" toml:"dir" split_words:"true"`
	ReportName  string   `json:"report_name" yaml:"report_name" toml:"report_name" split_words:"true"`
	ReportType  []string `json:"report_type" yaml:"report_type" toml:"report_type" split_words:"true" validate:"dive,oneof=csv json pdf xlsx"`
	Charts      *bool    `json:"charts" yaml:"charts" toml:"charts" split_words:"true"`
	ChartFormat string   `json:"chart_format" yaml:"chart_format" toml:"chart_format" split_words:"true" validate:"omitempty,oneof=png svg"`
	ChartWidth  int      `json:"chart_width" yaml:"chart_width" toml:"chart_width" split_words:"true" validate:"omitempty,min=320,max=8192"`
	ChartHeight int      `json:"chart_height" yaml:"chart_height" toml:"chart_height" split_words:"true" validate:"omitempty,min=240,max=8192"`
	Metrics     []string `json:"metrics" yaml:"metrics" toml:"metrics" split_words:"true"`
	Granularity []string `json:"granularity" yaml:"granularity" toml:"granularity" split_words:"true" validate:"dive,oneof=daily weekly monthly"`
	DateLayouts []string `json:"date_layouts" yaml:"date_layouts" toml:"date_layouts" split_words:"true"`
	DayFirst    bool     `json:"day_first" yaml:"day_first" toml:"day_first" split_words:"true"`
	Strict      bool     `json:"strict" yaml:"strict" toml:"strict" split_words:"true"`
	Delimiter   string   `json:"delimiter" yaml:"delimiter" toml:"delimiter" split_words:"true" validate:"omitempty,max=1"`
	Sheet       string   `json:"sheet" yaml:"sheet" toml:"sheet" split_words:"true"`
	Profile     string   `json:"profile" yaml:"profile" toml:"profile" envconfig:"AWS_PROFILE"`
	Region      string   `json:"region" yaml:"region" toml:"region" envconfig:"AWS_REGION"`
	Upload      string   `json:"upload" yaml:"upload" toml:"upload" split_words:"true" validate:"omitempty,startswith=s3://"`
	Trend       bool     `json:"trend" yaml:"trend" toml:"trend" split_words:"true"`
}

// ChartsEnabled reports whether chart rendering is on. Charts default to enabled.
func (c *Config) ChartsEnabled() bool {
	return c.Charts == nil || *c.Charts
}
