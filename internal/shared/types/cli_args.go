package types

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	ConfigFile  string
	Input       string
	Dir         string
	ReportName  string
	ReportType  []string
	NoCharts    bool
	ChartFormat string
	Metrics     []string
	Granularity []string
	Strict      bool
	DayFirst    bool
	Delimiter   string
	Sheet       string
	Profile     string
	Region      string
	Upload      string
	Trend       bool

	// Changed holds the long names of the flags explicitly set on the command line.
	Changed map[string]bool
}
