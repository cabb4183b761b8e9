package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/diillson/covid-stats-dashboard-go/internal/application/usecase"
	"github.com/diillson/covid-stats-dashboard-go/internal/shared/types"
	"github.com/diillson/covid-stats-dashboard-go/pkg/version"
)

// versionCheckTimeout bounds the release lookup so it never delays the run.
const versionCheckTimeout = 3 * time.Second

const releasesPage = "https://github.com/diillson/covid-stats-dashboard-go/releases"

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd         *cobra.Command
	analysisUseCase *usecase.AnalysisUseCase
	version         string
	checkVersion    bool
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string) *CLIApp {
	app := &CLIApp{
		version:      versionStr,
		checkVersion: true,
	}

	rootCmd := &cobra.Command{
		Use:   "covid-stats [input]",
		Short: "COVID-19 daily statistics dashboard",
		Long: "Loads a daily COVID-19 dataset (CSV, TSV, XLSX or an s3:// object), cleans it, " +
			"aggregates it by day, ISO week and month, prints summary tables and renders charts.",
		Version:      version.FormatVersion(),
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE:         app.runCommand,
	}

	rootCmd.SetVersionTemplate(`{{printf "COVID Stats Dashboard version: %s\n" .Version}}`)

	flags := rootCmd.Flags()
	flags.StringP("input", "i", "", "Dataset to load: a CSV, TSV or XLSX file, or an s3://bucket/key URI")
	flags.StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	flags.StringP("dir", "d", "", "Directory to save reports and charts (default: current directory)")
	flags.StringP("report-name", "n", "", "Base name for the report files (without extension); no report is written when empty")
	flags.StringSliceP("report-type", "y", []string{"csv"}, "Report types: csv, json, pdf, xlsx")
	flags.Bool("no-charts", false, "Skip chart rendering")
	flags.String("chart-format", "png", "Chart image format: png or svg")
	flags.StringSliceP("metrics", "m", nil, "Metrics to analyze: tests, cases, recoveries, deaths (default: all)")
	flags.StringSliceP("granularity", "g", nil, "Granularities to analyze: daily, weekly, monthly (default: all)")
	flags.Bool("strict", false, "Fail on the first malformed value instead of dropping the row")
	flags.Bool("day-first", false, "Read ambiguous dates as DD/MM/YYYY")
	flags.String("delimiter", "", "Field delimiter for delimited input (default: by extension)")
	flags.String("sheet", "", "Worksheet to read from XLSX input (default: first sheet)")
	flags.StringP("profile", "p", "", "AWS profile used for S3 input and upload")
	flags.StringP("region", "r", "", "AWS region used for S3 input and upload")
	flags.String("upload", "", "Upload reports and charts to this s3://bucket/prefix")
	flags.Bool("trend", false, "Display week over week and month over month trend bars")

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// parseArgs parses command-line arguments into a CLIArgs struct.
func (app *CLIApp) parseArgs(positional []string) (*types.CLIArgs, error) {
	flags := app.rootCmd.Flags()

	input, _ := flags.GetString("input")
	configFile, _ := flags.GetString("config-file")
	dir, _ := flags.GetString("dir")
	reportName, _ := flags.GetString("report-name")
	reportType, _ := flags.GetStringSlice("report-type")
	noCharts, _ := flags.GetBool("no-charts")
	chartFormat, _ := flags.GetString("chart-format")
	metrics, _ := flags.GetStringSlice("metrics")
	granularity, _ := flags.GetStringSlice("granularity")
	strict, _ := flags.GetBool("strict")
	dayFirst, _ := flags.GetBool("day-first")
	delimiter, _ := flags.GetString("delimiter")
	sheet, _ := flags.GetString("sheet")
	profile, _ := flags.GetString("profile")
	region, _ := flags.GetString("region")
	upload, _ := flags.GetString("upload")
	trend, _ := flags.GetBool("trend")

	changed := make(map[string]bool)
	flags.Visit(func(f *pflag.Flag) {
		changed[f.Name] = true
	})

	if len(positional) > 0 {
		if changed["input"] && input != positional[0] {
			return nil, fmt.Errorf("input given twice: %q and %q", input, positional[0])
		}
		input = positional[0]
		changed["input"] = true
	}

	return &types.CLIArgs{
		ConfigFile:  configFile,
		Input:       input,
		Dir:         dir,
		ReportName:  reportName,
		ReportType:  reportType,
		NoCharts:    noCharts,
		ChartFormat: chartFormat,
		Metrics:     metrics,
		Granularity: granularity,
		Strict:      strict,
		DayFirst:    dayFirst,
		Delimiter:   delimiter,
		Sheet:       sheet,
		Profile:     profile,
		Region:      region,
		Upload:      upload,
		Trend:       trend,
		Changed:     changed,
	}, nil
}

// runCommand é o ponto de entrada principal para o comando CLI.
func (app *CLIApp) runCommand(cmd *cobra.Command, args []string) error {
	displayWelcomeBanner()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if app.checkVersion {
		go app.checkLatestVersion(ctx)
	}

	cliArgs, err := app.parseArgs(args)
	if err != nil {
		return err
	}

	if app.analysisUseCase == nil {
		return fmt.Errorf("analysis use case is not configured")
	}
	return app.analysisUseCase.Run(ctx, cliArgs)
}

// checkLatestVersion avisa quando existe uma versão mais recente publicada.
func (app *CLIApp) checkLatestVersion(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, versionCheckTimeout)
	defer cancel()

	latest, newer := version.LatestRelease(ctx, app.version)
	if newer {
		pterm.Warning.Printf("A new version is available: %s (current: %s)\nDownload it at %s\n",
			latest, app.version, releasesPage)
	}
}

// SetAnalysisUseCase sets the analysis use case for the CLI app.
func (app *CLIApp) SetAnalysisUseCase(useCase *usecase.AnalysisUseCase) {
	app.analysisUseCase = useCase
}
