package main

import (
	"fmt"
	"os"

	"github.com/diillson/covid-stats-dashboard-go/internal/adapter/driven/aws"
	"github.com/diillson/covid-stats-dashboard-go/internal/adapter/driven/chart"
	"github.com/diillson/covid-stats-dashboard-go/internal/adapter/driven/config"
	"github.com/diillson/covid-stats-dashboard-go/internal/adapter/driven/dataset"
	"github.com/diillson/covid-stats-dashboard-go/internal/adapter/driven/export"
	"github.com/diillson/covid-stats-dashboard-go/internal/adapter/driving/cli"
	"github.com/diillson/covid-stats-dashboard-go/internal/application/usecase"
	"github.com/diillson/covid-stats-dashboard-go/pkg/console"
	"github.com/diillson/covid-stats-dashboard-go/pkg/version"
)

func main() {
	// Inicializa o aplicativo CLI
	app := cli.NewCLIApp(version.Version)

	// Os adaptadores que dependem da configuração resolvida são criados pelo caso de uso
	analysisUseCase := usecase.NewAnalysisUseCase(
		config.NewConfigRepository(),
		export.NewExportRepository(),
		console.NewConsole(),
		aws.NewStorageRepository,
		dataset.NewDatasetRepository,
		chart.NewChartRepository,
	)
	app.SetAnalysisUseCase(analysisUseCase)

	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
