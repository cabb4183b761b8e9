package usecase

import (
	"context"

	"github.com/diillson/covid-stats-dashboard-go/internal/domain/entity"
	"github.com/diillson/covid-stats-dashboard-go/internal/domain/repository"
	"github.com/diillson/covid-stats-dashboard-go/internal/shared/types"
)

// exportReports writes one report per requested type. Failures are logged and do not
// stop the remaining types. Returns the written paths.
func (uc *AnalysisUseCase) exportReports(report *entity.AnalysisReport, cfg *types.Config) []string {
	if cfg.ReportName == "" || len(cfg.ReportType) == 0 {
		return nil
	}

	var paths []string
	for _, reportType := range cfg.ReportType {
		var (
			path string
			err  error
		)
		switch reportType {
		case "csv":
			path, err = uc.exportRepo.ExportToCSV(report, cfg.ReportName, cfg.Dir)
		case "json":
			path, err = uc.exportRepo.ExportToJSON(report, cfg.ReportName, cfg.Dir)
		case "pdf":
			path, err = uc.exportRepo.ExportToPDF(report, cfg.ReportName, cfg.Dir)
		case "xlsx":
			path, err = uc.exportRepo.ExportToXLSX(report, cfg.ReportName, cfg.Dir)
		default:
			uc.console.LogWarning("Unsupported report type: %s", reportType)
			continue
		}

		if err != nil {
			uc.console.LogError("Failed to export to %s: %s", reportType, err)
			continue
		}
		uc.console.LogSuccess("Successfully exported to %s: %s", reportType, path)
		paths = append(paths, path)
	}
	return paths
}

// upload copies the exported reports and the rendered charts under prefix.
func (uc *AnalysisUseCase) upload(ctx context.Context, storage repository.StorageRepository, prefix string, report *entity.AnalysisReport, exported []string) {
	if account, err := storage.CallerAccount(ctx); err != nil {
		uc.console.LogWarning("Could not resolve AWS account: %s", err)
	} else {
		uc.console.LogInfo("Uploading to %s (account %s)", prefix, account)
	}

	files := append([]string{}, exported...)
	for _, c := range report.Charts {
		files = append(files, c.Path)
	}
	if len(files) == 0 {
		uc.console.LogWarning("Nothing to upload")
		return
	}

	var uploaded int
	for _, path := range files {
		uri, err := storage.Upload(ctx, path, prefix)
		if err != nil {
			uc.console.LogError("Failed to upload %s: %s", path, err)
			continue
		}
		uploaded++
		uc.console.LogInfo("Uploaded %s", uri)
	}
	uc.console.LogSuccess("Uploaded %d of %d files to %s", uploaded, len(files), prefix)
}
