package repository

import (
	"github.com/diillson/covid-stats-dashboard-go/internal/domain/entity"
)

type ExportRepository interface {
	ExportToCSV(report *entity.AnalysisReport, filename, outputDir string) (string, error)
	ExportToJSON(report *entity.AnalysisReport, filename, outputDir string) (string, error)
	ExportToPDF(report *entity.AnalysisReport, filename, outputDir string) (string, error)
	ExportToXLSX(report *entity.AnalysisReport, filename, outputDir string) (string, error)
}
