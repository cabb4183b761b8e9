package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/diillson/covid-stats-dashboard-go/internal/domain/entity"
)

func (r *ExportRepositoryImpl) ExportToJSON(report *entity.AnalysisReport, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}

	return filepath.Abs(outputFilename)
}
