package repository

import (
	"context"

	"github.com/diillson/covid-stats-dashboard-go/internal/domain/entity"
)

// LoadOptions tunes how a tabular file is read.
type LoadOptions struct {
	// Delimiter overrides the field separator of delimited files.
	Delimiter rune
	// Sheet selects the worksheet of a workbook; empty means the first one.
	Sheet string
}

// DatasetRepository reads the raw input table from a local path or a remote URI.
type DatasetRepository interface {
	Load(ctx context.Context, source string, opts LoadOptions) (*entity.RawTable, error)
}
