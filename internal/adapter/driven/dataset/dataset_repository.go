package dataset

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/diillson/covid-stats-dashboard-go/internal/domain/entity"
	"github.com/diillson/covid-stats-dashboard-go/internal/domain/repository"
	"github.com/diillson/covid-stats-dashboard-go/internal/shared/types"
)

// DatasetRepositoryImpl implementa o DatasetRepository para arquivos locais e URIs s3://.
type DatasetRepositoryImpl struct {
	storage repository.StorageRepository
}

// NewDatasetRepository creates a loader. storage may be nil when only local files are read.
func NewDatasetRepository(storage repository.StorageRepository) repository.DatasetRepository {
	return &DatasetRepositoryImpl{storage: storage}
}

// Load reads source into a raw table. The reader is picked from the file extension.
func (r *DatasetRepositoryImpl) Load(ctx context.Context, source string, opts repository.LoadOptions) (*entity.RawTable, error) {
	path := source

	if strings.HasPrefix(source, "s3://") {
		if r.storage == nil {
			return nil, fmt.Errorf("cannot read %s: object storage is not configured", source)
		}

		tmpDir, err := os.MkdirTemp("", "covid-stats-*")
		if err != nil {
			return nil, fmt.Errorf("error creating download directory: %w", err)
		}
		defer os.RemoveAll(tmpDir)

		path, err = r.storage.Download(ctx, source, tmpDir)
		if err != nil {
			return nil, fmt.Errorf("error downloading %s: %w", source, err)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		table *entity.RawTable
		err   error
	)

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv", ".txt":
		table, err = readDelimited(path, delimiterFor(opts.Delimiter, ','))
	case ".tsv", ".tab":
		table, err = readDelimited(path, delimiterFor(opts.Delimiter, '\t'))
	case ".xlsx", ".xlsm":
		table, err = readWorkbook(path, opts.Sheet)
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, err
	}

	table.Source = source
	return table, nil
}

func delimiterFor(override, fallback rune) rune {
	if override != 0 {
		return override
	}
	return fallback
}
