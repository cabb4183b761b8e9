package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/diillson/covid-stats-dashboard-go/internal/domain/entity"
	"github.com/diillson/covid-stats-dashboard-go/internal/shared/types"
)

// readDelimited reads a CSV-like file. Rows keep the line number they start on.
func readDelimited(path string, delimiter rune) (*entity.RawTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening input file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %w", path, types.ErrNoData)
	}
	if err != nil {
		return nil, fmt.Errorf("error reading header of %s: %w", path, err)
	}

	table := &entity.RawTable{Header: header}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading %s: %w", path, err)
		}

		line, _ := reader.FieldPos(0)
		table.Rows = append(table.Rows, entity.RawRow{Line: line, Cells: record})
	}

	return table, nil
}
