package dataset

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/diillson/covid-stats-dashboard-go/internal/domain/entity"
	"github.com/diillson/covid-stats-dashboard-go/internal/shared/types"
)

// readWorkbook reads one worksheet. The first non-empty row is the header.
func readWorkbook(path, sheet string) (*entity.RawTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("error opening workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%s: %w", path, types.ErrNoData)
		}
		sheet = sheets[0]
	} else if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("sheet %q not found in %s", sheet, path)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("error reading sheet %q: %w", sheet, err)
	}

	table := &entity.RawTable{}
	for i, row := range rows {
		if table.Header == nil {
			if isBlank(row) {
				continue
			}
			table.Header = row
			continue
		}
		table.Rows = append(table.Rows, entity.RawRow{Line: i + 1, Cells: row})
	}

	if table.Header == nil {
		return nil, fmt.Errorf("%s: %w", path, types.ErrNoData)
	}
	return table, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
