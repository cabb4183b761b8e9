package service

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/diillson/covid-stats-dashboard-go/internal/domain/entity"
	"github.com/diillson/covid-stats-dashboard-go/internal/shared/types"
)

// Describe computes count, mean, median, standard deviation, min, quartiles and max
// for each metric column of the dataset.
func Describe(ds *entity.Dataset, metrics []entity.Metric) (entity.DescribeTable, error) {
	if ds.Len() == 0 {
		return nil, types.ErrNoData
	}

	cols := make([]series.Series, 0, len(metrics))
	for _, m := range metrics {
		cols = append(cols, series.New(ds.Column(m), series.Float, m.Column()))
	}
	df := dataframe.New(cols...)
	if df.Err != nil {
		return nil, fmt.Errorf("error building dataframe: %w", df.Err)
	}

	desc := df.Describe()
	if desc.Err != nil {
		return nil, fmt.Errorf("error describing dataframe: %w", desc.Err)
	}

	records := desc.Records()
	if len(records) == 0 {
		return nil, types.ErrNoData
	}
	countRow := make([]string, len(records[0]))
	countRow[0] = "count"
	for i := 1; i < len(countRow); i++ {
		countRow[i] = fmt.Sprintf("%d", ds.Len())
	}

	table := make(entity.DescribeTable, 0, len(records)+1)
	table = append(table, records[0], countRow)
	table = append(table, records[1:]...)
	return table, nil
}
