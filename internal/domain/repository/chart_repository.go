package repository

import (
	"github.com/diillson/covid-stats-dashboard-go/internal/domain/entity"
)

// ChartRepository is the display sink: it receives one fully described chart per call.
type ChartRepository interface {
	Render(spec entity.ChartSpec) (entity.ChartFile, error)
}
