package chartRepo

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dogumharitan777/astro-api/internal/domain"
	"github.com/dogumharitan777/astro-api/internal/ports/persistence"
	ports "github.com/dogumharitan777/astro-api/internal/ports/repository"
)

type chartColumns struct {
	TableName string
	ID        string
	RequestID string
	BirthDate string
	BirthTime string
	TZOffset  string
	Latitude  string
	Longitude string
	Chart     string
	Missing   string
	CreatedAt string
}

type Repository struct {
	db      persistence.Persistence
	Log     *slog.Logger
	columns chartColumns
}

// New создаёт репозиторий архива карт
func New(db persistence.Persistence, log *slog.Logger) ports.IChartRepo {
	cols := chartColumns{
		TableName: "natal_charts",
		ID:        "id",
		RequestID: "request_id",
		BirthDate: "birth_date",
		BirthTime: "birth_time",
		TZOffset:  "tz_offset",
		Latitude:  "latitude",
		Longitude: "longitude",
		Chart:     "chart",
		Missing:   "missing",
		CreatedAt: "created_at",
	}
	return &Repository{
		db:      db,
		Log:     log,
		columns: cols,
	}
}

func (r *Repository) allColumns() []string {
	return []string{
		r.columns.ID,
		r.columns.RequestID,
		r.columns.BirthDate,
		r.columns.BirthTime,
		r.columns.TZOffset,
		r.columns.Latitude,
		r.columns.Longitude,
		r.columns.Chart,
		r.columns.Missing,
		r.columns.CreatedAt,
	}
}

// Create сохраняет рассчитанную карту, значения берутся по db-тегам записи
func (r *Repository) Create(ctx context.Context, record *domain.ChartRecord) error {
	cols := r.allColumns()

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (:%s)`,
		r.columns.TableName,
		strings.Join(cols, ", "),
		strings.Join(cols, ", :"))

	err := r.db.NamedExec(ctx, query, record)
	if err != nil {
		r.Log.Error("failed to archive chart",
			"error", err,
			"id", record.ID,
			"request_id", record.RequestID)
		return fmt.Errorf("failed to archive chart: %w", err)
	}

	r.Log.Debug("chart archived",
		"id", record.ID,
		"request_id", record.RequestID)
	return nil
}
