package pg

import (
	"context"

	"github.com/dogumharitan777/astro-api/internal/ports/persistence"
	"github.com/jmoiron/sqlx"
)

// DB обёртка над sqlx.DB для работы с базой данных
// Реализует persistence.Persistence
type DB struct {
	Db *sqlx.DB
}

var _ persistence.Persistence = (*DB)(nil)

func NewDB(db *sqlx.DB) *DB {
	return &DB{Db: db}
}

// NamedExec выполняет именованный запрос (использует struct tags)
func (d *DB) NamedExec(ctx context.Context, query string, arg interface{}) error {
	_, err := d.Db.NamedExecContext(ctx, query, arg)
	return err
}

// Ping проверяет соединение (для /ready)
func (d *DB) Ping(ctx context.Context) error {
	return d.Db.PingContext(ctx)
}
