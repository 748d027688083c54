package persistence

import "context"

// Persistence операции над БД, нужные репозиториям
type Persistence interface {
	NamedExec(ctx context.Context, query string, arg interface{}) error
	Ping(ctx context.Context) error
}
