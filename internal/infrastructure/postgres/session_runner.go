package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/product-catalog/internal/application/usecase"
	"github.com/jhoicas/product-catalog/internal/domain/repository"
)

var _ usecase.SessionRunner = (*SessionRunner)(nil)

// SessionRunner entrega a cada operación una conexión propia del pool (sesión por petición).
type SessionRunner struct {
	pool *pgxpool.Pool
}

// NewSessionRunner construye el runner con el pool.
func NewSessionRunner(pool *pgxpool.Pool) *SessionRunner {
	return &SessionRunner{pool: pool}
}

// Run toma una conexión, ejecuta fn con un repositorio atado a ella y la libera siempre,
// tanto si fn termina bien como si devuelve error o hace panic.
func (r *SessionRunner) Run(ctx context.Context, fn func(repo repository.ProductRepository) error) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	return fn(NewProductRepository(conn))
}
