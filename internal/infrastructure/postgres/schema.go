package postgres

import (
	"context"
	"fmt"
)

// schemaStatements crea la tabla de productos si no existe. Es idempotente: se ejecuta en cada arranque.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id          BIGSERIAL PRIMARY KEY,
		name        VARCHAR(127) NOT NULL,
		description TEXT,
		stock       INTEGER NOT NULL,
		price       NUMERIC(10, 2) NOT NULL,
		category    VARCHAR(127),
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		CONSTRAINT products_name_key UNIQUE (name)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_products_category ON products (category)`,
}

// EnsureSchema crea o verifica la tabla products y su índice por categoría.
func EnsureSchema(ctx context.Context, q Querier) error {
	for _, stmt := range schemaStatements {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
