package usecase

import (
	"context"

	"github.com/jhoicas/product-catalog/internal/domain/repository"
)

// SessionRunner abre una sesión de persistencia, ejecuta fn y la cierra siempre al terminar.
type SessionRunner interface {
	Run(ctx context.Context, fn func(repo repository.ProductRepository) error) error
}
