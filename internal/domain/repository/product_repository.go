package repository

import (
	"context"

	"github.com/jhoicas/product-catalog/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Las búsquedas devuelven (nil, nil) cuando el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, fields entity.ProductFields) (*entity.Product, error)
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	GetByName(ctx context.Context, name string) (*entity.Product, error)
	// List sin categoría devuelve todo el catálogo; con categoría, coincidencia exacta.
	List(ctx context.Context, category *string) ([]*entity.Product, error)
	Update(ctx context.Context, id int64, patch entity.ProductPatch) (*entity.Product, error)
	// Delete devuelve false si no había fila con ese id.
	Delete(ctx context.Context, id int64) (bool, error)
}
