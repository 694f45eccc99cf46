package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. ID y timestamps los asigna la base de datos.
type Product struct {
	ID          int64
	Name        string // único en todo el catálogo
	Description string
	Stock       int
	Price       decimal.Decimal // NUMERIC(10,2)
	Category    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductFields campos que el cliente suministra al crear un producto.
type ProductFields struct {
	Name        string
	Description string
	Stock       int
	Price       decimal.Decimal
	Category    string
}

// ProductPatch actualización parcial: solo se modifican los campos no nil.
type ProductPatch struct {
	Name        *string
	Description *string
	Stock       *int
	Price       *decimal.Decimal
	Category    *string
}
