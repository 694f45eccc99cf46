package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. Todos los campos son obligatorios;
// los punteros distinguen "ausente" de valor cero (stock 0, descripción vacía).
type CreateProductRequest struct {
	Name        string           `json:"name" validate:"required,min=1,max=127"`
	Description *string          `json:"description" validate:"required"`
	Stock       *int             `json:"stock" validate:"required,gte=-2147483648,lte=2147483647"`
	Price       *decimal.Decimal `json:"price" validate:"required"`
	Category    *string          `json:"category" validate:"required,max=127"`
}

// UpdateProductRequest entrada para actualización parcial: solo cambian los campos enviados.
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=127"`
	Description *string          `json:"description"`
	Stock       *int             `json:"stock" validate:"omitempty,gte=-2147483648,lte=2147483647"`
	Price       *decimal.Decimal `json:"price"`
	Category    *string          `json:"category" validate:"omitempty,max=127"`
}

// ProductResponse salida de un producto. Price va como string con 2 decimales ("9.99").
type ProductResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Stock       int       `json:"stock"`
	Price       string    `json:"price" example:"9.99"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
