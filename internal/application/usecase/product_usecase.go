package usecase

import (
	"context"
	"math"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/product-catalog/internal/application/dto"
	"github.com/jhoicas/product-catalog/internal/domain"
	"github.com/jhoicas/product-catalog/internal/domain/entity"
	"github.com/jhoicas/product-catalog/internal/domain/repository"
)

// priceScale decimales con que se guarda el precio (NUMERIC(10,2)).
const priceScale = 2

// maxPrice primer valor que ya no cabe en NUMERIC(10,2).
var maxPrice = decimal.New(1, 8)

// ProductUseCase casos de uso CRUD del catálogo. Cada operación corre en su propia sesión.
type ProductUseCase struct {
	sessions SessionRunner
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(sessions SessionRunner) *ProductUseCase {
	return &ProductUseCase{sessions: sessions}
}

// Create crea un producto. El nombre debe ser único: la consulta previa es solo un atajo,
// el constraint UNIQUE de la tabla es quien decide ante creaciones concurrentes.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Description == nil || in.Stock == nil || in.Price == nil || in.Category == nil {
		return nil, domain.ErrInvalidInput
	}
	if err := checkStock(*in.Stock); err != nil {
		return nil, err
	}
	price, err := normalizePrice(*in.Price)
	if err != nil {
		return nil, err
	}
	fields := entity.ProductFields{
		Name:        in.Name,
		Description: *in.Description,
		Stock:       *in.Stock,
		Price:       price,
		Category:    *in.Category,
	}

	var created *entity.Product
	err = uc.sessions.Run(ctx, func(repo repository.ProductRepository) error {
		existing, err := repo.GetByName(ctx, fields.Name)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicate
		}
		created, err = repo.Create(ctx, fields)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(created), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	var product *entity.Product
	err := uc.sessions.Run(ctx, func(repo repository.ProductRepository) error {
		var err error
		product, err = repo.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update aplica una actualización parcial. Con el cuerpo vacío solo se refresca updated_at.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	patch := entity.ProductPatch{
		Name:        in.Name,
		Description: in.Description,
		Stock:       in.Stock,
		Category:    in.Category,
	}
	if in.Stock != nil {
		if err := checkStock(*in.Stock); err != nil {
			return nil, err
		}
	}
	if in.Price != nil {
		price, err := normalizePrice(*in.Price)
		if err != nil {
			return nil, err
		}
		patch.Price = &price
	}

	var product *entity.Product
	err := uc.sessions.Run(ctx, func(repo repository.ProductRepository) error {
		var err error
		product, err = repo.Update(ctx, id, patch)
		return err
	})
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto por ID.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	var deleted bool
	err := uc.sessions.Run(ctx, func(repo repository.ProductRepository) error {
		var err error
		deleted, err = repo.Delete(ctx, id)
		return err
	})
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}
	return nil
}

// List lista el catálogo. Categoría vacía significa sin filtro.
func (uc *ProductUseCase) List(ctx context.Context, category string) ([]dto.ProductResponse, error) {
	var filter *string
	if category != "" {
		filter = &category
	}
	var list []*entity.Product
	err := uc.sessions.Run(ctx, func(repo repository.ProductRepository) error {
		var err error
		list, err = repo.List(ctx, filter)
		return err
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

// normalizePrice redondea a 2 decimales y rechaza valores que no caben en la columna.
func normalizePrice(p decimal.Decimal) (decimal.Decimal, error) {
	rounded := p.Round(priceScale)
	if rounded.Abs().GreaterThanOrEqual(maxPrice) {
		return decimal.Decimal{}, domain.ErrInvalidInput
	}
	return rounded, nil
}

// checkStock rechaza valores fuera de INTEGER (32 bits).
func checkStock(stock int) error {
	if stock < math.MinInt32 || stock > math.MaxInt32 {
		return domain.ErrInvalidInput
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Stock:       p.Stock,
		Price:       p.Price.StringFixed(priceScale),
		Category:    p.Category,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
