// Package memory implementa los puertos de persistencia en memoria. Se usa en tests
// y reproduce las reglas que en PostgreSQL impone la tabla (UNIQUE(name), now()).
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/product-catalog/internal/application/usecase"
	"github.com/jhoicas/product-catalog/internal/domain"
	"github.com/jhoicas/product-catalog/internal/domain/entity"
	"github.com/jhoicas/product-catalog/internal/domain/repository"
)

var (
	_ repository.ProductRepository = (*ProductRepo)(nil)
	_ usecase.SessionRunner        = (*ProductRepo)(nil)
)

// ProductRepo almacén de productos protegido por mutex.
type ProductRepo struct {
	mu       sync.Mutex
	nextID   int64
	products map[int64]entity.Product
	last     time.Time
	now      func() time.Time
}

// NewProductRepository crea un almacén vacío.
func NewProductRepository() *ProductRepo {
	return &ProductRepo{products: make(map[int64]entity.Product), now: time.Now}
}

// Run cumple usecase.SessionRunner: en memoria no hay conexión que tomar ni liberar.
func (r *ProductRepo) Run(ctx context.Context, fn func(repo repository.ProductRepository) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(r)
}

// tick devuelve un instante estrictamente posterior al anterior, como now() entre sentencias.
func (r *ProductRepo) tick() time.Time {
	t := r.now().UTC()
	if !t.After(r.last) {
		t = r.last.Add(time.Microsecond)
	}
	r.last = t
	return t
}

func (r *ProductRepo) nameTaken(name string, except int64) bool {
	for id, p := range r.products {
		if id != except && p.Name == name {
			return true
		}
	}
	return false
}

func (r *ProductRepo) Create(_ context.Context, fields entity.ProductFields) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.nameTaken(fields.Name, 0) {
		return nil, domain.ErrDuplicate
	}
	r.nextID++
	now := r.tick()
	p := entity.Product{
		ID:          r.nextID,
		Name:        fields.Name,
		Description: fields.Description,
		Stock:       fields.Stock,
		Price:       fields.Price,
		Category:    fields.Category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.products[p.ID] = p
	return &p, nil
}

func (r *ProductRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *ProductRepo) GetByName(_ context.Context, name string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.Name == name {
			return &p, nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) List(_ context.Context, category *string) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := make([]*entity.Product, 0, len(r.products))
	for _, p := range r.products {
		if category != nil && p.Category != *category {
			continue
		}
		list = append(list, &p)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *ProductRepo) Update(_ context.Context, id int64, patch entity.ProductPatch) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	if patch.Name != nil {
		if r.nameTaken(*patch.Name, id) {
			return nil, domain.ErrDuplicate
		}
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	p.UpdatedAt = r.tick()
	r.products[id] = p
	return &p, nil
}

func (r *ProductRepo) Delete(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return false, nil
	}
	delete(r.products, id)
	return true, nil
}
