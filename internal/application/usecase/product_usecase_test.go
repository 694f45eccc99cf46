package usecase_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/product-catalog/internal/application/dto"
	"github.com/jhoicas/product-catalog/internal/application/usecase"
	"github.com/jhoicas/product-catalog/internal/domain"
	"github.com/jhoicas/product-catalog/internal/domain/entity"
	"github.com/jhoicas/product-catalog/internal/domain/repository"
	"github.com/jhoicas/product-catalog/internal/infrastructure/memory"
)

func ptr[T any](v T) *T { return &v }

func widgetRequest(name, category string) dto.CreateProductRequest {
	return dto.CreateProductRequest{
		Name:        name,
		Description: ptr("A widget"),
		Stock:       ptr(10),
		Price:       ptr(decimal.RequireFromString("9.99")),
		Category:    ptr(category),
	}
}

func newUseCase() *usecase.ProductUseCase {
	return usecase.NewProductUseCase(memory.NewProductRepository())
}

func TestCreate_AsignaIDYTimestampsIguales(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()

	a, err := uc.Create(ctx, widgetRequest("Widget", "tools"))
	require.NoError(t, err)
	b, err := uc.Create(ctx, widgetRequest("Gadget", "tools"))
	require.NoError(t, err)

	assert.NotZero(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID, "cada creación debe recibir un id nuevo")
	assert.Equal(t, a.CreatedAt, a.UpdatedAt)
	assert.Equal(t, "9.99", a.Price)
}

func TestCreate_NombreDuplicado(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()

	_, err := uc.Create(ctx, widgetRequest("Widget", "tools"))
	require.NoError(t, err)
	_, err = uc.Create(ctx, widgetRequest("Widget", "other"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// racyRepo simula la carrera: la consulta previa no ve al otro producto, pero el INSERT sí choca.
type racyRepo struct {
	repository.ProductRepository
}

func (racyRepo) GetByName(context.Context, string) (*entity.Product, error) { return nil, nil }

type racySessions struct{ inner *memory.ProductRepo }

func (s racySessions) Run(ctx context.Context, fn func(repo repository.ProductRepository) error) error {
	return fn(racyRepo{ProductRepository: s.inner})
}

func TestCreate_ConstraintUnicoGanaSobreConsultaPrevia(t *testing.T) {
	store := memory.NewProductRepository()
	ctx := context.Background()
	_, err := usecase.NewProductUseCase(store).Create(ctx, widgetRequest("Widget", "tools"))
	require.NoError(t, err)

	_, err = usecase.NewProductUseCase(racySessions{inner: store}).Create(ctx, widgetRequest("Widget", "tools"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	list, err := usecase.NewProductUseCase(store).List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, list, 1, "no debe quedar un duplicado silencioso")
}

func TestCreate_CamposObligatorios(t *testing.T) {
	uc := newUseCase()
	in := widgetRequest("Widget", "tools")
	in.Stock = nil
	_, err := uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_PrecioRedondeadoYRango(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()

	in := widgetRequest("Redondeo", "tools")
	in.Price = ptr(decimal.RequireFromString("10.005"))
	out, err := uc.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "10.01", out.Price)

	in = widgetRequest("Entero", "tools")
	in.Price = ptr(decimal.NewFromInt(10))
	out, err = uc.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "10.00", out.Price)

	in = widgetRequest("Caro", "tools")
	in.Price = ptr(decimal.New(1, 8))
	_, err = uc.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStock_RangoDeInteger(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()

	in := widgetRequest("Maximo", "tools")
	in.Stock = ptr(math.MaxInt32)
	created, err := uc.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt32, created.Stock)

	in = widgetRequest("Minimo", "tools")
	in.Stock = ptr(math.MinInt32)
	_, err = uc.Create(ctx, in)
	require.NoError(t, err)

	in = widgetRequest("Desborde", "tools")
	in.Stock = ptr(math.MaxInt32 + 1)
	_, err = uc.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Update(ctx, created.ID, dto.UpdateProductRequest{Stock: ptr(math.MinInt32 - 1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt32, got.Stock, "un update rechazado no modifica el producto")
}

func TestGetByID_RoundTrip(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()

	in := widgetRequest("Widget", "tools")
	created, err := uc.Create(ctx, in)
	require.NoError(t, err)

	got, err := uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
	assert.Equal(t, in.Name, got.Name)
	assert.Equal(t, *in.Description, got.Description)
	assert.Equal(t, *in.Stock, got.Stock)
	assert.Equal(t, *in.Category, got.Category)
}

func TestOperaciones_IDInexistente(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()

	_, err := uc.GetByID(ctx, 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Update(ctx, 404, dto.UpdateProductRequest{Stock: ptr(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Update(ctx, 404, dto.UpdateProductRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, uc.Delete(ctx, 404), domain.ErrNotFound)
}

func TestUpdate_Parcial(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()

	created, err := uc.Create(ctx, widgetRequest("Widget", "tools"))
	require.NoError(t, err)

	updated, err := uc.Update(ctx, created.ID, dto.UpdateProductRequest{Stock: ptr(5)})
	require.NoError(t, err)

	assert.Equal(t, 5, updated.Stock)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.Name, updated.Name)
	assert.Equal(t, created.Description, updated.Description)
	assert.Equal(t, created.Price, updated.Price)
	assert.Equal(t, created.Category, updated.Category)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt), "updated_at debe avanzar")
}

func TestUpdate_CuerpoVacioSoloRefrescaUpdatedAt(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()

	created, err := uc.Create(ctx, widgetRequest("Widget", "tools"))
	require.NoError(t, err)

	updated, err := uc.Update(ctx, created.ID, dto.UpdateProductRequest{})
	require.NoError(t, err)

	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
	updated.UpdatedAt = created.UpdatedAt
	assert.Equal(t, created, updated)
}

func TestUpdate_RenombrarADuplicado(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()

	_, err := uc.Create(ctx, widgetRequest("Widget", "tools"))
	require.NoError(t, err)
	other, err := uc.Create(ctx, widgetRequest("Gadget", "tools"))
	require.NoError(t, err)

	_, err = uc.Update(ctx, other.ID, dto.UpdateProductRequest{Name: ptr("Widget")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// renombrar al mismo nombre no es conflicto
	_, err = uc.Update(ctx, other.ID, dto.UpdateProductRequest{Name: ptr("Gadget")})
	assert.NoError(t, err)
}

func TestDelete_BorradoFisico(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()

	created, err := uc.Create(ctx, widgetRequest("Widget", "tools"))
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, created.ID))
	_, err = uc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, created.ID), domain.ErrNotFound)

	// el nombre queda libre otra vez
	_, err = uc.Create(ctx, widgetRequest("Widget", "tools"))
	assert.NoError(t, err)
}

func TestList_FiltroPorCategoria(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()

	for _, p := range []struct{ name, category string }{
		{"Martillo", "tools"}, {"Taladro", "tools"}, {"Manzana", "food"},
	} {
		_, err := uc.Create(ctx, widgetRequest(p.name, p.category))
		require.NoError(t, err)
	}

	all, err := uc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	tools, err := uc.List(ctx, "tools")
	require.NoError(t, err)
	names := make([]string, 0, len(tools))
	for _, p := range tools {
		assert.Equal(t, "tools", p.Category)
		names = append(names, p.Name)
	}
	assert.ElementsMatch(t, []string{"Martillo", "Taladro"}, names)

	none, err := uc.List(ctx, "toys")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

type failingSessions struct{ err error }

func (f failingSessions) Run(context.Context, func(repository.ProductRepository) error) error {
	return f.err
}

func TestErroresDeSesionSePropagan(t *testing.T) {
	boom := errors.New("acquire connection: connection refused")
	uc := usecase.NewProductUseCase(failingSessions{err: boom})
	ctx := context.Background()

	_, err := uc.Create(ctx, widgetRequest("Widget", "tools"))
	assert.ErrorIs(t, err, boom)
	_, err = uc.GetByID(ctx, 1)
	assert.ErrorIs(t, err, boom)
	_, err = uc.Update(ctx, 1, dto.UpdateProductRequest{})
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, uc.Delete(ctx, 1), boom)
	_, err = uc.List(ctx, "")
	assert.ErrorIs(t, err, boom)
}
