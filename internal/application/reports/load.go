package reports

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/stockpro-cli/internal/domain/entity"
	"github.com/jhoicas/stockpro-cli/internal/domain/repository"
)

// ReadModel datos fuente de los reportes, cargados de una vez.
type ReadModel struct {
	Products   []entity.Product
	Categories []entity.Category
}

// Loader carga en paralelo los datos que consumen las proyecciones. La carga
// es todo-o-nada: si cualquiera de las consultas falla, falla el agregado
// completo y no se renderiza nada parcial.
type Loader struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	movements  repository.StockMovementRepository
}

// NewLoader construye el loader.
func NewLoader(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	movements repository.StockMovementRepository,
) *Loader {
	return &Loader{products: products, categories: categories, movements: movements}
}

// Load trae productos y categorías concurrentemente (vista de reportes).
func (l *Loader) Load(ctx context.Context) (*ReadModel, error) {
	var rm ReadModel
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rm.Products, err = l.products.List(ctx, repository.ProductFilter{})
		return err
	})
	g.Go(func() error {
		var err error
		rm.Categories, err = l.categories.List(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &rm, nil
}

// LoadDashboard trae productos y movimientos concurrentemente (dashboard).
func (l *Loader) LoadDashboard(ctx context.Context) ([]entity.Product, []entity.StockMovement, error) {
	var (
		products  []entity.Product
		movements []entity.StockMovement
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = l.products.List(ctx, repository.ProductFilter{})
		return err
	})
	g.Go(func() error {
		var err error
		movements, err = l.movements.List(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return products, movements, nil
}
