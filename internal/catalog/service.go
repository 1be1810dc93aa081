package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/auracommerce/storefront/internal/domain"
	"github.com/auracommerce/storefront/internal/store"
)

var ErrProductNotFound = errors.New("product not found")

// Service exposes the catalog: reads for the shop view, create/update/delete
// for the admin console. Every mutation is a read-modify-write of the whole
// product slot.
type Service struct {
	store store.Store
	sfg   singleflight.Group // Coalesces concurrent catalog reads
}

func NewService(st store.Store) *Service {
	return &Service{store: st}
}

func (s *Service) Products(ctx context.Context) ([]domain.Product, error) {
	v, err, _ := s.sfg.Do("products", func() (interface{}, error) {
		return s.store.Products(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Product), nil
}

// Create assigns a fresh id and prepends the product to the catalog. Ids are
// millisecond timestamps, same scheme the store has always used; they are
// unique enough for a single admin but not collision-proof.
func (s *Service) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	products, err := s.store.Products(ctx)
	if err != nil {
		return domain.Product{}, fmt.Errorf("load products: %w", err)
	}

	p.ID = strconv.FormatInt(time.Now().UnixMilli(), 10)
	products = append([]domain.Product{p}, products...)

	if e2 := s.store.SaveProducts(ctx, products); e2 != nil {
		return domain.Product{}, fmt.Errorf("save products: %w", e2)
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, p domain.Product) error {
	products, err := s.store.Products(ctx)
	if err != nil {
		return fmt.Errorf("load products: %w", err)
	}

	for i := range products {
		if products[i].ID == p.ID {
			products[i] = p
			return s.store.SaveProducts(ctx, products)
		}
	}
	return ErrProductNotFound
}

func (s *Service) Delete(ctx context.Context, id string) error {
	products, err := s.store.Products(ctx)
	if err != nil {
		return fmt.Errorf("load products: %w", err)
	}

	for i := range products {
		if products[i].ID == id {
			products = append(products[:i], products[i+1:]...)
			return s.store.SaveProducts(ctx, products)
		}
	}
	return ErrProductNotFound
}

// Find returns the catalog entry for id, ErrProductNotFound otherwise.
func (s *Service) Find(ctx context.Context, id string) (domain.Product, error) {
	products, err := s.Products(ctx)
	if err != nil {
		return domain.Product{}, err
	}
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, ErrProductNotFound
}
