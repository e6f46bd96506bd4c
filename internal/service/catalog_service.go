package service

import (
	"context"
	"errors"

	"github.com/fjod/storefront/internal/cart"
	"github.com/fjod/storefront/internal/catalog"
	"github.com/fjod/storefront/internal/domain"
)

type ProductLister interface {
	GetAllProducts(ctx context.Context) ([]*domain.Product, error)
	GetCategoryConditions(ctx context.Context) (map[string][]string, error)
}

type CatalogService struct {
	products ProductLister
	lookup   cart.ProductLookup
}

func NewCatalogService(products ProductLister, lookup cart.ProductLookup) *CatalogService {
	return &CatalogService{products: products, lookup: lookup}
}

// Page returns one catalog page, products sorted by name.
func (s *CatalogService) Page(ctx context.Context, pageIndex int) (*catalog.Page, error) {
	products, err := s.products.GetAllProducts(ctx)
	if err != nil {
		return nil, persistence("list products", err)
	}
	page := catalog.Paginate(products, pageIndex, catalog.PageSize)
	for i, p := range page.Products {
		withImage := *p
		withImage.ImageURL = p.DisplayImage()
		page.Products[i] = &withImage
	}
	return &page, nil
}

func (s *CatalogService) Product(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.lookup.GetProduct(ctx, id)
	if errors.Is(err, domain.ErrProductNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, persistence("get product", err)
	}
	product.ImageURL = product.DisplayImage()
	return product, nil
}

// Filters lists the item conditions available in each category.
func (s *CatalogService) Filters(ctx context.Context) (map[string][]string, error) {
	filters, err := s.products.GetCategoryConditions(ctx)
	if err != nil {
		return nil, persistence("list categories", err)
	}
	return filters, nil
}
