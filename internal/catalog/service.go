package catalog

import (
	"context"
	"errors"

	"github.com/storefront/storefront/internal/apperr"
	"github.com/storefront/storefront/internal/logger"
)

// Service serves catalog reads verbatim from the Store
type Service struct {
	store Store
	log   *logger.Logger
}

// NewService creates a new catalog Service
func NewService(store Store, log *logger.Logger) *Service {
	return &Service{
		store: store,
		log:   log.WithComponent("catalog"),
	}
}

// Categories returns every category
func (s *Service) Categories(ctx context.Context) ([]Category, error) {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, apperr.Upstream("list categories", err)
	}
	return categories, nil
}

// Products returns every product
func (s *Service) Products(ctx context.Context) ([]Product, error) {
	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return nil, apperr.Upstream("list products", err)
	}
	return products, nil
}

// Product returns the product whose numeric id matches
func (s *Service) Product(ctx context.Context, id int64) (*Product, error) {
	product, err := s.store.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			s.log.Debug().Int64("product_id", id).Msg("product not found")
			return nil, err
		}
		return nil, apperr.Upstream("get product", err)
	}
	return product, nil
}

// HeroImages returns the named hero image set
func (s *Service) HeroImages(ctx context.Context, variant HeroVariant) (*HeroImages, error) {
	if !variant.Valid() {
		return nil, apperr.InvalidInput("unknown hero image variant " + string(variant))
	}

	images, err := s.store.GetHeroImages(ctx, variant)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, err
		}
		return nil, apperr.Upstream("get hero images", err)
	}
	return &HeroImages{Images: images}, nil
}
