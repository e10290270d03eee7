package catalog

import (
	"context"

	"github.com/storefront/storefront/internal/apperr"
)

// Store errors
var (
	ErrProductNotFound = apperr.NotFound("product not found")
	ErrImagesNotFound  = apperr.NotFound("images not found")
)

// Store is the read-only view of the catalog this service needs.
// Implementations return ErrProductNotFound / ErrImagesNotFound for missing entities.
type Store interface {
	ListCategories(ctx context.Context) ([]Category, error)
	ListProducts(ctx context.Context) ([]Product, error)
	GetProduct(ctx context.Context, id int64) (*Product, error)
	GetHeroImages(ctx context.Context, variant HeroVariant) ([]string, error)
}
