package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/storefront/storefront/internal/apperr"
	"github.com/storefront/storefront/internal/catalog"
)

// ListCategories handles GET /categories
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalogSvc.Categories(r.Context())
	if err != nil {
		h.requestLog(r).Error().Err(err).Msg("failed to fetch categories")
		writeError(w, http.StatusInternalServerError, "Error fetching categories")
		return
	}

	writeJSON(w, http.StatusOK, categories)
}

// ListProducts handles GET /products
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalogSvc.Products(r.Context())
	if err != nil {
		h.requestLog(r).Error().Err(err).Msg("failed to fetch products")
		writeError(w, http.StatusInternalServerError, "Error fetching products")
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// GetProduct handles GET /product/{id}, where id is the numeric product id
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	product, err := h.catalogSvc.Product(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "Product not found")
			return
		}
		h.requestLog(r).Error().Err(err).Int64("product_id", id).Msg("failed to fetch product")
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// GetDesktopHeroImages handles GET /get_desktop_hero_images
func (h *Handler) GetDesktopHeroImages(w http.ResponseWriter, r *http.Request) {
	h.heroImages(w, r, catalog.HeroDesktop)
}

// GetMobileHeroImages handles GET /get_mobile_hero_images
func (h *Handler) GetMobileHeroImages(w http.ResponseWriter, r *http.Request) {
	h.heroImages(w, r, catalog.HeroMobile)
}

func (h *Handler) heroImages(w http.ResponseWriter, r *http.Request, variant catalog.HeroVariant) {
	images, err := h.catalogSvc.HeroImages(r.Context(), variant)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "Images not found")
			return
		}
		h.requestLog(r).Error().Err(err).Str("variant", string(variant)).Msg("failed to fetch hero images")
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, images)
}
