package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/saadrehman171000/Homage-Publisher-sub000/internal/domain"
	"github.com/shopspring/decimal"
)

type CatalogHandler struct {
	catalog CatalogService
}

func NewCatalogHandler(catalog CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

type ProductRequestDTO struct {
	Title       string          `json:"title" validate:"required,max=200"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" validate:"money"`
	Discount    decimal.Decimal `json:"discount" validate:"percent"`
	Category    string          `json:"category" validate:"required"`
	Subject     string          `json:"subject"`
	Series      string          `json:"series"`
	Type        string          `json:"type"`
	NewArrival  bool            `json:"newArrival"`
	Featured    bool            `json:"featured"`
	Rating      *float64        `json:"rating" validate:"omitempty,min=0,max=5"`
	ReviewCount *int            `json:"reviewCount" validate:"omitempty,min=0"`
	ImageURL    string          `json:"imageUrl" validate:"omitempty,url"`
}

func (d ProductRequestDTO) toDomain(id string) *domain.Product {
	return &domain.Product{
		ID:          id,
		Title:       strings.TrimSpace(d.Title),
		Description: d.Description,
		Price:       d.Price,
		Discount:    d.Discount,
		Category:    d.Category,
		Subject:     d.Subject,
		Series:      d.Series,
		Type:        d.Type,
		NewArrival:  d.NewArrival,
		Featured:    d.Featured,
		Rating:      d.Rating,
		ReviewCount: d.ReviewCount,
		ImageURL:    d.ImageURL,
	}
}

// GET /api/v1/products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.ProductFilter{
		Category: strings.TrimSpace(q.Get("category")),
		Subject:  strings.TrimSpace(q.Get("subject")),
		Series:   strings.TrimSpace(q.Get("series")),
		Type:     strings.TrimSpace(q.Get("type")),
	}
	var err error
	if filter.Featured, err = optionalBool(q.Get("featured")); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "featured must be true or false")
		return
	}
	if filter.NewArrival, err = optionalBool(q.Get("newArrival")); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "newArrival must be true or false")
		return
	}

	products, err := h.catalog.ListProducts(r.Context(), filter)
	if err != nil {
		handleServiceError(w, r, err, "failed to load products")
		return
	}
	respondJSON(w, http.StatusOK, products)
}

// GET /api/v1/products/{product_id}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.catalog.GetProduct(r.Context(), chi.URLParam(r, "product_id"))
	if err != nil {
		handleServiceError(w, r, err, "failed to load product")
		return
	}
	respondJSON(w, http.StatusOK, p)
}

// POST /api/v1/admin/products
func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if err := validateRequest(req); err != nil {
		handleServiceError(w, r, err, "")
		return
	}

	p := req.toDomain("")
	if err := h.catalog.CreateProduct(r.Context(), p); err != nil {
		handleServiceError(w, r, err, "")
		return
	}
	respondJSON(w, http.StatusCreated, p)
}

// PUT /api/v1/admin/products/{product_id}
func (h *CatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if err := validateRequest(req); err != nil {
		handleServiceError(w, r, err, "")
		return
	}

	p := req.toDomain(chi.URLParam(r, "product_id"))
	if err := h.catalog.UpdateProduct(r.Context(), p); err != nil {
		handleServiceError(w, r, err, "")
		return
	}
	respondJSON(w, http.StatusOK, p)
}

// DELETE /api/v1/admin/products/{product_id}
func (h *CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteProduct(r.Context(), chi.URLParam(r, "product_id")); err != nil {
		handleServiceError(w, r, err, "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func optionalBool(raw string) (*bool, error) {
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
