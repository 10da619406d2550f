package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/saadrehman171000/Homage-Publisher-sub000/internal/domain"
	"github.com/saadrehman171000/Homage-Publisher-sub000/internal/service"
	"github.com/shopspring/decimal"
)

type CartHandler struct {
	carts   CartService
	minimum decimal.Decimal
}

func NewCartHandler(carts CartService, minimum decimal.Decimal) *CartHandler {
	return &CartHandler{carts: carts, minimum: minimum}
}

type AddItemRequestDTO struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=1"`
}

// UpdateQuantityRequestDTO accepts any quantity. Zero or below removes the line.
type UpdateQuantityRequestDTO struct {
	Quantity *int `json:"quantity" validate:"required"`
}

type CheckoutRequestDTO struct {
	ShippingFee decimal.Decimal `json:"shippingFee" validate:"money"`
	domain.ShippingInfo
	PaymentMethod string `json:"paymentMethod"`
}

type CartResponseDTO struct {
	Items        []domain.CartLine `json:"items"`
	ItemCount    int               `json:"itemCount"`
	Subtotal     decimal.Decimal   `json:"subtotal"`
	MinimumOrder decimal.Decimal   `json:"minimumOrder"`
	Shortfall    decimal.Decimal   `json:"shortfall"`
	CanCheckout  bool              `json:"canCheckout"`
}

func (h *CartHandler) toResponse(cart *domain.Cart) CartResponseDTO {
	subtotal := cart.Subtotal()
	shortfall := h.minimum.Sub(subtotal)
	if shortfall.IsNegative() {
		shortfall = decimal.Zero
	}
	count := 0
	lines := cart.Lines()
	for _, l := range lines {
		count += l.Quantity
	}
	return CartResponseDTO{
		Items:        lines,
		ItemCount:    count,
		Subtotal:     subtotal,
		MinimumOrder: h.minimum,
		Shortfall:    shortfall,
		CanCheckout:  !cart.IsEmpty() && shortfall.IsZero(),
	}
}

// GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := requireSession(w, r)
	if !ok {
		return
	}
	cart, err := h.carts.GetCart(r.Context(), sessionID)
	if err != nil {
		handleServiceError(w, r, err, "failed to load cart")
		return
	}
	respondJSON(w, http.StatusOK, h.toResponse(cart))
}

// POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req AddItemRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if err := validateRequest(req); err != nil {
		handleServiceError(w, r, err, "")
		return
	}

	cart, err := h.carts.AddItem(r.Context(), sessionID, req.ProductID, req.Quantity)
	if err != nil {
		handleServiceError(w, r, err, "failed to update cart")
		return
	}
	respondJSON(w, http.StatusCreated, h.toResponse(cart))
}

// PUT /api/v1/cart/items/{product_id}
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req UpdateQuantityRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if err := validateRequest(req); err != nil {
		handleServiceError(w, r, err, "")
		return
	}

	cart, err := h.carts.UpdateQuantity(r.Context(), sessionID, chi.URLParam(r, "product_id"), *req.Quantity)
	if err != nil {
		handleServiceError(w, r, err, "failed to update cart")
		return
	}
	respondJSON(w, http.StatusOK, h.toResponse(cart))
}

// DELETE /api/v1/cart/items/{product_id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := requireSession(w, r)
	if !ok {
		return
	}
	cart, err := h.carts.RemoveItem(r.Context(), sessionID, chi.URLParam(r, "product_id"))
	if err != nil {
		handleServiceError(w, r, err, "failed to update cart")
		return
	}
	respondJSON(w, http.StatusOK, h.toResponse(cart))
}

// DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := requireSession(w, r)
	if !ok {
		return
	}
	if err := h.carts.ClearCart(r.Context(), sessionID); err != nil {
		handleServiceError(w, r, err, "failed to clear cart")
		return
	}
	respondJSON(w, http.StatusOK, h.toResponse(domain.NewCart()))
}

// POST /api/v1/checkout
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req CheckoutRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if err := validateRequest(req); err != nil {
		handleServiceError(w, r, err, "")
		return
	}

	order, err := h.carts.Checkout(r.Context(), sessionID, service.CheckoutInput{
		ShippingFee:   req.ShippingFee,
		Shipping:      req.ShippingInfo,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		handleServiceError(w, r, err, GenericCheckoutError)
		return
	}
	respondJSON(w, http.StatusCreated, order)
}

func requireSession(w http.ResponseWriter, r *http.Request) (string, bool) {
	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing cart session")
		return "", false
	}
	return sessionID, true
}
