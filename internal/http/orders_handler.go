package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/saadrehman171000/Homage-Publisher-sub000/internal/domain"
	"github.com/saadrehman171000/Homage-Publisher-sub000/internal/invoice"
	"github.com/saadrehman171000/Homage-Publisher-sub000/internal/service"
	"github.com/saadrehman171000/Homage-Publisher-sub000/pkg/logger"
	"github.com/shopspring/decimal"
)

type OrdersHandler struct {
	orders OrderService
	auth   *AdminAuth
}

func NewOrdersHandler(orders OrderService, auth *AdminAuth) *OrdersHandler {
	return &OrdersHandler{orders: orders, auth: auth}
}

type OrderItemDTO struct {
	ProductID string          `json:"productId"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Discount  decimal.Decimal `json:"discount"`
	Quantity  int             `json:"quantity"`
	Image     string          `json:"image"`
}

// CreateOrderRequestDTO mirrors the storefront checkout form. Subtotal and
// total are accepted but recomputed from the items.
type CreateOrderRequestDTO struct {
	Items       []OrderItemDTO  `json:"items"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	ShippingFee decimal.Decimal `json:"shippingFee"`
	Total       decimal.Decimal `json:"total"`
	domain.ShippingInfo
	PaymentMethod string `json:"paymentMethod"`
}

type UpdateOrderRequestDTO struct {
	ID         string              `json:"id"`
	Status     *domain.OrderStatus `json:"status"`
	ItemIndex  *int                `json:"itemIndex"`
	ItemStatus *domain.ItemStatus  `json:"itemStatus"`
	Version    *int                `json:"version"`
}

type OrderLookupDTO struct {
	ShippingEmail string `json:"shippingEmail" validate:"omitempty,email"`
	ShippingPhone string `json:"shippingPhone" validate:"omitempty,max=32"`
}

// POST /api/v1/orders
func (h *OrdersHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	items := make([]domain.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, domain.OrderItem{
			ProductID: it.ProductID,
			Title:     it.Title,
			Price:     it.Price,
			Discount:  it.Discount,
			Quantity:  it.Quantity,
			Image:     it.Image,
		})
	}

	order, err := h.orders.CreateOrder(r.Context(), service.CreateOrderInput{
		Items:         items,
		ShippingFee:   req.ShippingFee,
		Shipping:      req.ShippingInfo,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		handleServiceError(w, r, err, GenericCheckoutError)
		return
	}

	if !req.Subtotal.IsZero() && !req.Subtotal.Equal(order.Subtotal) {
		logger.FromContext(r.Context()).InfoContext(r.Context(), "client subtotal differs from computed subtotal",
			"order_id", order.ID.String(),
			"client", req.Subtotal.String(),
			"computed", order.Subtotal.String())
	}

	respondJSON(w, http.StatusCreated, order)
}

// GET /api/v1/orders?shippingEmail=&shippingPhone=
// Without a filter the full list is returned to administrators only.
func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lookup := OrderLookupDTO{
		ShippingEmail: strings.TrimSpace(q.Get("shippingEmail")),
		ShippingPhone: strings.TrimSpace(q.Get("shippingPhone")),
	}
	if err := validateRequest(lookup); err != nil {
		handleServiceError(w, r, err, "")
		return
	}

	filter := domain.OrderFilter{ShippingEmail: lookup.ShippingEmail, ShippingPhone: lookup.ShippingPhone}
	if filter.IsEmpty() {
		if _, err := h.auth.Authenticate(r); err != nil {
			respondAuthError(w, err)
			return
		}
	}

	orders, err := h.orders.ListOrders(r.Context(), filter)
	if err != nil {
		handleServiceError(w, r, err, "failed to load orders")
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

// GET /api/v1/admin/orders/{order_id}
func (h *OrdersHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := orderIDParam(w, r)
	if !ok {
		return
	}
	order, err := h.orders.GetOrder(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err, "")
		return
	}
	respondJSON(w, http.StatusOK, order)
}

// PATCH /api/v1/admin/orders/{order_id}
func (h *OrdersHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := orderIDParam(w, r)
	if !ok {
		return
	}

	var req UpdateOrderRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if req.ID != "" && req.ID != id.String() {
		respondError(w, http.StatusBadRequest, "invalid_request", "id in body does not match the path")
		return
	}

	order, err := h.orders.UpdateOrder(r.Context(), service.UpdateOrderInput{
		ID:         id,
		Status:     req.Status,
		ItemIndex:  req.ItemIndex,
		ItemStatus: req.ItemStatus,
		Version:    req.Version,
	})
	if err != nil {
		handleServiceError(w, r, err, "")
		return
	}

	logger.FromContext(r.Context()).InfoContext(r.Context(), "admin updated order",
		"order_id", id.String(),
		"admin", getAdminEmail(r.Context()))
	respondJSON(w, http.StatusOK, order)
}

// DELETE /api/v1/admin/orders/{order_id}
func (h *OrdersHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := orderIDParam(w, r)
	if !ok {
		return
	}
	order, err := h.orders.DeleteOrder(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err, "")
		return
	}
	respondJSON(w, http.StatusOK, order)
}

// GET /api/v1/admin/orders/{order_id}/invoice
func (h *OrdersHandler) Invoice(w http.ResponseWriter, r *http.Request) {
	id, ok := orderIDParam(w, r)
	if !ok {
		return
	}
	order, err := h.orders.GetOrder(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err, "")
		return
	}

	pdf, err := invoice.Render(order)
	if err != nil {
		handleServiceError(w, r, err, "failed to render invoice")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename="+invoice.Filename(order))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

func orderIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "order_id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "order_id must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}
