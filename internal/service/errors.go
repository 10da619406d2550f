package service

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyCart         = errors.New("cart is empty, nothing to order")
	ErrIllegalTransition = errors.New("illegal transition of order status")
	ErrCartItemNotFound  = errors.New("product is not in the cart")
)

// ValidationError reports a malformed or missing input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// MinimumOrderError rejects an order whose subtotal is below the minimum.
type MinimumOrderError struct {
	Minimum  decimal.Decimal
	Subtotal decimal.Decimal
}

func (e *MinimumOrderError) Shortfall() decimal.Decimal {
	return e.Minimum.Sub(e.Subtotal)
}

func (e *MinimumOrderError) Error() string {
	return fmt.Sprintf("minimum order amount is %s, add %s more to place the order",
		e.Minimum.StringFixed(0), e.Shortfall().String())
}
