package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/saadrehman171000/Homage-Publisher-sub000/internal/repository"
	"github.com/saadrehman171000/Homage-Publisher-sub000/internal/service"
	"github.com/saadrehman171000/Homage-Publisher-sub000/pkg/logger"
)

// GenericCheckoutError is shown to customers when placing an order fails
// for a reason they cannot fix.
const GenericCheckoutError = "failed to place order, try again"

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleServiceError maps service and repository errors to HTTP responses.
// For unexpected errors the message is internalMsg, or the error text when
// internalMsg is empty.
func handleServiceError(w http.ResponseWriter, r *http.Request, err error, internalMsg string) {
	var minErr *service.MinimumOrderError
	var valErr *service.ValidationError

	switch {
	case errors.As(err, &minErr):
		respondJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: minErr.Error(),
			Code:  "below_minimum",
			Details: map[string]string{
				"minimum":   minErr.Minimum.String(),
				"subtotal":  minErr.Subtotal.String(),
				"shortfall": minErr.Shortfall().String(),
			},
		})
	case errors.As(err, &valErr):
		respondJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   valErr.Error(),
			Code:    "invalid_request",
			Details: map[string]string{"field": valErr.Field},
		})
	case errors.Is(err, service.ErrEmptyCart):
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, repository.ErrOrderNotFound),
		errors.Is(err, repository.ErrProductNotFound),
		errors.Is(err, repository.ErrAnnouncementNotFound),
		errors.Is(err, repository.ErrEventNotFound),
		errors.Is(err, service.ErrCartItemNotFound):
		respondError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, repository.ErrVersionConflict):
		respondError(w, http.StatusConflict, "version_conflict", err.Error())
	case errors.Is(err, service.ErrIllegalTransition):
		respondError(w, http.StatusConflict, "illegal_transition", err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		respondError(w, http.StatusGatewayTimeout, "timeout", "request timed out")
	default:
		logger.FromContext(r.Context()).ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err)
		if internalMsg == "" {
			internalMsg = err.Error()
		}
		respondError(w, http.StatusInternalServerError, "internal_error", internalMsg)
	}
}

// decodeJSON reads a single JSON document from the request body.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return fmt.Errorf("request body exceeds %d bytes", maxErr.Limit)
		case errors.Is(err, io.EOF):
			return errors.New("request body is empty")
		default:
			return errors.New("invalid JSON body")
		}
	}
	return nil
}
