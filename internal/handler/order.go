package handler

import (
	"errors"
	"net/http"

	"github.com/storefront/storefront/internal/middleware"
	"github.com/storefront/storefront/internal/order"
)

// ConfirmOrder handles POST /order_confirmation
// Validates the checkout payload and emails the confirmation to the customer.
func (h *Handler) ConfirmOrder(w http.ResponseWriter, r *http.Request) {
	var req order.Request
	if err := readJSON(w, r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.orderSvc.Confirm(r.Context(), &req, middleware.GetRequestID(r.Context()))
	if err != nil {
		switch {
		case errors.Is(err, order.ErrMissingCustomerDetails):
			writeMessage(w, http.StatusBadRequest, "Missing customer details")
		case errors.Is(err, order.ErrEmptyCart):
			writeMessage(w, http.StatusBadRequest, "Cart is empty")
		case errors.Is(err, order.ErrInvalidCart):
			writeMessage(w, http.StatusBadRequest, "Invalid cart")
		default:
			// detail is logged by the order service
			writeMessage(w, http.StatusInternalServerError, "Email sending failed")
		}
		return
	}

	writeMessage(w, http.StatusOK, "Order confirmed & email sent")
}
