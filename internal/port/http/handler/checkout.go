package handler

import (
	"encoding/json"
	"net/http"

	"github.com/glowmart/storefront/internal/platform/logger"
	"github.com/glowmart/storefront/internal/port/http/middleware"
	"github.com/glowmart/storefront/internal/service"
	"github.com/go-chi/chi/v5"
)

type CheckoutHandler struct {
	checkout service.CheckoutService
	orders   service.OrderService
	logger   logger.Logger
}

func NewCheckoutHandler(checkout service.CheckoutService, orders service.OrderService, log logger.Logger) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout, orders: orders, logger: log}
}

func (h *CheckoutHandler) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	var req service.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warnf("Invalid request body for Checkout: %v", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	confirmation, err := h.checkout.Checkout(r.Context(), middleware.UserID(r.Context()), req)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, confirmation)
}

func (h *CheckoutHandler) HandleListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListUserOrders(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *CheckoutHandler) HandleGetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")

	order, err := h.orders.GetOrder(r.Context(), orderID, middleware.UserID(r.Context()), middleware.IsAdmin(r.Context()))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}
