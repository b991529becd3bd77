package handler

import (
	"encoding/json"
	"net/http"

	"github.com/glowmart/storefront/internal/platform/logger"
	"github.com/glowmart/storefront/internal/port/http/middleware"
	"github.com/glowmart/storefront/internal/service"
	"github.com/go-chi/chi/v5"
)

type CartHandler struct {
	carts  service.CartService
	logger logger.Logger
}

func NewCartHandler(carts service.CartService, log logger.Logger) *CartHandler {
	return &CartHandler{carts: carts, logger: log}
}

// Quantity is a pointer so an omitted field defaults to 1 while an explicit
// zero or negative value is rejected downstream.
type addItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  *int   `json:"quantity"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) HandleGetCart(w http.ResponseWriter, r *http.Request) {
	snap, err := h.carts.GetCart(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *CartHandler) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warnf("Invalid request body for AddItem: %v", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	snap, err := h.carts.AddItem(r.Context(), middleware.UserID(r.Context()), req.ProductID, quantity)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *CartHandler) HandleUpdateQuantity(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warnf("Invalid request body for UpdateQuantity: %v", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	snap, err := h.carts.UpdateItemQuantity(r.Context(), middleware.UserID(r.Context()), productID, req.Quantity)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *CartHandler) HandleRemoveItem(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	snap, err := h.carts.RemoveItem(r.Context(), middleware.UserID(r.Context()), productID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *CartHandler) HandleClearCart(w http.ResponseWriter, r *http.Request) {
	snap, err := h.carts.ClearCart(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// HandleLogout ends the session; the cart is cleared wholly, per the session
// lifecycle.
func (h *CartHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if _, err := h.carts.ClearCart(r.Context(), middleware.UserID(r.Context())); err != nil {
		respondError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
