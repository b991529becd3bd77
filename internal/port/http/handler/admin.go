package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/glowmart/storefront/internal/adapter/backend"
	"github.com/glowmart/storefront/internal/domain/entity"
	"github.com/glowmart/storefront/internal/platform/logger"
	"github.com/go-chi/chi/v5"
)

// AdminHandler serves the admin dashboard: products, orders, customers,
// coupons and the analytics overview. All of it is a role-gated passthrough of
// the backend's admin REST surface.
type AdminHandler struct {
	backend *backend.Client
	logger  logger.Logger
}

func NewAdminHandler(b *backend.Client, log logger.Logger) *AdminHandler {
	return &AdminHandler{backend: b, logger: log}
}

func (h *AdminHandler) HandleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var product entity.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := product.Validate(); err != nil {
		respondError(w, h.logger, err)
		return
	}

	created, err := h.backend.CreateProduct(r.Context(), &product)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *AdminHandler) HandleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	var product entity.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	product.ID = chi.URLParam(r, "productID")
	if err := product.Validate(); err != nil {
		respondError(w, h.logger, err)
		return
	}

	updated, err := h.backend.UpdateProduct(r.Context(), &product)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *AdminHandler) HandleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.backend.DeleteProduct(r.Context(), chi.URLParam(r, "productID")); err != nil {
		respondError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) HandleListOrders(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))

	orders, err := h.backend.ListAllOrders(r.Context(), r.URL.Query().Get("status"), page, pageSize)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *AdminHandler) HandleUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Status == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "status is required"})
		return
	}

	order, err := h.backend.UpdateOrderStatus(r.Context(), chi.URLParam(r, "orderID"), entity.OrderStatus(req.Status))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *AdminHandler) HandleListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.backend.ListCustomers(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, customers)
}

func (h *AdminHandler) HandleDeactivateCustomer(w http.ResponseWriter, r *http.Request) {
	if err := h.backend.DeactivateCustomer(r.Context(), chi.URLParam(r, "customerID")); err != nil {
		respondError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) HandleListCoupons(w http.ResponseWriter, r *http.Request) {
	coupons, err := h.backend.ListCoupons(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, coupons)
}

func (h *AdminHandler) HandleCreateCoupon(w http.ResponseWriter, r *http.Request) {
	var coupon entity.Coupon
	if err := json.NewDecoder(r.Body).Decode(&coupon); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if coupon.Code == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "coupon code is required"})
		return
	}

	created, err := h.backend.CreateCoupon(r.Context(), &coupon)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *AdminHandler) HandleDeleteCoupon(w http.ResponseWriter, r *http.Request) {
	if err := h.backend.DeleteCoupon(r.Context(), chi.URLParam(r, "couponID")); err != nil {
		respondError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) HandleAnalyticsSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.backend.AnalyticsSummary(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
