package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/glowmart/storefront/internal/adapter/backend"
	"github.com/glowmart/storefront/internal/platform/logger"
	"github.com/glowmart/storefront/internal/service"
	"github.com/go-chi/chi/v5"
)

type CatalogHandler struct {
	catalog service.CatalogService
	logger  logger.Logger
}

func NewCatalogHandler(catalog service.CatalogService, log logger.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, logger: log}
}

func productQueryFromRequest(r *http.Request) backend.ProductQuery {
	q := backend.ProductQuery{
		Search:   r.URL.Query().Get("q"),
		Category: r.URL.Query().Get("category"),
	}
	if page, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		q.Page = page
	}
	if size, err := strconv.Atoi(r.URL.Query().Get("page_size")); err == nil {
		q.PageSize = size
	}
	return q
}

func (h *CatalogHandler) HandleListProducts(w http.ResponseWriter, r *http.Request) {
	page, err := h.catalog.Browse(r.Context(), productQueryFromRequest(r))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *CatalogHandler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	product, err := h.catalog.GetProduct(r.Context(), productID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *CatalogHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	page, err := h.catalog.Search(r.Context(), productQueryFromRequest(r))
	if err != nil {
		// A superseded query has nothing to render; tell the client so.
		if errors.Is(err, service.ErrStaleSearch) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		respondError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}
