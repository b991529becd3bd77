package http

import (
	"net/http"

	"github.com/glowmart/storefront/internal/platform/metrics"
	"github.com/glowmart/storefront/internal/port/http/handler"
	"github.com/glowmart/storefront/internal/port/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

type RouterDeps struct {
	Cart     *handler.CartHandler
	Catalog  *handler.CatalogHandler
	Checkout *handler.CheckoutHandler
	Admin    *handler.AdminHandler
	Metrics  *metrics.Manager

	JWTSecret string
}

func NewRouter(deps RouterDeps) *chi.Mux {
	mux := chi.NewRouter()
	mux.Use(chimiddleware.RequestID)
	mux.Use(chimiddleware.RealIP)
	mux.Use(chimiddleware.Recoverer)
	mux.Use(middleware.Metrics(deps.Metrics))

	mux.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())

	// Public catalog browsing.
	mux.Get("/api/products", deps.Catalog.HandleListProducts)
	mux.Get("/api/products/search", deps.Catalog.HandleSearch)
	mux.Get("/api/products/{productID}", deps.Catalog.HandleGetProduct)

	// Customer routes require a session.
	mux.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(deps.JWTSecret))

		r.Get("/api/cart", deps.Cart.HandleGetCart)
		r.Post("/api/cart/items", deps.Cart.HandleAddItem)
		r.Patch("/api/cart/items/{productID}", deps.Cart.HandleUpdateQuantity)
		r.Delete("/api/cart/items/{productID}", deps.Cart.HandleRemoveItem)
		r.Delete("/api/cart", deps.Cart.HandleClearCart)
		r.Post("/api/logout", deps.Cart.HandleLogout)

		r.Post("/api/checkout", deps.Checkout.HandleCheckout)
		r.Get("/api/orders", deps.Checkout.HandleListOrders)
		r.Get("/api/orders/{orderID}", deps.Checkout.HandleGetOrder)
	})

	// Admin dashboard routes.
	mux.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(deps.JWTSecret))
		r.Use(middleware.RequireAdmin)

		r.Post("/api/admin/products", deps.Admin.HandleCreateProduct)
		r.Put("/api/admin/products/{productID}", deps.Admin.HandleUpdateProduct)
		r.Delete("/api/admin/products/{productID}", deps.Admin.HandleDeleteProduct)

		r.Get("/api/admin/orders", deps.Admin.HandleListOrders)
		r.Patch("/api/admin/orders/{orderID}/status", deps.Admin.HandleUpdateOrderStatus)

		r.Get("/api/admin/customers", deps.Admin.HandleListCustomers)
		r.Post("/api/admin/customers/{customerID}/deactivate", deps.Admin.HandleDeactivateCustomer)

		r.Get("/api/admin/coupons", deps.Admin.HandleListCoupons)
		r.Post("/api/admin/coupons", deps.Admin.HandleCreateCoupon)
		r.Delete("/api/admin/coupons/{couponID}", deps.Admin.HandleDeleteCoupon)

		r.Get("/api/admin/analytics/summary", deps.Admin.HandleAnalyticsSummary)
	})

	return mux
}
