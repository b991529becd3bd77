package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/glowmart/storefront/internal/domain/entity"
)

// Admin dashboard calls. These are straight passthroughs of the backend's
// admin REST surface; the storefront only gates them behind the admin role.

func (c *Client) CreateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	var created entity.Product
	if err := c.do(ctx, http.MethodPost, "/api/admin/products", nil, product, &created, nil); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	var updated entity.Product
	path := "/api/admin/products/" + url.PathEscape(product.ID)
	if err := c.do(ctx, http.MethodPut, path, nil, product, &updated, nil); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteProduct(ctx context.Context, productID string) error {
	return c.do(ctx, http.MethodDelete, "/api/admin/products/"+url.PathEscape(productID), nil, nil, nil, nil)
}

func (c *Client) ListAllOrders(ctx context.Context, status string, page, pageSize int) ([]entity.Order, error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", status)
	}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		q.Set("page_size", strconv.Itoa(pageSize))
	}

	var orders []entity.Order
	if err := c.do(ctx, http.MethodGet, "/api/admin/orders", q, nil, &orders, nil); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, orderID string, status entity.OrderStatus) (*entity.Order, error) {
	body := map[string]string{"status": string(status)}
	var order entity.Order
	path := "/api/admin/orders/" + url.PathEscape(orderID) + "/status"
	if err := c.do(ctx, http.MethodPatch, path, nil, body, &order, nil); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) ListCustomers(ctx context.Context, search string) ([]entity.Customer, error) {
	q := url.Values{}
	if search != "" {
		q.Set("q", search)
	}

	var customers []entity.Customer
	if err := c.do(ctx, http.MethodGet, "/api/admin/customers", q, nil, &customers, nil); err != nil {
		return nil, err
	}
	return customers, nil
}

func (c *Client) DeactivateCustomer(ctx context.Context, customerID string) error {
	path := "/api/admin/customers/" + url.PathEscape(customerID) + "/deactivate"
	return c.do(ctx, http.MethodPost, path, nil, nil, nil, nil)
}

func (c *Client) ListCoupons(ctx context.Context) ([]entity.Coupon, error) {
	var coupons []entity.Coupon
	if err := c.do(ctx, http.MethodGet, "/api/admin/coupons", nil, nil, &coupons, nil); err != nil {
		return nil, err
	}
	return coupons, nil
}

func (c *Client) CreateCoupon(ctx context.Context, coupon *entity.Coupon) (*entity.Coupon, error) {
	var created entity.Coupon
	if err := c.do(ctx, http.MethodPost, "/api/admin/coupons", nil, coupon, &created, nil); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) DeleteCoupon(ctx context.Context, couponID string) error {
	return c.do(ctx, http.MethodDelete, "/api/admin/coupons/"+url.PathEscape(couponID), nil, nil, nil, nil)
}

func (c *Client) AnalyticsSummary(ctx context.Context) (*entity.AnalyticsSummary, error) {
	var summary entity.AnalyticsSummary
	if err := c.do(ctx, http.MethodGet, "/api/admin/analytics/summary", nil, nil, &summary, nil); err != nil {
		return nil, err
	}
	return &summary, nil
}
