package entity

import "time"

type OrderStatus string

const (
	OrderStatusPendingPayment OrderStatus = "PENDING_PAYMENT"
	OrderStatusPaid           OrderStatus = "PAID"
	OrderStatusProcessing     OrderStatus = "PROCESSING"
	OrderStatusShipped        OrderStatus = "SHIPPED"
	OrderStatusDelivered      OrderStatus = "DELIVERED"
	OrderStatusCancelled      OrderStatus = "CANCELLED"
)

type ShippingInfo struct {
	FullName   string `json:"full_name"`
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	Phone      string `json:"phone,omitempty"`
}

func (s ShippingInfo) Validate() error {
	if s.FullName == "" {
		return newValidationError("shipping.full_name", "cannot be empty")
	}
	if s.Street == "" || s.City == "" || s.Country == "" {
		return newValidationError("shipping.address", "street, city and country are required")
	}
	return nil
}

type PaymentMethod struct {
	Kind  string `json:"kind"`
	Token string `json:"token,omitempty"`
}

func (p PaymentMethod) Validate() error {
	if p.Kind == "" {
		return newValidationError("payment.kind", "cannot be empty")
	}
	return nil
}

// Order is an order as reported by the platform backend. The storefront never
// creates or mutates orders locally; it only submits checkout requests and
// renders what the backend returns.
type Order struct {
	ID          string         `json:"id"`
	UserID      string         `json:"user_id"`
	Items       []CartLineItem `json:"items"`
	TotalAmount float64        `json:"total_amount"`
	Status      OrderStatus    `json:"status"`
	Shipping    ShippingInfo   `json:"shipping"`
	CouponCode  string         `json:"coupon_code,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// OrderConfirmation is the backend's acknowledgement of a submitted order.
// Receiving one is the only event that clears a cart.
type OrderConfirmation struct {
	OrderID     string      `json:"order_id"`
	Status      OrderStatus `json:"status"`
	TotalAmount float64     `json:"total_amount"`
	PlacedAt    time.Time   `json:"placed_at"`
}

type Coupon struct {
	ID         string    `json:"id"`
	Code       string    `json:"code"`
	Percentage float64   `json:"percentage"`
	ExpiresAt  time.Time `json:"expires_at"`
	Active     bool      `json:"active"`
}

type Customer struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// AnalyticsSummary backs the admin dashboard overview cards.
type AnalyticsSummary struct {
	TotalOrders    int64            `json:"total_orders"`
	TotalRevenue   float64          `json:"total_revenue"`
	TotalCustomers int64            `json:"total_customers"`
	OrdersByStatus map[string]int64 `json:"orders_by_status"`
	TopProducts    []ProductSales   `json:"top_products"`
}

type ProductSales struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	UnitsSold int64   `json:"units_sold"`
	Revenue   float64 `json:"revenue"`
}
