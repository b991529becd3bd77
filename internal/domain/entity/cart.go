package entity

import "time"

// CartLineItem is one product-and-quantity pair within a cart. UnitPrice is
// snapshotted when the product is first added and is never re-fetched for an
// existing line.
type CartLineItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	ImageURL  string  `json:"image_url,omitempty"`
	Category  string  `json:"category,omitempty"`
	Quantity  int     `json:"quantity"`
}

func (li CartLineItem) LineTotal() float64 {
	return li.UnitPrice * float64(li.Quantity)
}

// Cart holds the line items of one session. Items keep insertion order and
// hold at most one entry per product; every entry has Quantity >= 1.
type Cart struct {
	SessionID string         `json:"session_id"`
	Items     []CartLineItem `json:"items"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func NewCart(sessionID string) *Cart {
	return &Cart{
		SessionID: sessionID,
		Items:     make([]CartLineItem, 0),
		UpdatedAt: time.Now().UTC(),
	}
}

func (c *Cart) find(productID string) (*CartLineItem, int) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i], i
		}
	}
	return nil, -1
}

// AddItem merges quantity into an existing line for the product or appends a
// new line snapshotting the product's current price. A quantity below one is
// rejected, never clamped.
func (c *Cart) AddItem(product *Product, quantity int) error {
	if err := product.Validate(); err != nil {
		return err
	}
	if quantity < 1 {
		return newValidationError("quantity", "must be a positive integer")
	}

	if line, _ := c.find(product.ID); line != nil {
		line.Quantity += quantity
	} else {
		c.Items = append(c.Items, CartLineItem{
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.Price,
			ImageURL:  product.ImageURL,
			Category:  product.Category,
			Quantity:  quantity,
		})
	}
	c.touch()
	return nil
}

// UpdateItemQuantity sets a line's quantity. A quantity of zero or less removes
// the line entirely. An unknown product is a no-op, not an error.
func (c *Cart) UpdateItemQuantity(productID string, newQuantity int) {
	line, idx := c.find(productID)
	if line == nil {
		return
	}
	if newQuantity <= 0 {
		c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
	} else {
		line.Quantity = newQuantity
	}
	c.touch()
}

// RemoveItem deletes the line for productID and reports whether a line was
// actually removed. Removing an absent product is a no-op.
func (c *Cart) RemoveItem(productID string) bool {
	_, idx := c.find(productID)
	if idx == -1 {
		return false
	}
	c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
	c.touch()
	return true
}

func (c *Cart) Clear() {
	c.Items = make([]CartLineItem, 0)
	c.touch()
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c *Cart) touch() {
	c.UpdatedAt = time.Now().UTC()
}

// CartSnapshot is an immutable point-in-time read of a cart. ItemCount and
// Subtotal are derived from Items at snapshot time, never stored.
type CartSnapshot struct {
	SessionID string         `json:"session_id"`
	Items     []CartLineItem `json:"items"`
	ItemCount int            `json:"item_count"`
	Subtotal  float64        `json:"subtotal"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Snapshot deep-copies the item list so callers can never mutate cart state
// through the returned value.
func (c *Cart) Snapshot() CartSnapshot {
	items := make([]CartLineItem, len(c.Items))
	copy(items, c.Items)

	var count int
	var subtotal float64
	for _, li := range items {
		count += li.Quantity
		subtotal += li.LineTotal()
	}

	return CartSnapshot{
		SessionID: c.SessionID,
		Items:     items,
		ItemCount: count,
		Subtotal:  subtotal,
		UpdatedAt: c.UpdatedAt,
	}
}
