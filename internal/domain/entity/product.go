package entity

const ProductStatusActive = "ACTIVE"

// Product is a catalog entry as served by the platform backend. The cart only
// ever copies the fields it needs into a line item; it never holds a Product.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Brand       string   `json:"brand,omitempty"`
	Description string   `json:"description,omitempty"`
	Price       float64  `json:"price"`
	ImageURL    string   `json:"image_url,omitempty"`
	Category    string   `json:"category,omitempty"`
	Status      string   `json:"status"`
	Tags        []string `json:"tags,omitempty"`
	Stock       int      `json:"stock,omitempty"`
}

func (p *Product) Validate() error {
	if p == nil {
		return newValidationError("product", "product is required")
	}
	if p.ID == "" {
		return newValidationError("product.id", "cannot be empty")
	}
	if p.Name == "" {
		return newValidationError("product.name", "cannot be empty")
	}
	if p.Price < 0 {
		return newValidationError("product.price", "cannot be negative")
	}
	return nil
}

func (p *Product) IsActive() bool {
	return p != nil && p.Status == ProductStatusActive
}
