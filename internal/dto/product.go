package dto

type CreateProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Category    string  `json:"category"`
	SKU         string  `json:"sku"`
	Image       string  `json:"image"`
	BusinessID  string  `json:"business_id"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	Category    *string  `json:"category"`
	SKU         *string  `json:"sku"`
	Image       *string  `json:"image"`
	IsActive    *bool    `json:"is_active"`
}
