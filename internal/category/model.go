package category

import "time"

type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	SKU         string    `json:"sku"`
	Description string    `json:"description"`
	Image       *string   `json:"image,omitempty"`
	CreatedBy   string    `json:"createdby"`
	CreatedAt   time.Time `json:"createdAt"`
}

type CreateCategoryInput struct {
	Name        string
	SKU         string
	Description string
	Image       *string
}

type UpdateCategoryInput struct {
	Name        *string
	SKU         *string
	Description *string
	Image       *string
}
