package product

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

type Product struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	CategoryID   string          `json:"categoryid"`
	CategoryName string          `json:"categoryName,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Stock        int             `json:"stock"`
	Status       string          `json:"status"`
	CreatedBy    string          `json:"createdby"`
	CreatedAt    time.Time       `json:"createdAt"`
	Images       []Image         `json:"images,omitempty"`
}

type Image struct {
	ID        string `json:"id"`
	ProductID string `json:"productId"`
	URL       string `json:"url"`
}

type CreateProductInput struct {
	Name        string
	Description string
	CategoryID  string
	Price       decimal.Decimal
	Stock       int
	Status      string
	ImageURLs   []string
}

type UpdateProductInput struct {
	Name        *string
	Description *string
	CategoryID  *string
	Price       *decimal.Decimal
	Stock       *int
	Status      *string
	ImageURLs   []string
}
