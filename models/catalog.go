package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CatalogItem represents a product in the catalog.
// Code is the natural key used by price-table imports.
type CatalogItem struct {
	ID          int64           `json:"id"`
	Code        string          `json:"code"`
	Barcode     *string         `json:"barcode,omitempty"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageRef    *string         `json:"imageRef,omitempty"` // Local media path or drive:<fileID>
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// CatalogData represents the catalog counts shown on the company dashboard
type CatalogData struct {
	Items     int `json:"items"`
	Templates int `json:"templates"`
	Imports   int `json:"imports"`
}
