package models

import "github.com/shopspring/decimal"

// CatalogItemRequest represents the request body for creating or updating a catalog item
type CatalogItemRequest struct {
	Code        string          `json:"code" validate:"required,max=50"`
	Barcode     string          `json:"barcode" validate:"omitempty,max=64"`
	Name        string          `json:"name" validate:"required,max=200"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" validate:"gte=0"`
}

// Apply copies the request fields onto item
func (r CatalogItemRequest) Apply(item *CatalogItem) {
	item.Code = r.Code
	item.Name = r.Name
	item.Description = r.Description
	item.Price = r.Price.Round(2)
	if r.Barcode != "" {
		barcode := r.Barcode
		item.Barcode = &barcode
	} else {
		item.Barcode = nil
	}
}

// Page is a single page of a paginated listing
type Page[T any] struct {
	Items   []T `json:"items"`
	Page    int `json:"page"`
	PerPage int `json:"perPage"`
	Total   int `json:"total"`
}

// DefaultPerPage mirrors the list views page size
const DefaultPerPage = 20
