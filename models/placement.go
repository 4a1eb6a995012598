package models

// Placement assigns one catalog item to one numbered cell of a template
type Placement struct {
	ID         int64        `json:"id"`
	TemplateID int64        `json:"templateId"`
	ItemID     int64        `json:"itemId"`
	Position   int          `json:"position"`
	Item       *CatalogItem `json:"item,omitempty"`
}

// PlacementRequest represents the request body for assigning an item to a cell
type PlacementRequest struct {
	ItemID   int64 `json:"itemId" validate:"required,gt=0"`
	Position int   `json:"position"`
}
