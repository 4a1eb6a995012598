package models

import "strings"

// Default template values
const (
	DefaultColumns = 3
	DefaultRows    = 4
	DefaultColor   = "#FFFFFF"
)

// FlyerTemplate is a named grid geometry plus styling used to lay out catalog items
type FlyerTemplate struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Columns        int     `json:"columns"`
	Rows           int     `json:"rows"`
	PrimaryColor   string  `json:"primaryColor"`
	AlternateColor string  `json:"alternateColor"`
	BackgroundRef  *string `json:"backgroundRef,omitempty"`
}

// Capacity returns the number of cells in the grid
func (t FlyerTemplate) Capacity() int {
	return t.Columns * t.Rows
}

// AlternateOrPrimary returns the alternate row color, falling back to the primary one
func (t FlyerTemplate) AlternateOrPrimary() string {
	if alt := strings.TrimSpace(t.AlternateColor); alt != "" {
		return alt
	}
	return t.PrimaryColor
}

// TemplateRequest represents the request body for creating or updating a template
type TemplateRequest struct {
	Name           string `json:"name" validate:"required,max=100"`
	Columns        int    `json:"columns" validate:"min=1,max=6"`
	Rows           int    `json:"rows" validate:"min=1,max=8"`
	PrimaryColor   string `json:"primaryColor" validate:"required,rgbhex"`
	AlternateColor string `json:"alternateColor" validate:"omitempty,rgbhex"`
}

// Apply copies the request fields onto t
func (r TemplateRequest) Apply(t *FlyerTemplate) {
	t.Name = strings.TrimSpace(r.Name)
	t.Columns = r.Columns
	t.Rows = r.Rows
	t.PrimaryColor = strings.ToUpper(r.PrimaryColor)
	t.AlternateColor = strings.ToUpper(r.AlternateColor)
}

// TemplateDetail is a template with its placements and a preview grid
type TemplateDetail struct {
	Template   FlyerTemplate `json:"template"`
	Placements []Placement   `json:"placements"`
	Grid       []GridCell    `json:"grid"`
}

// GridCell is one numbered cell of the preview grid
type GridCell struct {
	Position int          `json:"position"`
	Item     *CatalogItem `json:"item,omitempty"`
}
