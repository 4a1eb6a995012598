package render

import (
	"image"
	"image/color"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"tabloide-mp/models"
	"tabloide-mp/utils"
)

// TextStyle describes how a string is drawn
type TextStyle struct {
	Size  float64
	Bold  bool
	Color color.RGBA
}

// Surface is the drawing capability a flyer is rendered onto
type Surface interface {
	Metrics() Metrics
	DrawImage(img image.Image, r Rect)
	FillRect(r Rect, c color.RGBA)
	// DrawText draws s with its baseline starting at (x, y)
	DrawText(x, y float64, s string, style TextStyle)
}

// Cell is the content of one occupied grid cell
type Cell struct {
	Name  string
	Price decimal.Decimal
}

// Flyer is everything needed to draw one sheet, independent of the output surface
type Flyer struct {
	// Heading is drawn above the grid when set
	Heading    string
	Columns    int
	Rows       int
	Primary    color.RGBA
	Alternate  color.RGBA
	Background image.Image
	// Cells maps zero-based cell indexes to their content
	Cells map[int]Cell
}

// NewFlyer builds the flyer of a template. The item at position p goes to cell p-1.
// Each unparsable color falls back to its default on its own and placements outside the grid are dropped.
func NewFlyer(t models.FlyerTemplate, placements []models.Placement, background image.Image) Flyer {
	f := Flyer{
		Columns:    max(1, t.Columns),
		Rows:       max(1, t.Rows),
		Primary:    FallbackPrimary,
		Alternate:  FallbackAlternate,
		Background: background,
		Cells:      make(map[int]Cell, len(placements)),
	}

	if primary, err := ParseHexColor(t.PrimaryColor); err == nil {
		f.Primary = primary
	} else {
		log.Warn().Int64("template_id", t.ID).Str("primary", t.PrimaryColor).Msg("⚠️  Invalid primary color, using default")
	}
	if alternate, err := ParseHexColor(t.AlternateOrPrimary()); err == nil {
		f.Alternate = alternate
	} else {
		log.Warn().Int64("template_id", t.ID).Str("alternate", t.AlternateOrPrimary()).Msg("⚠️  Invalid alternate color, using default")
	}

	capacity := f.Columns * f.Rows
	for _, p := range placements {
		if p.Item == nil || p.Position < 1 || p.Position > capacity {
			continue
		}
		f.Cells[p.Position-1] = Cell{Name: p.Item.Name, Price: p.Item.Price}
	}
	return f
}

// Draw renders the flyer onto s in a single pass and returns how many cells got content
func Draw(s Surface, f Flyer) int {
	m := s.Metrics()

	if f.Background != nil {
		s.DrawImage(f.Background, Rect{W: m.Width, H: m.Height})
	}

	area := Rect{X: m.Margin, Y: m.Margin, W: m.Width - 2*m.Margin, H: m.Height - 2*m.Margin}
	if f.Heading != "" {
		s.DrawText(m.Margin, m.Margin, f.Heading, TextStyle{Size: m.TitleSize, Bold: true, Color: textColor})
		area.Y += m.TitleOffset
		area.H -= m.TitleOffset
	}

	grid := Grid{Columns: max(1, f.Columns), Rows: max(1, f.Rows), Area: area}
	for r := 0; r < grid.Rows; r++ {
		fill := f.Primary
		if r%2 == 1 {
			fill = f.Alternate
		}
		s.FillRect(grid.Row(r), fill)
	}

	drawn := 0
	for i := 0; i < grid.Columns*grid.Rows; i++ {
		cell, ok := f.Cells[i]
		if !ok {
			continue
		}
		box := grid.Cell(i)
		x := box.X + m.TextInset
		s.DrawText(x, box.Y+m.NameOffset, utils.Truncate(cell.Name, MaxNameRunes),
			TextStyle{Size: m.NameSize, Bold: true, Color: textColor})
		s.DrawText(x, box.Y+m.PriceOffset, utils.FormatBRL(cell.Price),
			TextStyle{Size: m.PriceSize, Color: priceColor})
		drawn++
	}
	return drawn
}
