package render

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Metrics holds the geometry of one output surface, in that surface's own unit
// (points for documents, pixels for rasters). Text offsets are baselines measured
// from the top of the cell.
type Metrics struct {
	Width       float64 `toml:"width"`
	Height      float64 `toml:"height"`
	Margin      float64 `toml:"margin"`
	TextInset   float64 `toml:"text_inset"`
	NameOffset  float64 `toml:"name_offset"`
	PriceOffset float64 `toml:"price_offset"`
	NameSize    float64 `toml:"name_size"`
	PriceSize   float64 `toml:"price_size"`
	TitleSize   float64 `toml:"title_size"`
	TitleOffset float64 `toml:"title_offset"`
	Quality     int     `toml:"jpeg_quality"`
}

// Layout configures both flyer surfaces
type Layout struct {
	Document Metrics `toml:"document"`
	Raster   Metrics `toml:"raster"`
}

// MaxNameRunes is the name length drawn in a cell
const MaxNameRunes = 40

// DefaultLayout is an 11x17in tabloid sheet: 792x1224pt for documents, 300 DPI for rasters
func DefaultLayout() Layout {
	return Layout{
		Document: Metrics{
			Width:       792,
			Height:      1224,
			Margin:      54,
			TextInset:   8,
			NameOffset:  22,
			PriceOffset: 40,
			NameSize:    12,
			PriceSize:   10,
			TitleSize:   18,
			TitleOffset: 24,
		},
		Raster: Metrics{
			Width:       3300,
			Height:      5100,
			Margin:      100,
			TextInset:   16,
			NameOffset:  66,
			PriceOffset: 128,
			NameSize:    50,
			PriceSize:   42,
			TitleSize:   75,
			TitleOffset: 100,
			Quality:     90,
		},
	}
}

// LoadLayout reads a TOML layout file on top of the defaults. An empty path returns the defaults.
func LoadLayout(path string) (Layout, error) {
	layout := DefaultLayout()
	if path == "" {
		return layout, nil
	}
	if _, err := toml.DecodeFile(path, &layout); err != nil {
		return DefaultLayout(), fmt.Errorf("failed to read layout file %s: %w", path, err)
	}
	if err := layout.Document.validate(); err != nil {
		return DefaultLayout(), fmt.Errorf("document layout: %w", err)
	}
	if err := layout.Raster.validate(); err != nil {
		return DefaultLayout(), fmt.Errorf("raster layout: %w", err)
	}
	return layout, nil
}

func (m Metrics) validate() error {
	if m.Width <= 0 || m.Height <= 0 {
		return fmt.Errorf("width and height must be positive")
	}
	if m.Margin < 0 || 2*m.Margin >= m.Width || 2*m.Margin >= m.Height {
		return fmt.Errorf("margin %.0f does not fit a %.0fx%.0f sheet", m.Margin, m.Width, m.Height)
	}
	if m.Quality < 0 || m.Quality > 100 {
		return fmt.Errorf("jpeg_quality must be between 0 and 100")
	}
	return nil
}
