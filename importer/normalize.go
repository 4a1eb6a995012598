package importer

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"tabloide-mp/models"
)

// ItemStore is the catalog access the normalizer needs, usually bound to the import transaction
type ItemStore interface {
	GetOrCreateByCode(ctx context.Context, code string) (*models.CatalogItem, bool, error)
	Save(ctx context.Context, item *models.CatalogItem) error
}

// Stats counts what an import did
type Stats struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

// MaxPrice is the largest value a NUMERIC(10,2) price column holds
var MaxPrice = decimal.New(9999999999, -2)

// ParsePrice accepts comma or point as decimal separator.
// It reports false for blank, negative, exponent or out of range cells.
func ParsePrice(cell string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(strings.ReplaceAll(cell, ",", "."))
	if s == "" || strings.ContainsAny(s, "eE") {
		return decimal.Zero, false
	}
	price, err := decimal.NewFromString(s)
	if err != nil || price.IsNegative() {
		return decimal.Zero, false
	}
	price = price.Round(2)
	if price.GreaterThan(MaxPrice) {
		return decimal.Zero, false
	}
	return price, true
}

// Apply upserts every row of sheet into store by product code.
// Columns missing from the header are never touched, bad cells keep the previous value.
// Without a code column every row is skipped. Any returned error is fatal for the whole import.
func Apply(ctx context.Context, store ItemStore, sheet *Sheet) (Stats, error) {
	var stats Stats
	cols := sheet.Columns

	for i, row := range sheet.Rows {
		code := strings.TrimSpace(row.Code)
		if code == "" {
			stats.Skipped++
			continue
		}

		item, created, err := store.GetOrCreateByCode(ctx, code)
		if err != nil {
			return stats, fmt.Errorf("row %d: %w", i+2, err)
		}

		if cols.Has(FieldName) {
			if name := strings.TrimSpace(row.Name); name != "" {
				item.Name = name
			}
		}
		if cols.Has(FieldDescription) {
			if desc := strings.TrimSpace(row.Description); desc != "" {
				item.Description = desc
			}
		}
		if cols.Has(FieldBarcode) {
			if barcode := strings.TrimSpace(row.Barcode); barcode != "" {
				item.Barcode = &barcode
			}
		}
		if cols.Has(FieldPrice) {
			if price, ok := ParsePrice(row.Price); ok {
				item.Price = price
			} else if strings.TrimSpace(row.Price) != "" {
				log.Ctx(ctx).Debug().Str("code", code).Str("price", row.Price).Msg("⚠️  Ignoring unparsable price")
			}
		}

		if err := store.Save(ctx, item); err != nil {
			return stats, fmt.Errorf("row %d: %w", i+2, err)
		}
		if created {
			stats.Created++
		} else {
			stats.Updated++
		}
	}
	return stats, nil
}
