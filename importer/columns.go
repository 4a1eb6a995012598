package importer

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Field is a logical column of a price table
type Field string

const (
	FieldCode        Field = "code"
	FieldName        Field = "name"
	FieldPrice       Field = "price"
	FieldBarcode     Field = "barcode"
	FieldDescription Field = "description"
)

// aliases lists the accepted headers per field, already normalized
var aliases = map[Field][]string{
	FieldCode:        {"codigo", "code"},
	FieldName:        {"nome", "name"},
	FieldPrice:       {"preco", "price"},
	FieldBarcode:     {"codigo de barras", "codigo barras", "barcode"},
	FieldDescription: {"descricao", "description"},
}

// Columns maps each resolved field to its index in the header row
type Columns map[Field]int

// Has reports whether the field was found in the header
func (c Columns) Has(f Field) bool {
	_, ok := c[f]
	return ok
}

// NormalizeHeader lowercases, trims and strips diacritics so "Código" and "codigo" compare equal.
// Underscores count as spaces, "codigo_barras" matches "codigo barras".
func NormalizeHeader(h string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, h)
	if err != nil {
		folded = h
	}
	folded = strings.ReplaceAll(strings.ToLower(folded), "_", " ")
	return strings.Join(strings.Fields(folded), " ")
}

// ResolveColumns matches a header row against the alias table, resolved once per import.
// When two headers map to the same field the first one wins.
func ResolveColumns(header []string) Columns {
	lookup := make(map[string]Field)
	for field, names := range aliases {
		for _, name := range names {
			lookup[name] = field
		}
	}

	cols := Columns{}
	for i, h := range header {
		field, ok := lookup[NormalizeHeader(h)]
		if !ok || cols.Has(field) {
			continue
		}
		cols[field] = i
	}
	return cols
}

// canonicalHeader renames the header row to the csv tags of PriceRow.
// Unmatched or duplicated columns get placeholder names so the decoder ignores them.
func (c Columns) canonicalHeader(n int) []string {
	header := make([]string, n)
	for i := range header {
		header[i] = fmt.Sprintf("_unused_%d", i)
	}
	for field, i := range c {
		header[i] = string(field)
	}
	return header
}

// row builds a PriceRow from raw cells using the resolved indexes
func (c Columns) row(cells []string) PriceRow {
	get := func(f Field) string {
		i, ok := c[f]
		if !ok || i >= len(cells) {
			return ""
		}
		return cells[i]
	}
	return PriceRow{
		Code:        get(FieldCode),
		Name:        get(FieldName),
		Price:       get(FieldPrice),
		Barcode:     get(FieldBarcode),
		Description: get(FieldDescription),
	}
}
