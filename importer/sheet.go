package importer

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

var ErrUnsupportedFormat = errors.New("unsupported file format")

// PriceRow is one data row of a price table, cells kept as raw strings
type PriceRow struct {
	Code        string `csv:"code"`
	Name        string `csv:"name"`
	Price       string `csv:"price"`
	Barcode     string `csv:"barcode"`
	Description string `csv:"description"`
}

// Sheet is a parsed price table
type Sheet struct {
	Columns Columns
	Rows    []PriceRow
}

// Read parses a price table, picking the reader from the file extension
func Read(filename string, r io.Reader) (*Sheet, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".csv":
		return ReadCSV(r)
	case ".xlsx", ".xlsm":
		return ReadXLSX(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}
