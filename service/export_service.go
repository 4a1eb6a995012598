package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"github.com/jszwec/csvutil"
	"github.com/xuri/excelize/v2"

	"tabloide-mp/authz"
	"tabloide-mp/models"
	"tabloide-mp/repository"
)

// exportRow is a catalog line in the price table layout, so exports can be imported back
type exportRow struct {
	Code        string `csv:"código"`
	Name        string `csv:"nome"`
	Price       string `csv:"preço"`
	Barcode     string `csv:"codigo_barras"`
	Description string `csv:"descrição"`
}

var exportHeader = []string{"código", "nome", "preço", "codigo_barras", "descrição"}

func toExportRow(item models.CatalogItem) exportRow {
	row := exportRow{
		Code:        item.Code,
		Name:        item.Name,
		Price:       item.Price.StringFixed(2),
		Description: item.Description,
	}
	if item.Barcode != nil {
		row.Barcode = *item.Barcode
	}
	return row
}

// ExportService writes the catalog as a price table
type ExportService struct {
	items repository.CatalogRepositoryInterface
}

// NewExportService creates a new ExportService
func NewExportService(items repository.CatalogRepositoryInterface) *ExportService {
	return &ExportService{items: items}
}

// Export renders every catalog item as csv or xlsx
func (s *ExportService) Export(ctx context.Context, actor *authz.Actor, format string) (*Rendered, error) {
	if err := authz.Check(actor, authz.ViewCatalog, authz.Any); err != nil {
		return nil, err
	}

	items, err := s.items.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]exportRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, toExportRow(item))
	}

	switch format {
	case "", "csv":
		data, err := exportCSV(rows)
		if err != nil {
			return nil, err
		}
		return &Rendered{ContentType: "text/csv; charset=utf-8", FileName: "produtos.csv", Data: data}, nil
	case "xlsx":
		data, err := exportXLSX(rows)
		if err != nil {
			return nil, err
		}
		return &Rendered{
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			FileName:    "produtos.xlsx",
			Data:        data,
		}, nil
	}
	return nil, models.NewValidationError("format", nil, "unsupported format %q", format)
}

func exportCSV(rows []exportRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	enc := csvutil.NewEncoder(w)
	if len(rows) == 0 {
		if err := enc.EncodeHeader(exportRow{}); err != nil {
			return nil, fmt.Errorf("failed to write csv header: %w", err)
		}
	}
	for _, row := range rows {
		if err := enc.Encode(row); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

func exportXLSX(rows []exportRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Produtos"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]any, len(exportHeader))
	for i, h := range exportHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		f.SetRowStyle(sheet, 1, 1, bold)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := []any{row.Code, row.Name, row.Price, row.Barcode, row.Description}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}
	f.SetColWidth(sheet, "B", "B", 40)
	f.SetColWidth(sheet, "E", "E", 60)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
