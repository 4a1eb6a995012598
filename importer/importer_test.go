package importer

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"tabloide-mp/models"
)

type memStore struct {
	items   map[string]*models.CatalogItem
	nextID  int64
	failOn  string
	saveErr error
}

func newMemStore(items ...models.CatalogItem) *memStore {
	s := &memStore{items: map[string]*models.CatalogItem{}}
	for i := range items {
		s.nextID++
		item := items[i]
		item.ID = s.nextID
		s.items[item.Code] = &item
	}
	return s
}

func (s *memStore) GetOrCreateByCode(_ context.Context, code string) (*models.CatalogItem, bool, error) {
	if item, ok := s.items[code]; ok {
		cp := *item
		return &cp, false, nil
	}
	s.nextID++
	item := &models.CatalogItem{ID: s.nextID, Code: code}
	s.items[code] = item
	cp := *item
	return &cp, true, nil
}

func (s *memStore) Save(_ context.Context, item *models.CatalogItem) error {
	if item.Code == s.failOn {
		return s.saveErr
	}
	cp := *item
	s.items[item.Code] = &cp
	return nil
}

func TestNormalizeHeader(t *testing.T) {
	assert.Equal(t, "codigo", NormalizeHeader(" Código "))
	assert.Equal(t, NormalizeHeader("codigo"), NormalizeHeader("CÓDIGO"))
	assert.Equal(t, "codigo barras", NormalizeHeader("codigo_barras"))
	assert.Equal(t, "descricao", NormalizeHeader("Descrição"))
	assert.Equal(t, "preco", NormalizeHeader("PREÇO"))
}

func TestResolveColumns(t *testing.T) {
	cols := ResolveColumns([]string{"Código", "Nome", "Preço", "Código de Barras", "Descrição", "Estoque"})
	assert.Equal(t, Columns{FieldCode: 0, FieldName: 1, FieldPrice: 2, FieldBarcode: 3, FieldDescription: 4}, cols)

	cols = ResolveColumns([]string{"codigo", "preco", "codigo"})
	assert.Equal(t, 0, cols[FieldCode])
	assert.False(t, cols.Has(FieldName))
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"12,50", "12.5", true},
		{" 7.999 ", "8", true},
		{"0", "0", true},
		{"abc", "", false},
		{"", "", false},
		{"-3,00", "", false},
		{"1.234,56", "", false},
		{"99999999,99", "99999999.99", true},
		{"100000000", "", false},
		{"123456789012,50", "", false},
		{"1e12", "", false},
		{"2E1", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParsePrice(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
			}
		})
	}
}

func TestReadCSVSemicolonWithBOM(t *testing.T) {
	data := "\xEF\xBB\xBFCódigo;Nome;Preço;Codigo_Barras\n001;Arroz 5kg;24,90;789100\n002;Feijão\n"
	sheet, err := ReadCSV(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, PriceRow{Code: "001", Name: "Arroz 5kg", Price: "24,90", Barcode: "789100"}, sheet.Rows[0])
	assert.Equal(t, "Feijão", sheet.Rows[1].Name)
	assert.Equal(t, "", sheet.Rows[1].Price)
	assert.False(t, sheet.Columns.Has(FieldDescription))
}

func TestReadCSVComma(t *testing.T) {
	data := "codigo,nome,preco,extra\n\"003\",\"Óleo, 900ml\",\"8.49\",x\n"
	sheet, err := ReadCSV(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, sheet.Rows, 1)
	assert.Equal(t, "Óleo, 900ml", sheet.Rows[0].Name)
	assert.Equal(t, "8.49", sheet.Rows[0].Price)
}

func TestReadCSVEmpty(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	assert.Error(t, err)
}

func TestReadXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"Código", "Nome", "Preço"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"001", "Arroz", "12,50"}))
	require.NoError(t, f.SetSheetRow(sheet, "A4", &[]any{"002", "Feijão"}))
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	got, err := Read("tabela.XLSX", &buf)
	require.NoError(t, err)
	require.Len(t, got.Rows, 2)
	assert.Equal(t, PriceRow{Code: "001", Name: "Arroz", Price: "12,50"}, got.Rows[0])
	assert.Equal(t, PriceRow{Code: "002", Name: "Feijão"}, got.Rows[1])
}

func TestReadXLSXFormattedNumber(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"Código", "Nome", "Preço"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"001", "Arroz", 1234.5}))
	style, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle(sheet, "C2", "C2", style))
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	got, err := Read("tabela.xlsx", &buf)
	require.NoError(t, err)
	require.Len(t, got.Rows, 1)
	assert.Equal(t, "1234.5", got.Rows[0].Price)

	price, ok := ParsePrice(got.Rows[0].Price)
	require.True(t, ok)
	assert.True(t, decimal.RequireFromString("1234.50").Equal(price))
}

func TestApplyOutOfRangePriceKeepsPrevious(t *testing.T) {
	store := newMemStore(models.CatalogItem{Code: "001", Name: "Arroz", Price: decimal.RequireFromString("10")})
	sheet, err := ReadCSV(strings.NewReader("codigo;preco\n001;1e12\n002;123456789012,50\n"))
	require.NoError(t, err)

	stats, err := Apply(context.Background(), store, sheet)
	require.NoError(t, err)
	assert.Equal(t, Stats{Created: 1, Updated: 1}, stats)
	assert.True(t, decimal.RequireFromString("10").Equal(store.items["001"].Price))
	assert.True(t, store.items["002"].Price.IsZero())
}

func TestReadUnsupported(t *testing.T) {
	_, err := Read("tabela.pdf", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestApply(t *testing.T) {
	barcode := "111"
	store := newMemStore(models.CatalogItem{
		Code:        "001",
		Name:        "Arroz",
		Description: "Tipo 1",
		Barcode:     &barcode,
		Price:       decimal.RequireFromString("10.00"),
	})

	sheet, err := ReadCSV(strings.NewReader("codigo;nome;preco;codigo de barras;descricao\n001;;abc;  ;\n002;Feijão;12,50;222;Carioca\n  ;Sem código;1,00;;\n"))
	require.NoError(t, err)

	stats, err := Apply(context.Background(), store, sheet)
	require.NoError(t, err)
	assert.Equal(t, Stats{Created: 1, Updated: 1, Skipped: 1}, stats)

	arroz := store.items["001"]
	assert.Equal(t, "Arroz", arroz.Name)
	assert.Equal(t, "Tipo 1", arroz.Description)
	assert.Equal(t, "111", *arroz.Barcode)
	assert.True(t, decimal.RequireFromString("10").Equal(arroz.Price))

	feijao := store.items["002"]
	assert.Equal(t, "Feijão", feijao.Name)
	assert.Equal(t, "Carioca", feijao.Description)
	assert.Equal(t, "222", *feijao.Barcode)
	assert.True(t, decimal.RequireFromString("12.50").Equal(feijao.Price))
	assert.Len(t, store.items, 2)
}

func TestApplyMissingColumnsUntouched(t *testing.T) {
	store := newMemStore(models.CatalogItem{Code: "001", Name: "Arroz", Price: decimal.RequireFromString("10")})
	sheet, err := ReadCSV(strings.NewReader("codigo,preco\n001,11\n"))
	require.NoError(t, err)

	_, err = Apply(context.Background(), store, sheet)
	require.NoError(t, err)
	assert.Equal(t, "Arroz", store.items["001"].Name)
	assert.True(t, decimal.RequireFromString("11").Equal(store.items["001"].Price))
}

func TestApplyWithoutCodeColumnSkipsAll(t *testing.T) {
	store := newMemStore()
	sheet, err := ReadCSV(strings.NewReader("nome,preco\nArroz,11\n"))
	require.NoError(t, err)

	stats, err := Apply(context.Background(), store, sheet)
	require.NoError(t, err)
	assert.Equal(t, Stats{Skipped: 1}, stats)
	assert.Empty(t, store.items)
}

func TestApplySaveErrorIsFatal(t *testing.T) {
	store := newMemStore()
	store.failOn = "002"
	store.saveErr = errors.New("duplicate barcode")
	sheet, err := ReadCSV(strings.NewReader("codigo\n001\n002\n003\n"))
	require.NoError(t, err)

	stats, err := Apply(context.Background(), store, sheet)
	assert.ErrorIs(t, err, store.saveErr)
	assert.Equal(t, 1, stats.Created)
}
