package validation

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabloide-mp/models"
)

func TestStructCatalogItem(t *testing.T) {
	req := models.CatalogItemRequest{Code: "001", Name: "Arroz", Price: decimal.RequireFromString("12.50")}
	assert.NoError(t, Struct(req))

	req.Price = decimal.RequireFromString("-1")
	err := Struct(req)
	var ve *models.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "price", ve.Field)

	req.Price = decimal.Zero
	req.Code = ""
	err = Struct(req)
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "code", ve.Field)
	assert.Equal(t, "is required", ve.Message)
}

func TestStructTemplate(t *testing.T) {
	req := models.TemplateRequest{Name: "Semana", Columns: 3, Rows: 4, PrimaryColor: "#F5F5F5"}
	assert.NoError(t, Struct(req))

	req.AlternateColor = "blue"
	err := Struct(req)
	var ve *models.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "alternateColor", ve.Field)

	for _, c := range []string{"#FFF", "#FFFF", "#FFFFFFFF", "FFFFFF", "#GGGGGG"} {
		req.AlternateColor = c
		err = Struct(req)
		require.True(t, errors.As(err, &ve), c)
		assert.Equal(t, "alternateColor", ve.Field)
		assert.Equal(t, "must be a #RRGGBB color", ve.Message)
	}

	req.AlternateColor = "#ffcc00"
	assert.NoError(t, Struct(req))

	req.PrimaryColor = "#FFFFFFFF"
	err = Struct(req)
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "primaryColor", ve.Field)

	req.PrimaryColor = "#F5F5F5"
	req.AlternateColor = ""
	req.Columns = 7
	err = Struct(req)
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "columns", ve.Field)
}

func TestStructCompanyDocuments(t *testing.T) {
	req := models.CompanyRequest{LegalName: "Mercado Bom Preço LTDA", CNPJ: "11.222.333/0001-81", Phone: "(11) 98765-4321", CEP: "01310-100", UF: "SP"}
	assert.NoError(t, Struct(req))

	req.CNPJ = "11.222.333/0001-80"
	err := Struct(req)
	var ve *models.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "cnpj", ve.Field)

	cust := models.CustomerRequest{FullName: "Maria", CPF: "111.111.111-11"}
	err = Struct(cust)
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "cpf", ve.Field)
}
