package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProductCode(t *testing.T) {
	code, err := ParseProductCode("001.PNG")
	require.NoError(t, err)
	assert.Equal(t, "001", code)

	code, err = ParseProductCode("fotos/ARZ-5KG.jpeg")
	require.NoError(t, err)
	assert.Equal(t, "ARZ-5KG", code)

	_, err = ParseProductCode("tabela.xlsx")
	assert.Error(t, err)

	_, err = ParseProductCode(".png")
	assert.Error(t, err)
}
