package excel

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildSheet(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	file := excelize.NewFile()
	defer file.Close()

	sheet := file.GetSheetName(0)
	for idx, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, idx+1)
		require.NoError(t, err)
		require.NoError(t, file.SetSheetRow(sheet, cell, &row))
	}

	buf, err := file.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestParseIngredientPriceRows(t *testing.T) {
	buf := buildSheet(t, [][]any{
		{"Ingrediente", "Unidade", "Preço"},
		{"Arroz", "kg", "R$ 5,50"},
		{"Feijão", "kg", 8.2},
		{"", "kg", "1,00"},
		{"Ovo", "", "0.75"},
	})

	rows, err := ParseIngredientPriceRows(buf)

	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Arroz", rows[0].Name)
	require.NotNil(t, rows[0].Unit)
	assert.Equal(t, "kg", *rows[0].Unit)
	assert.InDelta(t, 5.50, rows[0].Cost, 1e-9)

	assert.Equal(t, "Feijão", rows[1].Name)
	assert.InDelta(t, 8.2, rows[1].Cost, 1e-9)

	assert.Equal(t, "Ovo", rows[2].Name)
	assert.Nil(t, rows[2].Unit)
	assert.InDelta(t, 0.75, rows[2].Cost, 1e-9)
}

func TestParseIngredientPriceRowsEnglishHeaders(t *testing.T) {
	buf := buildSheet(t, [][]any{
		{"Name", "Unit", "Cost"},
		{"Rice", "kg", "5.50"},
	})

	rows, err := ParseIngredientPriceRows(buf)

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Rice", rows[0].Name)
	assert.InDelta(t, 5.50, rows[0].Cost, 1e-9)
}

func TestParseIngredientPriceRowsThousandsSeparator(t *testing.T) {
	buf := buildSheet(t, [][]any{
		{"nome", "custo"},
		{"Carne", "1.234,56"},
	})

	rows, err := ParseIngredientPriceRows(buf)

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.InDelta(t, 1234.56, rows[0].Cost, 1e-9)
}

func TestParseIngredientPriceRowsMissingCostColumn(t *testing.T) {
	buf := buildSheet(t, [][]any{
		{"Ingrediente", "Unidade"},
		{"Arroz", "kg"},
	})

	_, err := ParseIngredientPriceRows(buf)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required column: cost")
}

func TestParseIngredientPriceRowsInvalidCost(t *testing.T) {
	buf := buildSheet(t, [][]any{
		{"name", "cost"},
		{"Arroz", "cinco"},
	})

	_, err := ParseIngredientPriceRows(buf)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid cost")
}

func TestParseIngredientPriceRowsNoDataRows(t *testing.T) {
	buf := buildSheet(t, [][]any{
		{"name", "cost"},
	})

	_, err := ParseIngredientPriceRows(buf)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no valid data rows")
}

func TestParseIngredientPriceRowsNotAnExcelFile(t *testing.T) {
	_, err := ParseIngredientPriceRows(bytes.NewReader([]byte("plain text")))

	require.Error(t, err)
}
