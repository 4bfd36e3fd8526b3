package excel

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"marmitaria/internal/domain"

	"github.com/xuri/excelize/v2"
)

// Header aliases cover the spreadsheets suppliers actually send, in
// English and Portuguese.
var headerAliases = map[string]string{
	"name":        "name",
	"ingredient":  "name",
	"nome":        "name",
	"ingrediente": "name",
	"insumo":      "name",
	"unit":        "unit",
	"unidade":     "unit",
	"un":          "unit",
	"cost":        "cost",
	"price":       "cost",
	"custo":       "cost",
	"preco":       "cost",
	"preço":       "cost",
	"valor":       "cost",
}

// ParseIngredientPriceRows reads the first sheet of a supplier price
// list: one ingredient per row, name and cost required, unit optional.
func ParseIngredientPriceRows(reader io.Reader) ([]domain.IngredientPriceRow, error) {
	file, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("open excel file: %w", err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("excel file has no sheets")
	}

	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("excel file is empty")
	}

	colMap := mapColumns(rows[0])
	if _, ok := colMap["name"]; !ok {
		return nil, fmt.Errorf("missing required column: name")
	}
	if _, ok := colMap["cost"]; !ok {
		return nil, fmt.Errorf("missing required column: cost")
	}

	result := make([]domain.IngredientPriceRow, 0, len(rows)-1)
	for index := 1; index < len(rows); index++ {
		cells := rows[index]
		name := strings.TrimSpace(readCell(cells, colMap["name"]))
		if name == "" {
			continue
		}

		cost, err := parseFloat(readCell(cells, colMap["cost"]))
		if err != nil {
			return nil, fmt.Errorf("row %d invalid cost: %w", index+1, err)
		}

		var unit *string
		if idx, ok := colMap["unit"]; ok {
			value := strings.TrimSpace(readCell(cells, idx))
			if value != "" {
				unit = &value
			}
		}

		result = append(result, domain.IngredientPriceRow{
			Name: name,
			Unit: unit,
			Cost: cost,
		})
	}

	if len(result) == 0 {
		return nil, fmt.Errorf("excel file has no valid data rows")
	}
	return result, nil
}

func mapColumns(header []string) map[string]int {
	mapped := make(map[string]int)
	for idx, col := range header {
		normalized := normalizeHeader(col)
		if normalized == "" {
			continue
		}
		canonical, ok := headerAliases[normalized]
		if !ok {
			continue
		}
		if _, exists := mapped[canonical]; !exists {
			mapped[canonical] = idx
		}
	}
	return mapped
}

func normalizeHeader(raw string) string {
	value := strings.TrimSpace(raw)
	value = strings.TrimPrefix(value, "\ufeff")
	value = strings.ToLower(value)
	value = strings.ReplaceAll(value, "_", " ")
	value = strings.Join(strings.Fields(value), " ")
	return value
}

func readCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// parseFloat tolerates thousands separators and the decimal comma used
// in pt-BR sheets ("1.234,56").
func parseFloat(raw string) (float64, error) {
	value := strings.TrimSpace(raw)
	value = strings.TrimPrefix(value, "R$")
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("value is empty")
	}
	if strings.Contains(value, ",") {
		value = strings.ReplaceAll(value, ".", "")
		value = strings.ReplaceAll(value, ",", ".")
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number")
	}
	return parsed, nil
}
