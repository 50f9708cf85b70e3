package export

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"agrocalc-be/internal/constant"
	"agrocalc-be/internal/entity"
	"agrocalc-be/pkg/formula"
)

// Spreadsheet renders the selected products as a CSV grid: one row per
// product, one column per growth phase in the global phase order. Cells whose
// phase is absent or whose formula cannot be evaluated render as a dash; one
// bad cell never spoils the rest of the table.
func Spreadsheet(products []*entity.Product, volume int) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := make([]string, 0, len(constant.PhaseOrder)+1)
	header = append(header, "Product")
	for _, phaseName := range constant.PhaseOrder {
		header = append(header, constant.PhaseTitles[phaseName])
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, product := range products {
		row := make([]string, 0, len(header))
		row = append(row, product.ShortDescription())
		for _, phaseName := range constant.PhaseOrder {
			row = append(row, doseCell(product, phaseName, volume))
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func doseCell(product *entity.Product, phaseName string, volume int) string {
	phase := product.PhaseByName(phaseName)
	if phase == nil || phase.Formula == "" {
		return "-"
	}
	quantity, err := formula.Evaluate(phase.Formula, float64(volume))
	if err != nil {
		return "-"
	}
	return strconv.FormatFloat(quantity, 'f', -1, 64)
}
