package dashboard

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"enrollment-dashboard-service/internal/enrollments/core/domain"
)

// utf8BOM lets spreadsheet software detect the encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVHeader is the header row of the export.
var CSVHeader = []string{"Filial", "Matrículas"}

// EncodeCSV writes rows as semicolon-separated UTF-8 with a byte order
// mark and a header row. Rows carry no index column.
func EncodeCSV(rows []domain.AggregatedRow) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	w.Comma = ';'

	if err := w.Write(CSVHeader); err != nil {
		return nil, err
	}
	for _, r := range rows {
		if err := w.Write([]string{r.Branch, strconv.FormatInt(r.Count, 10)}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
