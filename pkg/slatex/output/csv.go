package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/ukaji3/slatex-go/pkg/slatex/models"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV writes the table as CSV with a UTF-8 BOM so spreadsheet apps
// detect the encoding. Blank cells are written empty.
func WriteCSV(path string, t *models.Table) error {
	var buf bytes.Buffer
	buf.Write(utf8BOM)
	w := csv.NewWriter(&buf)
	if err := w.Write(t.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	row := make([]string, len(t.Columns))
	for _, rec := range t.Rows {
		for i, c := range t.Columns {
			v, _ := rec.Get(c)
			row[i] = csvCell(v)
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return WriteFile(path, buf.Bytes())
}

func csvCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(x, 10)
	case int:
		return strconv.Itoa(x)
	case bool:
		return strconv.FormatBool(x)
	}
	return fmt.Sprint(v)
}
