// Package export serializes intake records for bulk download.
package export

import (
	"encoding/csv"
	"io"

	"intake-backend/internal/models"

	"github.com/pkg/errors"
)

// ErrEmpty is returned when there are no records to export.
var ErrEmpty = errors.New("nothing to export")

// FileName is the attachment name used for CSV downloads.
const FileName = "pacientes_quiropraxia.csv"

// WriteCSV writes a header row of columns followed by one row per record.
// NULL values become empty cells.
func WriteCSV(w io.Writer, columns []string, records []models.PatientRecord) error {
	if len(records) == 0 {
		return ErrEmpty
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return err
	}
	row := make([]string, len(columns))
	for i := range records {
		for j, col := range columns {
			row[j], _ = records[i].Value(col)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
