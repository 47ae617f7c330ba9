package history

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/zulandar/tasbih/internal/models"
)

// exportType labels every exported row; the format reserves the column
// for future entry kinds (e.g. manually logged runs).
const exportType = "Tasbih"

// ExportFilename returns the canonical export filename for a year.
func ExportFilename(year int) string {
	return fmt.Sprintf("prayer-history-%d.csv", year)
}

// ExportCSV writes the given year's entries as CSV with columns
// Date, Type, Title, Count, one row per history entry.
func ExportCSV(w io.Writer, entries []models.HistoryEntry, year int) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Date", "Type", "Title", "Count"}); err != nil {
		return fmt.Errorf("history: export header: %w", err)
	}

	for _, e := range FilterYear(entries, year) {
		row := []string{
			e.Timestamp.Format("2006-01-02"),
			exportType,
			e.Title,
			strconv.Itoa(e.Achieved),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("history: export row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("history: export: %w", err)
	}
	return nil
}
