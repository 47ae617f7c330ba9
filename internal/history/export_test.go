package history

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/zulandar/tasbih/internal/models"
)

func TestExportFilename(t *testing.T) {
	if got := ExportFilename(2026); got != "prayer-history-2026.csv" {
		t.Errorf("ExportFilename = %q, want prayer-history-2026.csv", got)
	}
}

func TestExportCSV(t *testing.T) {
	entries := []models.HistoryEntry{
		entry("SubhanAllah", 33, 33, time.Date(2026, time.March, 5, 9, 30, 0, 0, time.UTC)),
		entry("Alhamdulillah", 40, 50, time.Date(2026, time.March, 6, 18, 0, 0, 0, time.UTC)),
		entry("Old", 10, 10, time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC)),
	}

	var buf bytes.Buffer
	if err := ExportCSV(&buf, entries, 2026); err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("rows = %d, want header + 2 entries", len(records))
	}

	header := strings.Join(records[0], ",")
	if header != "Date,Type,Title,Count" {
		t.Errorf("header = %q, want Date,Type,Title,Count", header)
	}

	first := records[1]
	if first[0] != "2026-03-05" || first[1] != "Tasbih" || first[2] != "SubhanAllah" || first[3] != "33" {
		t.Errorf("row 1 = %v", first)
	}
	second := records[2]
	if second[2] != "Alhamdulillah" || second[3] != "40" {
		t.Errorf("row 2 = %v", second)
	}
}

func TestExportCSV_EmptyYear(t *testing.T) {
	var buf bytes.Buffer
	if err := ExportCSV(&buf, nil, 2026); err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Errorf("rows = %d, want header only", len(records))
	}
}
