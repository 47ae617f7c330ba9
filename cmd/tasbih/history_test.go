package main

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/zulandar/tasbih/internal/models"
	"gorm.io/gorm"
)

// seedHistory opens the store behind cfgPath and inserts completed runs
// across two days of 2026.
func seedHistory(t *testing.T, cfgPath string) *gorm.DB {
	t.Helper()
	_, gormDB, err := openFromConfig(cfgPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	day1 := time.Date(2026, time.March, 3, 9, 0, 0, 0, time.Local)
	day2 := time.Date(2026, time.March, 4, 21, 0, 0, 0, time.Local)
	entries := []models.HistoryEntry{
		{CounterID: 1, Title: "SubhanAllah", Target: 33, Achieved: 33, Timestamp: day1},
		{CounterID: 1, Title: "SubhanAllah", Target: 33, Achieved: 33, Timestamp: day1.Add(time.Hour)},
		{CounterID: 2, Title: "Alhamdulillah", Target: 100, Achieved: 100, Timestamp: day2},
	}
	for i := range entries {
		if err := gormDB.Create(&entries[i]).Error; err != nil {
			t.Fatalf("seed entry: %v", err)
		}
	}
	return gormDB
}

func TestHistoryCmd_ByDay(t *testing.T) {
	cfgPath := writeTestConfig(t)
	seedHistory(t, cfgPath)

	out, err := runCLI(t, "history", "-c", cfgPath, "--year", "2026")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}

	if !strings.Contains(out, "Mar 03") || !strings.Contains(out, "Mar 04") {
		t.Errorf("expected both day labels, got: %s", out)
	}
	if !strings.Contains(out, "Total: 166 of 166") {
		t.Errorf("expected totals line, got: %s", out)
	}
	// 166 over 2 day groups rounds to 83.
	if !strings.Contains(out, "Daily average: 83") {
		t.Errorf("expected daily average 83, got: %s", out)
	}
	if !strings.Contains(out, "Most active day: Mar 04") {
		t.Errorf("expected most active day Mar 04, got: %s", out)
	}
}

func TestHistoryCmd_ByMonth(t *testing.T) {
	cfgPath := writeTestConfig(t)
	seedHistory(t, cfgPath)

	out, err := runCLI(t, "history", "-c", cfgPath, "--year", "2026", "--by-month")
	if err != nil {
		t.Fatalf("history --by-month failed: %v", err)
	}
	if !strings.Contains(out, "March") {
		t.Errorf("expected March group, got: %s", out)
	}
	if !strings.Contains(out, "3") {
		t.Errorf("expected run count in output, got: %s", out)
	}
}

func TestHistoryCmd_EmptyYear(t *testing.T) {
	cfgPath := writeTestConfig(t)
	seedHistory(t, cfgPath)

	out, err := runCLI(t, "history", "-c", cfgPath, "--year", "1999")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if !strings.Contains(out, "No completed runs in 1999") {
		t.Errorf("expected empty-year message, got: %s", out)
	}
	if !strings.Contains(out, "2026") {
		t.Errorf("expected hint listing years with history, got: %s", out)
	}
}

func TestExportCmd_WritesCSV(t *testing.T) {
	cfgPath := writeTestConfig(t)
	seedHistory(t, cfgPath)

	outPath := filepath.Join(t.TempDir(), "out.csv")
	out, err := runCLI(t, "export", "-c", cfgPath, "--year", "2026", "-o", outPath)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !strings.Contains(out, "3 entries") {
		t.Errorf("expected entry count in output, got: %s", out)
	}

	f, err := os.Open(outPath)
	if err != nil {
		t.Fatalf("open export: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("parse export: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected header + 3 rows, got %d", len(rows))
	}
	if rows[0][0] != "Date" || rows[0][3] != "Count" {
		t.Errorf("unexpected header: %v", rows[0])
	}
	if rows[1][1] != "Tasbih" || rows[1][2] != "SubhanAllah" || rows[1][3] != "33" {
		t.Errorf("unexpected first row: %v", rows[1])
	}
}

func TestExportCmd_DefaultFilename(t *testing.T) {
	cfgPath := writeTestConfig(t)
	seedHistory(t, cfgPath)

	dir := t.TempDir()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(orig)

	out, err := runCLI(t, "export", "-c", cfgPath, "--year", "2026")
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !strings.Contains(out, "prayer-history-2026.csv") {
		t.Errorf("expected default filename in output, got: %s", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "prayer-history-2026.csv")); err != nil {
		t.Errorf("expected default export file: %v", err)
	}
}

func TestHistoryDeleteCmd(t *testing.T) {
	cfgPath := writeTestConfig(t)
	seedHistory(t, cfgPath)

	out, err := runCLI(t, "history", "delete", "-c", cfgPath, "--id", "1")
	if err != nil {
		t.Fatalf("history delete failed: %v", err)
	}
	if !strings.Contains(out, "Deleted history entry 1") {
		t.Errorf("unexpected delete output: %s", out)
	}

	out, err = runCLI(t, "history", "-c", cfgPath, "--year", "2026")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if !strings.Contains(out, "Total: 133 of 133") {
		t.Errorf("expected totals without the deleted entry, got: %s", out)
	}

	if _, err := runCLI(t, "history", "delete", "-c", cfgPath, "--id", "99"); err == nil {
		t.Fatal("expected error for unknown history entry id")
	}
}

func TestHistoryCmd_Flags(t *testing.T) {
	cmd := newHistoryCmd()
	for _, f := range []string{"config", "year", "by-month"} {
		if cmd.Flags().Lookup(f) == nil {
			t.Errorf("history: expected --%s flag", f)
		}
	}

	exportCmd := newExportCmd()
	for _, f := range []string{"config", "year", "out"} {
		if exportCmd.Flags().Lookup(f) == nil {
			t.Errorf("export: expected --%s flag", f)
		}
	}
}
