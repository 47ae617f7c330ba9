package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/zulandar/tasbih/internal/history"
	"github.com/zulandar/tasbih/internal/session"
)

func newHistoryCmd() *cobra.Command {
	var (
		configPath string
		year       int
		byMonth    bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show completion history and statistics",
		Long:  "Prints the year's completed runs grouped by day (or by month with --by-month), plus headline totals.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, configPath, year, byMonth)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Tasbih config file")
	cmd.Flags().IntVar(&year, "year", time.Now().Year(), "calendar year to show")
	cmd.Flags().BoolVar(&byMonth, "by-month", false, "group by month instead of day")

	cmd.AddCommand(newHistoryDeleteCmd())
	return cmd
}

func newHistoryDeleteCmd() *cobra.Command {
	var (
		configPath string
		id         uint
	)

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a single history entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryDelete(cmd, configPath, id)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Tasbih config file")
	cmd.Flags().UintVar(&id, "id", 0, "history entry id (required)")
	cmd.MarkFlagRequired("id")
	return cmd
}

func runHistoryDelete(cmd *cobra.Command, configPath string, id uint) error {
	_, gormDB, err := openFromConfig(configPath)
	if err != nil {
		return err
	}

	if err := session.DeleteHistoryEntry(gormDB, id); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted history entry %d\n", id)
	return nil
}

func runHistory(cmd *cobra.Command, configPath string, year int, byMonth bool) error {
	_, gormDB, err := openFromConfig(configPath)
	if err != nil {
		return err
	}

	entries, err := session.ListHistory(gormDB)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	yearEntries := history.FilterYear(entries, year)
	if len(yearEntries) == 0 {
		fmt.Fprintf(out, "No completed runs in %d.\n", year)
		if years := history.Years(entries); len(years) > 0 {
			fmt.Fprintf(out, "Years with history: %v\n", years)
		}
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	if byMonth {
		fmt.Fprintln(w, "MONTH\tRUNS\tACHIEVED\tTARGET")
		for _, g := range history.GroupByMonth(yearEntries, year) {
			fmt.Fprintf(w, "%s\t%d\t%d\t%d\n", g.Label, len(g.Entries), g.Achieved, g.Target)
		}
	} else {
		fmt.Fprintln(w, "DAY\tRUNS\tACHIEVED\tTARGET")
		for _, g := range history.GroupByDay(yearEntries) {
			fmt.Fprintf(w, "%s\t%d\t%d\t%d\n", g.Label, len(g.Entries), g.Achieved, g.Target)
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	s := history.Summarize(yearEntries)
	fmt.Fprintf(out, "\nTotal: %d of %d\n", s.TotalAchieved, s.TotalTarget)
	fmt.Fprintf(out, "Daily average: %d\n", s.DailyAverage)
	fmt.Fprintf(out, "Most active day: %s\n", s.MostActiveDay)
	return nil
}

func newExportCmd() *cobra.Command {
	var (
		configPath string
		year       int
		outPath    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a year's history as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, configPath, year, outPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Tasbih config file")
	cmd.Flags().IntVar(&year, "year", time.Now().Year(), "calendar year to export")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (defaults to prayer-history-<year>.csv)")
	return cmd
}

func runExport(cmd *cobra.Command, configPath string, year int, outPath string) error {
	_, gormDB, err := openFromConfig(configPath)
	if err != nil {
		return err
	}

	entries, err := session.ListHistory(gormDB)
	if err != nil {
		return err
	}

	if outPath == "" {
		outPath = history.ExportFilename(year)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", outPath, err)
	}
	defer f.Close()

	if err := history.ExportCSV(f, entries, year); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("export: close %s: %w", outPath, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d entries)\n", outPath, len(history.FilterYear(entries, year)))
	return nil
}
