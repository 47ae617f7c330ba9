package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/zulandar/tasbih/internal/session"
)

func newCounterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "counter",
		Short: "Counter management commands",
	}

	cmd.AddCommand(newCounterNewCmd())
	cmd.AddCommand(newCounterListCmd())
	cmd.AddCommand(newCounterEditCmd())
	cmd.AddCommand(newCounterDeleteCmd())
	return cmd
}

func newCounterNewCmd() *cobra.Command {
	var (
		configPath string
		title      string
		target     int
	)

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a new counter",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCounterNew(cmd, configPath, title, target)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Tasbih config file")
	cmd.Flags().StringVar(&title, "title", "", "counter title (required)")
	cmd.Flags().IntVar(&target, "target", 100, "target count [1, 10000]")
	cmd.MarkFlagRequired("title")
	return cmd
}

func runCounterNew(cmd *cobra.Command, configPath, title string, target int) error {
	_, gormDB, err := openFromConfig(configPath)
	if err != nil {
		return err
	}

	c, err := session.CreateCounter(gormDB, title, target)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created counter %d: %s (target %d)\n", c.ID, c.Title, c.Target)
	return nil
}

func newCounterListCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List counters",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCounterList(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Tasbih config file")
	return cmd
}

func runCounterList(cmd *cobra.Command, configPath string) error {
	_, gormDB, err := openFromConfig(configPath)
	if err != nil {
		return err
	}

	counters, err := session.ListCounters(gormDB)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(counters) == 0 {
		fmt.Fprintln(out, "No counters yet. Create one with: tasbih counter new --title ...")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tTARGET\tCREATED\tLAST COMPLETED")
	for _, c := range counters {
		completed := "-"
		if c.CompletedAt != nil {
			completed = c.CompletedAt.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\n",
			c.ID, c.Title, c.Target, c.CreatedAt.Format("2006-01-02"), completed)
	}
	return w.Flush()
}

func newCounterEditCmd() *cobra.Command {
	var (
		configPath string
		id         uint
		title      string
		target     int
	)

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit a counter's title and target",
		Long:  "Changes a counter in place. History is untouched; live progress above a lowered target is clamped.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCounterEdit(cmd, configPath, id, title, target)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Tasbih config file")
	cmd.Flags().UintVar(&id, "id", 0, "counter id (required)")
	cmd.Flags().StringVar(&title, "title", "", "new title (required)")
	cmd.Flags().IntVar(&target, "target", 0, "new target [1, 10000] (required)")
	cmd.MarkFlagRequired("id")
	cmd.MarkFlagRequired("title")
	cmd.MarkFlagRequired("target")
	return cmd
}

func runCounterEdit(cmd *cobra.Command, configPath string, id uint, title string, target int) error {
	_, gormDB, err := openFromConfig(configPath)
	if err != nil {
		return err
	}

	c, err := session.EditCounter(gormDB, id, title, target)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Updated counter %d: %s (target %d)\n", c.ID, c.Title, c.Target)
	return nil
}

func newCounterDeleteCmd() *cobra.Command {
	var (
		configPath string
		id         uint
	)

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a counter and its history",
		Long:  "Removes a counter, every history entry it produced, and its saved live progress.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCounterDelete(cmd, configPath, id)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Tasbih config file")
	cmd.Flags().UintVar(&id, "id", 0, "counter id (required)")
	cmd.MarkFlagRequired("id")
	return cmd
}

func runCounterDelete(cmd *cobra.Command, configPath string, id uint) error {
	_, gormDB, err := openFromConfig(configPath)
	if err != nil {
		return err
	}

	if err := session.DeleteCounter(gormDB, id); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted counter %d\n", id)
	return nil
}
