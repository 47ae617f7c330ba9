package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/zulandar/tasbih/internal/api"
	"github.com/zulandar/tasbih/internal/session"
	"golang.org/x/term"
)

func newCountCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "count <counter-id>",
		Short: "Run an interactive counting session",
		Long: "Opens (or resumes) a counting session for a counter. Any key taps, " +
			"'r' restarts the run, 'q' quits. Progress survives quitting mid-count.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return fmt.Errorf("count: invalid counter id %q", args[0])
			}
			return runCount(cmd, configPath, uint(id))
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Tasbih config file")
	return cmd
}

func runCount(cmd *cobra.Command, configPath string, id uint) error {
	cfg, gormDB, err := openFromConfig(configPath)
	if err != nil {
		return err
	}

	opts := session.Opts{}
	if cfg.Server.URL != "" {
		opts.Remote = api.NewClient(cfg.Server.URL)
	}
	if fanout := buildNotifiers(cfg); fanout.Len() > 0 {
		opts.Notifier = fanout
	}

	sess, err := session.Open(gormDB, id, opts)
	if err != nil {
		return err
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return fmt.Errorf("count: an interactive terminal is required")
	}
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("count: raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	out := cmd.OutOrStdout()
	counter := sess.Counter()
	fmt.Fprintf(out, "%s: tap any key, 'r' to restart, 'q' to quit\r\n", counter.Title)
	printProgress(out, sess)

	ctx := context.Background()
	buf := make([]byte, 1)
	for {
		if _, err := os.Stdin.Read(buf); err != nil {
			return fmt.Errorf("count: read key: %w", err)
		}

		switch buf[0] {
		case 'q', 3, 4: // q, ctrl-c, ctrl-d
			fmt.Fprint(out, "\r\n")
			return nil
		case 'r':
			if err := sess.Restart(); err != nil {
				return err
			}
			printProgress(out, sess)
		default:
			wasComplete := sess.State() == session.StateComplete
			state, err := sess.Tap(ctx)
			if err != nil {
				return err
			}
			printProgress(out, sess)
			if state == session.StateComplete && !wasComplete {
				fmt.Fprintf(out, "\r\nMasha Allah! You have completed %d counts of %s\r\n",
					sess.Current(), counter.Title)
			}
		}
	}
}

func printProgress(out io.Writer, sess *session.Session) {
	c := sess.Counter()
	fmt.Fprintf(out, "\r%d/%d (%s)   ", sess.Current(), c.Target, sess.State())
}
