package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/zulandar/tasbih/internal/api"
	"github.com/zulandar/tasbih/internal/digest"
	"github.com/zulandar/tasbih/internal/store"
)

func newServeCmd() *cobra.Command {
	var (
		configPath string
		port       int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the counter API server",
		Long:  "Launches the JSON API backed by an in-memory record store, plus the daily digest scheduler when configured.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, configPath, port)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Tasbih config file")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "port to listen on (overrides config)")
	return cmd
}

func runServe(cmd *cobra.Command, configPath string, port int) error {
	cfg, gormDB, err := openFromConfig(configPath)
	if err != nil {
		return err
	}
	if port == 0 {
		port = cfg.Server.Port
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		fmt.Fprintf(cmd.OutOrStdout(), "\nReceived %s, shutting down...\n", sig)
		cancel()
	}()

	if cfg.Digest.Enabled {
		fanout := buildNotifiers(cfg)
		if fanout.Len() > 0 {
			go digest.Run(ctx, gormDB, fanout, cfg.Digest.Cron)
		}
	}

	return api.Start(ctx, api.StartOpts{
		Store: store.New(),
		Port:  port,
		Out:   cmd.OutOrStdout(),
	})
}
