package main

import (
	"fmt"
	"log"
	"os"

	"github.com/zulandar/tasbih/internal/config"
	"github.com/zulandar/tasbih/internal/db"
	"github.com/zulandar/tasbih/internal/notify"
	"github.com/zulandar/tasbih/internal/notify/discord"
	"github.com/zulandar/tasbih/internal/notify/slack"
	"gorm.io/gorm"
)

const defaultConfigPath = "tasbih.yaml"

// loadConfig reads the config file, falling back to defaults when the
// default path doesn't exist. An explicit path must exist.
func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) && path == defaultConfigPath {
		return config.Default(), nil
	}
	return config.Load(path)
}

// openFromConfig loads config and opens the migrated local store.
func openFromConfig(configPath string) (*config.Config, *gorm.DB, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	gormDB, err := db.Open(cfg.Storage)
	if err != nil {
		return nil, nil, err
	}
	if err := db.AutoMigrate(gormDB); err != nil {
		return nil, nil, err
	}
	return cfg, gormDB, nil
}

// buildNotifiers assembles the notifier fanout from config. Misconfigured
// adapters are skipped with a warning rather than blocking the count.
func buildNotifiers(cfg *config.Config) *notify.Fanout {
	fanout := notify.NewFanout()

	if cfg.Notify.Command != "" {
		fanout.Add(&notify.CommandNotifier{Command: cfg.Notify.Command})
	}
	if cfg.Notify.Slack.BotToken != "" {
		n, err := slack.New(slack.Opts{
			BotToken:  cfg.Notify.Slack.BotToken,
			ChannelID: cfg.Notify.Slack.ChannelID,
		})
		if err != nil {
			log.Printf("notify: slack disabled: %v", err)
		} else {
			fanout.Add(n)
		}
	}
	if cfg.Notify.Discord.BotToken != "" {
		n, err := discord.New(discord.Opts{
			BotToken:  cfg.Notify.Discord.BotToken,
			ChannelID: cfg.Notify.Discord.ChannelID,
		})
		if err != nil {
			log.Printf("notify: discord disabled: %v", err)
		} else {
			fanout.Add(n)
		}
	}
	return fanout
}
