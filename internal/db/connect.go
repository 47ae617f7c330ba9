// Package db opens and migrates the durable local store.
package db

import (
	"fmt"

	"github.com/zulandar/tasbih/internal/config"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// MySQLDSN builds a DSN for connecting to a shared MySQL history store.
func MySQLDSN(cfg config.MySQLConfig) string {
	cred := cfg.User
	if cfg.Password != "" {
		cred += ":" + cfg.Password
	}
	return fmt.Sprintf("%s@tcp(%s:%d)/%s?parseTime=true", cred, cfg.Host, cfg.Port, cfg.Database)
}

// Open opens a GORM connection to the store selected by the storage config:
// a local sqlite file by default, or MySQL when configured.
func Open(cfg config.StorageConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	switch cfg.Driver {
	case "mysql":
		db, err := gorm.Open(mysql.Open(MySQLDSN(cfg.MySQL)), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("db: connect to %s:%d/%s: %w", cfg.MySQL.Host, cfg.MySQL.Port, cfg.MySQL.Database, err)
		}
		return db, nil
	default:
		db, err := gorm.Open(sqlite.Open(cfg.Path), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("db: open %s: %w", cfg.Path, err)
		}
		return db, nil
	}
}
