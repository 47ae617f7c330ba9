package db

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/zulandar/tasbih/internal/config"
	"github.com/zulandar/tasbih/internal/models"
)

func TestMySQLDSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.MySQLConfig
		want string
	}{
		{
			name: "default local",
			cfg:  config.MySQLConfig{Host: "127.0.0.1", Port: 3306, Database: "tasbih", User: "root"},
			want: "root@tcp(127.0.0.1:3306)/tasbih?parseTime=true",
		},
		{
			name: "custom host with password",
			cfg:  config.MySQLConfig{Host: "10.0.0.5", Port: 3307, Database: "tasbih_shared", User: "tally", Password: "secret"},
			want: "tally:secret@tcp(10.0.0.5:3307)/tasbih_shared?parseTime=true",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MySQLDSN(tt.cfg)
			if got != tt.want {
				t.Errorf("MySQLDSN() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMySQLDSN_ParseTimeFlag(t *testing.T) {
	dsn := MySQLDSN(config.MySQLConfig{Host: "localhost", Port: 3306, Database: "t", User: "root"})
	if !strings.Contains(dsn, "parseTime=true") {
		t.Errorf("DSN missing parseTime=true: %s", dsn)
	}
}

func TestOpen_SqliteAndMigrate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasbih.db")
	gdb, err := Open(config.StorageConfig{Driver: "sqlite", Path: path})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := AutoMigrate(gdb); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}

	for _, m := range AllModels() {
		if !gdb.Migrator().HasTable(m) {
			t.Errorf("missing table for %T", m)
		}
	}
}

func TestOpen_SqliteRoundTrip(t *testing.T) {
	gdb, err := Open(config.StorageConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "rt.db")})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := AutoMigrate(gdb); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}

	c := models.Counter{Title: "SubhanAllah", Target: 33}
	if err := gdb.Create(&c).Error; err != nil {
		t.Fatalf("create counter: %v", err)
	}
	if c.ID == 0 {
		t.Error("counter ID not assigned")
	}

	var got models.Counter
	if err := gdb.First(&got, c.ID).Error; err != nil {
		t.Fatalf("read back: %v", err)
	}
	if got.Title != "SubhanAllah" || got.Target != 33 {
		t.Errorf("read back = %q/%d, want SubhanAllah/33", got.Title, got.Target)
	}
	if got.CompletedAt != nil {
		t.Error("CompletedAt should be nil for a fresh counter")
	}
}
