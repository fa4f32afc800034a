package database

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"carspace/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connections holds the two credential tiers against the same database.
// Read is the restricted user (row-level policies apply); Admin is the
// elevated user used by write paths that must bypass them.
type Connections struct {
	Read  *gorm.DB
	Admin *gorm.DB
}

func Connect(cfg *config.Config) (*Connections, error) {
	read, err := open(cfg, cfg.DBUser, cfg.DBPassword)
	if err != nil {
		return nil, fmt.Errorf("connect restricted tier: %w", err)
	}
	admin, err := open(cfg, cfg.DBAdminUser, cfg.DBAdminPassword)
	if err != nil {
		return nil, fmt.Errorf("connect elevated tier: %w", err)
	}
	return &Connections{Read: read, Admin: admin}, nil
}

func open(cfg *config.Config, user, password string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		cfg.DBHost, user, password, cfg.DBName, cfg.DBPort)

	gormLogLevel := logger.Warn
	if cfg.AppMode == "debug" {
		gormLogLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(gormLogLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// HealthCheck pings both tiers.
func (c *Connections) HealthCheck() error {
	for name, db := range map[string]*gorm.DB{"read": c.Read, "admin": c.Admin} {
		sqlDB, err := db.DB()
		if err != nil {
			return fmt.Errorf("%s tier: %w", name, err)
		}
		if err := sqlDB.Ping(); err != nil {
			return fmt.Errorf("%s tier: %w", name, err)
		}
	}
	return nil
}

// ApplyRawMigrations reads .sql files from the migrations directory and
// executes them against the elevated connection in lexical order.
func (c *Connections) ApplyRawMigrations(migrationsDir string) error {
	files, err := os.ReadDir(migrationsDir)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, file := range files {
		if filepath.Ext(file.Name()) != ".sql" {
			continue
		}
		path := filepath.Join(migrationsDir, file.Name())
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file.Name(), err)
		}
		if err := c.Admin.Exec(string(content)).Error; err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", file.Name(), err)
		}
	}
	return nil
}
