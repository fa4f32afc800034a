package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"carspace/config"
	"carspace/internal/domain"
	"carspace/pkg/database"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const usage = `
Carspace - Database CLI Tool

Usage:
  migrate [command] [flags]

Commands:
  up          Run all SQL migrations
  status      Show database connection status
  seed        Seed the database with a superadmin user

Flags:
  -migrations string   Path to migrations directory (default "migrations")
  -admin-email string  Superadmin email for seeding (default "admin@carspace.local")
  -admin-pass string   Superadmin password for seeding (default "Admin@123!")

Examples:
  go run cmd/migrate/main.go up
  go run cmd/migrate/main.go seed
`

func main() {
	migrationsDir := flag.String("migrations", "migrations", "Path to migrations directory")
	adminEmail := flag.String("admin-email", "admin@carspace.local", "Superadmin email for seeding")
	adminPass := flag.String("admin-pass", "Admin@123!", "Superadmin password for seeding")

	flag.Usage = func() {
		fmt.Print(usage)
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	switch flag.Arg(0) {
	case "up":
		runMigrationsUp(db, *migrationsDir)
	case "status":
		showStatus(db)
	case "seed":
		runSeed(db, *adminEmail, *adminPass)
	default:
		fmt.Printf("Unknown command: %s\n", flag.Arg(0))
		flag.Usage()
		os.Exit(1)
	}
}

func runMigrationsUp(db *database.Connections, migrationsDir string) {
	log.Println("Running migrations...")
	if err := db.ApplyRawMigrations(migrationsDir); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migrations completed")
}

func showStatus(db *database.Connections) {
	if err := db.HealthCheck(); err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Database connection: OK")
}

func runSeed(db *database.Connections, adminEmail, adminPass string) {
	ctx := context.Background()

	var existing domain.User
	err := db.Admin.WithContext(ctx).Where("email = ?", adminEmail).First(&existing).Error
	if err == nil {
		log.Printf("Superadmin already exists: %s (ID: %s)", adminEmail, existing.ID)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPass), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	admin := domain.User{
		ID:           uuid.New(),
		Email:        adminEmail,
		PasswordHash: string(hash),
		DisplayName:  "Superadmin",
		Role:         domain.RoleSuperAdmin,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := db.Admin.WithContext(ctx).Create(&admin).Error; err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Printf("Superadmin created: %s (ID: %s)", adminEmail, admin.ID)
}
