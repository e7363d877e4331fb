package db

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	migrate "github.com/golang-migrate/migrate/v4"
	// Blank imports register the postgres driver and file source for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/netaaura/netaaura/internal/config"
	"github.com/netaaura/netaaura/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectAndMigrate opens the database and brings the schema up to date.
// With DATABASE_DSN set it connects to postgres (with retries); without one it
// falls back to a local sqlite file, which is enough for development.
func ConnectAndMigrate() (*gorm.DB, error) {
	dsn := GetNormalizedDSN()
	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "1" {
		logLevel = logger.Info
	}
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}

	var db *gorm.DB
	var err error
	if dsn == "" {
		db, err = gorm.Open(sqlite.Open("netaaura.db"), cfg)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
	} else {
		for i := 0; i < 10; i++ {
			db, err = gorm.Open(postgres.Open(dsn), cfg)
			if err == nil {
				break
			}
			fmt.Println("Retrying DB connection...", err)
			time.Sleep(2 * time.Second)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to connect database after retries: %w", err)
		}
	}

	// Basic connectivity test
	if pingErr := db.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}

	if dsn != "" {
		masked := dsn
		if strings.Contains(masked, "password=") {
			re := regexp.MustCompile(`(password=)([^\s]+)`)
			masked = re.ReplaceAllString(masked, `${1}***`)
		}
		fmt.Println("[DB] Using DSN:", masked)
	}

	// MIGRATIONS=1 runs the sql migrations via golang-migrate; otherwise
	// AutoMigrate keeps dev setups simple.
	if dsn != "" && config.ParseBool("MIGRATIONS", false) {
		if err := runSQLMigrations(dsn); err != nil {
			return nil, fmt.Errorf("sql migrations failed: %w", err)
		}
	} else {
		if err := AutoMigrate(db); err != nil {
			return nil, err
		}
	}

	for _, table := range []string{"users", "politicians", "ratings", "comments"} {
		if !db.Migrator().HasTable(table) {
			return nil, errors.New("missing table after migration: " + table)
		}
	}
	if config.ParseBool("DB_SEED", false) {
		seed(db)
	}
	return db, nil
}

// AutoMigrate creates or updates the four core tables, including the
// composite unique index backing the rating upsert.
func AutoMigrate(db *gorm.DB) error {
	modelsToMigrate := []interface{}{
		&models.User{}, &models.Politician{}, &models.Rating{}, &models.Comment{},
	}
	for _, m := range modelsToMigrate {
		if migErr := db.AutoMigrate(m); migErr != nil {
			return fmt.Errorf("automigrate %T: %w", m, migErr)
		}
	}
	return nil
}

// seed creates the initial staff account when none exists. Idempotent.
func seed(db *gorm.DB) {
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@netaaura.local"
	}
	var existing models.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		return
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return
	}
	db.Create(&models.User{Email: email, Password: string(hash), Username: "admin", IsStaff: true})
}

// runSQLMigrations executes migrations in ./migrations using golang-migrate file source.
func runSQLMigrations(dsn string) error {
	m, err := migrate.New("file://migrations", dsn)
	if err != nil {
		return err
	}
	if err = m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}
