package database

import (
	"fmt"
	"log"
	"os"
	"strings"

	"artifolio/config"
	"artifolio/internal/domain/challenges"
	"artifolio/internal/domain/users"
	"artifolio/internal/domain/works"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func InitDB() {
	db, err := Open(config.DB_TYPE, config.DB_URL)
	if err != nil {
		log.Fatal("❌ Failed to connect to database:", err)
	}

	DB = db

	if config.DB_AUTO_MIGRATE {
		if err := Migrate(DB); err != nil {
			log.Fatal("❌ AutoMigrate error:", err)
		}
	}

	log.Printf("✅ Connected to %s database", config.DB_TYPE)
}

// Dialector picks the gorm driver for a DB_TYPE value.
func Dialector(dbType, dsn string) (gorm.Dialector, error) {
	if dsn == "" {
		return nil, fmt.Errorf("empty DSN")
	}

	switch strings.ToLower(dbType) {
	case "", "postgres", "postgresql":
		return postgres.Open(dsn), nil
	case "mysql", "mariadb":
		return mysql.Open(dsn), nil
	case "sqlserver", "mssql":
		return sqlserver.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database type: %s", dbType)
	}
}

func Open(dbType, dsn string) (*gorm.DB, error) {
	dialector, err := Dialector(dbType, dsn)
	if err != nil {
		return nil, err
	}

	level := logger.Warn
	if os.Getenv("GIN_MODE") == "debug" {
		level = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("db connection is nil")
	}
	return db.AutoMigrate(
		&users.User{},
		&works.Artwork{},
		&works.ProgressPhoto{},
		&works.PrivateComment{},
		&challenges.Challenge{},
	)
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
