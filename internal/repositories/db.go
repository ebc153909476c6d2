// Package repositories provides data access layer implementations.
// It handles all database operations and data persistence logic.
package repositories

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the global database instance used across the application.
var DB *gorm.DB

// DBConfig holds connection and pool settings.
type DBConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

func (c DBConfig) dsn() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode)
}

// InitDB opens the Postgres connection, applies the pool settings and runs
// migrations.
func InitDB(cfg DBConfig) (*gorm.DB, error) {
	// Configure GORM logger to ignore "record not found" errors
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(postgres.Open(cfg.dsn()), &gorm.Config{Logger: newLogger})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	DB = db
	log.Println("PostgreSQL connected & migrations applied")
	return db, nil
}

// pendingIndexes keep at most one PENDING row per owner in each profile table.
var pendingIndexes = []string{
	"CREATE UNIQUE INDEX IF NOT EXISTS ux_businesses_pending_owner ON businesses (owner_id) WHERE approval_status = 'PENDING'",
	"CREATE UNIQUE INDEX IF NOT EXISTS ux_bank_businesses_pending_owner ON bank_businesses (owner_id) WHERE approval_status = 'PENDING'",
	"CREATE UNIQUE INDEX IF NOT EXISTS ux_contacts_pending_owner ON contacts (owner_id) WHERE approval_status = 'PENDING'",
}

// Migrate creates or updates every table owned by the service.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Account{},
		&models.Business{},
		&models.BankBusiness{},
		&models.Contact{},
		&models.ApprovedBusiness{},
		&models.ApprovedBankBusiness{},
		&models.RejectedProfileUpdate{},
		&models.BlockedMerchantComment{},
		&models.SearchIndexEntry{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	for _, stmt := range pendingIndexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create pending index: %w", err)
		}
	}
	return nil
}

// CloseDB closes the underlying connection pool.
func CloseDB(db *gorm.DB) {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Failed to get database instance: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Printf("Failed to close database connection: %v", err)
	}
}
