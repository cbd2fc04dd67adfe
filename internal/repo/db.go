// Package repo is the gorm/postgres persistence layer: the concrete
// quote.OrderStore and invoice.NumberStore implementations, plus
// zone/contact/settings repositories, backed by unique-index-enforced
// sequential references and atomic per-transition transactions (§5).
package repo

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect opens a Postgres connection pool at databaseURL and verifies it
// with a ping before returning.
func Connect(databaseURL string) (*gorm.DB, error) {
	gormLogger := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)

	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: gormLogger,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("repo: connect: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("repo: underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("repo: ping: %w", err)
	}

	return db, nil
}

// AutoMigrate registers every gorm model. Production deployments should
// prefer the versioned SQL migrations in internal/repo/migrations; this is
// kept for local/dev bootstrap the way the teacher's order_service does.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&ZoneModel{},
		&ContactModel{},
		&SettingsModel{},
		&VehicleCategoryModel{},
		&QuoteModel{},
		&QuoteStatusAuditLogModel{},
		&OrderModel{},
		&MissionModel{},
		&InvoiceModel{},
		&InvoiceLineModel{},
		&ReferenceSequenceModel{},
	)
}
