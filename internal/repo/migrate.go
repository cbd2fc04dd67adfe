package repo

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
)

// DefaultMigrationsPath is the versioned SQL migration set checked into
// this module, mirroring the gorm models in models.go. Production
// deployments run this instead of AutoMigrate.
const DefaultMigrationsPath = "file://internal/repo/migrations"

// Migrate applies every pending up migration at migrationsPath against
// databaseURL. A nil error with ErrNoChange means the schema was already
// current.
func Migrate(migrationsPath, databaseURL string) error {
	m, err := migrate.New(migrationsPath, databaseURL)
	if err != nil {
		return fmt.Errorf("repo: open migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("repo: apply migrations: %w", err)
	}
	return nil
}
