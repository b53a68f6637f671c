package relational

import (
	"context"
	"embed"
	"path"

	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
	"gorm.io/gorm"
)

//go:embed migrations/*/*.sql
var migrationsFS embed.FS

func migrationsDir(dialect Dialect) string {
	return path.Join("migrations", string(dialect))
}

func prepareGoose(dialect Dialect) error {
	if err := goose.SetDialect(dialect.gooseName()); err != nil {
		return err
	}
	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(goose.NopLogger())
	return nil
}

// RunMigrations brings the schema of the given dialect up to date.
func RunMigrations(ctx context.Context, db *gorm.DB, dialect Dialect) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	if err := prepareGoose(dialect); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, sqlDB, migrationsDir(dialect)); err != nil {
		return errors.Wrap(err, "migrate up")
	}
	return nil
}

// ResetSchema drops every table and recreates the schema.
func ResetSchema(ctx context.Context, db *gorm.DB, dialect Dialect) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	if err := prepareGoose(dialect); err != nil {
		return err
	}
	if err := goose.DownToContext(ctx, sqlDB, migrationsDir(dialect), 0); err != nil {
		return errors.Wrap(err, "migrate down")
	}
	if err := goose.UpContext(ctx, sqlDB, migrationsDir(dialect)); err != nil {
		return errors.Wrap(err, "migrate up")
	}
	return nil
}
