// Package storage selects and prepares the backend named by the configuration.
package storage

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/uber-go/tally/v4"

	"github.com/soamaka/AirBnB-clone/internal/adapters/db/relational"
	"github.com/soamaka/AirBnB-clone/internal/adapters/filestore"
	"github.com/soamaka/AirBnB-clone/internal/config"
	"github.com/soamaka/AirBnB-clone/internal/domain"
)

// Open builds the configured backend, loads its durable state and wraps it
// with metrics.
func Open(ctx context.Context, cfg *config.Config, logger zerolog.Logger, scope tally.Scope) (domain.Storage, error) {
	var store domain.Storage
	if cfg.UsesDB() {
		rs, err := openDB(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		store = rs
	} else {
		store = filestore.New(cfg.FilePath, logger)
	}

	store = Instrument(store, NewMetrics(scope))
	if err := store.Reload(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

func openDB(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*relational.Storage, error) {
	dialect, err := relational.ParseDialect(cfg.DBDialect)
	if err != nil {
		return nil, err
	}
	db, err := relational.Open(dialect, DSN(cfg), logger)
	if err != nil {
		return nil, err
	}

	if cfg.IsTest() {
		err = relational.ResetSchema(ctx, db, dialect)
	} else {
		err = relational.RunMigrations(ctx, db, dialect)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "prepare %s schema", dialect)
	}

	logger.Info().Str("dialect", string(dialect)).Str("host", cfg.MySQLHost).Str("database", cfg.MySQLDB).Msg("database ready")
	return relational.NewStorage(db, logger), nil
}

// DSN builds the driver data source name for the configured dialect.
func DSN(cfg *config.Config) string {
	switch cfg.DBDialect {
	case "sqlite":
		return relational.SQLiteDSN(cfg.SQLitePath)
	case "postgres":
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
			cfg.MySQLHost, cfg.MySQLPort, cfg.MySQLUser, cfg.MySQLPwd, cfg.MySQLDB)
	default:
		mc := mysql.NewConfig()
		mc.User = cfg.MySQLUser
		mc.Passwd = cfg.MySQLPwd
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(cfg.MySQLHost, strconv.Itoa(cfg.MySQLPort))
		mc.DBName = cfg.MySQLDB
		mc.ParseTime = true
		mc.Loc = time.UTC
		mc.Params = map[string]string{"charset": "utf8mb4"}
		return mc.FormatDSN()
	}
}
