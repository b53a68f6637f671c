package relational

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

type Dialect string

const (
	DialectMySQL    Dialect = "mysql"
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// ParseDialect validates a dialect name.
func ParseDialect(name string) (Dialect, error) {
	switch d := Dialect(strings.ToLower(strings.TrimSpace(name))); d {
	case DialectMySQL, DialectPostgres, DialectSQLite:
		return d, nil
	}
	return "", errors.Errorf("unsupported database dialect %q", name)
}

func (d Dialect) gooseName() string {
	if d == DialectSQLite {
		return "sqlite3"
	}
	return string(d)
}

// SQLiteDSN turns a file path into a DSN with foreign keys enforced, so
// that deleting a parent row cascades to its children.
func SQLiteDSN(path string) string {
	return path + "?_pragma=foreign_keys(1)"
}

func Open(dialect Dialect, dsn string, logger zerolog.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch dialect {
	case DialectSQLite:
		dialector = sqlite.Dialector{DriverName: "sqlite", DSN: dsn}
	case DialectMySQL:
		dialector = mysql.Open(dsn)
	case DialectPostgres:
		dialector = postgres.Open(dsn)
	default:
		return nil, errors.Errorf("unsupported database dialect %q", dialect)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: newGormLogger(logger)})
	if err != nil {
		return nil, errors.Wrapf(err, "open %s database", dialect)
	}
	return db, nil
}
