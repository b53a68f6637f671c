package config

import (
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	StorageFile = "file"
	StorageDB   = "db"
)

// Config is read from HBNB_ prefixed environment variables,
// e.g. HBNB_TYPE_STORAGE=db, HBNB_MYSQL_HOST=localhost.
type Config struct {
	// TypeStorage selects the backend: "db" for relational, anything else for the JSON file.
	TypeStorage string `envconfig:"TYPE_STORAGE" default:"file"`
	FilePath    string `envconfig:"FILE_PATH" default:"file.json"`

	DBDialect  string `envconfig:"DB_DIALECT" default:"mysql"`
	MySQLHost  string `envconfig:"MYSQL_HOST" default:"localhost"`
	MySQLPort  int    `envconfig:"MYSQL_PORT" default:"0"`
	MySQLUser  string `envconfig:"MYSQL_USER"`
	MySQLPwd   string `envconfig:"MYSQL_PWD"`
	MySQLDB    string `envconfig:"MYSQL_DB"`
	SQLitePath string `envconfig:"SQLITE_PATH" default:"hbnb.db"`

	// Env "test" resets the relational schema on start.
	Env      string `envconfig:"ENV"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"warn"`
}

// New parses the environment and validates the result.
func New() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("HBNB", &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to process environment variables")
	}
	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ResolveDefaults normalises values and fills in dialect dependent defaults.
func (c *Config) ResolveDefaults() error {
	c.TypeStorage = strings.ToLower(strings.TrimSpace(c.TypeStorage))
	if c.TypeStorage != StorageDB {
		c.TypeStorage = StorageFile
	}
	c.DBDialect = strings.ToLower(strings.TrimSpace(c.DBDialect))
	if c.DBDialect == "" {
		c.DBDialect = "mysql"
	}

	switch c.DBDialect {
	case "mysql":
		if c.MySQLPort == 0 {
			c.MySQLPort = 3306
		}
	case "postgres":
		if c.MySQLPort == 0 {
			c.MySQLPort = 5432
		}
	case "sqlite":
	default:
		return errors.Errorf("unsupported HBNB_DB_DIALECT: %s", c.DBDialect)
	}

	if c.TypeStorage == StorageDB && c.DBDialect != "sqlite" && c.MySQLDB == "" {
		return errors.New("HBNB_MYSQL_DB is required when HBNB_TYPE_STORAGE=db")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrapf(err, "invalid HBNB_LOG_LEVEL %q", c.LogLevel)
	}
	return nil
}

// UsesDB reports whether the relational backend is selected.
func (c *Config) UsesDB() bool {
	return c.TypeStorage == StorageDB
}

// IsTest reports whether the process runs against a throwaway schema.
func (c *Config) IsTest() bool {
	return c.Env == "test"
}

// Level returns the configured log level.
func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.WarnLevel
	}
	return level
}
