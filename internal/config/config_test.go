package config

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, StorageFile, cfg.TypeStorage)
	assert.Equal(t, "file.json", cfg.FilePath)
	assert.Equal(t, "mysql", cfg.DBDialect)
	assert.Equal(t, 3306, cfg.MySQLPort)
	assert.False(t, cfg.UsesDB())
	assert.False(t, cfg.IsTest())
	assert.Equal(t, zerolog.WarnLevel, cfg.Level())
}

func TestNewFromEnvironment(t *testing.T) {
	t.Setenv("HBNB_TYPE_STORAGE", "db")
	t.Setenv("HBNB_MYSQL_USER", "hbnb_test")
	t.Setenv("HBNB_MYSQL_PWD", "hbnb_test_pwd")
	t.Setenv("HBNB_MYSQL_HOST", "127.0.0.1")
	t.Setenv("HBNB_MYSQL_DB", "hbnb_test_db")
	t.Setenv("HBNB_ENV", "test")
	t.Setenv("HBNB_LOG_LEVEL", "debug")

	cfg, err := New()
	require.NoError(t, err)

	assert.True(t, cfg.UsesDB())
	assert.True(t, cfg.IsTest())
	assert.Equal(t, "hbnb_test", cfg.MySQLUser)
	assert.Equal(t, "hbnb_test_pwd", cfg.MySQLPwd)
	assert.Equal(t, "127.0.0.1", cfg.MySQLHost)
	assert.Equal(t, "hbnb_test_db", cfg.MySQLDB)
	assert.Equal(t, zerolog.DebugLevel, cfg.Level())
}

func TestUnknownStorageFallsBackToFile(t *testing.T) {
	t.Setenv("HBNB_TYPE_STORAGE", "redis")
	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, StorageFile, cfg.TypeStorage)
}

func TestResolveDefaults(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
		check   func(t *testing.T, c Config)
	}{
		{
			name: "postgres port",
			cfg:  Config{TypeStorage: "DB", DBDialect: "Postgres", MySQLDB: "hbnb", LogLevel: "warn"},
			check: func(t *testing.T, c Config) {
				assert.Equal(t, StorageDB, c.TypeStorage)
				assert.Equal(t, "postgres", c.DBDialect)
				assert.Equal(t, 5432, c.MySQLPort)
			},
		},
		{
			name: "explicit port kept",
			cfg:  Config{DBDialect: "mysql", MySQLPort: 3307, LogLevel: "warn"},
			check: func(t *testing.T, c Config) {
				assert.Equal(t, 3307, c.MySQLPort)
			},
		},
		{
			name: "sqlite needs no database name",
			cfg:  Config{TypeStorage: "db", DBDialect: "sqlite", LogLevel: "warn"},
		},
		{
			name:    "database name required",
			cfg:     Config{TypeStorage: "db", DBDialect: "mysql", LogLevel: "warn"},
			wantErr: true,
		},
		{
			name:    "unsupported dialect",
			cfg:     Config{DBDialect: "oracle", LogLevel: "warn"},
			wantErr: true,
		},
		{
			name:    "bad log level",
			cfg:     Config{LogLevel: "loud"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.cfg
			err := c.ResolveDefaults()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, c)
			}
		})
	}
}
