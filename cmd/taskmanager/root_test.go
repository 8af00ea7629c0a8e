package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mpeshwe/TaskManager/internal/config"
	"github.com/mpeshwe/TaskManager/internal/store/memstore"
)

// resetConfig drops values merged from config files by rebuilding the flags and viper instance.
func resetConfig() {
	rootCmd.ResetFlags()
	registerConfig()
}

func TestUnmarshalConfigurationViaViper(t *testing.T) {
	raw := `
port: 9090
log:
  level: debug
db:
  driver: postgres
  host: db.internal
  port: "5432"
  name: tasks
  ssl_mode: require
http:
  read_timeout: 5s
  shutdown_timeout: 2
`
	expected := config.DefaultConfig()
	expected.Port = 9090
	expected.Log.Level = "debug"
	expected.DB.Driver = config.DriverPostgres
	expected.DB.Host = "db.internal"
	expected.DB.Port = "5432"
	expected.DB.Name = "tasks"
	expected.DB.SSLMode = "require"
	expected.HTTP.ReadTimeout = config.Duration(5 * time.Second)
	expected.HTTP.ShutdownTimeout = config.Duration(2 * time.Second)

	require.NoError(t, mergeConfigBytesIntoViper([]byte(raw)))
	t.Cleanup(resetConfig)

	cfg, err := getConfig(v.AllSettings())
	require.NoError(t, err)
	require.Equal(t, expected, cfg)
	require.NoError(t, cfg.Check())
}

func TestEnvironmentOverridesDefaults(t *testing.T) {
	t.Setenv("TM_DB_DRIVER", "memory")
	t.Setenv("TM_PORT", "8181")
	t.Setenv("TM_HTTP_WRITE_TIMEOUT", "1m")

	cfg, err := getConfig(v.AllSettings())
	require.NoError(t, err)
	require.Equal(t, config.DriverMemory, cfg.DB.Driver)
	require.Equal(t, 8181, cfg.Port)
	require.Equal(t, config.Duration(time.Minute), cfg.HTTP.WriteTimeout)
}

func TestGetConfigRejectsUnknownFields(t *testing.T) {
	_, err := getConfig(map[string]interface{}{"colour": true})
	require.Error(t, err)
}

func TestReadConfigFile(t *testing.T) {
	bs, err := readConfigFile("")
	if _, statErr := os.Stat(defaultConfigPath); os.IsNotExist(statErr) {
		require.NoError(t, err)
		require.Nil(t, bs)
	}

	_, err = readConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err, "an explicit path must exist")

	path := filepath.Join(t.TempDir(), "taskmanager.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 1234\n"), 0o600))
	bs, err = readConfigFile(path)
	require.NoError(t, err)
	require.Equal(t, "port: 1234\n", string(bs))
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()
	db, err := openStore(ctx, config.DBConfig{Driver: config.DriverMemory})
	require.NoError(t, err)
	require.IsType(t, &memstore.DB{}, db)

	_, err = openStore(ctx, config.DBConfig{Driver: "sqlite"})
	require.Error(t, err)
}
