package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir moves the test into an empty directory so no stray config.yml or .env is picked up.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestLoadConfigDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.ListenPort)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "dados_pacientes.db", cfg.DBDSN)
	assert.Equal(t, "dados_pacientes", cfg.MirrorDir)
	assert.False(t, cfg.EventsEnable)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("INTAKE_SERVER_PORT", "9090")
	t.Setenv("INTAKE_DATABASE_DSN", "/tmp/other.db")
	t.Setenv("INTAKE_MIRROR_DIR", "/tmp/mirror")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.ListenPort)
	assert.Equal(t, "/tmp/other.db", cfg.DBDSN)
	assert.Equal(t, "/tmp/mirror", cfg.MirrorDir)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	yml := "server:\n  port: 7000\ndatabase:\n  driver: postgres\n  dsn: postgresql://u:p@localhost/db\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte(yml), 0644))
	chdir(t, dir)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.ListenPort)
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, "postgresql://u:p@localhost/db", cfg.DBDSN)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{ListenPort: 8080, DBDriver: DriverSQLite, DBDSN: "x.db", MirrorDir: "m"}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"port zero", func(c *Config) { c.ListenPort = 0 }, true},
		{"port too large", func(c *Config) { c.ListenPort = 70000 }, true},
		{"unknown driver", func(c *Config) { c.DBDriver = "mysql" }, true},
		{"empty dsn", func(c *Config) { c.DBDSN = "" }, true},
		{"empty mirror dir", func(c *Config) { c.MirrorDir = "" }, true},
		{"events without queue", func(c *Config) { c.EventsEnable = true }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
