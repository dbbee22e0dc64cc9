package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `server:
  name: "marketplace-api"
  port: 9090
  checkout_qps: 35

mysql:
  host: "db.internal"
  port: 3306
  user: "root"
  password: "root"
  dbname: "marketplace"

jwt:
  secret: "s3cret"
  ttl_hours: 72

log:
  level: "debug"
`

func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(testYAML), 0o644))
	return dir
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t))
	require.NoError(t, err)

	assert.Equal(t, "marketplace-api", cfg.Server.Name)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 35.0, cfg.Server.CheckoutQPS)
	assert.Equal(t, "db.internal", cfg.Mysql.Host)
	assert.Equal(t, 72, cfg.JWT.TTLHours)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "8081")
	t.Setenv("SERVER_CHECKOUT_QPS", "50")
	t.Setenv("MYSQL_HOST", "other.internal")

	cfg, err := LoadConfig(writeConfig(t))
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, 50.0, cfg.Server.CheckoutQPS)
	assert.Equal(t, "other.internal", cfg.Mysql.Host)
}
