package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"catalina-keeper/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTomcatLayout(t *testing.T) (string, string) {
	t.Helper()
	root := t.TempDir()
	for _, d := range []string{"bin", "logs", "webapps", "backup", "dumps"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, d), 0755))
	}
	content := fmt.Sprintf(`
server:
  address: "127.0.0.1:9100"
tomcat:
  bin_dir: %[1]s/bin
  port: 8080
  log_dir: %[1]s/logs
  webapps_dir: %[1]s/webapps
  backup_dir: %[1]s/backup
  gc_log: %[1]s/logs/gc.log
  heap_dump_dir: %[1]s/dumps
  settle_delay: 1500ms
`, filepath.ToSlash(root))
	file := filepath.Join(root, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte(content), 0644))
	return root, file
}

func TestLoadAppliesDefaults(t *testing.T) {
	root, file := writeTomcatLayout(t)

	cfg, err := Load(file)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9100", cfg.Server.Address)
	assert.Equal(t, 8080, cfg.Tomcat.Port)
	assert.Equal(t, 1500*time.Millisecond, cfg.Tomcat.SettleDelay)
	assert.Equal(t, "org.apache.catalina.startup.Bootstrap", cfg.Tomcat.BootstrapClass)
	assert.Equal(t, ".war", cfg.Tomcat.ArtifactExt)
	assert.Equal(t, "catalina", cfg.Tomcat.LogPrefix)
	assert.Equal(t, 200, cfg.Tomcat.TailLines)
	assert.Equal(t, 5, cfg.Tomcat.GCFullThreshold)
	assert.Equal(t, 0, cfg.Tomcat.BackupRetention)
	assert.True(t, cfg.Tomcat.SettlePoll)
	assert.Equal(t, filepath.Join(root, "bin", scriptName("startup")), filepath.FromSlash(cfg.Tomcat.StartupScript))
	assert.NoError(t, cfg.Validate())
}

func TestLoadEnvOverride(t *testing.T) {
	_, file := writeTomcatLayout(t)
	t.Setenv("KEEPER_TOMCAT_PORT", "9090")

	cfg, err := Load(file)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Tomcat.Port)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidateRejectsMissingDirectories(t *testing.T) {
	root, file := writeTomcatLayout(t)
	cfg, err := Load(file)
	require.NoError(t, err)

	require.NoError(t, os.RemoveAll(filepath.Join(root, "backup")))
	cfg.Tomcat.Port = 0

	err = cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrInvalidArgument))
	assert.Contains(t, err.Error(), "tomcat.backup_dir")
	assert.Contains(t, err.Error(), "tomcat.port")
}

func TestValidateRejectsBadExtensionAndLocator(t *testing.T) {
	_, file := writeTomcatLayout(t)
	cfg, err := Load(file)
	require.NoError(t, err)

	cfg.Tomcat.ArtifactExt = "war"
	cfg.Tomcat.Locator = "ps"
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "artifact_ext")
	assert.Contains(t, err.Error(), "locator")
}

func TestValidateRejectsBlankBootstrapClass(t *testing.T) {
	_, file := writeTomcatLayout(t)
	cfg, err := Load(file)
	require.NoError(t, err)

	cfg.Tomcat.BootstrapClass = "  "
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bootstrap_class")
}
