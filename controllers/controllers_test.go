package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"catalina-keeper/internal/config"
	"catalina-keeper/internal/middleware"
	"catalina-keeper/internal/models"
	"catalina-keeper/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLauncher struct{}

func (nopLauncher) Launch(context.Context, string) error { return nil }

type fixedProber bool

func (p fixedProber) PortInUse(context.Context, int) (bool, error) { return bool(p), nil }

type jcmdRunner struct {
	listing string
}

func (r jcmdRunner) Output(_ context.Context, name string, args ...string) (string, error) {
	if len(args) == 0 {
		return r.listing, nil
	}
	return "\"main\" #1 prio=5\n", nil
}

func (jcmdRunner) Start(context.Context, string, ...string) error { return nil }

func newTestRouter(t *testing.T, running bool, listing string) (*gin.Engine, *config.AppConfig) {
	gin.SetMode(gin.TestMode)
	root := t.TempDir()
	for _, d := range []string{"bin", "logs", "webapps", "backup", "dumps"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, d), 0755))
	}
	cfg := &config.AppConfig{Tomcat: config.TomcatConfig{
		BinDir:          filepath.Join(root, "bin"),
		Port:            8080,
		LogDir:          filepath.Join(root, "logs"),
		WebappsDir:      filepath.Join(root, "webapps"),
		BackupDir:       filepath.Join(root, "backup"),
		GCLog:           filepath.Join(root, "logs", "gc.log"),
		HeapDumpDir:     filepath.Join(root, "dumps"),
		BootstrapClass:  "org.apache.catalina.startup.Bootstrap",
		Jcmd:            "jcmd",
		Locator:         config.LocatorJcmd,
		LogPrefix:       "catalina",
		ArtifactExt:     ".war",
		TailLines:       200,
		SettleDelay:     10 * time.Millisecond,
		GCFullThreshold: 5,
	}}
	cfg.Correct()
	keeper := services.NewKeeperWith(cfg, nopLauncher{}, fixedProber(running), jcmdRunner{listing: listing})

	r := gin.New()
	r.Use(middleware.MetricsMiddleware())
	NewAPIController(keeper).RegisterRoutes(r)
	NewToolController(keeper.Tools()).RegisterRoutes(r)
	NewTomcatController(keeper).RegisterRoutes(r)
	NewDeployController(keeper.Deployments()).RegisterRoutes(r)
	return r, cfg
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	r, _ := newTestRouter(t, true, "")
	w := do(r, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, w.Code)

	var h models.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &h))
	assert.Equal(t, "UP", h.Status)
	assert.Equal(t, "running", h.Tomcat)
}

func TestMetricsEndpoint(t *testing.T) {
	r, _ := newTestRouter(t, false, "")
	do(r, http.MethodGet, "/keeper/api/v1/tomcat/status", "")

	w := do(r, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "keeper_request_total")
	assert.Contains(t, w.Body.String(), "tomcat_up")
}

func TestListTools(t *testing.T) {
	r, _ := newTestRouter(t, false, "")
	w := do(r, http.MethodGet, "/keeper/api/v1/tools", "")
	require.Equal(t, http.StatusOK, w.Code)

	var tools []models.ToolInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tools))
	assert.Len(t, tools, 12)
}

func TestCallTool(t *testing.T) {
	r, _ := newTestRouter(t, true, "")
	w := do(r, http.MethodPost, "/keeper/api/v1/tools/check_tomcat_status", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.TextResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Tomcat is running on port 8080", resp.Text)
}

func TestCallToolErrors(t *testing.T) {
	r, _ := newTestRouter(t, false, "")

	w := do(r, http.MethodPost, "/keeper/api/v1/tools/format_disk", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	var e models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
	assert.Equal(t, "tool.not_found", e.Code)

	w = do(r, http.MethodPost, "/keeper/api/v1/tools/deploy_war", `{"warPath":"/tmp/app.zip"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/keeper/api/v1/tools/deploy_war", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeployAndRollback(t *testing.T) {
	r, cfg := newTestRouter(t, false, "")
	src := filepath.Join(t.TempDir(), "app.war")

	require.NoError(t, os.WriteFile(src, []byte("a"), 0644))
	w := do(r, http.MethodPost, "/keeper/api/v1/deployments", `{"warPath":"`+filepath.ToSlash(src)+`"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	require.NoError(t, os.WriteFile(src, []byte("b"), 0644))
	w = do(r, http.MethodPost, "/keeper/api/v1/deployments", `{"warPath":"`+filepath.ToSlash(src)+`"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var res models.DeployResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.NotEmpty(t, res.Backup)

	w = do(r, http.MethodGet, "/keeper/api/v1/backups", "")
	var backups []models.BackupInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &backups))
	assert.Len(t, backups, 1)

	w = do(r, http.MethodPost, "/keeper/api/v1/deployments/rollback", "")
	require.Equal(t, http.StatusOK, w.Code)
	data, err := os.ReadFile(filepath.Join(cfg.Tomcat.WebappsDir, "app.war"))
	require.NoError(t, err)
	assert.Equal(t, "a", string(data))
}

func TestDeployMissingBody(t *testing.T) {
	r, _ := newTestRouter(t, false, "")
	w := do(r, http.MethodPost, "/keeper/api/v1/deployments", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDumps(t *testing.T) {
	r, _ := newTestRouter(t, true, "")
	w := do(r, http.MethodPost, "/keeper/api/v1/tomcat/thread-dump", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	r, _ = newTestRouter(t, true, "77 org.apache.catalina.startup.Bootstrap start\n")
	w = do(r, http.MethodPost, "/keeper/api/v1/tomcat/thread-dump", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "prio=5")

	w = do(r, http.MethodPost, "/keeper/api/v1/tomcat/heap-dump", "")
	require.Equal(t, http.StatusAccepted, w.Code)
	assert.Contains(t, w.Body.String(), "heap-")
}

func TestLogsQuery(t *testing.T) {
	r, cfg := newTestRouter(t, false, "")
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Tomcat.LogDir, "catalina.out"), []byte("1\n2\n3"), 0644))

	w := do(r, http.MethodGet, "/keeper/api/v1/tomcat/logs?lines=2", "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp models.TextResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "2\n3", resp.Text)

	w = do(r, http.MethodGet, "/keeper/api/v1/tomcat/logs?lines=abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusOf(models.ErrInvalidArgument))
	assert.Equal(t, http.StatusNotFound, statusOf(models.ErrNotFound))
	assert.Equal(t, http.StatusBadGateway, statusOf(models.ErrExternalCommand))
	assert.Equal(t, http.StatusInternalServerError, statusOf(models.ErrIO))
}
