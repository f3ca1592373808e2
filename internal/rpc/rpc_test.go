package rpc

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"catalina-keeper/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTCPConfig(server *httptest.Server) *HTTPConfig {
	return &HTTPConfig{
		Address: server.Listener.Addr().String(),
		Network: "tcp",
		Timeout: 5 * time.Second,
		BaseURL: "http://localhost",
	}
}

func TestHTTPClientGetAndPost(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/keeper/api/v1/tools":
			assert.Equal(t, "2", r.URL.Query().Get("lines"))
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`[{"name":"start_tomcat"}]`))
		case r.Method == http.MethodPost && r.URL.Path == "/keeper/api/v1/tools/deploy_war":
			var body map[string]string
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(models.ErrorResponse{Code: "tool.invalid_argument", Error: "bad " + body["warPath"]})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewHTTPClient(newTCPConfig(server))
	defer client.Close()

	resp, err := client.Get(context.Background(), "/keeper/api/v1/tools", map[string]interface{}{"lines": 2})
	require.NoError(t, err)
	assert.True(t, resp.OK())
	assert.JSONEq(t, `[{"name":"start_tomcat"}]`, string(resp.Body))

	resp, err = client.Post(context.Background(), "/keeper/api/v1/tools/deploy_war", map[string]string{"warPath": "x.zip"})
	require.NoError(t, err)
	assert.False(t, resp.OK())
	assert.Equal(t, "tool.invalid_argument", resp.Code)
	assert.Equal(t, "bad x.zip", resp.Error)

	resp, err = client.Get(context.Background(), "/nowhere", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "404 Not Found", resp.Error)
}

func TestHTTPClientUnreachable(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	l.Close()

	client := NewHTTPClient(&HTTPConfig{Address: addr, Network: "tcp", Timeout: time.Second, BaseURL: "http://localhost"})
	_, err = client.Get(context.Background(), "/healthz", nil)
	assert.Error(t, err)
	assert.True(t, IsUnreachable(err))
}

func TestIsUnreachableFalseAfterRequestSent(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	go func() {
		conn, err := l.Accept()
		if err != nil {
			return
		}
		buf := make([]byte, 1024)
		conn.Read(buf)
		conn.Close()
	}()

	client := NewHTTPClient(&HTTPConfig{Address: l.Addr().String(), Network: "tcp", Timeout: 5 * time.Second, BaseURL: "http://localhost"})
	_, err = client.Post(context.Background(), "/keeper/api/v1/tools/deploy_war", map[string]string{"warPath": "/x.war"})
	require.Error(t, err)
	assert.False(t, IsUnreachable(err))
}

func TestHTTPClientUnixSocket(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix sockets not exercised on windows")
	}
	sock := GetSocketPath(t.TempDir())
	l, err := net.Listen("unix", sock)
	require.NoError(t, err)
	server := &http.Server{Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"UP"}`))
	})}
	go server.Serve(l)
	defer server.Close()

	client := NewHTTPClient(&HTTPConfig{Address: sock, Network: "unix", Timeout: 5 * time.Second, BaseURL: "http://localhost"})
	resp, err := client.Get(context.Background(), "/healthz", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"UP"}`, string(resp.Body))
}

func TestDefaultHTTPConfigFallsBackToTCP(t *testing.T) {
	cfg := DefaultHTTPConfig("127.0.0.1:9100")
	if cfg.Network == "unix" {
		t.Skip("a keeper socket exists on this host")
	}
	assert.Equal(t, "127.0.0.1:9100", cfg.Address)
}

func TestBuildURL(t *testing.T) {
	u, err := buildURL("http://localhost/base/", "/healthz", map[string]interface{}{"a": true})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost/base/healthz?a=true", u)

	assert.Equal(t, SocketName, filepath.Base(GetSocketPath("")))
}
