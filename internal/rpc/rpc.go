package rpc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"catalina-keeper/internal/env"
	"catalina-keeper/internal/models"
)

const SocketName = "catalina-keeper.sock"

// HTTPConfig 定义HTTP客户端配置
type HTTPConfig struct {
	Address string        // keeper服务侦听地址
	Network string        // unix,tcp...
	Timeout time.Duration // 默认超时时间
	BaseURL string        // 基础URL
}

/**
 * Default client configuration for reaching the local keeper server
 * @param {string} tcpAddress - server.address, used when the unix socket is absent
 * @returns {*HTTPConfig} unix socket config when <keeper dir>/run/catalina-keeper.sock exists, tcp otherwise
 * @description
 * - The timeout covers a restart cycle (stop, settle, start) plus jcmd calls
 */
func DefaultHTTPConfig(tcpAddress string) *HTTPConfig {
	c := &HTTPConfig{
		Address: GetSocketPath(""),
		Network: "unix",
		Timeout: 30 * time.Second,
		BaseURL: "http://localhost",
	}
	// 检查socket文件是否存在
	if _, err := os.Stat(c.Address); err != nil {
		c.Address = tcpAddress
		c.Network = "tcp"
	}
	if c.Address == "" {
		c.Address = "127.0.0.1:8998"
		c.Network = "tcp"
	}
	return c
}

// HTTPResponse 定义HTTP响应结构
type HTTPResponse struct {
	StatusCode int                 `json:"status_code"`
	Headers    map[string][]string `json:"headers"`
	Body       []byte              `json:"body"`
	Error      string              `json:"error"`
	Code       string              `json:"code"`
}

// OK 是否为2xx响应
func (r *HTTPResponse) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// buildURL 构建完整的URL
func buildURL(baseURL, path string, params map[string]interface{}) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}

	// 添加路径
	if u.Path == "" {
		u.Path = path
	} else {
		u.Path = strings.TrimSuffix(u.Path, "/") + "/" + strings.TrimPrefix(path, "/")
	}

	// 添加查询参数
	if params != nil {
		q := u.Query()
		for key, value := range params {
			switch v := value.(type) {
			case string:
				q.Set(key, v)
			case float32, float64:
				q.Set(key, fmt.Sprintf("%f", v))
			default:
				q.Set(key, fmt.Sprintf("%v", v))
			}
		}
		u.RawQuery = q.Encode()
	}

	return u.String(), nil
}

// serializeData 序列化请求数据
func serializeData(data interface{}) (io.Reader, error) {
	if data == nil {
		return nil, nil
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize data: %w", err)
	}

	return bytes.NewReader(jsonData), nil
}

// deserializeResponse 反序列化响应数据，非2xx时从ErrorResponse中提取错误信息
func deserializeResponse(resp *http.Response) (*HTTPResponse, error) {
	defer resp.Body.Close()
	httpResp := &HTTPResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	httpResp.Body = body
	if httpResp.OK() {
		return httpResp, nil
	}
	if len(body) == 0 {
		httpResp.Error = resp.Status
	} else {
		var errBody models.ErrorResponse
		if err := json.Unmarshal(body, &errBody); err != nil {
			httpResp.Error = err.Error()
		} else {
			httpResp.Error = errBody.Error
			httpResp.Code = errBody.Code
		}
	}
	if httpResp.Error == "" {
		httpResp.Error = "Unknown error"
	}
	return httpResp, nil
}

/**
 * keeper服务侦听的unix socket地址
 */
func GetSocketPath(socketDir string) string {
	if socketDir == "" {
		socketDir = filepath.Join(env.KeeperDir, "run")
	}
	return filepath.Join(socketDir, SocketName)
}
