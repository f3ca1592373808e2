package rpc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"catalina-keeper/internal/logger"
)

// HTTPClient 定义HTTP客户端接口
type HTTPClient interface {
	Get(ctx context.Context, path string, params map[string]interface{}) (*HTTPResponse, error)
	Post(ctx context.Context, path string, data interface{}) (*HTTPResponse, error)
	Close() error
}

// httpClient HTTP客户端实现
type httpClient struct {
	config    *HTTPConfig
	client    *http.Client
	transport *http.Transport
}

/**
 * Create new HTTP client for the keeper server
 * @param {HTTPConfig} config - HTTP client configuration, nil uses DefaultHTTPConfig("")
 * @returns {HTTPClient} HTTP client interface
 * @description
 * - Every request is dialed over config.Network/config.Address, so the same
 *   client serves unix sockets and tcp
 * @example
 * client := NewHTTPClient(DefaultHTTPConfig(cfg.Server.Address))
 * defer client.Close()
 */
func NewHTTPClient(config *HTTPConfig) HTTPClient {
	if config == nil {
		config = DefaultHTTPConfig("")
	}
	c := &httpClient{config: config}

	dialer := &net.Dialer{}
	c.transport = &http.Transport{
		DialContext: func(ctx context.Context, _, _ string) (net.Conn, error) {
			return dialer.DialContext(ctx, config.Network, config.Address)
		},
	}
	c.client = &http.Client{
		Transport: c.transport,
		Timeout:   config.Timeout,
	}
	return c
}

/**
 * Send GET request to the keeper server
 * @param {context.Context} ctx - Request context
 * @param {string} path - API endpoint path
 * @param {map[string]interface{}} params - Query parameters
 * @returns {*HTTPResponse} Response; non-2xx statuses are returned with Error set, not as error
 * @returns {error} Error if the request could not be sent
 */
func (c *httpClient) Get(ctx context.Context, path string, params map[string]interface{}) (*HTTPResponse, error) {
	return c.do(ctx, http.MethodGet, path, params, nil)
}

/**
 * Send POST request with a JSON body to the keeper server
 * @param {context.Context} ctx - Request context
 * @param {string} path - API endpoint path
 * @param {interface{}} data - Request body, nil sends no body
 * @returns {*HTTPResponse} Response; non-2xx statuses are returned with Error set
 * @returns {error} Error if the request could not be sent
 */
func (c *httpClient) Post(ctx context.Context, path string, data interface{}) (*HTTPResponse, error) {
	return c.do(ctx, http.MethodPost, path, nil, data)
}

func (c *httpClient) do(ctx context.Context, method, path string, params map[string]interface{}, data interface{}) (*HTTPResponse, error) {
	url, err := buildURL(c.config.BaseURL, path, params)
	if err != nil {
		return nil, fmt.Errorf("failed to build URL: %w", err)
	}
	body, err := serializeData(data)
	if err != nil {
		return nil, err
	}

	logger.Debugf("Sending %s request to %s via %s://%s", method, url, c.config.Network, c.config.Address)

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	httpResp, err := deserializeResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize response: %w", err)
	}
	return httpResp, nil
}

// Close 关闭空闲连接
func (c *httpClient) Close() error {
	c.client.CloseIdleConnections()
	logger.Debugf("HTTP client connection closed")
	return nil
}

/**
 * Whether a request error means the keeper server was never reached
 * @param {error} err - Error returned by Get/Post
 * @returns {bool} True only when the connection could not be dialed
 * @description
 * - Any other failure (reset, EOF, timeout while waiting for the response)
 *   happens after the request may have been written; the server may have
 *   acted on it
 */
func IsUnreachable(err error) bool {
	var opErr *net.OpError
	return errors.As(err, &opErr) && opErr.Op == "dial"
}
