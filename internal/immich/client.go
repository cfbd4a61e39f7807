package immich

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/immich-exporter/config"
)

// APIKeyHeader Immich自定义凭证请求头
const APIKeyHeader = "x-api-key"

// Client Immich REST客户端（只读，所有方法并发安全）
type Client struct {
	baseURL string
	apiKey  string
	httpCli *http.Client
}

// NewClient 创建Immich客户端
// cfg.RequestTimeout 为0时不设置超时（与上游原始行为一致，不推荐）
func NewClient(cfg config.ImmichConfig) *Client {
	return &Client{
		baseURL: fmt.Sprintf("http://%s:%d/api/server", cfg.Host, cfg.Port),
		apiKey:  cfg.APIKey,
		httpCli: &http.Client{Timeout: cfg.RequestTimeout},
	}
}

// do 发起GET请求；authed 控制是否携带 x-api-key；out 非nil时解码JSON响应体
// 返回HTTP状态码；网络层失败（连接拒绝/超时/DNS）时返回包装后的transport错误
func (c *Client) do(ctx context.Context, endpoint string, authed bool, out any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("build request GET %s: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	if authed {
		req.Header.Set(APIKeyHeader, c.apiKey)
	}

	resp, err := c.httpCli.Do(req)
	if err != nil {
		return 0, fmt.Errorf("GET %s: %w", endpoint, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if out == nil {
		return resp.StatusCode, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, fmt.Errorf("GET %s: unexpected status %d", endpoint, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("GET %s: decode response: %w", endpoint, err)
	}
	return resp.StatusCode, nil
}

// Ping 无凭证存活探测；任意HTTP响应都视为可达
func (c *Client) Ping(ctx context.Context) (int, error) {
	return c.do(ctx, "/ping", false, nil)
}

// AuthCheck 带凭证探测；只确认上游对带凭证请求有响应，不校验状态码
func (c *Client) AuthCheck(ctx context.Context) (int, error) {
	return c.do(ctx, "/", true, nil)
}

// Version 获取服务端版本号
func (c *Client) Version(ctx context.Context) (*VersionResponse, error) {
	var v VersionResponse
	if _, err := c.do(ctx, "/version", true, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// Storage 获取磁盘使用情况
func (c *Client) Storage(ctx context.Context) (*StorageResponse, error) {
	var s StorageResponse
	if _, err := c.do(ctx, "/storage", true, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Statistics 获取按用户的使用统计
func (c *Client) Statistics(ctx context.Context) (*StatisticsResponse, error) {
	var s StatisticsResponse
	if _, err := c.do(ctx, "/statistics", true, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
