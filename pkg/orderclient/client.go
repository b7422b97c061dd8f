// Package orderclient 提供订单 API 的 Go 客户端。
// 远端不可达时透明降级到本地 JSON 文件存储；降级产生的写入
// 不会回传服务端，两份状态可能永久分叉，这是已知限制。
package orderclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/petes-coffee/api/internal/lifecycle"
	"github.com/petes-coffee/api/internal/logger"
	"github.com/petes-coffee/api/internal/store"
)

const (
	defaultPollInterval = 30 * time.Second
	defaultHTTPTimeout  = 10 * time.Second
)

// Options 客户端配置
type Options struct {
	// BaseURL API 根地址，如 http://localhost:3001
	BaseURL string
	// DataDir 本地降级存储目录
	DataDir string
	// StaffToken 店员令牌，状态更新等受保护操作需要
	StaffToken string
	// HTTPTimeout 单次请求超时，默认 10s
	HTTPTimeout time.Duration
	// PollInterval 健康检查轮询间隔，默认 30s
	PollInterval time.Duration
}

// SubmitResult 下单结果。降级写入时 NotificationsSent 为 false，
// Notifications 为空（本地存储不发通知）。
type SubmitResult struct {
	Order             lifecycle.Order `json:"order"`
	Notifications     json.RawMessage `json:"notifications,omitempty"`
	NotificationsSent bool            `json:"notificationsSent"`
}

// Client 订单 API 客户端
type Client struct {
	baseURL    string
	staffToken string
	httpClient *http.Client
	fallback   *store.FileStore

	mu     sync.RWMutex
	online bool

	stopOnce sync.Once
	stopCh   chan struct{}
}

// New 创建客户端并启动健康检查轮询
func New(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, errors.New("base url is required")
	}
	if opts.DataDir == "" {
		return nil, errors.New("data dir is required")
	}
	fallback, err := store.NewFileStore(opts.DataDir)
	if err != nil {
		return nil, fmt.Errorf("init fallback store: %w", err)
	}

	timeout := opts.HTTPTimeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	interval := opts.PollInterval
	if interval <= 0 {
		interval = defaultPollInterval
	}

	c := &Client{
		baseURL:    opts.BaseURL,
		staffToken: opts.StaffToken,
		httpClient: &http.Client{Timeout: timeout},
		fallback:   fallback,
		stopCh:     make(chan struct{}),
	}
	c.setOnline(c.checkHealth())
	go c.pollHealth(interval)
	return c, nil
}

// IsOnline 返回最近一次健康检查的结果。只作参考，
// 各操作始终先尝试远端，不会因此短路。
func (c *Client) IsOnline() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.online
}

// Close 停止健康检查轮询
func (c *Client) Close() {
	c.stopOnce.Do(func() { close(c.stopCh) })
}

// SubmitOrder 下单。远端失败时写入本地存储，通知不会发送。
func (c *Client) SubmitOrder(ctx context.Context, name, email string, items []string) (SubmitResult, error) {
	body := map[string]interface{}{"name": name, "email": email, "items": items}
	var result SubmitResult
	err := c.doJSON(ctx, http.MethodPost, "/api/orders", body, &result)
	if err == nil {
		result.NotificationsSent = true
		return result, nil
	}

	logger.Warnw("orderclient_fallback", "op", "submit_order", "error", err)
	order, localErr := c.fallback.Create(ctx, name, email, items)
	if localErr != nil {
		return SubmitResult{}, localErr
	}
	return SubmitResult{Order: order}, nil
}

// Orders 活跃订单列表，按创建时间倒序
func (c *Client) Orders(ctx context.Context) ([]lifecycle.Order, error) {
	var orders []lifecycle.Order
	err := c.doJSON(ctx, http.MethodGet, "/api/orders", nil, &orders)
	if err == nil {
		return orders, nil
	}
	logger.Warnw("orderclient_fallback", "op", "orders", "error", err)
	return c.fallback.ListActive(ctx)
}

// DeliveredOrders 已交付订单列表
func (c *Client) DeliveredOrders(ctx context.Context) ([]lifecycle.Order, error) {
	var orders []lifecycle.Order
	err := c.doJSON(ctx, http.MethodGet, "/api/orders/delivered", nil, &orders)
	if err == nil {
		return orders, nil
	}
	logger.Warnw("orderclient_fallback", "op", "delivered_orders", "error", err)
	return c.fallback.ListDelivered(ctx)
}

// GetOrder 查询单个订单
func (c *Client) GetOrder(ctx context.Context, id int64) (lifecycle.Order, error) {
	var order lifecycle.Order
	err := c.doJSON(ctx, http.MethodGet, "/api/orders/"+strconv.FormatInt(id, 10), nil, &order)
	if err == nil {
		return order, nil
	}
	logger.Warnw("orderclient_fallback", "op", "get_order", "order_id", id, "error", err)
	return c.fallback.GetByID(ctx, id)
}

// UpdateOrderStatus 更新订单状态；status 为 delivered 时订单迁入已交付集合
func (c *Client) UpdateOrderStatus(ctx context.Context, id int64, status string) (lifecycle.Order, error) {
	var resp struct {
		Order lifecycle.Order `json:"order"`
	}
	path := "/api/orders/" + strconv.FormatInt(id, 10) + "/status"
	err := c.doJSON(ctx, http.MethodPut, path, map[string]string{"status": status}, &resp)
	if err == nil {
		return resp.Order, nil
	}
	logger.Warnw("orderclient_fallback", "op", "update_status", "order_id", id, "error", err)
	return c.fallback.UpdateStatus(ctx, id, status)
}

// RestoreOrder 将已交付订单恢复为待处理
func (c *Client) RestoreOrder(ctx context.Context, id int64) (lifecycle.Order, error) {
	var resp struct {
		Order lifecycle.Order `json:"order"`
	}
	path := "/api/orders/" + strconv.FormatInt(id, 10) + "/restore"
	err := c.doJSON(ctx, http.MethodPost, path, nil, &resp)
	if err == nil {
		return resp.Order, nil
	}
	logger.Warnw("orderclient_fallback", "op", "restore_order", "order_id", id, "error", err)
	return c.fallback.Restore(ctx, id)
}

func (c *Client) pollHealth(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.setOnline(c.checkHealth())
		}
	}
}

func (c *Client) checkHealth() bool {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/api/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return resp.StatusCode < 300
}

func (c *Client) setOnline(online bool) {
	c.mu.Lock()
	c.online = online
	c.mu.Unlock()
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.staffToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.staffToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, bytes.TrimSpace(payload))
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
