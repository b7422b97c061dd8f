package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/petes-coffee/api/internal/lifecycle"
)

const (
	activeOrdersFile    = "orders.json"
	deliveredOrdersFile = "delivered_orders.json"
)

// FileStore 基于 JSON 文件的订单存储。
// 所有操作持同一把锁串行执行，写入走临时文件加重命名。
type FileStore struct {
	mu  sync.Mutex
	dir string
}

// NewFileStore 创建文件存储，目录不存在时自动建立
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// ListActive 按创建时间倒序返回活跃订单
func (s *FileStore) ListActive(ctx context.Context) ([]lifecycle.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.loadFile(activeOrdersFile)
	if err != nil {
		return nil, err
	}
	lifecycle.SortNewestFirst(orders)
	return orders, nil
}

// ListDelivered 按创建时间倒序返回已交付订单
func (s *FileStore) ListDelivered(ctx context.Context) ([]lifecycle.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.loadFile(deliveredOrdersFile)
	if err != nil {
		return nil, err
	}
	lifecycle.SortNewestFirst(orders)
	return orders, nil
}

// Create 校验并写入新订单，ID 取毫秒时间戳，冲突时递增
func (s *FileStore) Create(ctx context.Context, name, email string, items []string) (lifecycle.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	active, err := s.loadFile(activeOrdersFile)
	if err != nil {
		return lifecycle.Order{}, err
	}
	delivered, err := s.loadFile(deliveredOrdersFile)
	if err != nil {
		return lifecycle.Order{}, err
	}

	now := time.Now()
	id := now.UnixMilli()
	for idTaken(id, active) || idTaken(id, delivered) {
		id++
	}

	order, err := lifecycle.New(id, name, email, items, now)
	if err != nil {
		return lifecycle.Order{}, err
	}

	active = append(active, order)
	if err := s.saveFile(activeOrdersFile, active); err != nil {
		return lifecycle.Order{}, err
	}
	return order, nil
}

// GetByID 先查活跃集合再查已交付集合
func (s *FileStore) GetByID(ctx context.Context, id int64) (lifecycle.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	active, err := s.loadFile(activeOrdersFile)
	if err != nil {
		return lifecycle.Order{}, err
	}
	if i := indexOf(id, active); i >= 0 {
		return active[i], nil
	}

	delivered, err := s.loadFile(deliveredOrdersFile)
	if err != nil {
		return lifecycle.Order{}, err
	}
	if i := indexOf(id, delivered); i >= 0 {
		return delivered[i], nil
	}
	return lifecycle.Order{}, ErrOrderNotFound
}

// UpdateStatus 变更状态；delivered 走集合迁移
func (s *FileStore) UpdateStatus(ctx context.Context, id int64, status string) (lifecycle.Order, error) {
	if !lifecycle.ValidStatus(status) {
		return lifecycle.Order{}, lifecycle.ErrInvalidStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	active, err := s.loadFile(activeOrdersFile)
	if err != nil {
		return lifecycle.Order{}, err
	}
	i := indexOf(id, active)
	if i < 0 {
		return lifecycle.Order{}, ErrOrderNotFound
	}

	now := time.Now()
	if lifecycle.Normalize(status) == lifecycle.StatusDelivered {
		deliveredOrder, err := lifecycle.Deliver(active[i], now)
		if err != nil {
			return lifecycle.Order{}, err
		}
		delivered, err := s.loadFile(deliveredOrdersFile)
		if err != nil {
			return lifecycle.Order{}, err
		}
		// 先写目标文件再删源文件：两次写入之间崩溃会留下重复记录，
		// 但订单不会丢。
		delivered = append(delivered, deliveredOrder)
		if err := s.saveFile(deliveredOrdersFile, delivered); err != nil {
			return lifecycle.Order{}, err
		}
		active = append(active[:i], active[i+1:]...)
		if err := s.saveFile(activeOrdersFile, active); err != nil {
			return lifecycle.Order{}, err
		}
		return deliveredOrder, nil
	}

	updated, err := lifecycle.Advance(active[i], status, now)
	if err != nil {
		return lifecycle.Order{}, err
	}
	active[i] = updated
	if err := s.saveFile(activeOrdersFile, active); err != nil {
		return lifecycle.Order{}, err
	}
	return updated, nil
}

// Restore 已交付订单迁回活跃集合
func (s *FileStore) Restore(ctx context.Context, id int64) (lifecycle.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delivered, err := s.loadFile(deliveredOrdersFile)
	if err != nil {
		return lifecycle.Order{}, err
	}
	i := indexOf(id, delivered)
	if i < 0 {
		return lifecycle.Order{}, ErrOrderNotFound
	}

	restored, err := lifecycle.Restore(delivered[i], time.Now())
	if err != nil {
		return lifecycle.Order{}, err
	}

	active, err := s.loadFile(activeOrdersFile)
	if err != nil {
		return lifecycle.Order{}, err
	}
	// 与交付迁移同向：先写目标文件，宁可重复不可丢单
	active = append(active, restored)
	if err := s.saveFile(activeOrdersFile, active); err != nil {
		return lifecycle.Order{}, err
	}
	delivered = append(delivered[:i], delivered[i+1:]...)
	if err := s.saveFile(deliveredOrdersFile, delivered); err != nil {
		return lifecycle.Order{}, err
	}
	return restored, nil
}

// Export 只读快照
func (s *FileStore) Export(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	active, err := s.loadFile(activeOrdersFile)
	if err != nil {
		return Snapshot{}, err
	}
	delivered, err := s.loadFile(deliveredOrdersFile)
	if err != nil {
		return Snapshot{}, err
	}
	lifecycle.SortNewestFirst(active)
	lifecycle.SortNewestFirst(delivered)
	return Snapshot{
		Orders:          active,
		DeliveredOrders: delivered,
		ExportedAt:      time.Now(),
	}, nil
}

// Ping 健康检查，确认数据目录可写
func (s *FileStore) Ping(ctx context.Context) error {
	_, err := os.Stat(s.dir)
	return err
}

// loadFile 读取订单文件，文件不存在视为空集合
func (s *FileStore) loadFile(name string) ([]lifecycle.Order, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return []lifecycle.Order{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if len(data) == 0 {
		return []lifecycle.Order{}, nil
	}
	var orders []lifecycle.Order
	if err := json.Unmarshal(data, &orders); err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	return orders, nil
}

// saveFile 先写临时文件再重命名，避免半写状态
func (s *FileStore) saveFile(name string, orders []lifecycle.Order) error {
	data, err := json.MarshalIndent(orders, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace %s: %w", name, err)
	}
	return nil
}

func idTaken(id int64, orders []lifecycle.Order) bool {
	return indexOf(id, orders) >= 0
}

func indexOf(id int64, orders []lifecycle.Order) int {
	for i := range orders {
		if orders[i].ID == id {
			return i
		}
	}
	return -1
}
