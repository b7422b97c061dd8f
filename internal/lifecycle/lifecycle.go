package lifecycle

import (
	"errors"
	"sort"
	"strings"
	"time"
)

// 订单状态枚举
const (
	StatusPending     = "pending"
	StatusLeftKitchen = "left kitchen"
	StatusOnDelivery  = "on delivery"
	StatusDelivered   = "delivered"
)

var (
	// ErrNameRequired 缺少客户姓名
	ErrNameRequired = errors.New("name is required")
	// ErrEmailRequired 缺少客户邮箱
	ErrEmailRequired = errors.New("email is required")
	// ErrItemsRequired 订单项为空
	ErrItemsRequired = errors.New("items must be a non-empty list")
	// ErrInvalidStatus 未知的订单状态
	ErrInvalidStatus = errors.New("invalid order status")
	// ErrNotDelivered 订单不在已交付集合中
	ErrNotDelivered = errors.New("order is not delivered")
	// ErrAlreadyDelivered 订单已交付，活跃状态不可变更
	ErrAlreadyDelivered = errors.New("order is already delivered")
)

// Order 订单的内存表示。
// 服务端存储适配器与客户端降级存储共用同一结构，
// JSON 字段名与落盘格式保持一致。
type Order struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Items       []string   `json:"items"`
	Status      string     `json:"status"`
	Time        time.Time  `json:"time"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
	DeliveredAt *time.Time `json:"deliveredAt,omitempty"`
}

// activeStatuses 活跃集合内允许的状态。
// 活跃状态之间允许任意切换（店员可以纠正操作失误），
// delivered 只能通过 Deliver 进入、通过 Restore 离开。
var activeStatuses = map[string]bool{
	StatusPending:     true,
	StatusLeftKitchen: true,
	StatusOnDelivery:  true,
}

// ValidStatus 判断状态是否在枚举内
func ValidStatus(status string) bool {
	return activeStatuses[Normalize(status)] || Normalize(status) == StatusDelivered
}

// IsActiveStatus 判断状态是否属于活跃集合
func IsActiveStatus(status string) bool {
	return activeStatuses[Normalize(status)]
}

// Normalize 规整状态取值
func Normalize(status string) string {
	return strings.ToLower(strings.TrimSpace(status))
}

// New 构造一个新订单：编号由调用方分配，状态固定为 pending。
// 姓名、邮箱、订单项缺失时返回校验错误。
func New(id int64, name, email string, items []string, now time.Time) (Order, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" {
		return Order{}, ErrNameRequired
	}
	if email == "" {
		return Order{}, ErrEmailRequired
	}
	if len(items) == 0 {
		return Order{}, ErrItemsRequired
	}
	copied := make([]string, len(items))
	copy(copied, items)
	return Order{
		ID:     id,
		Name:   name,
		Email:  email,
		Items:  copied,
		Status: StatusPending,
		Time:   now,
	}, nil
}

// Advance 在活跃集合内变更状态，不允许进入 delivered。
// 返回变更后的副本，原值不被修改。
func Advance(o Order, status string, now time.Time) (Order, error) {
	normalized := Normalize(status)
	if normalized == StatusDelivered {
		// delivered 必须经由 Deliver 完成集合迁移
		return Order{}, ErrInvalidStatus
	}
	if !activeStatuses[normalized] {
		return Order{}, ErrInvalidStatus
	}
	if Normalize(o.Status) == StatusDelivered {
		return Order{}, ErrAlreadyDelivered
	}
	o.Status = normalized
	updated := now
	o.UpdatedAt = &updated
	return o, nil
}

// Deliver 将活跃订单迁入已交付集合：状态置为 delivered 并记录交付时间。
func Deliver(o Order, now time.Time) (Order, error) {
	if Normalize(o.Status) == StatusDelivered {
		return Order{}, ErrAlreadyDelivered
	}
	o.Status = StatusDelivered
	deliveredAt := now
	o.DeliveredAt = &deliveredAt
	return o, nil
}

// Restore Deliver 的逆操作：状态重置为 pending，清除交付时间。
func Restore(o Order, now time.Time) (Order, error) {
	if Normalize(o.Status) != StatusDelivered {
		return Order{}, ErrNotDelivered
	}
	o.Status = StatusPending
	o.DeliveredAt = nil
	updated := now
	o.UpdatedAt = &updated
	return o, nil
}

// SortNewestFirst 按创建时间倒序排列。
// 已交付列表同样以创建时间排序，保持两个集合的展示顺序一致。
func SortNewestFirst(orders []Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].Time.After(orders[j].Time)
	})
}
