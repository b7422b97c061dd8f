package lifecycle

import (
	"errors"
	"testing"
	"time"
)

func TestNewOrder(t *testing.T) {
	now := time.Now()
	order, err := New(1, "Amina", "a@x.com", []string{"Latte", "Croissant"}, now)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if order.Status != StatusPending {
		t.Fatalf("expected pending, got %s", order.Status)
	}
	if len(order.Items) != 2 || order.Items[0] != "Latte" || order.Items[1] != "Croissant" {
		t.Fatalf("unexpected items: %v", order.Items)
	}
	if !order.Time.Equal(now) {
		t.Fatalf("unexpected creation time: %v", order.Time)
	}
	if order.DeliveredAt != nil {
		t.Fatalf("expected nil deliveredAt for new order")
	}
}

func TestNewOrderValidation(t *testing.T) {
	now := time.Now()
	cases := []struct {
		name    string
		cust    string
		email   string
		items   []string
		wantErr error
	}{
		{"missing name", "", "a@x.com", []string{"Latte"}, ErrNameRequired},
		{"missing email", "Amina", "", []string{"Latte"}, ErrEmailRequired},
		{"nil items", "Amina", "a@x.com", nil, ErrItemsRequired},
		{"empty items", "Amina", "a@x.com", []string{}, ErrItemsRequired},
	}
	for _, c := range cases {
		if _, err := New(1, c.cust, c.email, c.items, now); !errors.Is(err, c.wantErr) {
			t.Fatalf("%s: expected %v, got %v", c.name, c.wantErr, err)
		}
	}
}

func TestNewOrderCopiesItems(t *testing.T) {
	items := []string{"Latte"}
	order, err := New(1, "Amina", "a@x.com", items, time.Now())
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	items[0] = "Mocha"
	if order.Items[0] != "Latte" {
		t.Fatalf("order items aliased caller slice")
	}
}

func TestAdvanceWithinActiveSet(t *testing.T) {
	now := time.Now()
	order, _ := New(1, "Amina", "a@x.com", []string{"Latte"}, now)

	later := now.Add(time.Minute)
	updated, err := Advance(order, StatusLeftKitchen, later)
	if err != nil {
		t.Fatalf("Advance error: %v", err)
	}
	if updated.Status != StatusLeftKitchen {
		t.Fatalf("expected left kitchen, got %s", updated.Status)
	}
	if updated.UpdatedAt == nil || !updated.UpdatedAt.Equal(later) {
		t.Fatalf("expected updatedAt %v, got %v", later, updated.UpdatedAt)
	}
	if updated.ID != order.ID {
		t.Fatalf("id changed across transition")
	}

	// 活跃状态之间允许回退
	back, err := Advance(updated, StatusPending, later.Add(time.Minute))
	if err != nil {
		t.Fatalf("Advance back error: %v", err)
	}
	if back.Status != StatusPending {
		t.Fatalf("expected pending, got %s", back.Status)
	}
}

func TestAdvanceRejectsUnknownStatus(t *testing.T) {
	order, _ := New(1, "Amina", "a@x.com", []string{"Latte"}, time.Now())
	if _, err := Advance(order, "teleported", time.Now()); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestAdvanceRejectsDelivered(t *testing.T) {
	order, _ := New(1, "Amina", "a@x.com", []string{"Latte"}, time.Now())
	if _, err := Advance(order, StatusDelivered, time.Now()); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus for direct delivered transition, got %v", err)
	}
}

func TestDeliverSetsDeliveredAt(t *testing.T) {
	created := time.Now()
	order, _ := New(1, "Amina", "a@x.com", []string{"Latte"}, created)

	deliveredAt := created.Add(10 * time.Minute)
	delivered, err := Deliver(order, deliveredAt)
	if err != nil {
		t.Fatalf("Deliver error: %v", err)
	}
	if delivered.Status != StatusDelivered {
		t.Fatalf("expected delivered, got %s", delivered.Status)
	}
	if delivered.DeliveredAt == nil || delivered.DeliveredAt.Before(delivered.Time) {
		t.Fatalf("deliveredAt must be set and not before creation time")
	}

	if _, err := Deliver(delivered, deliveredAt.Add(time.Minute)); !errors.Is(err, ErrAlreadyDelivered) {
		t.Fatalf("expected ErrAlreadyDelivered, got %v", err)
	}
}

func TestRestoreIsInverseOfDeliver(t *testing.T) {
	created := time.Now()
	order, _ := New(7, "Amina", "a@x.com", []string{"Latte", "Croissant"}, created)

	delivered, err := Deliver(order, created.Add(time.Minute))
	if err != nil {
		t.Fatalf("Deliver error: %v", err)
	}
	restored, err := Restore(delivered, created.Add(2*time.Minute))
	if err != nil {
		t.Fatalf("Restore error: %v", err)
	}
	if restored.Status != StatusPending {
		t.Fatalf("expected pending after restore, got %s", restored.Status)
	}
	if restored.DeliveredAt != nil {
		t.Fatalf("expected deliveredAt cleared after restore")
	}
	if restored.UpdatedAt == nil {
		t.Fatalf("expected updatedAt set after restore")
	}
	if restored.ID != order.ID || restored.Name != order.Name || restored.Email != order.Email {
		t.Fatalf("restore changed identity fields: %+v", restored)
	}
	if len(restored.Items) != len(order.Items) {
		t.Fatalf("restore changed items: %v", restored.Items)
	}
}

func TestRestoreRequiresDelivered(t *testing.T) {
	order, _ := New(1, "Amina", "a@x.com", []string{"Latte"}, time.Now())
	if _, err := Restore(order, time.Now()); !errors.Is(err, ErrNotDelivered) {
		t.Fatalf("expected ErrNotDelivered, got %v", err)
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusPending, StatusLeftKitchen, StatusOnDelivery, StatusDelivered, " Pending "} {
		if !ValidStatus(s) {
			t.Fatalf("expected %q to be valid", s)
		}
	}
	if ValidStatus("shipped") {
		t.Fatalf("expected unknown status to be invalid")
	}
}

func TestSortNewestFirst(t *testing.T) {
	base := time.Now()
	orders := []Order{
		{ID: 1, Time: base},
		{ID: 3, Time: base.Add(2 * time.Minute)},
		{ID: 2, Time: base.Add(time.Minute)},
	}
	SortNewestFirst(orders)
	if orders[0].ID != 3 || orders[1].ID != 2 || orders[2].ID != 1 {
		t.Fatalf("unexpected order: %v %v %v", orders[0].ID, orders[1].ID, orders[2].ID)
	}
}
