package service

import (
	"testing"

	"storefront/internal/models"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to models.OrderStatus }{
		{models.OrderStatusReceived, models.OrderStatusShipped},
		{models.OrderStatusReceived, models.OrderStatusFailed},
		{models.OrderStatusReceived, models.OrderStatusCancelled},
		{models.OrderStatusReceived, models.OrderStatusCompleted},
		{models.OrderStatusShipped, models.OrderStatusDelivered},
	}
	for _, tr := range allowed {
		if !CanTransition(tr.from, tr.to) {
			t.Errorf("%s -> %s must be allowed", tr.from, tr.to)
		}
	}

	denied := []struct{ from, to models.OrderStatus }{
		{models.OrderStatusShipped, models.OrderStatusReceived},
		{models.OrderStatusDelivered, models.OrderStatusShipped},
		{models.OrderStatusFailed, models.OrderStatusReceived},
		{models.OrderStatusCancelled, models.OrderStatusShipped},
		{models.OrderStatusCompleted, models.OrderStatusReceived},
		{models.OrderStatusReceived, models.OrderStatusDelivered},
	}
	for _, tr := range denied {
		if CanTransition(tr.from, tr.to) {
			t.Errorf("%s -> %s must be denied", tr.from, tr.to)
		}
	}
}

func TestIsTerminalStatus(t *testing.T) {
	terminal := []models.OrderStatus{
		models.OrderStatusDelivered,
		models.OrderStatusFailed,
		models.OrderStatusCancelled,
		models.OrderStatusCompleted,
	}
	for _, st := range terminal {
		if !IsTerminalStatus(st) {
			t.Errorf("%s must be terminal", st)
		}
	}
	if IsTerminalStatus(models.OrderStatusReceived) || IsTerminalStatus(models.OrderStatusShipped) {
		t.Error("RECEIVED and SHIPPED are not terminal")
	}
}

func TestValidOrderStatus(t *testing.T) {
	if !ValidOrderStatus(models.OrderStatusReceived) {
		t.Error("RECEIVED must be valid")
	}
	if ValidOrderStatus(models.OrderStatus("PAID")) {
		t.Error("unknown status must be invalid")
	}
}
