package service

import "storefront/internal/models"

// Машина состояний заказа. Статус движется только вперёд; из терминального
// состояния выхода нет — новая попытка оплаты означает новый заказ/интент.
//
//	RECEIVED -> SHIPPED -> DELIVERED
//	RECEIVED -> FAILED | CANCELLED | COMPLETED
var statusTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderStatusReceived: {
		models.OrderStatusShipped,
		models.OrderStatusFailed,
		models.OrderStatusCancelled,
		models.OrderStatusCompleted,
	},
	models.OrderStatusShipped: {
		models.OrderStatusDelivered,
	},
}

var terminalStatuses = map[models.OrderStatus]bool{
	models.OrderStatusDelivered: true,
	models.OrderStatusFailed:    true,
	models.OrderStatusCancelled: true,
	models.OrderStatusCompleted: true,
}

func ValidOrderStatus(s models.OrderStatus) bool {
	switch s {
	case models.OrderStatusReceived, models.OrderStatusShipped, models.OrderStatusDelivered,
		models.OrderStatusFailed, models.OrderStatusCancelled, models.OrderStatusCompleted:
		return true
	}
	return false
}

func IsTerminalStatus(s models.OrderStatus) bool { return terminalStatuses[s] }

func CanTransition(from, to models.OrderStatus) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
