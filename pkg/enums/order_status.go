package enums

// OrderStatus tracks the delivery lifecycle of an order line.
type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusRefilled       OrderStatus = "refilled"
	OrderStatusEmergencyOrder OrderStatus = "emergency_order"
	OrderStatusRescheduled    OrderStatus = "rescheduled"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusRefilled, OrderStatusEmergencyOrder,
		OrderStatusRescheduled, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// AssignableStatuses are the statuses the daily driver-assignment pass
// considers still in need of a driver.
func AssignableStatuses() []OrderStatus {
	return []OrderStatus{
		OrderStatusPending,
		OrderStatusRefilled,
		OrderStatusEmergencyOrder,
		OrderStatusRescheduled,
	}
}
