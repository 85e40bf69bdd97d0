package enums

// OrderType distinguishes the two fulfillment flows the platform supports.
// The numeric values are stable identifiers persisted on orders, tiers and
// general charges.
type OrderType int

const (
	OrderTypeFuelDelivery OrderType = 1
	OrderTypeTankExchange OrderType = 2
)

func (o OrderType) IsValid() bool {
	switch o {
	case OrderTypeFuelDelivery, OrderTypeTankExchange:
		return true
	}
	return false
}

func (o OrderType) String() string {
	switch o {
	case OrderTypeFuelDelivery:
		return "fuel_delivery"
	case OrderTypeTankExchange:
		return "tank_exchange"
	}
	return "unknown"
}
