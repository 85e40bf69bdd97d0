package enums

// Category identifies what a cart/order line is selling: bulk fuel, a
// cylinder swap, or a standalone accessory. Exactly one of product/accessory
// backs a line and the category decides which.
type Category int

const (
	CategoryFuelDelivery Category = 1
	CategoryTankExchange Category = 2
	CategoryAccessory    Category = 3
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryFuelDelivery, CategoryTankExchange, CategoryAccessory:
		return true
	}
	return false
}

// OrderType maps a line category onto the order type used for tier ladders
// and per-order-type charges. Accessory lines ride along a fuel delivery.
func (c Category) OrderType() OrderType {
	if c == CategoryTankExchange {
		return OrderTypeTankExchange
	}
	return OrderTypeFuelDelivery
}
