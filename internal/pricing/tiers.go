package pricing

import (
	"github.com/google/uuid"

	"github.com/gasline/gasline-backend/pkg/db/models"
	"github.com/gasline/gasline-backend/pkg/enums"
)

type tierBand struct {
	from int
	to   *int
}

func upper(v int) *int { return &v }

// Default quantity ladders for new vendor products. Fuel deliveries sell in
// gallons, exchanges in cylinders, so the bands differ by order type.
var defaultBands = map[enums.OrderType][]tierBand{
	enums.OrderTypeFuelDelivery: {
		{from: 0, to: upper(99)},
		{from: 100, to: upper(249)},
		{from: 250, to: upper(499)},
		{from: 500, to: upper(999)},
		{from: 1000, to: nil},
	},
	enums.OrderTypeTankExchange: {
		{from: 0, to: upper(3)},
		{from: 4, to: upper(6)},
		{from: 7, to: upper(10)},
		{from: 11, to: nil},
	},
}

// DefaultTierLadder builds the initial, fee-less tier ladder for a vendor
// product. Callers attach pricing rows before the ladder takes effect.
func DefaultTierLadder(vendorID, productID uuid.UUID, orderType enums.OrderType) []models.VendorProductTier {
	bands := defaultBands[orderType]
	tiers := make([]models.VendorProductTier, 0, len(bands))
	for i, band := range bands {
		tiers = append(tiers, models.VendorProductTier{
			VendorID:  vendorID,
			ProductID: productID,
			OrderType: orderType,
			FromQty:   band.from,
			ToQty:     band.to,
			Position:  i + 1,
		})
	}
	return tiers
}
