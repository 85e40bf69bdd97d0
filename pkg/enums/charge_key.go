package enums

// ChargeKey names an admin-configurable flat platform charge stored in
// app_settings. Some keys are global, others are scoped to an order type.
type ChargeKey string

const (
	ChargeServiceFee           ChargeKey = "service_fee"
	ChargeServiceCharge        ChargeKey = "service_charge"
	ChargeDeliveryFee          ChargeKey = "delivery_fee"
	ChargeCancellationCustomer ChargeKey = "cancellation_charge_customer"
	ChargeCancellationDriver   ChargeKey = "cancellation_charge_driver"
	ChargeFreelanceDriverPrice ChargeKey = "freelance_driver_price"
)

func (k ChargeKey) IsValid() bool {
	switch k {
	case ChargeServiceFee, ChargeServiceCharge, ChargeDeliveryFee,
		ChargeCancellationCustomer, ChargeCancellationDriver, ChargeFreelanceDriverPrice:
		return true
	}
	return false
}

// ScopedToOrderType reports whether the key carries a different value per
// order type.
func (k ChargeKey) ScopedToOrderType() bool {
	switch k {
	case ChargeCancellationCustomer, ChargeCancellationDriver, ChargeFreelanceDriverPrice:
		return true
	}
	return false
}
