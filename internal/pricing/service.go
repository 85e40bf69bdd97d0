package pricing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/gasline/gasline-backend/pkg/db/models"
	"github.com/gasline/gasline-backend/pkg/enums"
	pkgerrors "github.com/gasline/gasline-backend/pkg/errors"
)

var hundred = decimal.NewFromInt(100)

// Service derives all monetary fields for a batch of cart/order lines and
// gates slot bookings against vendor schedules.
type Service interface {
	QuoteLines(ctx context.Context, lines []models.CartLine, opts QuoteOptions) ([]PricedLine, error)
	Aggregate(lines []PricedLine) Totals
	CheckSlotCapacity(ctx context.Context, input SlotCapacityInput) (SlotDecision, error)
}

// QuoteOptions selects order-time behavior: CheckLeakage adds each vendor's
// flat leakage fee (exchange orders), IsOrder marks a finalized-order quote
// rather than a cart preview.
type QuoteOptions struct {
	IsOrder      bool
	CheckLeakage bool
}

// PricedLine carries every derived monetary field for one line. All amounts
// are rounded to 2 decimal places.
type PricedLine struct {
	LineID    uuid.UUID
	VendorID  uuid.UUID
	Category  enums.Category
	OrderType enums.OrderType
	Qty       int

	ProductPrice   decimal.Decimal
	AccessoryPrice decimal.Decimal
	SubTotal       decimal.Decimal

	SalesTaxAmount    decimal.Decimal
	VendorDeliveryFee decimal.Decimal
	ServiceFee        decimal.Decimal
	ServiceCharge     decimal.Decimal
	DeliveryFee       decimal.Decimal
	PromocodeDiscount decimal.Decimal
	LocationAmount    decimal.Decimal
	TimeSlotPrice     decimal.Decimal
	LeakageFee        decimal.Decimal
	GrandTotal        decimal.Decimal

	VendorReceivedAmount          decimal.Decimal
	AdminReceivedAmount           decimal.Decimal
	FreelanceDriverReceivedAmount decimal.Decimal
	CustomerCancellationCharge    decimal.Decimal
	DriverCancellationCharge      decimal.Decimal
	RefundAmount                  decimal.Decimal

	// PromoSkipped names why a bound promo was not honored (expired,
	// inactive, wrong category). Empty when no promo was bound or the
	// discount applied.
	PromoSkipped string
}

// Totals aggregates a priced batch. SubTotal includes the per-line vendor
// delivery fees; the flat platform fees are reported once as the sum of the
// per-line shares.
type Totals struct {
	SubTotal          decimal.Decimal
	GrandTotal        decimal.Decimal
	SalesTaxAmount    decimal.Decimal
	PromocodeDiscount decimal.Decimal
	LocationAmount    decimal.Decimal
	LeakageFee        decimal.Decimal
	ServiceFee        decimal.Decimal
	ServiceCharge     decimal.Decimal
	DeliveryFee       decimal.Decimal
}

// ServiceParams configure the pricing service.
type ServiceParams struct {
	Repo     Repository
	Location *time.Location
	Now      func() time.Time
}

type service struct {
	repo     Repository
	location *time.Location
	validate *validator.Validate
	now      func() time.Time
}

// NewService builds a pricing service backed by the provided store reads.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("pricing repository required")
	}
	location := params.Location
	if location == nil {
		location = time.UTC
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:     params.Repo,
		location: location,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      now,
	}, nil
}

// QuoteLines prices the complete batch. Flat platform fees are divided
// evenly across the lines of this call, so a line must always be priced
// together with the rest of its batch.
func (s *service) QuoteLines(ctx context.Context, lines []models.CartLine, opts QuoteOptions) ([]PricedLine, error) {
	if len(lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one line is required")
	}

	lineCount := decimal.NewFromInt(int64(len(lines)))
	serviceFee, err := s.loadCharge(ctx, enums.ChargeServiceFee, 0)
	if err != nil {
		return nil, err
	}
	serviceCharge, err := s.loadCharge(ctx, enums.ChargeServiceCharge, 0)
	if err != nil {
		return nil, err
	}
	deliveryFee, err := s.loadCharge(ctx, enums.ChargeDeliveryFee, 0)
	if err != nil {
		return nil, err
	}
	serviceFeeShare := serviceFee.Div(lineCount).Round(2)
	serviceChargeShare := serviceCharge.Div(lineCount).Round(2)
	deliveryFeeShare := deliveryFee.Div(lineCount).Round(2)

	vendorCache := map[uuid.UUID]*models.VendorDetail{}
	leakageCharged := map[uuid.UUID]bool{}
	now := s.now().In(s.location)

	priced := make([]PricedLine, 0, len(lines))
	for i := range lines {
		line := lines[i]
		if err := s.validateLine(line); err != nil {
			return nil, err
		}

		vendor, err := s.loadVendor(ctx, line.VendorID, vendorCache)
		if err != nil {
			return nil, err
		}

		out := PricedLine{
			LineID:         line.ID,
			VendorID:       line.VendorID,
			Category:       line.Category,
			OrderType:      line.OrderType,
			Qty:            line.Qty,
			ServiceFee:     serviceFeeShare,
			ServiceCharge:  serviceChargeShare,
			DeliveryFee:    deliveryFeeShare,
			LocationAmount: line.LocationPrice.Round(2),
			TimeSlotPrice:  decimal.Zero,
		}

		if line.ProductID != nil {
			if err := s.priceProduct(ctx, line, &out); err != nil {
				return nil, err
			}
		}
		if line.AccessoryID != nil {
			if err := s.priceAccessory(ctx, line, &out); err != nil {
				return nil, err
			}
		}

		qty := decimal.NewFromInt(int64(line.Qty))
		out.SubTotal = out.ProductPrice.Add(out.AccessoryPrice).Mul(qty).Round(2)

		if line.PromoCodeID != nil {
			if err := s.applyPromo(ctx, line, now, &out); err != nil {
				return nil, err
			}
		}

		if opts.CheckLeakage && !leakageCharged[line.VendorID] {
			out.LeakageFee = vendor.LeakageFee.Round(2)
			leakageCharged[line.VendorID] = true
		}

		out.GrandTotal = out.SubTotal.
			Add(out.ServiceFee).
			Add(out.ServiceCharge).
			Add(out.DeliveryFee).
			Add(out.LocationAmount).
			Add(out.TimeSlotPrice).
			Sub(out.PromocodeDiscount).
			Add(out.VendorDeliveryFee).
			Add(out.SalesTaxAmount).
			Add(out.LeakageFee).
			Round(2)

		commission := decimal.NewFromFloat(vendor.CommissionPercent)
		out.VendorReceivedAmount = out.GrandTotal.Mul(commission).Div(hundred).Round(2)
		out.AdminReceivedAmount = out.GrandTotal.Mul(hundred.Sub(commission)).Div(hundred).Round(2)

		if err := s.applyFlatCharges(ctx, line.OrderType, &out); err != nil {
			return nil, err
		}
		out.RefundAmount = out.GrandTotal.Sub(out.CustomerCancellationCharge).Round(2)

		priced = append(priced, out)
	}

	return priced, nil
}

// Aggregate sums a priced batch. Leakage fees are already charged once per
// distinct vendor by QuoteLines, so a plain sum is correct here.
func (s *service) Aggregate(lines []PricedLine) Totals {
	var t Totals
	t.SubTotal = decimal.Zero
	t.GrandTotal = decimal.Zero
	t.SalesTaxAmount = decimal.Zero
	t.PromocodeDiscount = decimal.Zero
	t.LocationAmount = decimal.Zero
	t.LeakageFee = decimal.Zero
	t.ServiceFee = decimal.Zero
	t.ServiceCharge = decimal.Zero
	t.DeliveryFee = decimal.Zero
	for _, line := range lines {
		t.SubTotal = t.SubTotal.Add(line.SubTotal).Add(line.VendorDeliveryFee)
		t.GrandTotal = t.GrandTotal.Add(line.GrandTotal)
		t.SalesTaxAmount = t.SalesTaxAmount.Add(line.SalesTaxAmount)
		t.PromocodeDiscount = t.PromocodeDiscount.Add(line.PromocodeDiscount)
		t.LocationAmount = t.LocationAmount.Add(line.LocationAmount)
		t.LeakageFee = t.LeakageFee.Add(line.LeakageFee)
		t.ServiceFee = t.ServiceFee.Add(line.ServiceFee)
		t.ServiceCharge = t.ServiceCharge.Add(line.ServiceCharge)
		t.DeliveryFee = t.DeliveryFee.Add(line.DeliveryFee)
	}
	return t
}

func (s *service) validateLine(line models.CartLine) error {
	if err := s.validate.Struct(line); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cart line")
	}
	hasProduct := line.ProductID != nil
	hasAccessory := line.AccessoryID != nil
	if hasProduct == hasAccessory {
		return pkgerrors.New(pkgerrors.CodeValidation, "line must reference exactly one of product or accessory")
	}
	if hasAccessory && line.Category != enums.CategoryAccessory {
		return pkgerrors.New(pkgerrors.CodeValidation, "accessory line must use the accessory category")
	}
	if hasProduct && line.Category == enums.CategoryAccessory {
		return pkgerrors.New(pkgerrors.CodeValidation, "product line cannot use the accessory category")
	}
	// Accessories ride along either order type; product categories fix it.
	if line.Category != enums.CategoryAccessory && line.Category.OrderType() != line.OrderType {
		return pkgerrors.New(pkgerrors.CodeValidation, "category does not match order type").
			WithDetails(map[string]any{
				"category":   line.Category,
				"order_type": line.OrderType,
			})
	}
	return nil
}

func (s *service) priceProduct(ctx context.Context, line models.CartLine, out *PricedLine) error {
	product, err := s.repo.FindProductDetail(ctx, *line.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Newf(pkgerrors.CodeReferenceData, "product %s not found", *line.ProductID)
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if product.Category != line.Category {
		return pkgerrors.Newf(pkgerrors.CodeReferenceData,
			"product %s does not serve category %d", product.ID, line.Category)
	}

	discount := decimal.NewFromFloat(product.DiscountPercent)
	out.ProductPrice = product.IndexPrice.Mul(hundred.Sub(discount)).Div(hundred).Round(2)

	if product.IsSalesTax {
		zip, err := s.repo.FindZipCode(ctx, line.ZipcodeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.Newf(pkgerrors.CodeReferenceData, "zipcode %d not found", line.ZipcodeID)
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load zipcode")
		}
		qty := decimal.NewFromInt(int64(line.Qty))
		taxable := out.ProductPrice.Add(out.AccessoryPrice).Mul(qty)
		out.SalesTaxAmount = taxable.Mul(decimal.NewFromFloat(zip.SalesTax)).Div(hundred).Round(2)
	}

	fee, err := s.resolveDeliveryFee(ctx, line)
	if err != nil {
		return err
	}
	out.VendorDeliveryFee = fee.Round(2)
	return nil
}

func (s *service) priceAccessory(ctx context.Context, line models.CartLine, out *PricedLine) error {
	accessory, err := s.repo.FindAccessory(ctx, *line.AccessoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Newf(pkgerrors.CodeReferenceData, "accessory %s not found", *line.AccessoryID)
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load accessory")
	}
	out.AccessoryPrice = accessory.Price.Round(2)
	return nil
}

// resolveDeliveryFee matches quantity into the vendor product's tier ladder,
// then the category/cylinder-size pricing row inside that tier. A gap in the
// ladder surfaces as reference-data missing, never as a silent zero fee.
func (s *service) resolveDeliveryFee(ctx context.Context, line models.CartLine) (decimal.Decimal, error) {
	tier, err := s.repo.FindTierForQty(ctx, line.VendorID, *line.ProductID, line.OrderType, line.Qty)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, pkgerrors.New(pkgerrors.CodeReferenceData, "no delivery tier covers quantity").
				WithDetails(map[string]any{
					"vendor_id":  line.VendorID,
					"product_id": *line.ProductID,
					"order_type": line.OrderType,
					"qty":        line.Qty,
				})
		}
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load delivery tier")
	}
	tierPricing, err := s.repo.FindTierPricing(ctx, tier.ID, line.Category, line.CylinderSize)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, pkgerrors.New(pkgerrors.CodeReferenceData, "no pricing row in matched tier").
				WithDetails(map[string]any{
					"tier_id":  tier.ID,
					"category": line.Category,
				})
		}
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load tier pricing")
	}
	return tierPricing.Price, nil
}

// applyPromo re-validates the bound promo at price time. A stale promo is
// not an error: the line prices without the discount and carries the reason.
func (s *service) applyPromo(ctx context.Context, line models.CartLine, now time.Time, out *PricedLine) error {
	promo, err := s.repo.FindPromoCode(ctx, *line.PromoCodeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			out.PromoSkipped = "promo code no longer exists"
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load promo code")
	}
	if !promo.ActiveAt(now, line.Category) {
		out.PromoSkipped = fmt.Sprintf("promo %s not active for this line", promo.Code)
		return nil
	}
	pct := decimal.NewFromFloat(promo.DiscountPercent)
	out.PromocodeDiscount = out.SubTotal.Mul(pct).Div(hundred).Round(2)
	return nil
}

func (s *service) applyFlatCharges(ctx context.Context, orderType enums.OrderType, out *PricedLine) error {
	freelance, err := s.loadCharge(ctx, enums.ChargeFreelanceDriverPrice, orderType)
	if err != nil {
		return err
	}
	customerCancel, err := s.loadCharge(ctx, enums.ChargeCancellationCustomer, orderType)
	if err != nil {
		return err
	}
	driverCancel, err := s.loadCharge(ctx, enums.ChargeCancellationDriver, orderType)
	if err != nil {
		return err
	}
	out.FreelanceDriverReceivedAmount = freelance.Round(2)
	out.CustomerCancellationCharge = customerCancel.Round(2)
	out.DriverCancellationCharge = driverCancel.Round(2)
	return nil
}

// loadCharge reads a flat platform charge. Keys scoped per order type
// resolve against the given order type; global keys ignore it. A missing row
// means the admin has not configured the charge, which prices as zero.
func (s *service) loadCharge(ctx context.Context, key enums.ChargeKey, orderType enums.OrderType) (decimal.Decimal, error) {
	var scope *enums.OrderType
	if key.ScopedToOrderType() {
		scope = &orderType
	}
	setting, err := s.repo.FindAppSetting(ctx, key, scope)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load app setting")
	}
	return setting.Value, nil
}

func (s *service) loadVendor(ctx context.Context, id uuid.UUID, cache map[uuid.UUID]*models.VendorDetail) (*models.VendorDetail, error) {
	if cached, ok := cache[id]; ok {
		return cached, nil
	}
	vendor, err := s.repo.FindVendorDetail(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Newf(pkgerrors.CodeReferenceData, "vendor %s not found", id)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor")
	}
	cache[id] = vendor
	return vendor, nil
}
