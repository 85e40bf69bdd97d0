package pricing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gasline/gasline-backend/pkg/db/models"
	"github.com/gasline/gasline-backend/pkg/enums"
)

// Repository is the read surface the pricing engine needs. All methods
// return gorm.ErrRecordNotFound when the row does not exist; the service
// decides which absences are reference-data failures.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindProductDetail(ctx context.Context, id uuid.UUID) (*models.ProductDetail, error)
	FindAccessory(ctx context.Context, id uuid.UUID) (*models.Accessory, error)
	FindVendorDetail(ctx context.Context, id uuid.UUID) (*models.VendorDetail, error)
	FindTierForQty(ctx context.Context, vendorID, productID uuid.UUID, orderType enums.OrderType, qty int) (*models.VendorProductTier, error)
	FindTierPricing(ctx context.Context, tierID uuid.UUID, category enums.Category, cylinderSize *int) (*models.VendorProductPricing, error)
	FindAppSetting(ctx context.Context, key enums.ChargeKey, orderType *enums.OrderType) (*models.AppSetting, error)
	FindPromoCode(ctx context.Context, id uuid.UUID) (*models.PromoCode, error)
	FindZipCode(ctx context.Context, id int64) (*models.ZipCode, error)
	FindVendorSchedule(ctx context.Context, vendorID uuid.UUID, weekday time.Weekday, timeslotID int64) (*models.VendorSchedule, error)
	CountOrdersForSlot(ctx context.Context, vendorID uuid.UUID, timeslotID int64, dayStart, dayEnd time.Time) (int64, error)
}
