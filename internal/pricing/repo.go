package pricing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gasline/gasline-backend/pkg/db/models"
	"github.com/gasline/gasline-backend/pkg/enums"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a pricing repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindProductDetail(ctx context.Context, id uuid.UUID) (*models.ProductDetail, error) {
	var product models.ProductDetail
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *repository) FindAccessory(ctx context.Context, id uuid.UUID) (*models.Accessory, error) {
	var accessory models.Accessory
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&accessory).Error
	if err != nil {
		return nil, err
	}
	return &accessory, nil
}

func (r *repository) FindVendorDetail(ctx context.Context, id uuid.UUID) (*models.VendorDetail, error) {
	var vendor models.VendorDetail
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&vendor).Error
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

func (r *repository) FindTierForQty(ctx context.Context, vendorID, productID uuid.UUID, orderType enums.OrderType, qty int) (*models.VendorProductTier, error) {
	var tier models.VendorProductTier
	err := r.db.WithContext(ctx).
		Where("vendor_id = ? AND product_id = ? AND order_type = ?", vendorID, productID, orderType).
		Where("from_qty <= ? AND (to_qty IS NULL OR to_qty >= ?)", qty, qty).
		Order("position ASC").
		First(&tier).Error
	if err != nil {
		return nil, err
	}
	return &tier, nil
}

func (r *repository) FindTierPricing(ctx context.Context, tierID uuid.UUID, category enums.Category, cylinderSize *int) (*models.VendorProductPricing, error) {
	query := r.db.WithContext(ctx).
		Where("tier_id = ? AND category = ?", tierID, category)
	if cylinderSize != nil {
		query = query.Where("cylinder_size = ?", *cylinderSize)
	} else {
		query = query.Where("cylinder_size IS NULL")
	}
	var pricing models.VendorProductPricing
	if err := query.First(&pricing).Error; err != nil {
		return nil, err
	}
	return &pricing, nil
}

func (r *repository) FindAppSetting(ctx context.Context, key enums.ChargeKey, orderType *enums.OrderType) (*models.AppSetting, error) {
	query := r.db.WithContext(ctx).Where("key = ?", key)
	if orderType != nil {
		query = query.Where("order_type = ?", *orderType)
	} else {
		query = query.Where("order_type IS NULL")
	}
	var setting models.AppSetting
	if err := query.First(&setting).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *repository) FindPromoCode(ctx context.Context, id uuid.UUID) (*models.PromoCode, error) {
	var promo models.PromoCode
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&promo).Error
	if err != nil {
		return nil, err
	}
	return &promo, nil
}

func (r *repository) FindZipCode(ctx context.Context, id int64) (*models.ZipCode, error) {
	var zip models.ZipCode
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&zip).Error
	if err != nil {
		return nil, err
	}
	return &zip, nil
}

func (r *repository) FindVendorSchedule(ctx context.Context, vendorID uuid.UUID, weekday time.Weekday, timeslotID int64) (*models.VendorSchedule, error) {
	var schedule models.VendorSchedule
	err := r.db.WithContext(ctx).
		Where("vendor_id = ? AND weekday = ? AND timeslot_id = ?", vendorID, int(weekday), timeslotID).
		First(&schedule).Error
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *repository) CountOrdersForSlot(ctx context.Context, vendorID uuid.UUID, timeslotID int64, dayStart, dayEnd time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.OrderDetail{}).
		Where("vendor_id = ? AND timeslot_id = ?", vendorID, timeslotID).
		Where("schedule_date >= ? AND schedule_date < ?", dayStart, dayEnd).
		Where("status NOT IN ?", []enums.OrderStatus{enums.OrderStatusCancelled}).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
