package repository

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"coinfolio/internal/models"
	"coinfolio/internal/pagination"
)

type movementRepository struct {
	db *gorm.DB
}

func (r *movementRepository) Insert(ctx context.Context, m *models.Movement) (string, error) {
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return "", errors.Wrap(err, "insert movement")
	}
	return m.ID, nil
}

func (r *movementRepository) FindByID(ctx context.Context, id string) (*models.Movement, error) {
	var m models.Movement
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, "find movement")
	}
	return &m, nil
}

func (r *movementRepository) Update(ctx context.Context, id string, patch MovementPatch) error {
	price := decimal.NullDecimal{}
	if patch.Price != nil {
		price = decimal.NullDecimal{Decimal: *patch.Price, Valid: true}
	}

	res := r.db.WithContext(ctx).Model(&models.Movement{}).Where("id = ?", id).Updates(map[string]interface{}{
		"type":         patch.Type,
		"quantity":     patch.Quantity,
		"price":        price,
		"fee_quantity": patch.FeeQuantity,
		"timestamp":    patch.Timestamp,
		"notes":        patch.Notes,
	})
	if res.Error != nil {
		return errors.Wrap(res.Error, "update movement")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *movementRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Movement{}, "id = ?", id)
	if res.Error != nil {
		return errors.Wrap(res.Error, "delete movement")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *movementRepository) List(ctx context.Context, filter MovementFilter, page pagination.PageRequest) ([]models.Movement, int64, error) {
	page.Defaults()

	base := applyMovementFilter(r.db.WithContext(ctx).Model(&models.Movement{}), filter)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count movements")
	}

	var out []models.Movement
	if err := base.Scopes(pagination.Paginate(page)).
		Order("timestamp DESC").Order("id DESC").
		Find(&out).Error; err != nil {
		return nil, 0, errors.Wrap(err, "list movements")
	}
	return out, total, nil
}

func applyMovementFilter(q *gorm.DB, f MovementFilter) *gorm.DB {
	q = q.Where("portfolio_id = ?", f.PortfolioID)
	if f.WalletID != nil {
		q = q.Where("wallet_id = ?", *f.WalletID)
	}
	if f.AssetID != nil {
		q = q.Where("asset_id = ?", *f.AssetID)
	}
	if f.Type != nil {
		q = q.Where("type = ?", *f.Type)
	}
	if f.GroupID != nil {
		q = q.Where("group_id = ?", *f.GroupID)
	}
	if f.From != nil {
		q = q.Where("timestamp >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("timestamp <= ?", *f.To)
	}
	return q
}
