package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"coinfolio/internal/models"
)

type holdingRepository struct {
	db       *gorm.DB
	lockRows bool
}

// FindByWalletAsset loads a holding. Inside a transaction on PostgreSQL the
// row is locked until commit so the caller's read-modify-write is exclusive.
func (r *holdingRepository) FindByWalletAsset(ctx context.Context, walletID, assetID string) (*models.Holding, error) {
	q := r.db.WithContext(ctx)
	if r.lockRows && q.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var h models.Holding
	if err := q.Where("wallet_id = ? AND asset_id = ?", walletID, assetID).First(&h).Error; err != nil {
		return nil, notFoundOr(err, "find holding")
	}
	return &h, nil
}

// Upsert writes the absolute quantity of a holding, creating the row on first use.
func (r *holdingRepository) Upsert(ctx context.Context, portfolioID, walletID, assetID string, quantity decimal.Decimal, updatedAt time.Time) (*models.Holding, error) {
	h := &models.Holding{
		ID:          models.HoldingKey(portfolioID, walletID, assetID),
		PortfolioID: portfolioID,
		WalletID:    walletID,
		AssetID:     assetID,
		Quantity:    quantity,
		UpdatedAt:   updatedAt,
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"quantity", "updated_at"}),
	}).Create(h).Error
	if err != nil {
		return nil, errors.Wrap(err, "upsert holding")
	}
	return h, nil
}

func (r *holdingRepository) ListByPortfolio(ctx context.Context, portfolioID string, walletID *string) ([]models.Holding, error) {
	q := r.db.WithContext(ctx).Where("portfolio_id = ?", portfolioID)
	if walletID != nil {
		q = q.Where("wallet_id = ?", *walletID)
	}

	var out []models.Holding
	if err := q.Order("wallet_id").Order("asset_id").Find(&out).Error; err != nil {
		return nil, errors.Wrap(err, "list holdings")
	}
	return out, nil
}
