package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"coinfolio/internal/models"
)

type portfolioRepository struct {
	db *gorm.DB
}

func (r *portfolioRepository) Exists(ctx context.Context, id string) (bool, error) {
	return exists(ctx, r.db, &models.Portfolio{}, "id = ?", id)
}

func (r *portfolioRepository) Create(ctx context.Context, p *models.Portfolio) error {
	return errors.Wrap(r.db.WithContext(ctx).Create(p).Error, "create portfolio")
}

func (r *portfolioRepository) FindByID(ctx context.Context, id string) (*models.Portfolio, error) {
	var p models.Portfolio
	if err := r.db.WithContext(ctx).Preload("Wallets").First(&p, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, "find portfolio")
	}
	return &p, nil
}

func (r *portfolioRepository) List(ctx context.Context) ([]models.Portfolio, error) {
	var out []models.Portfolio
	if err := r.db.WithContext(ctx).Order("name").Find(&out).Error; err != nil {
		return nil, errors.Wrap(err, "list portfolios")
	}
	return out, nil
}

type walletRepository struct {
	db *gorm.DB
}

func (r *walletRepository) Exists(ctx context.Context, id string) (bool, error) {
	return exists(ctx, r.db, &models.Wallet{}, "id = ?", id)
}

func (r *walletRepository) BelongsToPortfolio(ctx context.Context, walletID, portfolioID string) (bool, error) {
	return exists(ctx, r.db, &models.Wallet{}, "id = ? AND portfolio_id = ?", walletID, portfolioID)
}

func (r *walletRepository) Create(ctx context.Context, w *models.Wallet) error {
	return errors.Wrap(r.db.WithContext(ctx).Create(w).Error, "create wallet")
}

func (r *walletRepository) FindByID(ctx context.Context, id string) (*models.Wallet, error) {
	var w models.Wallet
	if err := r.db.WithContext(ctx).First(&w, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, "find wallet")
	}
	return &w, nil
}

func (r *walletRepository) ListByPortfolio(ctx context.Context, portfolioID string) ([]models.Wallet, error) {
	var out []models.Wallet
	if err := r.db.WithContext(ctx).Where("portfolio_id = ?", portfolioID).Order("name").Find(&out).Error; err != nil {
		return nil, errors.Wrap(err, "list wallets")
	}
	return out, nil
}

type assetRepository struct {
	db *gorm.DB
}

func (r *assetRepository) Exists(ctx context.Context, id string) (bool, error) {
	return exists(ctx, r.db, &models.Asset{}, "id = ?", id)
}

func (r *assetRepository) Create(ctx context.Context, a *models.Asset) error {
	return errors.Wrap(r.db.WithContext(ctx).Create(a).Error, "create asset")
}

func (r *assetRepository) FindByID(ctx context.Context, id string) (*models.Asset, error) {
	var a models.Asset
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, "find asset")
	}
	return &a, nil
}

func (r *assetRepository) FindBySymbol(ctx context.Context, symbol string) (*models.Asset, error) {
	var a models.Asset
	if err := r.db.WithContext(ctx).First(&a, "symbol = ?", symbol).Error; err != nil {
		return nil, notFoundOr(err, "find asset by symbol")
	}
	return &a, nil
}

func (r *assetRepository) List(ctx context.Context) ([]models.Asset, error) {
	var out []models.Asset
	if err := r.db.WithContext(ctx).Order("symbol").Find(&out).Error; err != nil {
		return nil, errors.Wrap(err, "list assets")
	}
	return out, nil
}

func exists(ctx context.Context, db *gorm.DB, model interface{}, query string, args ...interface{}) (bool, error) {
	var n int64
	if err := db.WithContext(ctx).Model(model).Where(query, args...).Count(&n).Error; err != nil {
		return false, errors.Wrap(err, "count rows")
	}
	return n > 0, nil
}

func notFoundOr(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return errors.Wrap(err, msg)
}
