package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"coinfolio/internal/models"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// Dec parses a decimal literal, failing the test on malformed input.
func Dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	v, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return v
}

// CreateTestPortfolio creates a portfolio with a unique name.
func CreateTestPortfolio(t *testing.T, db *gorm.DB) *models.Portfolio {
	t.Helper()

	p := &models.Portfolio{
		Name:         fmt.Sprintf("Test Portfolio %d", nextID()),
		BaseCurrency: "USD",
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("failed to create test portfolio: %v", err)
	}
	return p
}

// CreateTestWallet creates an exchange wallet inside the given portfolio.
func CreateTestWallet(t *testing.T, db *gorm.DB, portfolioID string) *models.Wallet {
	t.Helper()

	w := &models.Wallet{
		PortfolioID: portfolioID,
		Name:        fmt.Sprintf("Test Wallet %d", nextID()),
		Kind:        models.WalletKindExchange,
	}
	if err := db.Create(w).Error; err != nil {
		t.Fatalf("failed to create test wallet: %v", err)
	}
	return w
}

// CreateTestAsset creates a crypto asset whose symbol starts with prefix.
func CreateTestAsset(t *testing.T, db *gorm.DB, prefix string) *models.Asset {
	t.Helper()

	a := &models.Asset{
		Symbol: fmt.Sprintf("%s%d", prefix, nextID()),
		Name:   prefix + " coin",
		Kind:   models.AssetKindCrypto,
	}
	if err := db.Create(a).Error; err != nil {
		t.Fatalf("failed to create test asset: %v", err)
	}
	return a
}

// SeedHolding writes a holding row directly, bypassing the ledger.
func SeedHolding(t *testing.T, db *gorm.DB, portfolioID, walletID, assetID, quantity string) *models.Holding {
	t.Helper()

	h := &models.Holding{
		ID:          models.HoldingKey(portfolioID, walletID, assetID),
		PortfolioID: portfolioID,
		WalletID:    walletID,
		AssetID:     assetID,
		Quantity:    Dec(t, quantity),
		UpdatedAt:   time.Now(),
	}
	if err := db.Create(h).Error; err != nil {
		t.Fatalf("failed to seed holding: %v", err)
	}
	return h
}

// HoldingQuantity reads a holding straight from the database; a missing
// row counts as zero.
func HoldingQuantity(t *testing.T, db *gorm.DB, walletID, assetID string) decimal.Decimal {
	t.Helper()

	var h models.Holding
	err := db.Where("wallet_id = ? AND asset_id = ?", walletID, assetID).Limit(1).Find(&h).Error
	if err != nil {
		t.Fatalf("failed to read holding: %v", err)
	}
	return h.Quantity
}

// CountMovements counts the movements stored for a wallet.
func CountMovements(t *testing.T, db *gorm.DB, walletID string) int64 {
	t.Helper()

	var n int64
	if err := db.Model(&models.Movement{}).Where("wallet_id = ?", walletID).Count(&n).Error; err != nil {
		t.Fatalf("failed to count movements: %v", err)
	}
	return n
}
