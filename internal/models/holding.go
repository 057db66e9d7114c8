package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Holding is the current balance of one asset in one wallet. It is derived
// from the movements touching its key and is never negative once committed.
// Quantity is stored as TEXT on SQLite for the same reason as Movement's.
type Holding struct {
	ID          string          `gorm:"type:varchar(110);primaryKey" json:"id"`
	PortfolioID string          `gorm:"type:varchar(36);not null;index" json:"portfolio_id"`
	WalletID    string          `gorm:"type:varchar(36);not null;uniqueIndex:uq_holdings_wallet_asset" json:"wallet_id"`
	AssetID     string          `gorm:"type:varchar(36);not null;uniqueIndex:uq_holdings_wallet_asset" json:"asset_id"`
	Quantity    decimal.Decimal `gorm:"type:text;not null" json:"quantity"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// HoldingKey builds the deterministic holding id "portfolio|wallet|asset".
func HoldingKey(portfolioID, walletID, assetID string) string {
	return strings.Join([]string{portfolioID, walletID, assetID}, "|")
}
