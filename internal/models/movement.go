package models

import (
	"github.com/shopspring/decimal"
)

// MovementType represents the kind of quantity change a movement records.
type MovementType string

const (
	MovementBuy         MovementType = "BUY"
	MovementSell        MovementType = "SELL"
	MovementDeposit     MovementType = "DEPOSIT"
	MovementWithdraw    MovementType = "WITHDRAW"
	MovementTransferIn  MovementType = "TRANSFER_IN"
	MovementTransferOut MovementType = "TRANSFER_OUT"
	MovementFee         MovementType = "FEE"
	MovementAdjustment  MovementType = "ADJUSTMENT"
)

// MovementTypes lists every supported movement type.
var MovementTypes = []MovementType{
	MovementBuy, MovementSell, MovementDeposit, MovementWithdraw,
	MovementTransferIn, MovementTransferOut, MovementFee, MovementAdjustment,
}

// Valid reports whether t is a known movement type.
func (t MovementType) Valid() bool {
	_, ok := movementSigns[t]
	return ok
}

// RequiresPrice reports whether movements of this type must carry a price.
func (t MovementType) RequiresPrice() bool {
	return t == MovementBuy || t == MovementSell
}

// Movement is a ledger entry recording one quantity change of one asset in
// one wallet. Portfolio, wallet and asset never change after creation.
//
// Decimal columns are TEXT in the embedded SQLite schema, which would
// otherwise coerce them to float64; migrations/ declares NUMERIC(38,18)
// for PostgreSQL.
type Movement struct {
	LedgerBase
	PortfolioID string           `gorm:"type:varchar(36);not null;index:idx_movements_portfolio_ts,priority:1" json:"portfolio_id"`
	WalletID    string           `gorm:"type:varchar(36);not null;index:idx_movements_wallet_asset,priority:1" json:"wallet_id"`
	AssetID     string           `gorm:"type:varchar(36);not null;index:idx_movements_wallet_asset,priority:2" json:"asset_id"`
	Type        MovementType     `gorm:"type:varchar(16);not null" json:"type"`
	Quantity    decimal.Decimal  `gorm:"type:text;not null" json:"quantity"`
	Price       *decimal.Decimal `gorm:"type:text" json:"price,omitempty"`
	FeeQuantity decimal.Decimal  `gorm:"type:text;not null;default:0" json:"fee_quantity"`
	Timestamp   int64            `gorm:"not null;index:idx_movements_portfolio_ts,priority:2" json:"timestamp"`
	Notes       string           `json:"notes,omitempty"`
	GroupID     *string          `gorm:"type:varchar(36);index" json:"group_id,omitempty"`
}

// Delta returns the signed contribution of this movement to its holding.
func (m *Movement) Delta() (decimal.Decimal, error) {
	return Delta(m.Type, m.Quantity, m.FeeQuantity)
}

// HoldingID returns the key of the holding this movement contributes to.
func (m *Movement) HoldingID() string {
	return HoldingKey(m.PortfolioID, m.WalletID, m.AssetID)
}
