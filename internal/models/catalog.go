package models

// WalletKind describes where a wallet's funds are kept.
type WalletKind string

const (
	WalletKindExchange WalletKind = "exchange"
	WalletKindHot      WalletKind = "hot"
	WalletKindCold     WalletKind = "cold"
	WalletKindBank     WalletKind = "bank"
)

// Valid reports whether k is a known wallet kind.
func (k WalletKind) Valid() bool {
	switch k {
	case WalletKindExchange, WalletKindHot, WalletKindCold, WalletKindBank:
		return true
	}
	return false
}

// AssetKind distinguishes crypto assets from fiat currencies.
type AssetKind string

const (
	AssetKindCrypto AssetKind = "crypto"
	AssetKindFiat   AssetKind = "fiat"
)

func (k AssetKind) Valid() bool {
	return k == AssetKindCrypto || k == AssetKindFiat
}

// Portfolio groups the wallets of one owner.
type Portfolio struct {
	Base
	Name         string `gorm:"not null" json:"name"`
	BaseCurrency string `gorm:"not null;default:'USD'" json:"base_currency"`

	Wallets []Wallet `gorm:"foreignKey:PortfolioID" json:"wallets,omitempty"`
}

// Wallet is a place holding assets inside a portfolio.
type Wallet struct {
	Base
	PortfolioID string     `gorm:"type:varchar(36);not null;index" json:"portfolio_id"`
	Name        string     `gorm:"not null" json:"name"`
	Kind        WalletKind `gorm:"not null;default:'exchange'" json:"kind"`
}

// Asset is a crypto coin or a fiat currency that can be held.
type Asset struct {
	Base
	Symbol string    `gorm:"not null;uniqueIndex" json:"symbol"`
	Name   string    `gorm:"not null" json:"name"`
	Kind   AssetKind `gorm:"not null" json:"kind"`
}
