package services

import (
	"context"

	"github.com/shopspring/decimal"

	"coinfolio/internal/models"
	"coinfolio/internal/pagination"
	"coinfolio/internal/repository"
)

// RegisterMovementInput describes a single movement to append to the ledger.
type RegisterMovementInput struct {
	PortfolioID string
	WalletID    string
	AssetID     string
	Type        models.MovementType
	Quantity    decimal.Decimal
	Price       *decimal.Decimal
	FeeQuantity decimal.Decimal
	Timestamp   int64
	Notes       string
}

// EditMovementInput replaces the mutable fields of an existing movement.
type EditMovementInput struct {
	MovementID  string
	Type        models.MovementType
	Quantity    decimal.Decimal
	Price       *decimal.Decimal
	FeeQuantity decimal.Decimal
	Timestamp   int64
	Notes       string
}

// MovementResult is returned by the single-movement commands.
type MovementResult struct {
	MovementID         string          `json:"movement_id"`
	HoldingID          string          `json:"holding_id"`
	NewHoldingQuantity decimal.Decimal `json:"new_holding_quantity"`
}

// TransferInput moves a quantity of one asset between two wallets of a portfolio.
type TransferInput struct {
	PortfolioID  string
	FromWalletID string
	ToWalletID   string
	AssetID      string
	Quantity     decimal.Decimal
	Timestamp    int64
	Notes        string
}

// TransferResult is returned by MoveBetweenWallets.
type TransferResult struct {
	GroupID                string          `json:"group_id"`
	TransferOutMovementID  string          `json:"transfer_out_movement_id"`
	TransferInMovementID   string          `json:"transfer_in_movement_id"`
	FromHoldingID          string          `json:"from_holding_id"`
	ToHoldingID            string          `json:"to_holding_id"`
	NewFromHoldingQuantity decimal.Decimal `json:"new_from_holding_quantity"`
	NewToHoldingQuantity   decimal.Decimal `json:"new_to_holding_quantity"`
}

// SwapInput exchanges one asset for another inside a single wallet.
type SwapInput struct {
	PortfolioID  string
	WalletID     string
	FromAssetID  string
	ToAssetID    string
	FromQuantity decimal.Decimal
	ToQuantity   decimal.Decimal
	Timestamp    int64
	Notes        string
}

// SwapResult is returned by SwapMovement.
type SwapResult struct {
	GroupID                string          `json:"group_id"`
	SellMovementID         string          `json:"sell_movement_id"`
	BuyMovementID          string          `json:"buy_movement_id"`
	FromHoldingID          string          `json:"from_holding_id"`
	ToHoldingID            string          `json:"to_holding_id"`
	NewFromHoldingQuantity decimal.Decimal `json:"new_from_holding_quantity"`
	NewToHoldingQuantity   decimal.Decimal `json:"new_to_holding_quantity"`
}

// MovementFilter holds optional filter parameters for listing movements.
type MovementFilter struct {
	WalletID *string
	AssetID  *string
	Type     *models.MovementType
	GroupID  *string
	From     *int64
	To       *int64
}

// LedgerServicer defines the contract for the movement ledger. Every
// command runs in one transaction and never leaves a holding below zero.
type LedgerServicer interface {
	RegisterMovement(ctx context.Context, in RegisterMovementInput) (*MovementResult, error)
	EditMovement(ctx context.Context, in EditMovementInput) (*MovementResult, error)
	DeleteMovement(ctx context.Context, movementID string) (*MovementResult, error)
	MoveBetweenWallets(ctx context.Context, in TransferInput) (*TransferResult, error)
	SwapMovement(ctx context.Context, in SwapInput) (*SwapResult, error)

	GetMovement(ctx context.Context, movementID string) (*models.Movement, error)
	ListMovements(ctx context.Context, portfolioID string, filter MovementFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Movement], error)
	GetHolding(ctx context.Context, walletID, assetID string) (*models.Holding, error)
	ListHoldings(ctx context.Context, portfolioID string, walletID *string) ([]models.Holding, error)
}

// CatalogServicer defines the contract for portfolios, wallets and assets.
type CatalogServicer interface {
	CreatePortfolio(ctx context.Context, name, baseCurrency string) (*models.Portfolio, error)
	GetPortfolio(ctx context.Context, id string) (*models.Portfolio, error)
	ListPortfolios(ctx context.Context) ([]models.Portfolio, error)
	CreateWallet(ctx context.Context, portfolioID, name string, kind models.WalletKind) (*models.Wallet, error)
	GetWallet(ctx context.Context, id string) (*models.Wallet, error)
	ListWallets(ctx context.Context, portfolioID string) ([]models.Wallet, error)
	CreateAsset(ctx context.Context, symbol, name string, kind models.AssetKind) (*models.Asset, error)
	GetAsset(ctx context.Context, id string) (*models.Asset, error)
	ListAssets(ctx context.Context) ([]models.Asset, error)
}

// AuditServicer records committed ledger commands.
type AuditServicer interface {
	Record(ctx context.Context, tx repository.Store, entry AuditEntry) error
	History(ctx context.Context, resourceType, resourceID string) ([]models.AuditLog, error)
}
