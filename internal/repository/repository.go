// Package repository defines the persistence contracts the ledger depends on
// and their GORM implementation. Services only see the interfaces.
package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"coinfolio/internal/models"
	"coinfolio/internal/pagination"
)

// ErrNotFound is returned by lookups when no row matches.
var ErrNotFound = errors.New("record not found")

// PortfolioRepository gives access to portfolios.
type PortfolioRepository interface {
	Exists(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, p *models.Portfolio) error
	FindByID(ctx context.Context, id string) (*models.Portfolio, error)
	List(ctx context.Context) ([]models.Portfolio, error)
}

// WalletRepository gives access to wallets and their portfolio ownership.
type WalletRepository interface {
	Exists(ctx context.Context, id string) (bool, error)
	BelongsToPortfolio(ctx context.Context, walletID, portfolioID string) (bool, error)
	Create(ctx context.Context, w *models.Wallet) error
	FindByID(ctx context.Context, id string) (*models.Wallet, error)
	ListByPortfolio(ctx context.Context, portfolioID string) ([]models.Wallet, error)
}

// AssetRepository gives access to the asset catalog.
type AssetRepository interface {
	Exists(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, a *models.Asset) error
	FindByID(ctx context.Context, id string) (*models.Asset, error)
	FindBySymbol(ctx context.Context, symbol string) (*models.Asset, error)
	List(ctx context.Context) ([]models.Asset, error)
}

// MovementPatch carries the mutable fields of a movement. Portfolio, wallet,
// asset and group id are not part of it and cannot be changed.
type MovementPatch struct {
	Type        models.MovementType
	Quantity    decimal.Decimal
	Price       *decimal.Decimal
	FeeQuantity decimal.Decimal
	Timestamp   int64
	Notes       string
}

// MovementFilter narrows a movement listing. PortfolioID is required.
type MovementFilter struct {
	PortfolioID string
	WalletID    *string
	AssetID     *string
	Type        *models.MovementType
	GroupID     *string
	From        *int64
	To          *int64
}

// MovementRepository stores ledger movements.
type MovementRepository interface {
	Insert(ctx context.Context, m *models.Movement) (string, error)
	FindByID(ctx context.Context, id string) (*models.Movement, error)
	Update(ctx context.Context, id string, patch MovementPatch) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter MovementFilter, page pagination.PageRequest) ([]models.Movement, int64, error)
}

// HoldingRepository stores the derived per-(wallet, asset) balances.
type HoldingRepository interface {
	FindByWalletAsset(ctx context.Context, walletID, assetID string) (*models.Holding, error)
	Upsert(ctx context.Context, portfolioID, walletID, assetID string, quantity decimal.Decimal, updatedAt time.Time) (*models.Holding, error)
	ListByPortfolio(ctx context.Context, portfolioID string, walletID *string) ([]models.Holding, error)
}

// AuditRepository appends the journal of committed ledger commands.
type AuditRepository interface {
	Append(ctx context.Context, entry *models.AuditLog) error
	ListByResource(ctx context.Context, resourceType, resourceID string) ([]models.AuditLog, error)
}

// Store bundles the repositories that share one connection or transaction.
type Store interface {
	Portfolios() PortfolioRepository
	Wallets() WalletRepository
	Assets() AssetRepository
	Movements() MovementRepository
	Holdings() HoldingRepository
	Audit() AuditRepository
}

// TxRunner executes a unit of work atomically. The Store handed to fn is
// bound to the transaction; fn returning an error (or panicking, or ctx
// being cancelled) rolls everything back.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(tx Store) error) error
}
