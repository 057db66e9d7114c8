package services

import (
	"context"
	"errors"
	"strings"

	apperrors "coinfolio/internal/errors"
	"coinfolio/internal/models"
	"coinfolio/internal/repository"
)

// catalogService handles portfolios, wallets and assets.
type catalogService struct {
	store repository.Store
}

// NewCatalogService creates a new CatalogServicer.
func NewCatalogService(store repository.Store) CatalogServicer {
	return &catalogService{store: store}
}

// CreatePortfolio creates a portfolio. The base currency defaults to USD.
func (s *catalogService) CreatePortfolio(ctx context.Context, name, baseCurrency string) (*models.Portfolio, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Name is required")
	}
	if baseCurrency == "" {
		baseCurrency = "USD"
	}

	p := &models.Portfolio{Name: strings.TrimSpace(name), BaseCurrency: strings.ToUpper(baseCurrency)}
	if err := s.store.Portfolios().Create(ctx, p); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return p, nil
}

// GetPortfolio returns a portfolio together with its wallets.
func (s *catalogService) GetPortfolio(ctx context.Context, id string) (*models.Portfolio, error) {
	p, err := s.store.Portfolios().FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, apperrors.ErrPortfolioNotFound)
	}
	return p, nil
}

func (s *catalogService) ListPortfolios(ctx context.Context) ([]models.Portfolio, error) {
	out, err := s.store.Portfolios().List(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return out, nil
}

// CreateWallet creates a wallet inside an existing portfolio.
func (s *catalogService) CreateWallet(ctx context.Context, portfolioID, name string, kind models.WalletKind) (*models.Wallet, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Name is required")
	}
	if kind == "" {
		kind = models.WalletKindExchange
	}
	if !kind.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Unsupported wallet kind")
	}
	if err := checkPortfolio(ctx, s.store, portfolioID); err != nil {
		return nil, err
	}

	w := &models.Wallet{PortfolioID: portfolioID, Name: strings.TrimSpace(name), Kind: kind}
	if err := s.store.Wallets().Create(ctx, w); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return w, nil
}

func (s *catalogService) GetWallet(ctx context.Context, id string) (*models.Wallet, error) {
	w, err := s.store.Wallets().FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, apperrors.ErrWalletNotFound)
	}
	return w, nil
}

func (s *catalogService) ListWallets(ctx context.Context, portfolioID string) ([]models.Wallet, error) {
	if err := checkPortfolio(ctx, s.store, portfolioID); err != nil {
		return nil, err
	}
	out, err := s.store.Wallets().ListByPortfolio(ctx, portfolioID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return out, nil
}

// CreateAsset adds an asset to the catalog. Symbols are stored upper-case
// and must be unique.
func (s *catalogService) CreateAsset(ctx context.Context, symbol, name string, kind models.AssetKind) (*models.Asset, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Symbol is required")
	}
	if strings.TrimSpace(name) == "" {
		name = symbol
	}
	if kind == "" {
		kind = models.AssetKindCrypto
	}
	if !kind.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Unsupported asset kind")
	}

	_, err := s.store.Assets().FindBySymbol(ctx, symbol)
	switch {
	case err == nil:
		return nil, apperrors.ErrDuplicateAsset
	case !errors.Is(err, repository.ErrNotFound):
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	a := &models.Asset{Symbol: symbol, Name: strings.TrimSpace(name), Kind: kind}
	if err := s.store.Assets().Create(ctx, a); err != nil {
		if isUniqueConstraintError(err) {
			return nil, apperrors.ErrDuplicateAsset
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return a, nil
}

func (s *catalogService) GetAsset(ctx context.Context, id string) (*models.Asset, error) {
	a, err := s.store.Assets().FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, apperrors.ErrAssetNotFound)
	}
	return a, nil
}

func (s *catalogService) ListAssets(ctx context.Context) ([]models.Asset, error) {
	out, err := s.store.Assets().List(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return out, nil
}

func lookupErr(err error, notFound *apperrors.AppError) error {
	if errors.Is(err, repository.ErrNotFound) {
		return notFound
	}
	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}

func isUniqueConstraintError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || // SQLite
		strings.Contains(msg, "duplicate key value violates unique constraint") // PostgreSQL
}
