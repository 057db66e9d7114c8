package handlers

import (
	"context"
	"net/http"
	"testing"

	apperrors "coinfolio/internal/errors"
	"coinfolio/internal/models"
	"coinfolio/internal/services"
)

// --- mock catalog service ---

type mockCatalogService struct {
	createPortfolioFn func(ctx context.Context, name, baseCurrency string) (*models.Portfolio, error)
	createWalletFn    func(ctx context.Context, portfolioID, name string, kind models.WalletKind) (*models.Wallet, error)
	createAssetFn     func(ctx context.Context, symbol, name string, kind models.AssetKind) (*models.Asset, error)
}

func (m *mockCatalogService) CreatePortfolio(ctx context.Context, name, baseCurrency string) (*models.Portfolio, error) {
	if m.createPortfolioFn != nil {
		return m.createPortfolioFn(ctx, name, baseCurrency)
	}
	return &models.Portfolio{Name: name, BaseCurrency: baseCurrency}, nil
}

func (m *mockCatalogService) GetPortfolio(_ context.Context, id string) (*models.Portfolio, error) {
	if id == "missing" {
		return nil, apperrors.ErrPortfolioNotFound
	}
	return &models.Portfolio{Base: models.Base{ID: id}}, nil
}

func (m *mockCatalogService) ListPortfolios(context.Context) ([]models.Portfolio, error) {
	return []models.Portfolio{}, nil
}

func (m *mockCatalogService) CreateWallet(ctx context.Context, portfolioID, name string, kind models.WalletKind) (*models.Wallet, error) {
	if m.createWalletFn != nil {
		return m.createWalletFn(ctx, portfolioID, name, kind)
	}
	return &models.Wallet{PortfolioID: portfolioID, Name: name, Kind: kind}, nil
}

func (m *mockCatalogService) GetWallet(_ context.Context, id string) (*models.Wallet, error) {
	return &models.Wallet{Base: models.Base{ID: id}}, nil
}

func (m *mockCatalogService) ListWallets(context.Context, string) ([]models.Wallet, error) {
	return []models.Wallet{}, nil
}

func (m *mockCatalogService) CreateAsset(ctx context.Context, symbol, name string, kind models.AssetKind) (*models.Asset, error) {
	if m.createAssetFn != nil {
		return m.createAssetFn(ctx, symbol, name, kind)
	}
	return &models.Asset{Symbol: symbol, Name: name, Kind: kind}, nil
}

func (m *mockCatalogService) GetAsset(_ context.Context, id string) (*models.Asset, error) {
	return &models.Asset{Base: models.Base{ID: id}}, nil
}

func (m *mockCatalogService) ListAssets(context.Context) ([]models.Asset, error) {
	return []models.Asset{}, nil
}

var _ services.CatalogServicer = (*mockCatalogService)(nil)

func TestCatalogHandler(t *testing.T) {
	t.Run("create portfolio returns 201", func(t *testing.T) {
		r := NewRouter(&mockLedgerService{}, &mockCatalogService{}, &mockAuditService{})
		rec := doRequest(r, "POST", "/api/v1/portfolios", `{"name":"Main","base_currency":"EUR"}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("create portfolio rejects unknown currency", func(t *testing.T) {
		r := NewRouter(&mockLedgerService{}, &mockCatalogService{}, &mockAuditService{})
		rec := doRequest(r, "POST", "/api/v1/portfolios", `{"name":"Main","base_currency":"XYZ"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("create wallet uses path portfolio", func(t *testing.T) {
		catalog := &mockCatalogService{
			createWalletFn: func(_ context.Context, portfolioID, name string, kind models.WalletKind) (*models.Wallet, error) {
				if portfolioID != "p1" || kind != models.WalletKindCold {
					t.Errorf("unexpected args %q %q", portfolioID, kind)
				}
				return &models.Wallet{PortfolioID: portfolioID, Name: name, Kind: kind}, nil
			},
		}
		r := NewRouter(&mockLedgerService{}, catalog, &mockAuditService{})
		rec := doRequest(r, "POST", "/api/v1/portfolios/p1/wallets", `{"name":"Trezor","kind":"cold"}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("create wallet rejects unknown kind", func(t *testing.T) {
		r := NewRouter(&mockLedgerService{}, &mockCatalogService{}, &mockAuditService{})
		rec := doRequest(r, "POST", "/api/v1/portfolios/p1/wallets", `{"name":"Vault","kind":"vault"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("duplicate asset returns 409", func(t *testing.T) {
		catalog := &mockCatalogService{
			createAssetFn: func(context.Context, string, string, models.AssetKind) (*models.Asset, error) {
				return nil, apperrors.ErrDuplicateAsset
			},
		}
		r := NewRouter(&mockLedgerService{}, catalog, &mockAuditService{})
		rec := doRequest(r, "POST", "/api/v1/assets", `{"symbol":"BTC","kind":"crypto"}`)
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "DUPLICATE_ASSET")
	})

	t.Run("get portfolio 404", func(t *testing.T) {
		r := NewRouter(&mockLedgerService{}, &mockCatalogService{}, &mockAuditService{})
		rec := doRequest(r, "GET", "/api/v1/portfolios/missing", "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
