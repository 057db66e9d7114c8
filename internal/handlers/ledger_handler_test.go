package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "coinfolio/internal/errors"
	"coinfolio/internal/models"
	"coinfolio/internal/pagination"
	"coinfolio/internal/repository"
	"coinfolio/internal/services"
)

// --- mock ledger service ---

type mockLedgerService struct {
	registerFn     func(ctx context.Context, in services.RegisterMovementInput) (*services.MovementResult, error)
	editFn         func(ctx context.Context, in services.EditMovementInput) (*services.MovementResult, error)
	deleteFn       func(ctx context.Context, id string) (*services.MovementResult, error)
	transferFn     func(ctx context.Context, in services.TransferInput) (*services.TransferResult, error)
	swapFn         func(ctx context.Context, in services.SwapInput) (*services.SwapResult, error)
	getMovementFn  func(ctx context.Context, id string) (*models.Movement, error)
	listFn         func(ctx context.Context, portfolioID string, f services.MovementFilter, p pagination.PageRequest) (*pagination.PageResponse[models.Movement], error)
	listHoldingsFn func(ctx context.Context, portfolioID string, walletID *string) ([]models.Holding, error)
}

func (m *mockLedgerService) RegisterMovement(ctx context.Context, in services.RegisterMovementInput) (*services.MovementResult, error) {
	if m.registerFn != nil {
		return m.registerFn(ctx, in)
	}
	return &services.MovementResult{}, nil
}

func (m *mockLedgerService) EditMovement(ctx context.Context, in services.EditMovementInput) (*services.MovementResult, error) {
	if m.editFn != nil {
		return m.editFn(ctx, in)
	}
	return &services.MovementResult{}, nil
}

func (m *mockLedgerService) DeleteMovement(ctx context.Context, id string) (*services.MovementResult, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return &services.MovementResult{MovementID: id}, nil
}

func (m *mockLedgerService) MoveBetweenWallets(ctx context.Context, in services.TransferInput) (*services.TransferResult, error) {
	if m.transferFn != nil {
		return m.transferFn(ctx, in)
	}
	return &services.TransferResult{}, nil
}

func (m *mockLedgerService) SwapMovement(ctx context.Context, in services.SwapInput) (*services.SwapResult, error) {
	if m.swapFn != nil {
		return m.swapFn(ctx, in)
	}
	return &services.SwapResult{}, nil
}

func (m *mockLedgerService) GetMovement(ctx context.Context, id string) (*models.Movement, error) {
	if m.getMovementFn != nil {
		return m.getMovementFn(ctx, id)
	}
	return &models.Movement{LedgerBase: models.LedgerBase{ID: id}}, nil
}

func (m *mockLedgerService) ListMovements(ctx context.Context, portfolioID string, f services.MovementFilter, p pagination.PageRequest) (*pagination.PageResponse[models.Movement], error) {
	if m.listFn != nil {
		return m.listFn(ctx, portfolioID, f, p)
	}
	p.Defaults()
	resp := pagination.NewPageResponse([]models.Movement{}, p, 0)
	return &resp, nil
}

func (m *mockLedgerService) GetHolding(_ context.Context, walletID, assetID string) (*models.Holding, error) {
	return &models.Holding{WalletID: walletID, AssetID: assetID}, nil
}

func (m *mockLedgerService) ListHoldings(ctx context.Context, portfolioID string, walletID *string) ([]models.Holding, error) {
	if m.listHoldingsFn != nil {
		return m.listHoldingsFn(ctx, portfolioID, walletID)
	}
	return []models.Holding{}, nil
}

var _ services.LedgerServicer = (*mockLedgerService)(nil)

type mockAuditService struct{}

func (m *mockAuditService) Record(context.Context, repository.Store, services.AuditEntry) error {
	return nil
}

func (m *mockAuditService) History(context.Context, string, string) ([]models.AuditLog, error) {
	return []models.AuditLog{}, nil
}

var _ services.AuditServicer = (*mockAuditService)(nil)

func setupLedgerRouter(ledger services.LedgerServicer) *gin.Engine {
	return NewRouter(ledger, &mockCatalogService{}, &mockAuditService{})
}

// --- tests ---

func TestLedgerHandler_RegisterMovement(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		var got services.RegisterMovementInput
		ledger := &mockLedgerService{
			registerFn: func(ctx context.Context, in services.RegisterMovementInput) (*services.MovementResult, error) {
				got = in
				if services.SourceFrom(ctx) == "" {
					t.Error("expected request source on context")
				}
				return &services.MovementResult{MovementID: "m1", HoldingID: "p|w|a", NewHoldingQuantity: decimal.RequireFromString("0.5")}, nil
			},
		}
		r := setupLedgerRouter(ledger)

		rec := doRequest(r, "POST", "/api/v1/movements",
			`{"portfolio_id":"p","wallet_id":"w","asset_id":"a","type":"BUY","quantity":"0.5","price":"40000","timestamp":1700000000000}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["new_holding_quantity"] != "0.5" {
			t.Errorf("expected quantity \"0.5\", got %v", result["new_holding_quantity"])
		}
		if got.Type != models.MovementBuy || got.Price == nil || !got.Price.Equal(decimal.NewFromInt(40000)) {
			t.Errorf("unexpected input %+v", got)
		}
		if !got.FeeQuantity.IsZero() {
			t.Errorf("expected zero fee, got %s", got.FeeQuantity)
		}
	})

	t.Run("returns 400 on unknown type", func(t *testing.T) {
		r := setupLedgerRouter(&mockLedgerService{})
		rec := doRequest(r, "POST", "/api/v1/movements",
			`{"portfolio_id":"p","wallet_id":"w","asset_id":"a","type":"GIFT","quantity":"1"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on non-positive quantity", func(t *testing.T) {
		r := setupLedgerRouter(&mockLedgerService{})
		rec := doRequest(r, "POST", "/api/v1/movements",
			`{"portfolio_id":"p","wallet_id":"w","asset_id":"a","type":"DEPOSIT","quantity":"0"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 409 with shortfall details", func(t *testing.T) {
		ledger := &mockLedgerService{
			registerFn: func(context.Context, services.RegisterMovementInput) (*services.MovementResult, error) {
				return nil, apperrors.InsufficientHoldings("w", "a", decimal.RequireFromString("1"), decimal.RequireFromString("-0.5"))
			},
		}
		r := setupLedgerRouter(ledger)

		rec := doRequest(r, "POST", "/api/v1/movements",
			`{"portfolio_id":"p","wallet_id":"w","asset_id":"a","type":"WITHDRAW","quantity":"1.5","timestamp":1}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		errObj := assertErrorCode(t, parseJSON(t, rec), "INSUFFICIENT_HOLDINGS")
		details, ok := errObj["details"].(map[string]interface{})
		if !ok || details["would_be_quantity"] != "-0.5" || details["current_quantity"] != "1" {
			t.Errorf("unexpected details %v", errObj["details"])
		}
	})

	t.Run("returns 403 when wallet not in portfolio", func(t *testing.T) {
		ledger := &mockLedgerService{
			registerFn: func(context.Context, services.RegisterMovementInput) (*services.MovementResult, error) {
				return nil, apperrors.ErrNotAllowed
			},
		}
		r := setupLedgerRouter(ledger)

		rec := doRequest(r, "POST", "/api/v1/movements",
			`{"portfolio_id":"p","wallet_id":"w","asset_id":"a","type":"DEPOSIT","quantity":"1"}`)

		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
	})
}

func TestLedgerHandler_EditAndDelete(t *testing.T) {
	t.Run("edit passes path id", func(t *testing.T) {
		var got services.EditMovementInput
		ledger := &mockLedgerService{
			editFn: func(_ context.Context, in services.EditMovementInput) (*services.MovementResult, error) {
				got = in
				return &services.MovementResult{MovementID: in.MovementID}, nil
			},
		}
		r := setupLedgerRouter(ledger)

		rec := doRequest(r, "PUT", "/api/v1/movements/m-42",
			`{"type":"SELL","quantity":"2","price":"10","fee_quantity":"0.1","timestamp":5}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.MovementID != "m-42" || !got.FeeQuantity.Equal(decimal.RequireFromString("0.1")) {
			t.Errorf("unexpected input %+v", got)
		}
	})

	t.Run("edit requires timestamp", func(t *testing.T) {
		r := setupLedgerRouter(&mockLedgerService{})
		rec := doRequest(r, "PUT", "/api/v1/movements/m-42", `{"type":"DEPOSIT","quantity":"2"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("delete returns 404 for unknown movement", func(t *testing.T) {
		ledger := &mockLedgerService{
			deleteFn: func(context.Context, string) (*services.MovementResult, error) {
				return nil, apperrors.ErrMovementNotFound
			},
		}
		r := setupLedgerRouter(ledger)

		rec := doRequest(r, "DELETE", "/api/v1/movements/missing", "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "MOVEMENT_NOT_FOUND")
	})
}

func TestLedgerHandler_TransferAndSwap(t *testing.T) {
	t.Run("transfer returns 201", func(t *testing.T) {
		ledger := &mockLedgerService{
			transferFn: func(_ context.Context, in services.TransferInput) (*services.TransferResult, error) {
				if in.FromWalletID != "w1" || in.ToWalletID != "w2" || !in.Quantity.Equal(decimal.RequireFromString("0.75")) {
					t.Errorf("unexpected input %+v", in)
				}
				return &services.TransferResult{GroupID: "g1"}, nil
			},
		}
		r := setupLedgerRouter(ledger)

		rec := doRequest(r, "POST", "/api/v1/transfers",
			`{"portfolio_id":"p","from_wallet_id":"w1","to_wallet_id":"w2","asset_id":"a","quantity":"0.75","date":"2024-03-01"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if parseJSON(t, rec)["group_id"] != "g1" {
			t.Error("expected group id in response")
		}
	})

	t.Run("transfer rejects bad date", func(t *testing.T) {
		r := setupLedgerRouter(&mockLedgerService{})
		rec := doRequest(r, "POST", "/api/v1/transfers",
			`{"portfolio_id":"p","from_wallet_id":"w1","to_wallet_id":"w2","asset_id":"a","quantity":"1","date":"soon"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("swap requires both quantities", func(t *testing.T) {
		r := setupLedgerRouter(&mockLedgerService{})
		rec := doRequest(r, "POST", "/api/v1/swaps",
			`{"portfolio_id":"p","wallet_id":"w","from_asset_id":"a","to_asset_id":"b","from_quantity":"1"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("swap returns 201", func(t *testing.T) {
		ledger := &mockLedgerService{
			swapFn: func(_ context.Context, in services.SwapInput) (*services.SwapResult, error) {
				return &services.SwapResult{GroupID: "g2", NewToHoldingQuantity: in.ToQuantity}, nil
			},
		}
		r := setupLedgerRouter(ledger)

		rec := doRequest(r, "POST", "/api/v1/swaps",
			`{"portfolio_id":"p","wallet_id":"w","from_asset_id":"a","to_asset_id":"b","from_quantity":"5","to_quantity":"1","timestamp":9}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if parseJSON(t, rec)["new_to_holding_quantity"] != "1" {
			t.Errorf("unexpected body %s", rec.Body.String())
		}
	})
}

func TestLedgerHandler_Queries(t *testing.T) {
	t.Run("list movements parses filters", func(t *testing.T) {
		ledger := &mockLedgerService{
			listFn: func(_ context.Context, portfolioID string, f services.MovementFilter, p pagination.PageRequest) (*pagination.PageResponse[models.Movement], error) {
				if portfolioID != "p" || f.WalletID == nil || *f.WalletID != "w" {
					t.Errorf("unexpected filter %q %+v", portfolioID, f)
				}
				if f.Type == nil || *f.Type != models.MovementSell {
					t.Errorf("expected SELL filter, got %v", f.Type)
				}
				if f.From == nil || *f.From != 1000 {
					t.Errorf("expected from=1000, got %v", f.From)
				}
				if p.Page != 2 || p.PageSize != 10 {
					t.Errorf("unexpected page %+v", p)
				}
				resp := pagination.NewPageResponse([]models.Movement{}, p, 0)
				return &resp, nil
			},
		}
		r := setupLedgerRouter(ledger)

		rec := doRequest(r, "GET", "/api/v1/movements?portfolio_id=p&wallet_id=w&type=SELL&from=1000&page=2&page_size=10", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("list movements rejects oversized page", func(t *testing.T) {
		r := setupLedgerRouter(&mockLedgerService{})
		rec := doRequest(r, "GET", "/api/v1/movements?portfolio_id=p&page_size=1000", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("list holdings passes wallet filter", func(t *testing.T) {
		ledger := &mockLedgerService{
			listHoldingsFn: func(_ context.Context, portfolioID string, walletID *string) ([]models.Holding, error) {
				if portfolioID != "p" || walletID == nil || *walletID != "w" {
					t.Errorf("unexpected args %q %v", portfolioID, walletID)
				}
				return []models.Holding{{ID: "p|w|a", Quantity: decimal.NewFromInt(3)}}, nil
			},
		}
		r := setupLedgerRouter(ledger)

		rec := doRequest(r, "GET", "/api/v1/portfolios/p/holdings?wallet_id=w", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		holdings := parseJSON(t, rec)["holdings"].([]interface{})
		if len(holdings) != 1 {
			t.Errorf("expected 1 holding, got %d", len(holdings))
		}
	})

	t.Run("get movement 404", func(t *testing.T) {
		ledger := &mockLedgerService{
			getMovementFn: func(context.Context, string) (*models.Movement, error) {
				return nil, apperrors.ErrMovementNotFound
			},
		}
		r := setupLedgerRouter(ledger)
		rec := doRequest(r, "GET", "/api/v1/movements/missing", "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("health", func(t *testing.T) {
		r := setupLedgerRouter(&mockLedgerService{})
		rec := doRequest(r, "GET", "/api/health", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})
}
