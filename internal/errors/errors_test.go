package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
)

func TestIs_MatchesCategory(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		category *AppError
	}{
		{"portfolio not found", ErrPortfolioNotFound, ErrNotFound},
		{"wallet not found", ErrWalletNotFound, ErrNotFound},
		{"asset not found", ErrAssetNotFound, ErrNotFound},
		{"movement not found", ErrMovementNotFound, ErrNotFound},
		{"invalid movement type", ErrInvalidMovementType, ErrInvalidInput},
		{"same wallet transfer", ErrSameWalletTransfer, ErrInvalidInput},
		{"same asset swap", ErrSameAssetSwap, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !stderrors.Is(tt.err, tt.err) {
				t.Errorf("%s should match itself", tt.err.Code)
			}
			if !stderrors.Is(tt.err, tt.category) {
				t.Errorf("%s should match %s", tt.err.Code, tt.category.Code)
			}
			if !stderrors.Is(WithMessage(tt.err, "custom"), tt.category) {
				t.Errorf("WithMessage(%s) should match %s", tt.err.Code, tt.category.Code)
			}
			wrapped := fmt.Errorf("op: %w", Wrap(tt.err, stderrors.New("boom")))
			if !stderrors.Is(wrapped, tt.category) {
				t.Errorf("wrapped %s should match %s", tt.err.Code, tt.category.Code)
			}
			// A category never matches one of its specific codes.
			if stderrors.Is(tt.category, tt.err) {
				t.Errorf("%s should not match %s", tt.category.Code, tt.err.Code)
			}
		})
	}
}

func TestIs_DistinctCategories(t *testing.T) {
	if stderrors.Is(ErrWalletNotFound, ErrInvalidInput) {
		t.Error("WALLET_NOT_FOUND should not match INVALID_INPUT")
	}
	if stderrors.Is(ErrSameAssetSwap, ErrNotFound) {
		t.Error("SAME_ASSET_SWAP should not match NOT_FOUND")
	}
	if stderrors.Is(ErrWalletNotFound, ErrAssetNotFound) {
		t.Error("WALLET_NOT_FOUND should not match ASSET_NOT_FOUND")
	}
	if stderrors.Is(ErrDuplicateAsset, ErrInvalidInput) {
		t.Error("DUPLICATE_ASSET is a conflict, not invalid input")
	}
}

func TestInsufficientHoldings(t *testing.T) {
	err := InsufficientHoldings("w1", "a1", decimal.RequireFromString("1"), decimal.RequireFromString("-0.5"))

	if !stderrors.Is(err, ErrInsufficientHoldings) {
		t.Fatal("expected INSUFFICIENT_HOLDINGS")
	}
	if err.Details["would_be_quantity"] != "-0.5" {
		t.Errorf("expected would_be_quantity -0.5, got %q", err.Details["would_be_quantity"])
	}
	var shortfall *HoldingShortfall
	if !stderrors.As(err, &shortfall) {
		t.Fatal("expected HoldingShortfall as internal error")
	}
	if shortfall.WalletID != "w1" || !shortfall.Current.Equal(decimal.NewFromInt(1)) {
		t.Errorf("unexpected shortfall %+v", shortfall)
	}
}
