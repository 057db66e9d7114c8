package services

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	apperrors "coinfolio/internal/errors"
	"coinfolio/internal/models"
	"coinfolio/internal/repository"
)

// priceScale matches the numeric(38,18) columns.
const priceScale int32 = 18

// requireIDs takes name/value pairs and rejects the first blank value.
func requireIDs(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, pairs[i]+" is required")
		}
	}
	return nil
}

func validateQuantity(field string, q decimal.Decimal) error {
	if !q.IsPositive() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, field+" must be greater than zero")
	}
	return nil
}

func validateTimestamp(ts int64) error {
	if ts <= 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "timestamp must be greater than zero")
	}
	return nil
}

func validateMovementFields(t models.MovementType, quantity decimal.Decimal, price *decimal.Decimal, fee decimal.Decimal, ts int64) error {
	if !t.Valid() {
		return apperrors.ErrInvalidMovementType
	}
	if err := validateQuantity("quantity", quantity); err != nil {
		return err
	}
	if err := validateTimestamp(ts); err != nil {
		return err
	}
	if fee.IsNegative() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "fee_quantity must not be negative")
	}
	if t.RequiresPrice() && price == nil {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "price is required for "+string(t)+" movements")
	}
	if price != nil && !price.IsPositive() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "price must be greater than zero")
	}
	return nil
}

// guard rejects a holding that would drop below zero.
func guard(walletID, assetID string, current, newQty decimal.Decimal) error {
	if newQty.IsNegative() {
		return apperrors.InsufficientHoldings(walletID, assetID, current, newQty)
	}
	return nil
}

// currentQuantity reads a holding; an absent row is a zero balance.
func currentQuantity(ctx context.Context, tx repository.Store, walletID, assetID string) (decimal.Decimal, error) {
	h, err := tx.Holdings().FindByWalletAsset(ctx, walletID, assetID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return h.Quantity, nil
}

func findMovement(ctx context.Context, st repository.Store, id string) (*models.Movement, error) {
	m, err := st.Movements().FindByID(ctx, id)
	if err != nil {
		return nil, movementErr(err)
	}
	return m, nil
}

func movementErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.ErrMovementNotFound
	}
	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}

func checkPortfolio(ctx context.Context, st repository.Store, portfolioID string) error {
	ok, err := st.Portfolios().Exists(ctx, portfolioID)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if !ok {
		return apperrors.ErrPortfolioNotFound
	}
	return nil
}

func checkAsset(ctx context.Context, st repository.Store, assetID string) error {
	ok, err := st.Assets().Exists(ctx, assetID)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if !ok {
		return apperrors.ErrAssetNotFound
	}
	return nil
}

// checkWallet verifies the wallet exists and belongs to the portfolio.
func checkWallet(ctx context.Context, st repository.Store, portfolioID, walletID string) error {
	ok, err := st.Wallets().Exists(ctx, walletID)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if !ok {
		return apperrors.ErrWalletNotFound
	}

	owned, err := st.Wallets().BelongsToPortfolio(ctx, walletID, portfolioID)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if !owned {
		return apperrors.WithMessage(apperrors.ErrNotAllowed, "wallet does not belong to portfolio")
	}
	return nil
}

// checkWalletAsset runs the existence checks shared by every command that
// names a portfolio, a wallet and an asset.
func checkWalletAsset(ctx context.Context, st repository.Store, portfolioID, walletID, assetID string) error {
	if err := checkPortfolio(ctx, st, portfolioID); err != nil {
		return err
	}
	ok, err := st.Wallets().Exists(ctx, walletID)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if !ok {
		return apperrors.ErrWalletNotFound
	}
	if err := checkAsset(ctx, st, assetID); err != nil {
		return err
	}
	return checkWallet(ctx, st, portfolioID, walletID)
}
