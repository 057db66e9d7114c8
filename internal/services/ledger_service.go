package services

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	apperrors "coinfolio/internal/errors"
	"coinfolio/internal/logger"
	"coinfolio/internal/models"
	"coinfolio/internal/pagination"
	"coinfolio/internal/repository"
	"coinfolio/internal/uuid"
)

// ledgerService implements the movement ledger on top of the repositories.
type ledgerService struct {
	store  repository.Store
	runner repository.TxRunner
	audit  AuditServicer
	now    func() time.Time
}

// NewLedgerService creates a new LedgerServicer. Reads go through store;
// every command runs as one unit of work on runner.
func NewLedgerService(store repository.Store, runner repository.TxRunner, audit AuditServicer) LedgerServicer {
	return &ledgerService{
		store:  store,
		runner: runner,
		audit:  audit,
		now:    time.Now,
	}
}

// RegisterMovement appends a movement and applies its delta to the holding.
func (s *ledgerService) RegisterMovement(ctx context.Context, in RegisterMovementInput) (*MovementResult, error) {
	if err := requireIDs("portfolio_id", in.PortfolioID, "wallet_id", in.WalletID, "asset_id", in.AssetID); err != nil {
		return nil, err
	}
	if err := validateMovementFields(in.Type, in.Quantity, in.Price, in.FeeQuantity, in.Timestamp); err != nil {
		return nil, err
	}

	var result *MovementResult
	err := s.runInTx(ctx, func(tx repository.Store) error {
		if err := checkWalletAsset(ctx, tx, in.PortfolioID, in.WalletID, in.AssetID); err != nil {
			return err
		}

		current, err := currentQuantity(ctx, tx, in.WalletID, in.AssetID)
		if err != nil {
			return err
		}
		delta, err := models.Delta(in.Type, in.Quantity, in.FeeQuantity)
		if err != nil {
			return apperrors.Wrap(apperrors.ErrInvalidMovementType, err)
		}
		newQty := current.Add(delta)
		if err := guard(in.WalletID, in.AssetID, current, newQty); err != nil {
			return err
		}

		movement := &models.Movement{
			PortfolioID: in.PortfolioID,
			WalletID:    in.WalletID,
			AssetID:     in.AssetID,
			Type:        in.Type,
			Quantity:    in.Quantity,
			Price:       in.Price,
			FeeQuantity: in.FeeQuantity,
			Timestamp:   in.Timestamp,
			Notes:       in.Notes,
		}
		id, err := tx.Movements().Insert(ctx, movement)
		if err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		holding, err := tx.Holdings().Upsert(ctx, in.PortfolioID, in.WalletID, in.AssetID, newQty, s.now())
		if err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if err := s.audit.Record(ctx, tx, AuditEntry{
			PortfolioID:  in.PortfolioID,
			Action:       ActionRegister,
			ResourceType: ResourceMovement,
			ResourceID:   id,
			Changes: map[string]any{
				"type":         in.Type,
				"quantity":     in.Quantity.String(),
				"fee_quantity": in.FeeQuantity.String(),
				"holding":      holding.Quantity.String(),
			},
		}); err != nil {
			return err
		}

		result = &MovementResult{MovementID: id, HoldingID: holding.ID, NewHoldingQuantity: newQty}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Get().Infow("movement registered",
		"movement_id", result.MovementID,
		"holding_id", result.HoldingID,
		"type", in.Type,
		"quantity", in.Quantity.String(),
		"new_quantity", result.NewHoldingQuantity.String(),
	)
	return result, nil
}

// EditMovement replaces the mutable fields of a movement. The old delta is
// reversed and the new one applied in a single step, so the holding only
// has to be non-negative at the end.
func (s *ledgerService) EditMovement(ctx context.Context, in EditMovementInput) (*MovementResult, error) {
	if err := requireIDs("movement_id", in.MovementID); err != nil {
		return nil, err
	}
	if err := validateMovementFields(in.Type, in.Quantity, in.Price, in.FeeQuantity, in.Timestamp); err != nil {
		return nil, err
	}

	var result *MovementResult
	err := s.runInTx(ctx, func(tx repository.Store) error {
		old, err := findMovement(ctx, tx, in.MovementID)
		if err != nil {
			return err
		}

		current, err := currentQuantity(ctx, tx, old.WalletID, old.AssetID)
		if err != nil {
			return err
		}
		oldDelta, err := old.Delta()
		if err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		newDelta, err := models.Delta(in.Type, in.Quantity, in.FeeQuantity)
		if err != nil {
			return apperrors.Wrap(apperrors.ErrInvalidMovementType, err)
		}
		newQty := current.Sub(oldDelta).Add(newDelta)
		if err := guard(old.WalletID, old.AssetID, current, newQty); err != nil {
			return err
		}

		patch := repository.MovementPatch{
			Type:        in.Type,
			Quantity:    in.Quantity,
			Price:       in.Price,
			FeeQuantity: in.FeeQuantity,
			Timestamp:   in.Timestamp,
			Notes:       in.Notes,
		}
		if err := tx.Movements().Update(ctx, old.ID, patch); err != nil {
			return movementErr(err)
		}
		holding, err := tx.Holdings().Upsert(ctx, old.PortfolioID, old.WalletID, old.AssetID, newQty, s.now())
		if err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if err := s.audit.Record(ctx, tx, AuditEntry{
			PortfolioID:  old.PortfolioID,
			Action:       ActionEdit,
			ResourceType: ResourceMovement,
			ResourceID:   old.ID,
			Changes: map[string]any{
				"old_type":     old.Type,
				"old_quantity": old.Quantity.String(),
				"old_fee":      old.FeeQuantity.String(),
				"type":         in.Type,
				"quantity":     in.Quantity.String(),
				"fee_quantity": in.FeeQuantity.String(),
				"holding":      holding.Quantity.String(),
			},
		}); err != nil {
			return err
		}

		result = &MovementResult{MovementID: old.ID, HoldingID: holding.ID, NewHoldingQuantity: newQty}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Get().Infow("movement edited",
		"movement_id", result.MovementID,
		"holding_id", result.HoldingID,
		"new_quantity", result.NewHoldingQuantity.String(),
	)
	return result, nil
}

// DeleteMovement removes a movement and reverses its delta. A delete that
// would leave the holding negative is rejected and nothing is written.
func (s *ledgerService) DeleteMovement(ctx context.Context, movementID string) (*MovementResult, error) {
	if err := requireIDs("movement_id", movementID); err != nil {
		return nil, err
	}

	var result *MovementResult
	err := s.runInTx(ctx, func(tx repository.Store) error {
		old, err := findMovement(ctx, tx, movementID)
		if err != nil {
			return err
		}

		current, err := currentQuantity(ctx, tx, old.WalletID, old.AssetID)
		if err != nil {
			return err
		}
		oldDelta, err := old.Delta()
		if err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		newQty := current.Sub(oldDelta)
		if err := guard(old.WalletID, old.AssetID, current, newQty); err != nil {
			return err
		}

		holding, err := tx.Holdings().Upsert(ctx, old.PortfolioID, old.WalletID, old.AssetID, newQty, s.now())
		if err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Movements().Delete(ctx, old.ID); err != nil {
			return movementErr(err)
		}

		changes := map[string]any{
			"type":         old.Type,
			"quantity":     old.Quantity.String(),
			"fee_quantity": old.FeeQuantity.String(),
			"holding":      holding.Quantity.String(),
		}
		if old.GroupID != nil {
			changes["group_id"] = *old.GroupID
		}
		if err := s.audit.Record(ctx, tx, AuditEntry{
			PortfolioID:  old.PortfolioID,
			Action:       ActionDelete,
			ResourceType: ResourceMovement,
			ResourceID:   old.ID,
			Changes:      changes,
		}); err != nil {
			return err
		}

		result = &MovementResult{MovementID: old.ID, HoldingID: holding.ID, NewHoldingQuantity: newQty}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Get().Infow("movement deleted",
		"movement_id", result.MovementID,
		"holding_id", result.HoldingID,
		"new_quantity", result.NewHoldingQuantity.String(),
	)
	return result, nil
}

// MoveBetweenWallets redistributes an asset between two wallets of the same
// portfolio. The sum of both holdings is unchanged.
func (s *ledgerService) MoveBetweenWallets(ctx context.Context, in TransferInput) (*TransferResult, error) {
	if err := requireIDs("portfolio_id", in.PortfolioID, "from_wallet_id", in.FromWalletID,
		"to_wallet_id", in.ToWalletID, "asset_id", in.AssetID); err != nil {
		return nil, err
	}
	if in.FromWalletID == in.ToWalletID {
		return nil, apperrors.ErrSameWalletTransfer
	}
	if err := validateQuantity("quantity", in.Quantity); err != nil {
		return nil, err
	}
	if err := validateTimestamp(in.Timestamp); err != nil {
		return nil, err
	}

	var result *TransferResult
	err := s.runInTx(ctx, func(tx repository.Store) error {
		if err := checkWalletAsset(ctx, tx, in.PortfolioID, in.FromWalletID, in.AssetID); err != nil {
			return err
		}
		if err := checkWallet(ctx, tx, in.PortfolioID, in.ToWalletID); err != nil {
			return err
		}

		fromQty, err := currentQuantity(ctx, tx, in.FromWalletID, in.AssetID)
		if err != nil {
			return err
		}
		newFrom := fromQty.Sub(in.Quantity)
		if err := guard(in.FromWalletID, in.AssetID, fromQty, newFrom); err != nil {
			return err
		}
		toQty, err := currentQuantity(ctx, tx, in.ToWalletID, in.AssetID)
		if err != nil {
			return err
		}
		newTo := toQty.Add(in.Quantity)

		groupID := uuid.New()
		out := &models.Movement{
			PortfolioID: in.PortfolioID,
			WalletID:    in.FromWalletID,
			AssetID:     in.AssetID,
			Type:        models.MovementTransferOut,
			Quantity:    in.Quantity,
			Timestamp:   in.Timestamp,
			Notes:       in.Notes,
			GroupID:     &groupID,
		}
		inbound := &models.Movement{
			PortfolioID: in.PortfolioID,
			WalletID:    in.ToWalletID,
			AssetID:     in.AssetID,
			Type:        models.MovementTransferIn,
			Quantity:    in.Quantity,
			Timestamp:   in.Timestamp,
			Notes:       in.Notes,
			GroupID:     &groupID,
		}

		outID, err := tx.Movements().Insert(ctx, out)
		if err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		inID, err := tx.Movements().Insert(ctx, inbound)
		if err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		now := s.now()
		fromHolding, err := tx.Holdings().Upsert(ctx, in.PortfolioID, in.FromWalletID, in.AssetID, newFrom, now)
		if err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		toHolding, err := tx.Holdings().Upsert(ctx, in.PortfolioID, in.ToWalletID, in.AssetID, newTo, now)
		if err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if err := s.audit.Record(ctx, tx, AuditEntry{
			PortfolioID:  in.PortfolioID,
			Action:       ActionTransfer,
			ResourceType: ResourceGroup,
			ResourceID:   groupID,
			Changes: map[string]any{
				"from_wallet_id": in.FromWalletID,
				"to_wallet_id":   in.ToWalletID,
				"asset_id":       in.AssetID,
				"quantity":       in.Quantity.String(),
			},
		}); err != nil {
			return err
		}

		result = &TransferResult{
			GroupID:                groupID,
			TransferOutMovementID:  outID,
			TransferInMovementID:   inID,
			FromHoldingID:          fromHolding.ID,
			ToHoldingID:            toHolding.ID,
			NewFromHoldingQuantity: newFrom,
			NewToHoldingQuantity:   newTo,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Get().Infow("wallet transfer committed",
		"group_id", result.GroupID,
		"from_wallet_id", in.FromWalletID,
		"to_wallet_id", in.ToWalletID,
		"asset_id", in.AssetID,
		"quantity", in.Quantity.String(),
	)
	return result, nil
}

// SwapMovement exchanges fromQuantity of one asset for toQuantity of another
// in the same wallet, recorded as a SELL and a BUY sharing a group id. Each
// leg is priced in units of the other asset.
func (s *ledgerService) SwapMovement(ctx context.Context, in SwapInput) (*SwapResult, error) {
	if err := requireIDs("portfolio_id", in.PortfolioID, "wallet_id", in.WalletID,
		"from_asset_id", in.FromAssetID, "to_asset_id", in.ToAssetID); err != nil {
		return nil, err
	}
	if in.FromAssetID == in.ToAssetID {
		return nil, apperrors.ErrSameAssetSwap
	}
	if err := validateQuantity("from_quantity", in.FromQuantity); err != nil {
		return nil, err
	}
	if err := validateQuantity("to_quantity", in.ToQuantity); err != nil {
		return nil, err
	}
	if err := validateTimestamp(in.Timestamp); err != nil {
		return nil, err
	}

	var result *SwapResult
	err := s.runInTx(ctx, func(tx repository.Store) error {
		if err := checkWalletAsset(ctx, tx, in.PortfolioID, in.WalletID, in.FromAssetID); err != nil {
			return err
		}
		if err := checkAsset(ctx, tx, in.ToAssetID); err != nil {
			return err
		}

		fromQty, err := currentQuantity(ctx, tx, in.WalletID, in.FromAssetID)
		if err != nil {
			return err
		}
		newFrom := fromQty.Sub(in.FromQuantity)
		if err := guard(in.WalletID, in.FromAssetID, fromQty, newFrom); err != nil {
			return err
		}
		toQty, err := currentQuantity(ctx, tx, in.WalletID, in.ToAssetID)
		if err != nil {
			return err
		}
		newTo := toQty.Add(in.ToQuantity)

		groupID := uuid.New()
		sellPrice := in.ToQuantity.DivRound(in.FromQuantity, priceScale)
		buyPrice := in.FromQuantity.DivRound(in.ToQuantity, priceScale)
		sell := &models.Movement{
			PortfolioID: in.PortfolioID,
			WalletID:    in.WalletID,
			AssetID:     in.FromAssetID,
			Type:        models.MovementSell,
			Quantity:    in.FromQuantity,
			Price:       &sellPrice,
			Timestamp:   in.Timestamp,
			Notes:       in.Notes,
			GroupID:     &groupID,
		}
		buy := &models.Movement{
			PortfolioID: in.PortfolioID,
			WalletID:    in.WalletID,
			AssetID:     in.ToAssetID,
			Type:        models.MovementBuy,
			Quantity:    in.ToQuantity,
			Price:       &buyPrice,
			Timestamp:   in.Timestamp,
			Notes:       in.Notes,
			GroupID:     &groupID,
		}

		sellID, err := tx.Movements().Insert(ctx, sell)
		if err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		buyID, err := tx.Movements().Insert(ctx, buy)
		if err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		now := s.now()
		fromHolding, err := tx.Holdings().Upsert(ctx, in.PortfolioID, in.WalletID, in.FromAssetID, newFrom, now)
		if err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		toHolding, err := tx.Holdings().Upsert(ctx, in.PortfolioID, in.WalletID, in.ToAssetID, newTo, now)
		if err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if err := s.audit.Record(ctx, tx, AuditEntry{
			PortfolioID:  in.PortfolioID,
			Action:       ActionSwap,
			ResourceType: ResourceGroup,
			ResourceID:   groupID,
			Changes: map[string]any{
				"wallet_id":     in.WalletID,
				"from_asset_id": in.FromAssetID,
				"to_asset_id":   in.ToAssetID,
				"from_quantity": in.FromQuantity.String(),
				"to_quantity":   in.ToQuantity.String(),
			},
		}); err != nil {
			return err
		}

		result = &SwapResult{
			GroupID:                groupID,
			SellMovementID:         sellID,
			BuyMovementID:          buyID,
			FromHoldingID:          fromHolding.ID,
			ToHoldingID:            toHolding.ID,
			NewFromHoldingQuantity: newFrom,
			NewToHoldingQuantity:   newTo,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Get().Infow("asset swap committed",
		"group_id", result.GroupID,
		"wallet_id", in.WalletID,
		"from_asset_id", in.FromAssetID,
		"to_asset_id", in.ToAssetID,
	)
	return result, nil
}

// GetMovement retrieves a single movement.
func (s *ledgerService) GetMovement(ctx context.Context, movementID string) (*models.Movement, error) {
	if err := requireIDs("movement_id", movementID); err != nil {
		return nil, err
	}
	return findMovement(ctx, s.store, movementID)
}

// ListMovements retrieves a paginated, filtered list of a portfolio's movements, newest first.
func (s *ledgerService) ListMovements(ctx context.Context, portfolioID string, filter MovementFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Movement], error) {
	if err := requireIDs("portfolio_id", portfolioID); err != nil {
		return nil, err
	}
	if filter.Type != nil && !filter.Type.Valid() {
		return nil, apperrors.ErrInvalidMovementType
	}
	if err := checkPortfolio(ctx, s.store, portfolioID); err != nil {
		return nil, err
	}

	page.Defaults()
	movements, total, err := s.store.Movements().List(ctx, repository.MovementFilter{
		PortfolioID: portfolioID,
		WalletID:    filter.WalletID,
		AssetID:     filter.AssetID,
		Type:        filter.Type,
		GroupID:     filter.GroupID,
		From:        filter.From,
		To:          filter.To,
	}, page)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(movements, page, total)
	return &result, nil
}

// GetHolding returns the holding of one asset in one wallet. A key no
// movement has touched yet reads as a zero holding.
func (s *ledgerService) GetHolding(ctx context.Context, walletID, assetID string) (*models.Holding, error) {
	if err := requireIDs("wallet_id", walletID, "asset_id", assetID); err != nil {
		return nil, err
	}

	h, err := s.store.Holdings().FindByWalletAsset(ctx, walletID, assetID)
	if err == nil {
		return h, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	wallet, err := s.store.Wallets().FindByID(ctx, walletID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrWalletNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := checkAsset(ctx, s.store, assetID); err != nil {
		return nil, err
	}
	return &models.Holding{
		ID:          models.HoldingKey(wallet.PortfolioID, walletID, assetID),
		PortfolioID: wallet.PortfolioID,
		WalletID:    walletID,
		AssetID:     assetID,
		Quantity:    decimal.Zero,
	}, nil
}

// ListHoldings lists the holdings of a portfolio, optionally restricted to one wallet.
func (s *ledgerService) ListHoldings(ctx context.Context, portfolioID string, walletID *string) ([]models.Holding, error) {
	if err := requireIDs("portfolio_id", portfolioID); err != nil {
		return nil, err
	}
	if err := checkPortfolio(ctx, s.store, portfolioID); err != nil {
		return nil, err
	}
	if walletID != nil {
		if err := checkWallet(ctx, s.store, portfolioID, *walletID); err != nil {
			return nil, err
		}
	}

	holdings, err := s.store.Holdings().ListByPortfolio(ctx, portfolioID, walletID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if holdings == nil {
		holdings = []models.Holding{}
	}
	return holdings, nil
}

// runInTx runs fn as one unit of work. Errors that are not already an
// *AppError (cancellation, commit failures) surface as INTERNAL_ERROR.
func (s *ledgerService) runInTx(ctx context.Context, fn func(tx repository.Store) error) error {
	err := s.runner.RunInTx(ctx, fn)
	if err == nil {
		return nil
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Code == apperrors.ErrInsufficientHoldings.Code {
			logger.Get().Debugw("ledger guard rejected command", "details", appErr.Details)
		}
		return appErr
	}
	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}
