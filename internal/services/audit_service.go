package services

import (
	"context"
	"encoding/json"

	apperrors "coinfolio/internal/errors"
	"coinfolio/internal/logger"
	"coinfolio/internal/models"
	"coinfolio/internal/repository"
)

// Audit actions written by the ledger.
const (
	ActionRegister = "MOVEMENT_REGISTERED"
	ActionEdit     = "MOVEMENT_EDITED"
	ActionDelete   = "MOVEMENT_DELETED"
	ActionTransfer = "WALLET_TRANSFER"
	ActionSwap     = "ASSET_SWAP"
)

// Audit resource types.
const (
	ResourceMovement = "movement"
	ResourceGroup    = "movement_group"
)

// AuditEntry is one journal line.
type AuditEntry struct {
	PortfolioID  string
	Action       string
	ResourceType string
	ResourceID   string
	Changes      map[string]any
}

type sourceKey struct{}

// WithSource tags ctx with the origin of a command ("api", "cli", a client IP).
func WithSource(ctx context.Context, source string) context.Context {
	return context.WithValue(ctx, sourceKey{}, source)
}

// SourceFrom returns the origin stored by WithSource, or "" if none.
func SourceFrom(ctx context.Context) string {
	s, _ := ctx.Value(sourceKey{}).(string)
	return s
}

// auditService handles audit log recording.
type auditService struct {
	store repository.Store
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(store repository.Store) AuditServicer {
	return &auditService{store: store}
}

// Record appends entry through tx so it commits or rolls back together with
// the ledger writes it describes.
func (s *auditService) Record(ctx context.Context, tx repository.Store, entry AuditEntry) error {
	var changesJSON string
	if entry.Changes != nil {
		data, err := json.Marshal(entry.Changes)
		if err != nil {
			logger.Get().Errorw("failed to marshal audit log changes", "error", err, "action", entry.Action)
			changesJSON = "{}"
		} else {
			changesJSON = string(data)
		}
	}

	row := &models.AuditLog{
		PortfolioID:  entry.PortfolioID,
		Action:       entry.Action,
		ResourceType: entry.ResourceType,
		ResourceID:   entry.ResourceID,
		Source:       SourceFrom(ctx),
		Changes:      changesJSON,
	}
	if err := tx.Audit().Append(ctx, row); err != nil {
		logger.Get().Errorw("failed to create audit log entry",
			"error", err,
			"action", entry.Action,
			"resource_type", entry.ResourceType,
			"resource_id", entry.ResourceID,
		)
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// History lists the journal of one resource, oldest first.
func (s *auditService) History(ctx context.Context, resourceType, resourceID string) ([]models.AuditLog, error) {
	logs, err := s.store.Audit().ListByResource(ctx, resourceType, resourceID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return logs, nil
}
