package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"coinfolio/internal/models"
)

type auditRepository struct {
	db *gorm.DB
}

func (r *auditRepository) Append(ctx context.Context, entry *models.AuditLog) error {
	return errors.Wrap(r.db.WithContext(ctx).Create(entry).Error, "append audit log")
}

func (r *auditRepository) ListByResource(ctx context.Context, resourceType, resourceID string) ([]models.AuditLog, error) {
	var out []models.AuditLog
	if err := r.db.WithContext(ctx).
		Where("resource_type = ? AND resource_id = ?", resourceType, resourceID).
		Order("created_at").Find(&out).Error; err != nil {
		return nil, errors.Wrap(err, "list audit logs")
	}
	return out, nil
}
