package models

// AuditLog records every committed ledger command.
type AuditLog struct {
	Base
	PortfolioID  string `gorm:"type:varchar(36);index" json:"portfolio_id"`
	Action       string `gorm:"not null" json:"action"`
	ResourceType string `gorm:"not null" json:"resource_type"`
	ResourceID   string `json:"resource_id"`
	Source       string `json:"source"`
	Changes      string `json:"changes,omitempty"`
}
