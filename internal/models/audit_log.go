package models

import "time"

// AuditLog rows are append-only; the jobs package purges them after the
// retention window.
type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarbershopID uint   `gorm:"index:idx_audit_logs_shop_created,priority:1" json:"barbershop_id"`
	UserID       *uint  `json:"user_id"`
	Action       string `gorm:"size:50;not null;index" json:"action"`

	Entity   string `gorm:"size:50" json:"entity"`
	EntityID *uint  `json:"entity_id"`
	// Metadata holds the event details encoded as JSON.
	Metadata string `gorm:"type:text" json:"metadata"`

	CreatedAt time.Time `gorm:"index:idx_audit_logs_shop_created,priority:2;index" json:"created_at"`
}
