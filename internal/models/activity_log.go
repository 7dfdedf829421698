package models

import (
	"time"

	"gorm.io/datatypes"
)

// ActivityLog is a best-effort audit trail of mutations. Entries are
// pruned by the retention cron job.
type ActivityLog struct {
	ID         uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	EntityType string `gorm:"type:varchar(50);not null;index" json:"entity_type"`
	EntityID   uint64 `gorm:"not null;index" json:"entity_id"`
	Action     string `gorm:"type:varchar(30);not null" json:"action"`

	Detail datatypes.JSON `gorm:"type:jsonb" json:"detail,omitempty"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime;index" json:"created_at"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}
