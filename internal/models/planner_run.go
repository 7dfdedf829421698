package models

import "time"

type PlannerRun struct {
	ID              uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	PlannerSourceID uint64 `gorm:"not null;index" json:"planner_source_id"`

	RunNameID *uint64  `gorm:"index" json:"run_name_id,omitempty"`
	RunName   *RunName `gorm:"foreignKey:RunNameID;constraint:OnDelete:SET NULL" json:"run_name,omitempty"`

	DisplayOrder int `gorm:"not null;default:0" json:"display_order"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
	Version   int64     `gorm:"not null;default:0" json:"version"`
}

func (PlannerRun) TableName() string {
	return "planner_runs"
}
