package models

import "time"

// PlannerSource is an owned child of a planner. DisplayOrder is unique
// within the planner and drives presentation order; ties fall back to id.
type PlannerSource struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	PlannerID uint64 `gorm:"not null;index;index:idx_planner_source_order,priority:1" json:"planner_id"`

	SourceNameID *uint64     `gorm:"index" json:"source_name_id,omitempty"`
	SourceName   *SourceName `gorm:"foreignKey:SourceNameID;constraint:OnDelete:SET NULL" json:"source_name,omitempty"`

	DisplayOrder int `gorm:"not null;default:0;index:idx_planner_source_order,priority:2" json:"display_order"`

	Runs    []PlannerRun    `gorm:"foreignKey:PlannerSourceID" json:"runs,omitempty"`
	Reports []PlannerReport `gorm:"foreignKey:PlannerSourceID" json:"reports,omitempty"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
	Version   int64     `gorm:"not null;default:0" json:"version"`
}

func (PlannerSource) TableName() string {
	return "planner_sources"
}
