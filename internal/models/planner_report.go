package models

import "time"

// PlannerReport references a report type and/or a report name; both are
// optional and independently settable.
type PlannerReport struct {
	ID              uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	PlannerSourceID uint64 `gorm:"not null;index" json:"planner_source_id"`

	ReportTypeID *uint64     `gorm:"index" json:"report_type_id,omitempty"`
	ReportType   *ReportType `gorm:"foreignKey:ReportTypeID;constraint:OnDelete:SET NULL" json:"report_type,omitempty"`

	ReportNameID *uint64     `gorm:"index" json:"report_name_id,omitempty"`
	ReportName   *ReportName `gorm:"foreignKey:ReportNameID;constraint:OnDelete:SET NULL" json:"report_name,omitempty"`

	DisplayOrder int `gorm:"not null;default:0" json:"display_order"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
	Version   int64     `gorm:"not null;default:0" json:"version"`
}

func (PlannerReport) TableName() string {
	return "planner_reports"
}
