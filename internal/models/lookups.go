package models

import "time"

// Master lookup tables. All of them are uniqueness-by-name and carry no
// business rules of their own; planners reference them weakly by id.

type SourceName struct {
	ID   uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"type:varchar(255);uniqueIndex:uk_source_names_name;not null" json:"name"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
	Version   int64     `gorm:"not null;default:0" json:"version"`
}

func (SourceName) TableName() string {
	return "source_names"
}

type RunName struct {
	ID   uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"type:varchar(255);uniqueIndex:uk_run_names_name;not null" json:"name"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
	Version   int64     `gorm:"not null;default:0" json:"version"`
}

func (RunName) TableName() string {
	return "run_names"
}

type ReportType struct {
	ID   uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"type:varchar(255);uniqueIndex:uk_report_types_name;not null" json:"name"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
	Version   int64     `gorm:"not null;default:0" json:"version"`
}

func (ReportType) TableName() string {
	return "report_types"
}

// ReportName optionally belongs to a ReportType category.
type ReportName struct {
	ID           uint64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string      `gorm:"type:varchar(255);uniqueIndex:uk_report_names_name;not null" json:"name"`
	ReportTypeID *uint64     `gorm:"index" json:"report_type_id,omitempty"`
	ReportType   *ReportType `gorm:"foreignKey:ReportTypeID;constraint:OnDelete:SET NULL" json:"-"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
	Version   int64     `gorm:"not null;default:0" json:"version"`
}

func (ReportName) TableName() string {
	return "report_names"
}
