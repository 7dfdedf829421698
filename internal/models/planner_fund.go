package models

import "time"

// PlannerFund links a planner to a fund, optionally pinning one of the
// fund's aliases. A fund may appear at most once per planner.
type PlannerFund struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	PlannerID uint64 `gorm:"not null;index;uniqueIndex:uk_planner_fund" json:"planner_id"`
	FundID    uint64 `gorm:"not null;index;uniqueIndex:uk_planner_fund" json:"fund_id"`

	Fund *Fund `gorm:"foreignKey:FundID;constraint:OnDelete:CASCADE" json:"fund,omitempty"`

	FundAliasID *uint64    `gorm:"index" json:"fund_alias_id,omitempty"`
	FundAlias   *FundAlias `gorm:"foreignKey:FundAliasID;constraint:OnDelete:SET NULL" json:"fund_alias,omitempty"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
	Version   int64     `gorm:"not null;default:0" json:"version"`
}

func (PlannerFund) TableName() string {
	return "planner_funds"
}
