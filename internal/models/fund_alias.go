package models

import "time"

type FundAlias struct {
	ID     uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	FundID uint64 `gorm:"not null;index;uniqueIndex:uk_fund_alias" json:"fund_id"`
	Name   string `gorm:"type:varchar(255);not null;uniqueIndex:uk_fund_alias" json:"name"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
	Version   int64     `gorm:"not null;default:0" json:"version"`
}

func (FundAlias) TableName() string {
	return "fund_aliases"
}
