package models

import "time"

// Fund is a master record. Aliases are owned and go down with the fund.
type Fund struct {
	ID   uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"type:varchar(255);uniqueIndex:uk_funds_name;not null" json:"name"`

	Aliases []FundAlias `gorm:"foreignKey:FundID;constraint:OnDelete:CASCADE" json:"aliases,omitempty"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
	Version   int64     `gorm:"not null;default:0" json:"version"`
}

func (Fund) TableName() string {
	return "funds"
}
