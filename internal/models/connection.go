package models

import (
	"time"
)

// Connection holds the endpoint and credential configuration for one
// external system. ValueField is the credential secret: once set it is
// write-once and must never leave the service unmasked.
type Connection struct {
	ID   uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"type:varchar(255);uniqueIndex:uk_connections_name;not null" json:"name"`

	BaseURL    string `gorm:"type:varchar(500);not null" json:"base_url"`
	AuthMethod string `gorm:"type:varchar(50);not null;column:authentication_method" json:"authentication_method"`
	AuthPlace  string `gorm:"type:varchar(20);column:authentication_place" json:"authentication_place"`

	KeyField      string  `gorm:"type:varchar(255);not null" json:"key_field"`
	ValueField    *string `gorm:"type:varchar(500)" json:"value_field,omitempty"`
	ValueFieldSet bool    `gorm:"not null;default:false" json:"value_field_set"`

	// At most one row may carry true; the partial unique index is the
	// storage-level arbiter for racing writers.
	IsDefault bool `gorm:"not null;default:false;uniqueIndex:uk_connections_default,where:is_default" json:"is_default"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
	Version   int64     `gorm:"not null;default:0" json:"version"`
}

func (Connection) TableName() string {
	return "connections"
}

// Authentication placements accepted for Connection.AuthPlace.
const (
	AuthPlaceHeader     = "Header"
	AuthPlaceQueryParam = "QueryParameters"
)
