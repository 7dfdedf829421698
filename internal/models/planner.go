package models

import "time"

// Planner lifecycle statuses. Transitions are caller-driven; the only
// coupled side effect is the one-time FinishedAt stamp.
const (
	StatusDraft      = "Draft"
	StatusInProgress = "In Progress"
	StatusFinished   = "Finished"
	StatusFailed     = "Failed"
)

// ValidStatus reports whether s is one of the planner lifecycle statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusInProgress, StatusFinished, StatusFailed:
		return true
	}
	return false
}

// Planner is the aggregate root. It exclusively owns its fund links and
// sources (and, through the sources, runs and reports); deleting a planner
// cascades through all of them. The connection reference is weak.
type Planner struct {
	ID          uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"type:varchar(255);not null;index" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	PlannerType string `gorm:"type:varchar(100)" json:"planner_type"`
	Status      string `gorm:"type:varchar(50);not null;default:'Draft';index" json:"status"`

	ConnectionID *uint64     `gorm:"index" json:"connection_id,omitempty"`
	Connection   *Connection `gorm:"foreignKey:ConnectionID;constraint:OnDelete:SET NULL" json:"-"`

	FinishedAt *time.Time `gorm:"type:timestamptz" json:"finished_at,omitempty"`

	Funds   []PlannerFund   `gorm:"foreignKey:PlannerID" json:"funds,omitempty"`
	Sources []PlannerSource `gorm:"foreignKey:PlannerID" json:"sources,omitempty"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
	Version   int64     `gorm:"not null;default:0" json:"version"`
}

func (Planner) TableName() string {
	return "planners"
}
