package models

import (
	"time"
)

// Connection types. PoetsToPoems is many-to-many (a poet profile has many
// poems, a poem can have joint authors). PoetsToUsers is one-to-one: a user
// has at most one primary poet profile.
const (
	ConnPoetsToPoems = "poets_to_poems"
	ConnPoetsToUsers = "poets_to_users"
)

// Connection is a directed, typed link between a poet profile and another
// entity. FromID is always a poet id; ToID is a poem id or a user id
// depending on ConnType.
type Connection struct {
	ConnectionID uint64 `gorm:"primaryKey;autoIncrement"`
	ConnType     string `gorm:"size:32;not null;index:idx_conn,unique"`
	FromID       uint64 `gorm:"not null;index:idx_conn,unique"`
	ToID         uint64 `gorm:"not null;index:idx_conn,unique"`
	CreatedAt    time.Time
}

// BatchStep persists the cursor for a chunked reassignment so it survives
// between the independent request/response cycles that drive it.
type BatchStep struct {
	StepKey   string `gorm:"primaryKey;size:255"`
	Step      int    `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the table name for Connection
func (Connection) TableName() string {
	return "connections"
}

// TableName overrides the table name for BatchStep
func (BatchStep) TableName() string {
	return "batch_steps"
}
