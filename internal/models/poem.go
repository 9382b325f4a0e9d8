package models

import (
	"time"
)

// Poem is a content item linked to one or more poet profiles through the
// poets_to_poems connection. Accepting a claim reassigns AuthorID for every
// poem linked to the claimed profile.
type Poem struct {
	PoemID    uint64 `gorm:"primaryKey;autoIncrement"`
	Title     string `gorm:"size:255;not null"`
	AuthorID  uint64 `gorm:"not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the table name for Poem
func (Poem) TableName() string {
	return "poems"
}
