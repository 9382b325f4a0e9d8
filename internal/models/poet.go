package models

import (
	"time"
)

// Poet represents a poet profile content object. AuthorID is the owning
// user; unclaimed profiles are owned by the configured holding user until
// a claim on them is accepted.
type Poet struct {
	PoetID    uint64 `gorm:"primaryKey;autoIncrement"`
	Title     string `gorm:"size:255;not null"`
	Content   string `gorm:"type:text"`
	Twitter   string `gorm:"size:255"`
	Website   string `gorm:"size:255"`
	AuthorID  uint64 `gorm:"not null;index"`
	ParentID  uint64 `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsRevision reports whether this row is a revision of another poet profile.
func (p *Poet) IsRevision() bool {
	return p.ParentID != 0
}

// PoetMeta is a key/value metadata row attached to a poet profile.
// Claim flags live here; the presence of the claim key is the single
// source of truth for "this profile has a pending claim".
type PoetMeta struct {
	MetaID    uint64 `gorm:"primaryKey;autoIncrement"`
	PoetID    uint64 `gorm:"not null;index:idx_poet_meta,unique"`
	MetaKey   string `gorm:"size:255;not null;index:idx_poet_meta,unique"`
	MetaValue JSON
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the table name for Poet
func (Poet) TableName() string {
	return "poets"
}

// TableName overrides the table name for PoetMeta
func (PoetMeta) TableName() string {
	return "poet_meta"
}
