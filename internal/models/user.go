package models

import (
	"time"
)

// User is a site member. About, Twitter and Website are the editable
// profile fields kept in sync with the member's primary poet profile.
type User struct {
	UserID      uint64 `gorm:"primaryKey;autoIncrement"`
	Username    string `gorm:"uniqueIndex;size:255;not null"`
	DisplayName string `gorm:"size:255;not null"`
	About       string `gorm:"type:text"`
	Twitter     string `gorm:"size:255"`
	Website     string `gorm:"size:255"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// UserMeta is a key/value metadata row attached to a user. The claimed-set,
// pending primary claim, primary profile reference and claims-disabled flag
// live here.
type UserMeta struct {
	MetaID    uint64 `gorm:"primaryKey;autoIncrement"`
	UserID    uint64 `gorm:"not null;index:idx_user_meta,unique"`
	MetaKey   string `gorm:"size:255;not null;index:idx_user_meta,unique"`
	MetaValue JSON
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}

// TableName overrides the table name for UserMeta
func (UserMeta) TableName() string {
	return "user_meta"
}
