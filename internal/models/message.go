package models

import (
	"time"
)

// Message is a private message between members. Claim notifications to the
// moderators and decision notices to claimants are persisted here.
type Message struct {
	MessageID  uint64 `gorm:"primaryKey;autoIncrement"`
	ThreadID   string `gorm:"type:char(36);not null;index"`
	SenderID   uint64 `gorm:"not null;index"`
	Subject    string `gorm:"size:255;not null"`
	Content    string `gorm:"type:text"`
	CreatedAt  time.Time
	Recipients []MessageRecipient `gorm:"foreignKey:MessageID;references:MessageID"`
}

// MessageRecipient is one recipient of a message.
type MessageRecipient struct {
	RecipientID uint64 `gorm:"primaryKey;autoIncrement"`
	MessageID   uint64 `gorm:"not null;index"`
	UserID      uint64 `gorm:"not null;index"`
}

// TableName overrides the table name for Message
func (Message) TableName() string {
	return "messages"
}

// TableName overrides the table name for MessageRecipient
func (MessageRecipient) TableName() string {
	return "message_recipients"
}
