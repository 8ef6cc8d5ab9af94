package models

import (
	"time"
)

// MessageReport records a single user report against a word's message.
// Rows for a word are bulk-deleted when the word is protected, which
// restarts report accumulation from zero.
type MessageReport struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	WordID    uint      `gorm:"not null;index" json:"word_id"`
	Word      Word      `gorm:"foreignKey:WordID" json:"word,omitempty"`
	IPAddress *string   `gorm:"size:45;index" json:"ip_address,omitempty"`
	Timestamp time.Time `gorm:"autoCreateTime;index" json:"timestamp"`
}

// TableName specifies the table name for MessageReport model
func (MessageReport) TableName() string {
	return "message_reports"
}
