package models

import (
	"time"
)

// WordView is an append-only analytics record of word page views.
type WordView struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	WordID    uint      `gorm:"not null;index" json:"word_id"`
	Word      Word      `gorm:"foreignKey:WordID" json:"word,omitempty"`
	IPAddress *string   `gorm:"size:45" json:"ip_address,omitempty"`
	Timestamp time.Time `gorm:"autoCreateTime;index" json:"timestamp"`
}

// TableName specifies the table name for WordView model
func (WordView) TableName() string {
	return "word_views"
}
