package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Word represents a single entry in the registry. The text is stored
// lowercase and is unique; the unique index is what resolves concurrent
// add races, not the existence check.
type Word struct {
	ID               uint             `gorm:"primaryKey" json:"id"`
	Text             string           `gorm:"size:100;uniqueIndex;not null" json:"text"`
	Price            decimal.Decimal  `gorm:"type:decimal(10,2);not null;index" json:"price"`
	OwnerName        *string          `gorm:"size:100" json:"owner_name,omitempty"`
	OwnerMessage     *string          `gorm:"size:140" json:"owner_message,omitempty"`
	LockoutEndsAt    *time.Time       `gorm:"index" json:"lockout_ends_at,omitempty"`
	ModerationStatus ModerationStatus `gorm:"size:20;index" json:"moderation_status,omitempty"`
	ModeratedAt      *time.Time       `json:"moderated_at,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`

	Transactions []Transaction `gorm:"foreignKey:WordID" json:"transactions,omitempty"`
}

// TableName specifies the table name for Word model
func (Word) TableName() string {
	return "words"
}

// IsAvailable reports whether a word with the given lockout timestamp can
// be purchased. This is the single availability predicate; every consumer
// (claims, search filters, leaderboards, feeds) must go through it.
func IsAvailable(lockoutEndsAt *time.Time) bool {
	if lockoutEndsAt == nil {
		return true
	}
	return !lockoutEndsAt.After(time.Now())
}

// IsAvailable reports whether the word can currently be purchased.
func (w *Word) IsAvailable() bool {
	return IsAvailable(w.LockoutEndsAt)
}
