package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the immutable purchase log. PricePaid is the word's price
// before the increment. Rows with IsAdminAction set are excluded from all
// revenue and leaderboard aggregates.
type Transaction struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	WordID        uint            `gorm:"not null;index" json:"word_id"`
	Word          Word            `gorm:"foreignKey:WordID" json:"word,omitempty"`
	BuyerName     string          `gorm:"size:100;not null" json:"buyer_name"`
	PricePaid     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price_paid"`
	Timestamp     time.Time       `gorm:"autoCreateTime;index" json:"timestamp"`
	IsAdminAction bool            `gorm:"default:false" json:"is_admin_action"`
}

// TableName specifies the table name for Transaction model
func (Transaction) TableName() string {
	return "transactions"
}
