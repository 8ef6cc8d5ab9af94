package repository

import (
	"context"
	"time"

	"word-market/internal/models"

	"github.com/shopspring/decimal"
)

// MostViewedWord is a row of the view-count leaderboard.
type MostViewedWord struct {
	WordID    uint            `json:"word_id"`
	Text      string          `json:"word"`
	Price     decimal.Decimal `json:"price"`
	OwnerName *string         `json:"owner"`
	ViewCount int64           `json:"views"`
}

// RevenueSince sums price_paid over real purchases (admin actions are
// excluded). A nil since means all time.
func (r *Repository) RevenueSince(ctx context.Context, since *time.Time) (decimal.Decimal, error) {
	query := r.db.WithContext(ctx).Model(&models.Transaction{}).
		Where("is_admin_action = ?", false)
	if since != nil {
		query = query.Where("timestamp >= ?", *since)
	}

	var total decimal.NullDecimal
	if err := query.Select("SUM(price_paid)").Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

// TransactionCountSince counts real purchases. A nil since means all time.
func (r *Repository) TransactionCountSince(ctx context.Context, since *time.Time) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Transaction{}).
		Where("is_admin_action = ?", false)
	if since != nil {
		query = query.Where("timestamp >= ?", *since)
	}

	var count int64
	err := query.Count(&count).Error
	return count, err
}

// CountWords returns the total number of registered words
func (r *Repository) CountWords(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Word{}).Count(&count).Error
	return count, err
}

// CountLockedWords returns the number of words whose lockout has not elapsed
func (r *Repository) CountLockedWords(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Word{}).
		Where(lockedCondition, time.Now()).
		Count(&count).Error
	return count, err
}

// AveragePrice returns the mean current price over all words
func (r *Repository) AveragePrice(ctx context.Context) (decimal.Decimal, error) {
	var avg decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&models.Word{}).
		Select("AVG(price)").Scan(&avg).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !avg.Valid {
		return decimal.Zero, nil
	}
	return avg.Decimal, nil
}

// MostExpensiveWords returns the top words by current price
func (r *Repository) MostExpensiveWords(ctx context.Context, limit int) ([]models.Word, error) {
	var words []models.Word
	err := r.db.WithContext(ctx).
		Order("price DESC").
		Limit(limit).
		Find(&words).Error
	if err != nil {
		return nil, err
	}
	return words, nil
}

// RecentTransactions returns the latest real purchases, newest first
func (r *Repository) RecentTransactions(ctx context.Context, limit int) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := r.db.WithContext(ctx).
		Where("is_admin_action = ?", false).
		Order("timestamp DESC").
		Limit(limit).
		Find(&transactions).Error
	if err != nil {
		return nil, err
	}
	return transactions, nil
}

// MostViewedWords returns the words with the most page views since the
// given time, descending.
func (r *Repository) MostViewedWords(ctx context.Context, since time.Time, limit int) ([]MostViewedWord, error) {
	var rows []MostViewedWord
	err := r.db.WithContext(ctx).Model(&models.WordView{}).
		Select("words.id as word_id, words.text, words.price, words.owner_name, COUNT(word_views.id) as view_count").
		Joins("JOIN words ON words.id = word_views.word_id").
		Where("word_views.timestamp >= ?", since).
		Group("words.id, words.text, words.price, words.owner_name").
		Order("view_count DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CreateView appends a page-view record
func (r *Repository) CreateView(ctx context.Context, view *models.WordView) error {
	return r.db.WithContext(ctx).Create(view).Error
}

// CreateErrorLog appends an error record
func (r *Repository) CreateErrorLog(ctx context.Context, entry *models.ErrorLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// RecentErrors returns the latest error logs, newest first
func (r *Repository) RecentErrors(ctx context.Context, limit int) ([]models.ErrorLog, error) {
	var errs []models.ErrorLog
	err := r.db.WithContext(ctx).
		Order("timestamp DESC").
		Limit(limit).
		Find(&errs).Error
	if err != nil {
		return nil, err
	}
	return errs, nil
}
