package repository

import (
	"context"
	"time"

	"word-market/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// DB exposes the underlying handle for transaction scoping.
func (r *Repository) DB() *gorm.DB {
	return r.db
}

// availableCondition is the SQL form of models.IsAvailable. Query filters
// must stay in lockstep with that predicate.
const (
	availableCondition = "lockout_ends_at IS NULL OR lockout_ends_at <= ?"
	lockedCondition    = "lockout_ends_at IS NOT NULL AND lockout_ends_at > ?"
)

// forUpdate adds a row-level exclusive lock to the query. sqlite (used in
// tests) has no SELECT ... FOR UPDATE; its single-writer engine serializes
// the same transactions.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// GetWordForUpdate loads a word by its normalized text inside tx, holding
// an exclusive lock on the row until the transaction ends.
func (r *Repository) GetWordForUpdate(tx *gorm.DB, text string) (*models.Word, error) {
	var word models.Word
	if err := forUpdate(tx).Where("text = ?", text).First(&word).Error; err != nil {
		return nil, err
	}
	return &word, nil
}

// GetWordForUpdateByID is GetWordForUpdate keyed by id.
func (r *Repository) GetWordForUpdateByID(tx *gorm.DB, wordID uint) (*models.Word, error) {
	var word models.Word
	if err := forUpdate(tx).Where("id = ?", wordID).First(&word).Error; err != nil {
		return nil, err
	}
	return &word, nil
}

// GetWordByText retrieves a word by its normalized text
func (r *Repository) GetWordByText(ctx context.Context, text string) (*models.Word, error) {
	var word models.Word
	if err := r.db.WithContext(ctx).Where("text = ?", text).First(&word).Error; err != nil {
		return nil, err
	}
	return &word, nil
}

// GetWordByID retrieves a word by id
func (r *Repository) GetWordByID(ctx context.Context, wordID uint) (*models.Word, error) {
	var word models.Word
	if err := r.db.WithContext(ctx).Where("id = ?", wordID).First(&word).Error; err != nil {
		return nil, err
	}
	return &word, nil
}

// CreateWord inserts a new word inside tx
func (r *Repository) CreateWord(tx *gorm.DB, word *models.Word) error {
	return tx.Create(word).Error
}

// SaveWord persists all fields of the word inside tx
func (r *Repository) SaveWord(tx *gorm.DB, word *models.Word) error {
	return tx.Save(word).Error
}

// CreateTransaction appends a row to the purchase log inside tx
func (r *Repository) CreateTransaction(tx *gorm.DB, t *models.Transaction) error {
	return tx.Create(t).Error
}

// SearchWords returns a page of words matching the query and status filter
// (available, locked or all), plus the total match count.
func (r *Repository) SearchWords(
	ctx context.Context,
	q string,
	status string,
	page int,
	pageSize int,
) ([]models.Word, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Word{})

	if q != "" {
		query = query.Where("text LIKE ?", "%"+q+"%")
	}

	now := time.Now()
	switch status {
	case "available":
		query = query.Where(availableCondition, now)
	case "locked":
		query = query.Where(lockedCondition, now)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var words []models.Word
	err := query.
		Order("text ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&words).Error
	if err != nil {
		return nil, 0, err
	}

	return words, total, nil
}

// RandomWord picks a random word, optionally restricted to available
// and/or base-price ($1.00) words.
func (r *Repository) RandomWord(
	ctx context.Context,
	availableOnly bool,
	basePriceOnly bool,
) (*models.Word, error) {
	query := r.db.WithContext(ctx).Model(&models.Word{})

	if availableOnly {
		query = query.Where(availableCondition, time.Now())
	}
	if basePriceOnly {
		query = query.Where("price = ?", decimal.NewFromInt(1))
	}

	var word models.Word
	if err := query.Order("RANDOM()").First(&word).Error; err != nil {
		return nil, err
	}
	return &word, nil
}

// GetWordTransactions returns the purchase history for a word, newest first
func (r *Repository) GetWordTransactions(ctx context.Context, wordID uint) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := r.db.WithContext(ctx).
		Where("word_id = ?", wordID).
		Order("timestamp DESC").
		Find(&transactions).Error
	if err != nil {
		return nil, err
	}
	return transactions, nil
}
