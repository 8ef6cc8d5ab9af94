package services

import (
	"context"
	"errors"
	"log"
	"time"

	"word-market/internal/content"
	"word-market/internal/models"
	"word-market/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type AdminService struct {
	db   *gorm.DB
	repo *repository.Repository
}

func NewAdminService(db *gorm.DB, repo *repository.Repository) *AdminService {
	return &AdminService{
		db:   db,
		repo: repo,
	}
}

// ResetWord is the admin override: it sets a word's price directly,
// bypassing the lockout and the content gate. With an owner it assigns
// ownership and a lockout derived from the new price; without one it
// clears ownership entirely. The logged transaction is marked as an admin
// action so it never counts toward revenue.
func (s *AdminService) ResetWord(
	ctx context.Context,
	wordText string,
	newPrice decimal.Decimal,
	ownerName *string,
	ownerMessage *string,
) (*models.Word, error) {
	normalized := content.NormalizeWord(wordText)

	var word *models.Word

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		w, err := s.repo.GetWordForUpdate(tx, normalized)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return storageErr(err)
		}

		w.Price = newPrice

		buyerName := "ADMIN_RESET"
		if ownerName != nil {
			w.OwnerName = ownerName
			w.OwnerMessage = ownerMessage
			lockoutEndsAt := time.Now().Add(lockoutForPrice(newPrice))
			w.LockoutEndsAt = &lockoutEndsAt
			buyerName = *ownerName
		} else {
			w.OwnerName = nil
			w.OwnerMessage = nil
			w.LockoutEndsAt = nil
		}

		if err := s.repo.SaveWord(tx, w); err != nil {
			return storageErr(err)
		}

		record := &models.Transaction{
			WordID:        w.ID,
			BuyerName:     buyerName,
			PricePaid:     newPrice,
			IsAdminAction: true,
		}
		if err := s.repo.CreateTransaction(tx, record); err != nil {
			return storageErr(err)
		}

		word = w
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Word %q reset to %s by admin", word.Text, newPrice.StringFixed(2))
	return word, nil
}

// IncomeStats summarizes real purchase revenue. Admin actions are
// excluded everywhere.
type IncomeStats struct {
	TotalIncome       decimal.Decimal `json:"total_income"`
	TodayIncome       decimal.Decimal `json:"today_income"`
	WeekIncome        decimal.Decimal `json:"week_income"`
	TotalTransactions int64           `json:"total_transactions"`
	TodayTransactions int64           `json:"today_transactions"`
	WeekTransactions  int64           `json:"week_transactions"`
}

// GetIncomeStats returns revenue totals for all time, today, and the last
// seven days.
func (s *AdminService) GetIncomeStats(ctx context.Context) (*IncomeStats, error) {
	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekStart := now.AddDate(0, 0, -7)

	stats := &IncomeStats{}
	var err error

	if stats.TotalIncome, err = s.repo.RevenueSince(ctx, nil); err != nil {
		return nil, storageErr(err)
	}
	if stats.TodayIncome, err = s.repo.RevenueSince(ctx, &todayStart); err != nil {
		return nil, storageErr(err)
	}
	if stats.WeekIncome, err = s.repo.RevenueSince(ctx, &weekStart); err != nil {
		return nil, storageErr(err)
	}
	if stats.TotalTransactions, err = s.repo.TransactionCountSince(ctx, nil); err != nil {
		return nil, storageErr(err)
	}
	if stats.TodayTransactions, err = s.repo.TransactionCountSince(ctx, &todayStart); err != nil {
		return nil, storageErr(err)
	}
	if stats.WeekTransactions, err = s.repo.TransactionCountSince(ctx, &weekStart); err != nil {
		return nil, storageErr(err)
	}

	return stats, nil
}

// GetMostViewedWords returns the most viewed words over the last 30 days.
func (s *AdminService) GetMostViewedWords(ctx context.Context, limit int) ([]repository.MostViewedWord, error) {
	since := time.Now().AddDate(0, 0, -30)
	rows, err := s.repo.MostViewedWords(ctx, since, limit)
	if err != nil {
		return nil, storageErr(err)
	}
	return rows, nil
}

// GetRecentErrors returns the latest logged server errors.
func (s *AdminService) GetRecentErrors(ctx context.Context, limit int) ([]models.ErrorLog, error) {
	errs, err := s.repo.RecentErrors(ctx, limit)
	if err != nil {
		return nil, storageErr(err)
	}
	return errs, nil
}

// LogError records a server-side failure for the dashboard. Logging
// failures are swallowed; error reporting never takes a request down.
func (s *AdminService) LogError(ctx context.Context, errorType, message string, endpoint, userInfo *string) {
	entry := &models.ErrorLog{
		ErrorType:    errorType,
		ErrorMessage: message,
		Endpoint:     endpoint,
		UserInfo:     userInfo,
	}
	if err := s.repo.CreateErrorLog(ctx, entry); err != nil {
		log.Printf("Failed to write error log: %v", err)
	}
}

// DashboardSummary aggregates everything the admin landing page shows.
type DashboardSummary struct {
	Income       *IncomeStats                `json:"income"`
	PopularWords []repository.MostViewedWord `json:"popular_words"`
	RecentErrors []models.ErrorLog           `json:"recent_errors"`
	Stats        DashboardCounts             `json:"stats"`
}

type DashboardCounts struct {
	TotalWords     int64 `json:"total_words"`
	AvailableWords int64 `json:"available_words"`
	LockedWords    int64 `json:"locked_words"`
}

// GetDashboardSummary builds the admin dashboard payload.
func (s *AdminService) GetDashboardSummary(ctx context.Context) (*DashboardSummary, error) {
	income, err := s.GetIncomeStats(ctx)
	if err != nil {
		return nil, err
	}

	popular, err := s.GetMostViewedWords(ctx, 20)
	if err != nil {
		return nil, err
	}

	recentErrors, err := s.GetRecentErrors(ctx, 50)
	if err != nil {
		return nil, err
	}

	totalWords, err := s.repo.CountWords(ctx)
	if err != nil {
		return nil, storageErr(err)
	}
	lockedWords, err := s.repo.CountLockedWords(ctx)
	if err != nil {
		return nil, storageErr(err)
	}

	return &DashboardSummary{
		Income:       income,
		PopularWords: popular,
		RecentErrors: recentErrors,
		Stats: DashboardCounts{
			TotalWords:     totalWords,
			AvailableWords: totalWords - lockedWords,
			LockedWords:    lockedWords,
		},
	}, nil
}
