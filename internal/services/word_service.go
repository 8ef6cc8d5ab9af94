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

var (
	priceIncrement = decimal.NewFromInt(1)
	mintPrice      = decimal.NewFromInt(51)
	mintPricePaid  = decimal.NewFromInt(50)
)

const mintLockout = 50 * time.Hour

// lockoutForPrice converts a paid price into a lockout duration: one hour
// per unit of currency.
func lockoutForPrice(price decimal.Decimal) time.Duration {
	hours, _ := price.Float64()
	return time.Duration(hours * float64(time.Hour))
}

type WordService struct {
	db   *gorm.DB
	repo *repository.Repository
	gate *content.Gate
}

func NewWordService(db *gorm.DB, repo *repository.Repository, gate *content.Gate) *WordService {
	return &WordService{
		db:   db,
		repo: repo,
		gate: gate,
	}
}

// StealWord purchases a word: the buyer pays the current price, the price
// rises by one unit, ownership and message transfer, and the word locks
// for one hour per unit paid. The word row is locked for the duration of
// the transaction so concurrent claims on the same word serialize; claims
// on different words never contend.
func (s *WordService) StealWord(
	ctx context.Context,
	wordText string,
	buyerName string,
	message string,
) (*models.Word, *models.Transaction, error) {
	if ok, reason := s.gate.ValidateContent(ctx, buyerName); !ok {
		return nil, nil, &ValidationError{Reason: reason}
	}
	if ok, reason := s.gate.ValidateContent(ctx, message); !ok {
		return nil, nil, &ValidationError{Reason: reason}
	}

	normalized := content.NormalizeWord(wordText)

	var word *models.Word
	var record *models.Transaction

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		w, err := s.repo.GetWordForUpdate(tx, normalized)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return storageErr(err)
		}

		if !w.IsAvailable() {
			return &LockedError{Remaining: time.Until(*w.LockoutEndsAt)}
		}

		pricePaid := w.Price
		lockoutEndsAt := time.Now().Add(lockoutForPrice(pricePaid))

		w.Price = pricePaid.Add(priceIncrement)
		w.OwnerName = &buyerName
		w.OwnerMessage = &message
		w.LockoutEndsAt = &lockoutEndsAt

		// The new message starts with a clean moderation slate; reports
		// against the overwritten message no longer apply.
		w.ModerationStatus = models.ModerationUnset
		w.ModeratedAt = nil
		if err := s.repo.DeleteReports(tx, w.ID); err != nil {
			return storageErr(err)
		}

		if err := s.repo.SaveWord(tx, w); err != nil {
			return storageErr(err)
		}

		record = &models.Transaction{
			WordID:    w.ID,
			BuyerName: buyerName,
			PricePaid: pricePaid,
		}
		if err := s.repo.CreateTransaction(tx, record); err != nil {
			return storageErr(err)
		}

		word = w
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	log.Printf("Word %q stolen by %q for %s", word.Text, buyerName, record.PricePaid.StringFixed(2))
	return word, record, nil
}

// AddWord mints a brand-new word: fixed price of 51 with a 50-hour
// lockout, logged as a purchase of 50. A concurrent duplicate add is
// resolved by the unique index on text, not by the existence check.
func (s *WordService) AddWord(
	ctx context.Context,
	wordText string,
	ownerName string,
	message string,
) (*models.Word, *models.Transaction, error) {
	normalized := content.NormalizeWord(wordText)
	if !content.ValidWordText(normalized) {
		return nil, nil, &ValidationError{Reason: "Word must be 1-100 letters (a-z) with no spaces or symbols"}
	}

	if ok, reason := s.gate.ValidateContent(ctx, ownerName); !ok {
		return nil, nil, &ValidationError{Reason: reason}
	}
	if ok, reason := s.gate.ValidateContent(ctx, message); !ok {
		return nil, nil, &ValidationError{Reason: reason}
	}
	if ok, reason := s.gate.CheckWordText(ctx, normalized); !ok {
		return nil, nil, &ValidationError{Reason: reason}
	}

	var word *models.Word
	var record *models.Transaction

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Word
		err := tx.Where("text = ?", normalized).First(&existing).Error
		if err == nil {
			return ErrConflict
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return storageErr(err)
		}

		lockoutEndsAt := time.Now().Add(mintLockout)
		word = &models.Word{
			Text:          normalized,
			Price:         mintPrice,
			OwnerName:     &ownerName,
			OwnerMessage:  &message,
			LockoutEndsAt: &lockoutEndsAt,
		}
		if err := s.repo.CreateWord(tx, word); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrConflict
			}
			return storageErr(err)
		}

		record = &models.Transaction{
			WordID:    word.ID,
			BuyerName: ownerName,
			PricePaid: mintPricePaid,
		}
		if err := s.repo.CreateTransaction(tx, record); err != nil {
			return storageErr(err)
		}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	log.Printf("Word %q added to the registry by %q", word.Text, ownerName)
	return word, record, nil
}

// GetWord looks up a word by text along with its purchase history.
func (s *WordService) GetWord(ctx context.Context, wordText string) (*models.Word, []models.Transaction, error) {
	word, err := s.repo.GetWordByText(ctx, content.NormalizeWord(wordText))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, storageErr(err)
	}

	transactions, err := s.repo.GetWordTransactions(ctx, word.ID)
	if err != nil {
		return nil, nil, storageErr(err)
	}

	return word, transactions, nil
}

// SearchWords returns a page of words plus the total match count.
func (s *WordService) SearchWords(
	ctx context.Context,
	q string,
	status string,
	page int,
	pageSize int,
) ([]models.Word, int64, error) {
	words, total, err := s.repo.SearchWords(ctx, q, status, page, pageSize)
	if err != nil {
		return nil, 0, storageErr(err)
	}
	return words, total, nil
}

// RandomWord picks a random word matching the filters.
func (s *WordService) RandomWord(ctx context.Context, availableOnly, basePriceOnly bool) (*models.Word, error) {
	word, err := s.repo.RandomWord(ctx, availableOnly, basePriceOnly)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storageErr(err)
	}
	return word, nil
}

// VisibleMessage returns the word's owner message after the moderation
// filter, or nil when it must be suppressed.
func (s *WordService) VisibleMessage(ctx context.Context, word *models.Word) (*string, error) {
	if word.OwnerMessage == nil {
		return nil, nil
	}
	count, err := s.repo.CountReportsByID(ctx, word.ID)
	if err != nil {
		return nil, storageErr(err)
	}
	return s.gate.FilterMessage(word.OwnerMessage, word.ModerationStatus, count), nil
}

// VisibleMessages is the batch form of VisibleMessage for list endpoints.
// The returned map is keyed by word id.
func (s *WordService) VisibleMessages(ctx context.Context, words []models.Word) (map[uint]*string, error) {
	ids := make([]uint, 0, len(words))
	for i := range words {
		if words[i].OwnerMessage != nil {
			ids = append(ids, words[i].ID)
		}
	}

	counts, err := s.repo.ReportCounts(ctx, ids)
	if err != nil {
		return nil, storageErr(err)
	}

	visible := make(map[uint]*string, len(words))
	for i := range words {
		w := &words[i]
		visible[w.ID] = s.gate.FilterMessage(w.OwnerMessage, w.ModerationStatus, counts[w.ID])
	}
	return visible, nil
}

// LogView records a word page view for analytics. Failures are logged and
// swallowed; analytics never block a read.
func (s *WordService) LogView(ctx context.Context, wordID uint, ipAddress string) {
	view := &models.WordView{WordID: wordID}
	if ipAddress != "" {
		view.IPAddress = &ipAddress
	}
	if err := s.repo.CreateView(ctx, view); err != nil {
		log.Printf("Failed to log view for word %d: %v", wordID, err)
	}
}
