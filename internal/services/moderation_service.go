package services

import (
	"context"
	"errors"
	"log"
	"time"

	"word-market/internal/content"
	"word-market/internal/models"
	"word-market/internal/repository"

	"gorm.io/gorm"
)

type ModerationService struct {
	db   *gorm.DB
	repo *repository.Repository
	gate *content.Gate
}

func NewModerationService(db *gorm.DB, repo *repository.Repository, gate *content.Gate) *ModerationService {
	return &ModerationService{
		db:   db,
		repo: repo,
		gate: gate,
	}
}

// ReportMessage files a report against a word's message and returns the
// new report count. When the count reaches the configured threshold and
// the word has never been moderated, the word escalates to pending. The
// word row is locked so concurrent reports cannot double-escalate.
func (s *ModerationService) ReportMessage(ctx context.Context, wordID uint, ipAddress string) (int64, error) {
	var count int64

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		word, err := s.repo.GetWordForUpdateByID(tx, wordID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return storageErr(err)
		}

		if word.OwnerMessage == nil {
			return &ValidationError{Reason: "Word has no message to report"}
		}
		if word.ModerationStatus == models.ModerationProtected {
			return &ValidationError{Reason: "This message has been reviewed and cannot be reported"}
		}

		report := &models.MessageReport{WordID: wordID}
		if ipAddress != "" {
			report.IPAddress = &ipAddress
		}
		if err := s.repo.CreateReport(tx, report); err != nil {
			return storageErr(err)
		}

		count, err = s.repo.CountReports(tx, wordID)
		if err != nil {
			return storageErr(err)
		}

		if count >= s.gate.ReportThreshold() && word.ModerationStatus.CanAutoEscalate() {
			word.ModerationStatus = models.ModerationPending
			if err := s.repo.SaveWord(tx, word); err != nil {
				return storageErr(err)
			}
			log.Printf("Word %q escalated to pending after %d reports", word.Text, count)
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Adjudicate applies a moderator decision to a word's message. Approve
// and reject set the status and stamp the decision time. Protect
// additionally clears all reports so accumulation restarts, and if the
// word is currently locked re-extends the countdown from the price paid
// on the last claim.
func (s *ModerationService) Adjudicate(ctx context.Context, wordID uint, action string) (*models.Word, error) {
	status, ok := models.AdjudicationStatus(action)
	if !ok {
		return nil, ErrInvalidAction
	}

	var word *models.Word

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		w, err := s.repo.GetWordForUpdateByID(tx, wordID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return storageErr(err)
		}

		now := time.Now()
		w.ModerationStatus = status
		w.ModeratedAt = &now

		if status == models.ModerationProtected {
			if err := s.repo.DeleteReports(tx, w.ID); err != nil {
				return storageErr(err)
			}
			if !w.IsAvailable() {
				lockoutEndsAt := now.Add(lockoutForPrice(w.Price.Sub(priceIncrement)))
				w.LockoutEndsAt = &lockoutEndsAt
			}
		}

		if err := s.repo.SaveWord(tx, w); err != nil {
			return storageErr(err)
		}

		word = w
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Word %q adjudicated: %s", word.Text, action)
	return word, nil
}

// PendingWord is a moderation-queue entry.
type PendingWord struct {
	Word        models.Word `json:"word"`
	ReportCount int64       `json:"report_count"`
}

// PendingQueue lists words awaiting adjudication with their report counts.
func (s *ModerationService) PendingQueue(ctx context.Context, limit int) ([]PendingWord, error) {
	words, err := s.repo.PendingWords(ctx, limit)
	if err != nil {
		return nil, storageErr(err)
	}

	ids := make([]uint, len(words))
	for i := range words {
		ids[i] = words[i].ID
	}
	counts, err := s.repo.ReportCounts(ctx, ids)
	if err != nil {
		return nil, storageErr(err)
	}

	queue := make([]PendingWord, len(words))
	for i := range words {
		queue[i] = PendingWord{Word: words[i], ReportCount: counts[words[i].ID]}
	}
	return queue, nil
}
