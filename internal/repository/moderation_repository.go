package repository

import (
	"context"

	"word-market/internal/models"

	"gorm.io/gorm"
)

// CreateReport appends a report row inside tx
func (r *Repository) CreateReport(tx *gorm.DB, report *models.MessageReport) error {
	return tx.Create(report).Error
}

// CountReports returns the number of reports currently on file for a word,
// scoped to tx so the count is consistent with a held row lock.
func (r *Repository) CountReports(tx *gorm.DB, wordID uint) (int64, error) {
	var count int64
	err := tx.Model(&models.MessageReport{}).
		Where("word_id = ?", wordID).
		Count(&count).Error
	return count, err
}

// CountReportsByID counts reports outside any transaction
func (r *Repository) CountReportsByID(ctx context.Context, wordID uint) (int64, error) {
	return r.CountReports(r.db.WithContext(ctx), wordID)
}

// DeleteReports removes every report for a word inside tx. Used when a
// word is protected so accumulation restarts from zero.
func (r *Repository) DeleteReports(tx *gorm.DB, wordID uint) error {
	return tx.Where("word_id = ?", wordID).Delete(&models.MessageReport{}).Error
}

// ReportCounts returns report counts for a batch of word ids. Words with
// no reports are absent from the map.
func (r *Repository) ReportCounts(ctx context.Context, wordIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(wordIDs))
	if len(wordIDs) == 0 {
		return counts, nil
	}

	type row struct {
		WordID uint
		Count  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&models.MessageReport{}).
		Select("word_id, COUNT(*) as count").
		Where("word_id IN ?", wordIDs).
		Group("word_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, rw := range rows {
		counts[rw.WordID] = rw.Count
	}
	return counts, nil
}

// PendingWords lists words awaiting adjudication, oldest report first
func (r *Repository) PendingWords(ctx context.Context, limit int) ([]models.Word, error) {
	var words []models.Word
	err := r.db.WithContext(ctx).
		Where("moderation_status = ?", models.ModerationPending).
		Order("updated_at ASC").
		Limit(limit).
		Find(&words).Error
	if err != nil {
		return nil, err
	}
	return words, nil
}
