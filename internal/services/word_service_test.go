package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"word-market/internal/content"
	"word-market/internal/models"
	"word-market/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Word{},
		&models.Transaction{},
		&models.MessageReport{},
		&models.WordView{},
		&models.ErrorLog{},
	)
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	// Shared in-memory DB persists across tests; start clean.
	db.Exec("DELETE FROM message_reports")
	db.Exec("DELETE FROM word_views")
	db.Exec("DELETE FROM transactions")
	db.Exec("DELETE FROM words")
	db.Exec("DELETE FROM error_logs")

	return db
}

func testGate() *content.Gate {
	return content.NewGate(nil, content.Config{
		WordThreshold:    0.7,
		MessageThreshold: 0.8,
		ReportThreshold:  3,
		FailOpen:         true,
	})
}

func newTestWordService(db *gorm.DB) *WordService {
	return NewWordService(db, repository.NewRepository(db), testGate())
}

func createWord(t *testing.T, db *gorm.DB, text string, price int64) *models.Word {
	word := &models.Word{
		Text:  text,
		Price: decimal.NewFromInt(price),
	}
	if err := db.Create(word).Error; err != nil {
		t.Fatalf("failed to create word: %v", err)
	}
	return word
}

func TestStealWord(t *testing.T) {
	db := setupTestDB(t)
	service := newTestWordService(db)

	createWord(t, db, "apple", 1)

	before := time.Now()
	word, transaction, err := service.StealWord(context.Background(), "Apple", "alice", "hello world")
	if err != nil {
		t.Fatalf("StealWord failed: %v", err)
	}

	if !word.Price.Equal(decimal.NewFromInt(2)) {
		t.Errorf("expected price 2.00, got %s", word.Price)
	}
	if !transaction.PricePaid.Equal(decimal.NewFromInt(1)) {
		t.Errorf("expected price_paid 1.00, got %s", transaction.PricePaid)
	}
	if word.OwnerName == nil || *word.OwnerName != "alice" {
		t.Errorf("expected owner alice, got %v", word.OwnerName)
	}
	if word.OwnerMessage == nil || *word.OwnerMessage != "hello world" {
		t.Errorf("expected message to be set, got %v", word.OwnerMessage)
	}

	// One hour of lockout per unit paid.
	if word.LockoutEndsAt == nil {
		t.Fatal("expected lockout to be set")
	}
	expected := before.Add(time.Hour)
	if diff := word.LockoutEndsAt.Sub(expected); diff < -time.Minute || diff > time.Minute {
		t.Errorf("expected lockout around %v, got %v", expected, *word.LockoutEndsAt)
	}

	var count int64
	db.Model(&models.Transaction{}).Where("word_id = ?", word.ID).Count(&count)
	if count != 1 {
		t.Errorf("expected exactly one transaction, got %d", count)
	}
}

func TestStealWordLocked(t *testing.T) {
	db := setupTestDB(t)
	service := newTestWordService(db)

	createWord(t, db, "banana", 1)

	if _, _, err := service.StealWord(context.Background(), "banana", "alice", "mine now"); err != nil {
		t.Fatalf("first steal failed: %v", err)
	}

	_, _, err := service.StealWord(context.Background(), "banana", "bob", "no mine")
	var locked *LockedError
	if !errors.As(err, &locked) {
		t.Fatalf("expected LockedError, got %v", err)
	}
	if locked.Remaining <= 0 {
		t.Errorf("expected positive remaining time, got %v", locked.Remaining)
	}

	// The failed claim must not leave a transaction behind.
	var count int64
	db.Model(&models.Transaction{}).Count(&count)
	if count != 1 {
		t.Errorf("expected one transaction, got %d", count)
	}
}

func TestStealWordNotFound(t *testing.T) {
	db := setupTestDB(t)
	service := newTestWordService(db)

	_, _, err := service.StealWord(context.Background(), "ghost", "alice", "hello")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStealWordValidation(t *testing.T) {
	db := setupTestDB(t)
	service := newTestWordService(db)

	createWord(t, db, "cherry", 1)

	_, _, err := service.StealWord(context.Background(), "cherry", "alice", "visit https://example.com")
	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestStealWordExpiredLockout(t *testing.T) {
	db := setupTestDB(t)
	service := newTestWordService(db)

	word := createWord(t, db, "date", 3)
	past := time.Now().Add(-time.Minute)
	owner := "old-owner"
	word.OwnerName = &owner
	word.OwnerMessage = &owner
	word.LockoutEndsAt = &past
	db.Save(word)

	updated, transaction, err := service.StealWord(context.Background(), "date", "bob", "fresh claim")
	if err != nil {
		t.Fatalf("StealWord failed: %v", err)
	}
	if !transaction.PricePaid.Equal(decimal.NewFromInt(3)) {
		t.Errorf("expected price_paid 3.00, got %s", transaction.PricePaid)
	}
	if *updated.OwnerName != "bob" {
		t.Errorf("expected new owner bob, got %s", *updated.OwnerName)
	}
}

func TestStealWordResetsModeration(t *testing.T) {
	db := setupTestDB(t)
	service := newTestWordService(db)

	word := createWord(t, db, "elder", 1)
	msg := "old message"
	now := time.Now()
	word.OwnerMessage = &msg
	word.OwnerName = &msg
	word.ModerationStatus = models.ModerationRejected
	word.ModeratedAt = &now
	db.Save(word)
	db.Create(&models.MessageReport{WordID: word.ID})
	db.Create(&models.MessageReport{WordID: word.ID})

	updated, _, err := service.StealWord(context.Background(), "elder", "carol", "brand new")
	if err != nil {
		t.Fatalf("StealWord failed: %v", err)
	}

	if updated.ModerationStatus != models.ModerationUnset {
		t.Errorf("expected moderation status reset, got %q", updated.ModerationStatus)
	}
	if updated.ModeratedAt != nil {
		t.Error("expected moderated_at cleared")
	}

	var count int64
	db.Model(&models.MessageReport{}).Where("word_id = ?", word.ID).Count(&count)
	if count != 0 {
		t.Errorf("expected reports cleared on new claim, got %d", count)
	}
}

func TestAddWord(t *testing.T) {
	db := setupTestDB(t)
	service := newTestWordService(db)

	before := time.Now()
	word, transaction, err := service.AddWord(context.Background(), "Hello", "alice", "first owner")
	if err != nil {
		t.Fatalf("AddWord failed: %v", err)
	}

	if word.Text != "hello" {
		t.Errorf("expected normalized text hello, got %s", word.Text)
	}
	if !word.Price.Equal(decimal.NewFromInt(51)) {
		t.Errorf("expected mint price 51.00, got %s", word.Price)
	}
	if !transaction.PricePaid.Equal(decimal.NewFromInt(50)) {
		t.Errorf("expected price_paid 50.00, got %s", transaction.PricePaid)
	}

	if word.LockoutEndsAt == nil {
		t.Fatal("expected lockout to be set")
	}
	expected := before.Add(50 * time.Hour)
	if diff := word.LockoutEndsAt.Sub(expected); diff < -time.Minute || diff > time.Minute {
		t.Errorf("expected lockout around %v, got %v", expected, *word.LockoutEndsAt)
	}
}

func TestAddWordConflict(t *testing.T) {
	db := setupTestDB(t)
	service := newTestWordService(db)

	createWord(t, db, "taken", 1)

	_, _, err := service.AddWord(context.Background(), "TAKEN", "alice", "gimme")
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestAddWordInvalidText(t *testing.T) {
	db := setupTestDB(t)
	service := newTestWordService(db)

	for _, text := range []string{"", "hello123", "two words", "héllo", "dash-ed"} {
		_, _, err := service.AddWord(context.Background(), text, "alice", "hi")
		var validation *ValidationError
		if !errors.As(err, &validation) {
			t.Errorf("expected ValidationError for %q, got %v", text, err)
		}
	}
}

func TestRandomWordFilters(t *testing.T) {
	db := setupTestDB(t)
	service := newTestWordService(db)

	createWord(t, db, "free", 1)
	locked := createWord(t, db, "busy", 1)
	future := time.Now().Add(time.Hour)
	locked.LockoutEndsAt = &future
	db.Save(locked)
	createWord(t, db, "pricey", 9)

	for i := 0; i < 10; i++ {
		word, err := service.RandomWord(context.Background(), true, true)
		if err != nil {
			t.Fatalf("RandomWord failed: %v", err)
		}
		if word.Text != "free" {
			t.Fatalf("expected only the available base-price word, got %q", word.Text)
		}
	}
}

func TestSearchWordsStatusFilter(t *testing.T) {
	db := setupTestDB(t)
	service := newTestWordService(db)

	createWord(t, db, "open", 1)
	locked := createWord(t, db, "shut", 2)
	future := time.Now().Add(time.Hour)
	locked.LockoutEndsAt = &future
	db.Save(locked)

	words, total, err := service.SearchWords(context.Background(), "", "available", 1, 20)
	if err != nil {
		t.Fatalf("SearchWords failed: %v", err)
	}
	if total != 1 || len(words) != 1 || words[0].Text != "open" {
		t.Errorf("expected only the available word, got %d results", total)
	}

	words, total, err = service.SearchWords(context.Background(), "", "locked", 1, 20)
	if err != nil {
		t.Fatalf("SearchWords failed: %v", err)
	}
	if total != 1 || len(words) != 1 || words[0].Text != "shut" {
		t.Errorf("expected only the locked word, got %d results", total)
	}
}
