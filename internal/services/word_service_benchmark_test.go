package services

import (
	"context"
	"fmt"
	"testing"

	"word-market/internal/models"
	"word-market/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupBenchmarkDB(b *testing.B) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		b.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Word{},
		&models.Transaction{},
		&models.MessageReport{},
		&models.WordView{},
		&models.ErrorLog{},
	)
	if err != nil {
		b.Fatalf("failed to migrate database: %v", err)
	}

	return db
}

func seedWords(b *testing.B, db *gorm.DB, count int) {
	words := make([]models.Word, count)
	for i := 0; i < count; i++ {
		message := fmt.Sprintf("message %d", i)
		owner := fmt.Sprintf("owner%d", i)
		words[i] = models.Word{
			Text:         fmt.Sprintf("word%d", i),
			Price:        decimal.NewFromInt(int64(1 + i%50)),
			OwnerName:    &owner,
			OwnerMessage: &message,
		}
	}
	if err := db.CreateInBatches(words, 100).Error; err != nil {
		b.Fatalf("failed to seed words: %v", err)
	}
}

func BenchmarkSearchWords(b *testing.B) {
	db := setupBenchmarkDB(b)
	seedWords(b, db, 5000)

	service := NewWordService(db, repository.NewRepository(db), testGate())
	ctx := context.Background()

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _, err := service.SearchWords(ctx, "word1", "available", 1, 20)
		if err != nil {
			b.Fatalf("SearchWords failed: %v", err)
		}
	}
}

func BenchmarkVisibleMessages(b *testing.B) {
	db := setupBenchmarkDB(b)
	seedWords(b, db, 1000)

	service := NewWordService(db, repository.NewRepository(db), testGate())
	ctx := context.Background()

	var words []models.Word
	if err := db.Limit(100).Find(&words).Error; err != nil {
		b.Fatalf("failed to load words: %v", err)
	}

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := service.VisibleMessages(ctx, words); err != nil {
			b.Fatalf("VisibleMessages failed: %v", err)
		}
	}
}

func BenchmarkValidateContent(b *testing.B) {
	gate := testGate()
	ctx := context.Background()

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if ok, reason := gate.ValidateContent(ctx, "a perfectly ordinary owner message"); !ok {
			b.Fatalf("unexpected rejection: %s", reason)
		}
	}
}
