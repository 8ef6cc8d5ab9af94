package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"word-market/internal/cache"
	"word-market/internal/repository"
	"word-market/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const leaderboardTTL = 30 * time.Second

type LeaderboardHandler struct {
	repo        *repository.Repository
	wordService *services.WordService
	cache       cache.Repository
}

func NewLeaderboardHandler(repo *repository.Repository, wordService *services.WordService, cacheRepo cache.Repository) *LeaderboardHandler {
	return &LeaderboardHandler{
		repo:        repo,
		wordService: wordService,
		cache:       cacheRepo,
	}
}

// MostExpensive returns the top words by current price
func (h *LeaderboardHandler) MostExpensive(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 || limit > 100 {
		limit = 10
	}

	var cached []WordResponse
	key := cache.KeyLeaderboardExpensive + ":" + strconv.Itoa(limit)
	if found, err := h.cache.GetJSON(c.Request.Context(), key, &cached); err == nil && found {
		c.JSON(http.StatusOK, cached)
		return
	}

	words, err := h.repo.MostExpensiveWords(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch leaderboard"})
		return
	}

	visible, err := h.wordService.VisibleMessages(c.Request.Context(), words)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]WordResponse, len(words))
	for i := range words {
		responses[i] = newWordResponse(&words[i], visible[words[i].ID])
	}

	if err := h.cache.SetJSON(c.Request.Context(), key, responses, leaderboardTTL); err != nil {
		log.Printf("Failed to cache leaderboard: %v", err)
	}

	c.JSON(http.StatusOK, responses)
}

// RecentPurchases returns the latest real purchases
func (h *LeaderboardHandler) RecentPurchases(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 || limit > 100 {
		limit = 10
	}

	var cached []TransactionResponse
	key := cache.KeyLeaderboardRecent + ":" + strconv.Itoa(limit)
	if found, err := h.cache.GetJSON(c.Request.Context(), key, &cached); err == nil && found {
		c.JSON(http.StatusOK, cached)
		return
	}

	transactions, err := h.repo.RecentTransactions(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recent purchases"})
		return
	}

	responses := make([]TransactionResponse, len(transactions))
	for i := range transactions {
		responses[i] = newTransactionResponse(&transactions[i])
	}

	if err := h.cache.SetJSON(c.Request.Context(), key, responses, leaderboardTTL); err != nil {
		log.Printf("Failed to cache recent purchases: %v", err)
	}

	c.JSON(http.StatusOK, responses)
}

// PlatformStats is the public stats payload.
type PlatformStats struct {
	TotalWords        int64           `json:"total_words"`
	WordsOwned        int64           `json:"words_owned"`
	WordsAvailable    int64           `json:"words_available"`
	TotalTransactions int64           `json:"total_transactions"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	AveragePrice      decimal.Decimal `json:"average_price"`
}

// Stats returns platform-wide statistics
func (h *LeaderboardHandler) Stats(c *gin.Context) {
	var cached PlatformStats
	if found, err := h.cache.GetJSON(c.Request.Context(), cache.KeyPlatformStats, &cached); err == nil && found {
		c.JSON(http.StatusOK, cached)
		return
	}

	ctx := c.Request.Context()

	totalWords, err := h.repo.CountWords(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
		return
	}
	lockedWords, err := h.repo.CountLockedWords(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
		return
	}
	totalTransactions, err := h.repo.TransactionCountSince(ctx, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
		return
	}
	totalRevenue, err := h.repo.RevenueSince(ctx, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
		return
	}
	averagePrice, err := h.repo.AveragePrice(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
		return
	}

	stats := PlatformStats{
		TotalWords:        totalWords,
		WordsOwned:        lockedWords,
		WordsAvailable:    totalWords - lockedWords,
		TotalTransactions: totalTransactions,
		TotalRevenue:      totalRevenue,
		AveragePrice:      averagePrice,
	}

	if err := h.cache.SetJSON(ctx, cache.KeyPlatformStats, stats, leaderboardTTL); err != nil {
		log.Printf("Failed to cache platform stats: %v", err)
	}

	c.JSON(http.StatusOK, stats)
}
