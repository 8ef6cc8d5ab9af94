package handlers

import (
	"net/http"
	"strconv"

	"word-market/internal/auth"
	"word-market/internal/cache"
	"word-market/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

type AdminHandler struct {
	adminService *services.AdminService
	passwordHash string
	cache        cache.Repository
}

func NewAdminHandler(adminService *services.AdminService, passwordHash string, cacheRepo cache.Repository) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		passwordHash: passwordHash,
		cache:        cacheRepo,
	}
}

// LoginRequest is the admin login payload.
type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// Login checks the admin password and issues a session token
func (h *AdminHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(h.passwordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := auth.GenerateAdminToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
	})
}

// GetDashboard returns the admin dashboard summary
func (h *AdminHandler) GetDashboard(c *gin.Context) {
	summary, err := h.adminService.GetDashboardSummary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetIncomeStats returns revenue statistics excluding admin actions
func (h *AdminHandler) GetIncomeStats(c *gin.Context) {
	stats, err := h.adminService.GetIncomeStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetPopularWords returns the most viewed words over the last 30 days
func (h *AdminHandler) GetPopularWords(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	words, err := h.adminService.GetMostViewedWords(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, words)
}

// GetRecentErrors returns the latest logged server errors
func (h *AdminHandler) GetRecentErrors(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit < 1 || limit > 200 {
		limit = 50
	}

	errs, err := h.adminService.GetRecentErrors(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, errs)
}

// ResetWordRequest is the admin price/ownership override payload.
type ResetWordRequest struct {
	Word         string          `json:"word" binding:"required"`
	NewPrice     decimal.Decimal `json:"new_price" binding:"required"`
	OwnerName    *string         `json:"owner_name"`
	OwnerMessage *string         `json:"owner_message"`
}

// ResetWord overrides a word's price and optionally its ownership
func (h *AdminHandler) ResetWord(c *gin.Context) {
	var req ResetWordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !req.NewPrice.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "new_price must be positive"})
		return
	}

	word, err := h.adminService.ResetWord(c.Request.Context(), req.Word, req.NewPrice, req.OwnerName, req.OwnerMessage)
	if err != nil {
		respondError(c, err)
		return
	}

	_ = cache.InvalidateLeaderboards(c.Request.Context(), h.cache)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Word has been reset",
		"word":    newWordResponse(word, word.OwnerMessage),
	})
}
