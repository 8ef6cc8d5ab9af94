package handlers

import (
	"net/http"
	"strconv"

	"word-market/internal/services"

	"github.com/gin-gonic/gin"
)

type ModerationHandler struct {
	moderationService *services.ModerationService
}

func NewModerationHandler(moderationService *services.ModerationService) *ModerationHandler {
	return &ModerationHandler{moderationService: moderationService}
}

// ReportMessage files a report against a word's owner message
func (h *ModerationHandler) ReportMessage(c *gin.Context) {
	wordID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid word id"})
		return
	}

	count, err := h.moderationService.ReportMessage(c.Request.Context(), uint(wordID), c.ClientIP())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"report_count": count,
	})
}

// AdjudicateRequest carries the moderator decision.
type AdjudicateRequest struct {
	Action string `json:"action" binding:"required"`
}

// Adjudicate applies a moderator decision (approve, reject or protect)
func (h *ModerationHandler) Adjudicate(c *gin.Context) {
	wordID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid word id"})
		return
	}

	var req AdjudicateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	word, err := h.moderationService.Adjudicate(c.Request.Context(), uint(wordID), req.Action)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"word": gin.H{
			"id":                word.ID,
			"text":              word.Text,
			"moderation_status": word.ModerationStatus,
			"moderated_at":      word.ModeratedAt,
			"lockout_ends_at":   word.LockoutEndsAt,
		},
	})
}

// PendingQueue lists words awaiting adjudication
func (h *ModerationHandler) PendingQueue(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit < 1 || limit > 200 {
		limit = 50
	}

	queue, err := h.moderationService.PendingQueue(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"queue": queue,
		"count": len(queue),
	})
}
