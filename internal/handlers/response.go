package handlers

import (
	"errors"
	"net/http"
	"time"

	"word-market/internal/models"
	"word-market/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// WordResponse is the wire shape of a word. OwnerMessage has already been
// through the moderation filter; handlers never expose the raw column.
type WordResponse struct {
	ID            uint            `json:"id"`
	Text          string          `json:"text"`
	Price         decimal.Decimal `json:"price"`
	OwnerName     *string         `json:"owner_name"`
	OwnerMessage  *string         `json:"owner_message"`
	LockoutEndsAt *time.Time      `json:"lockout_ends_at"`
	IsAvailable   bool            `json:"is_available"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func newWordResponse(w *models.Word, visibleMessage *string) WordResponse {
	return WordResponse{
		ID:            w.ID,
		Text:          w.Text,
		Price:         w.Price,
		OwnerName:     w.OwnerName,
		OwnerMessage:  visibleMessage,
		LockoutEndsAt: w.LockoutEndsAt,
		IsAvailable:   w.IsAvailable(),
		CreatedAt:     w.CreatedAt,
		UpdatedAt:     w.UpdatedAt,
	}
}

// TransactionResponse is the wire shape of a purchase log row.
type TransactionResponse struct {
	ID        uint            `json:"id"`
	BuyerName string          `json:"buyer_name"`
	PricePaid decimal.Decimal `json:"price_paid"`
	Timestamp time.Time       `json:"timestamp"`
}

func newTransactionResponse(t *models.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:        t.ID,
		BuyerName: t.BuyerName,
		PricePaid: t.PricePaid,
		Timestamp: t.Timestamp,
	}
}

// respondError maps a service error kind to its HTTP status. Raw store
// errors were already wrapped by the service layer and come out as 500s
// with a generic message.
func respondError(c *gin.Context, err error) {
	var locked *services.LockedError
	var validation *services.ValidationError

	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Word not found"})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Word already exists"})
	case errors.As(err, &locked):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":             locked.Error(),
			"seconds_remaining": int(locked.Remaining.Seconds()),
		})
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Reason})
	case errors.Is(err, services.ErrInvalidAction):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unrecognized moderation action"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
