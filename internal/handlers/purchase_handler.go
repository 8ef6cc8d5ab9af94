package handlers

import (
	"context"
	"fmt"
	"net/http"

	"word-market/internal/cache"
	"word-market/internal/payment"
	"word-market/internal/services"

	"github.com/gin-gonic/gin"
)

type PurchaseHandler struct {
	wordService *services.WordService
	verifier    payment.Verifier
	cache       cache.Repository
}

func NewPurchaseHandler(wordService *services.WordService, verifier payment.Verifier, cacheRepo cache.Repository) *PurchaseHandler {
	return &PurchaseHandler{
		wordService: wordService,
		verifier:    verifier,
		cache:       cacheRepo,
	}
}

// PurchaseRequest carries the buyer details for a steal or add. The
// payment reference must have been authorized by the provider before the
// engine runs.
type PurchaseRequest struct {
	OwnerName        string `json:"owner_name" binding:"required,max=100"`
	OwnerMessage     string `json:"owner_message" binding:"required,max=140"`
	PaymentReference string `json:"payment_reference"`
}

// CreatePaymentIntent hands the frontend an opaque reference to attach to
// the provider checkout.
func (h *PurchaseHandler) CreatePaymentIntent(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"reference": payment.NewReference(),
	})
}

func (h *PurchaseHandler) paymentAuthorized(ctx context.Context, reference string) (bool, error) {
	return h.verifier.VerifyPayment(ctx, reference)
}

// StealWord purchases an existing word
func (h *PurchaseHandler) StealWord(c *gin.Context) {
	wordText := c.Param("word")

	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	authorized, err := h.paymentAuthorized(c.Request.Context(), req.PaymentReference)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Payment verification unavailable"})
		return
	}
	if !authorized {
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "Payment not confirmed"})
		return
	}

	word, transaction, err := h.wordService.StealWord(c.Request.Context(), wordText, req.OwnerName, req.OwnerMessage)
	if err != nil {
		respondError(c, err)
		return
	}

	_ = cache.InvalidateLeaderboards(c.Request.Context(), h.cache)

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"word":           newWordResponse(word, word.OwnerMessage),
		"transaction_id": transaction.ID,
		"message":        fmt.Sprintf("Successfully purchased %q for $%s!", word.Text, transaction.PricePaid.StringFixed(2)),
	})
}

// AddWord mints a new word into the registry
func (h *PurchaseHandler) AddWord(c *gin.Context) {
	wordText := c.Param("word")

	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	authorized, err := h.paymentAuthorized(c.Request.Context(), req.PaymentReference)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Payment verification unavailable"})
		return
	}
	if !authorized {
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "Payment not confirmed"})
		return
	}

	word, transaction, err := h.wordService.AddWord(c.Request.Context(), wordText, req.OwnerName, req.OwnerMessage)
	if err != nil {
		respondError(c, err)
		return
	}

	_ = cache.InvalidateLeaderboards(c.Request.Context(), h.cache)

	c.JSON(http.StatusCreated, gin.H{
		"success":        true,
		"word":           newWordResponse(word, word.OwnerMessage),
		"transaction_id": transaction.ID,
		"message":        fmt.Sprintf("Successfully added %q to the registry for $%s!", word.Text, transaction.PricePaid.StringFixed(2)),
	})
}
