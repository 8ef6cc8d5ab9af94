package handlers

import (
	"net/http"
	"strconv"

	"word-market/internal/services"

	"github.com/gin-gonic/gin"
)

type WordHandler struct {
	wordService *services.WordService
}

func NewWordHandler(wordService *services.WordService) *WordHandler {
	return &WordHandler{wordService: wordService}
}

// SearchWords returns a page of words filtered by query and availability
func (h *WordHandler) SearchWords(c *gin.Context) {
	q := c.Query("q")
	status := c.DefaultQuery("status", "all")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	words, total, err := h.wordService.SearchWords(c.Request.Context(), q, status, page, pageSize)
	if err != nil {
		respondError(c, err)
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

	c.JSON(http.StatusOK, gin.H{
		"words":     responses,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// RandomWord returns a random word, by default an available base-price one
func (h *WordHandler) RandomWord(c *gin.Context) {
	availableOnly := c.DefaultQuery("available_only", "true") == "true"
	basePriceOnly := c.DefaultQuery("base_price_only", "true") == "true"

	word, err := h.wordService.RandomWord(c.Request.Context(), availableOnly, basePriceOnly)
	if err != nil {
		respondError(c, err)
		return
	}

	visible, err := h.wordService.VisibleMessage(c.Request.Context(), word)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newWordResponse(word, visible))
}

// GetWord returns a word with its purchase history and logs the view
func (h *WordHandler) GetWord(c *gin.Context) {
	wordText := c.Param("word")

	word, transactions, err := h.wordService.GetWord(c.Request.Context(), wordText)
	if err != nil {
		respondError(c, err)
		return
	}

	visible, err := h.wordService.VisibleMessage(c.Request.Context(), word)
	if err != nil {
		respondError(c, err)
		return
	}

	h.wordService.LogView(c.Request.Context(), word.ID, c.ClientIP())

	history := make([]TransactionResponse, len(transactions))
	for i := range transactions {
		history[i] = newTransactionResponse(&transactions[i])
	}

	response := gin.H{
		"word":              newWordResponse(word, visible),
		"transaction_count": len(history),
		"transactions":      history,
	}
	c.JSON(http.StatusOK, response)
}
