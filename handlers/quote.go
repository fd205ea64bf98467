package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/WilkerGw/LP-OTICA/models"
	"github.com/WilkerGw/LP-OTICA/services"
	"github.com/WilkerGw/LP-OTICA/utils"

	"github.com/gin-gonic/gin"
)

type QuoteHandler struct {
	Service *services.QuoteService
}

func NewQuoteHandler(service *services.QuoteService) *QuoteHandler {
	return &QuoteHandler{Service: service}
}

func (h *QuoteHandler) Create(c *gin.Context) {
	var req models.CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quote, err := h.Service.Create(c.Request.Context(), req)
	if err != nil {
		var selErr *services.SelectionError
		if errors.As(err, &selErr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": selErr.Error(), "field": selErr.Field})
			return
		}
		utils.SafeError("❌ Failed to create quote: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save quote"})
		return
	}

	c.JSON(http.StatusCreated, quote.Public())
}

func (h *QuoteHandler) Get(c *gin.Context) {
	quote, ok := h.find(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, quote.Public())
}

// PDF renders the public copy of the quote as a printable A4 document.
func (h *QuoteHandler) PDF(c *gin.Context) {
	quote, ok := h.find(c)
	if !ok {
		return
	}

	public := quote.Public()
	data, err := services.RenderQuotePDF(h.Service.Catalog(), &public)
	if err != nil {
		utils.SafeError("❌ Failed to render quote PDF: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render PDF"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=\"orcamento-%s.pdf\"", quote.ID))
	c.Data(http.StatusOK, "application/pdf", data)
}

// List is the admin lead listing, newest first.
func (h *QuoteHandler) List(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = n
	}

	quotes, err := h.Service.List(c.Request.Context(), limit)
	if err != nil {
		utils.SafeError("❌ Failed to list quotes: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list quotes"})
		return
	}
	if quotes == nil {
		quotes = []models.Quote{}
	}

	c.JSON(http.StatusOK, gin.H{"quotes": quotes, "count": len(quotes)})
}

func (h *QuoteHandler) find(c *gin.Context) (*models.Quote, bool) {
	quote, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrQuoteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Quote not found"})
			return nil, false
		}
		utils.SafeError("❌ Failed to load quote: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load quote"})
		return nil, false
	}
	return quote, true
}
