package handlers

import (
	"errors"
	"net/http"

	"github.com/WilkerGw/LP-OTICA/models"
	"github.com/WilkerGw/LP-OTICA/services"
	"github.com/WilkerGw/LP-OTICA/utils"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	Relay *services.ChatRelayService
}

func NewChatHandler(relay *services.ChatRelayService) *ChatHandler {
	return &ChatHandler{Relay: relay}
}

// Chat forwards the conversation to the completion provider and returns its
// response body untouched.
func (h *ChatHandler) Chat(c *gin.Context) {
	if !h.Relay.Configured() {
		utils.SafeError("❌ GROQ_API_KEY not set")
		c.JSON(http.StatusInternalServerError, models.ChatErrorResponse{Error: "API Key not configured"})
		return
	}

	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SafeError("❌ Invalid chat request: %v", err)
		c.JSON(http.StatusInternalServerError, models.ChatErrorResponse{
			Error:   "Failed to process chat",
			Details: err.Error(),
		})
		return
	}

	body, err := h.Relay.Relay(c.Request.Context(), req.Messages)
	if err != nil {
		var upstream *services.UpstreamError
		switch {
		case errors.As(err, &upstream):
			c.JSON(upstream.StatusCode, models.ChatErrorResponse{
				Error:   "Groq API error",
				Status:  upstream.StatusCode,
				Details: upstream.Body,
			})
		case errors.Is(err, services.ErrAPIKeyMissing):
			c.JSON(http.StatusInternalServerError, models.ChatErrorResponse{Error: "API Key not configured"})
		default:
			utils.SafeError("❌ Chat relay failed: %v", err)
			c.JSON(http.StatusInternalServerError, models.ChatErrorResponse{
				Error:   "Failed to process chat",
				Details: err.Error(),
			})
		}
		return
	}

	c.Data(http.StatusOK, "application/json", body)
}
