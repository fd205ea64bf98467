package handlers

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/WilkerGw/LP-OTICA/config"
	"github.com/WilkerGw/LP-OTICA/models"
	"github.com/WilkerGw/LP-OTICA/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChatRouter(apiKey string, upstream *httptest.Server) *gin.Engine {
	cfg := &config.Config{
		GroqAPIKey:  apiKey,
		ChatAPIURL:  "http://127.0.0.1:0",
		ChatModel:   config.DefaultChatModel,
		ChatTimeout: 5 * time.Second,
	}
	var client *http.Client
	if upstream != nil {
		cfg.ChatAPIURL = upstream.URL
		client = upstream.Client()
	}

	h := NewChatHandler(services.NewChatRelayService(cfg, client))
	router := gin.New()
	router.POST("/api/chat", h.Chat)
	return router
}

const chatBody = `{"messages":[{"role":"user","content":"Quanto custa uma lente multifocal?"}]}`

func TestChat_MissingAPIKey(t *testing.T) {
	var calls int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer upstream.Close()

	router := newChatRouter("", upstream)
	w := doJSON(t, router, http.MethodPost, "/api/chat", chatBody)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var resp models.ChatErrorResponse
	decode(t, w, &resp)
	assert.Equal(t, "API Key not configured", resp.Error)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestChat_InvalidBody(t *testing.T) {
	router := newChatRouter("gsk_test", nil)

	w := doJSON(t, router, http.MethodPost, "/api/chat", `not json`)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var resp models.ChatErrorResponse
	decode(t, w, &resp)
	assert.Equal(t, "Failed to process chat", resp.Error)
	assert.NotEmpty(t, resp.Details)
}

func TestChat_Success(t *testing.T) {
	const completion = `{"choices":[{"message":{"role":"assistant","content":"A partir de R$ 599,90!"}}]}`
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(completion))
	}))
	defer upstream.Close()

	router := newChatRouter("gsk_test", upstream)
	w := doJSON(t, router, http.MethodPost, "/api/chat", chatBody)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, completion, w.Body.String())
}

func TestChat_UpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":"slow down"}`))
	}))
	defer upstream.Close()

	router := newChatRouter("gsk_test", upstream)
	w := doJSON(t, router, http.MethodPost, "/api/chat", chatBody)

	require.Equal(t, http.StatusTooManyRequests, w.Code)
	var resp models.ChatErrorResponse
	decode(t, w, &resp)
	assert.Equal(t, "Groq API error", resp.Error)
	assert.Equal(t, http.StatusTooManyRequests, resp.Status)
	assert.Equal(t, `{"error":"slow down"}`, resp.Details)
}

func TestChat_UpstreamInvalidJSON(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>oops</html>`))
	}))
	defer upstream.Close()

	router := newChatRouter("gsk_test", upstream)
	w := doJSON(t, router, http.MethodPost, "/api/chat", chatBody)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var resp models.ChatErrorResponse
	decode(t, w, &resp)
	assert.Equal(t, "Failed to process chat", resp.Error)
}
