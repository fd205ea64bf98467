package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/WilkerGw/LP-OTICA/config"
	"github.com/WilkerGw/LP-OTICA/models"
	"github.com/WilkerGw/LP-OTICA/utils"
)

// ============================================================================
// CHAT RELAY - proxy para a API de completions (Groq, compatível com OpenAI)
// ============================================================================

var ErrAPIKeyMissing = errors.New("GROQ_API_KEY not set")

// UpstreamError is returned when the provider answers with a non-2xx status.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("API returned status %d: %s", e.StatusCode, e.Body)
}

type ChatRelayService struct {
	apiKey       string
	apiURL       string
	model        string
	temperature  float64
	maxTokens    int
	systemPrompt string
	httpClient   *http.Client
}

func NewChatRelayService(cfg *config.Config, httpClient *http.Client) *ChatRelayService {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.ChatTimeout}
	}
	return &ChatRelayService{
		apiKey:       cfg.GroqAPIKey,
		apiURL:       cfg.ChatAPIURL,
		model:        cfg.ChatModel,
		temperature:  config.ChatTemperature,
		maxTokens:    config.ChatMaxTokens,
		systemPrompt: config.SystemPrompt,
		httpClient:   httpClient,
	}
}

// Configured reports whether the provider credential is present.
func (s *ChatRelayService) Configured() bool {
	return s.apiKey != ""
}

// BuildRequest puts the system prompt in front of the conversation.
func (s *ChatRelayService) BuildRequest(messages []models.ChatMessage) models.CompletionRequest {
	all := make([]models.ChatMessage, 0, len(messages)+1)
	all = append(all, models.ChatMessage{Role: "system", Content: s.systemPrompt})
	all = append(all, messages...)

	return models.CompletionRequest{
		Model:       s.model,
		Messages:    all,
		Temperature: s.temperature,
		MaxTokens:   s.maxTokens,
	}
}

// Relay forwards the conversation and returns the provider's JSON body
// untouched. There is no retry.
func (s *ChatRelayService) Relay(ctx context.Context, messages []models.ChatMessage) ([]byte, error) {
	if s.apiKey == "" {
		return nil, ErrAPIKeyMissing
	}

	jsonData, err := json.Marshal(s.BuildRequest(messages))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		utils.LogChatRelay("upstream error", resp.StatusCode, len(messages))
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("failed to parse response: invalid JSON from provider")
	}

	utils.LogChatRelay("success", resp.StatusCode, len(messages))
	return body, nil
}
