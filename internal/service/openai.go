package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"spacelister/internal/config"
	"spacelister/internal/model"
)

// OpenAIClient handles OpenAI-compatible chat completion APIs (Groq, OpenAI,
// or any endpoint speaking the same protocol).
type OpenAIClient struct {
	config     *config.OpenAIConfig
	httpClient *http.Client
}

// NewOpenAIClient creates a new OpenAI-compatible client
func NewOpenAIClient(cfg *config.OpenAIConfig) *OpenAIClient {
	return &OpenAIClient{
		config: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
	}
}

// IsEnabled returns whether the client is configured and ready
func (c *OpenAIClient) IsEnabled() bool {
	return c.config.Enabled
}

// ChatCompletionRequest represents a chat completion request
type ChatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

// ChatMessage represents a single message in the conversation
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatCompletionResponse represents the API response
type ChatCompletionResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	Model   string `json:"model"`
	Choices []struct {
		Index        int         `json:"index"`
		Message      ChatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// ChatCompletion performs a chat completion request
func (c *OpenAIClient) ChatCompletion(ctx context.Context, req ChatCompletionRequest) (*ChatCompletionResponse, error) {
	if !c.config.Enabled {
		return nil, fmt.Errorf("OpenAI API is not enabled (missing API key)")
	}

	if req.Model == "" {
		req.Model = c.config.ChatModel
	}
	if req.Temperature == 0 && c.config.ChatTemperature > 0 {
		req.Temperature = c.config.ChatTemperature
	}
	if req.MaxTokens == 0 && c.config.ChatMaxTokens > 0 {
		req.MaxTokens = c.config.ChatMaxTokens
	}

	reqBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/chat/completions", c.config.APIBase)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.config.APIKey))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result ChatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &result, nil
}

const replySystemPromptTemplate = `You are a friendly, helpful assistant helping office space hosts create listings.
You're conducting a conversational interview to gather information about their space.

Current phase: %s
Information collected so far:
%s

Guidelines:
- Be friendly, conversational, and encouraging
- Ask ONE question at a time
- Acknowledge what the user said before asking the next question
- Extract structured information from their responses
- If they provide multiple details, acknowledge each one
- Keep responses concise (1-2 sentences max)
- Use natural language, not robotic
- Don't repeat information you already have

Phase-specific instructions:
- Phase 1 (basics): Get location, neighborhood, square footage, space type, desk capacity. If you have location but not neighborhood, ask for neighborhood. If you have both, ask for square footage, etc.
- Phase 2 (config): Get layout details (offices, meeting rooms), amenities, standout features. If they mention amenities in text, acknowledge them.
- Phase 3 (terms): Get availability date, minimum lease term, restrictions
- Phase 4 (pricing): Present pricing suggestions and comparables, then ask what rate they want
- Phase 5 (preview): Show the listing preview and ask if they want to save

Respond naturally as if you're having a friendly conversation. Keep it short and conversational.`

// GenerateReply asks the model for one conversational reply given the phase,
// the partial listing and the recent history.
func (c *OpenAIClient) GenerateReply(ctx context.Context, req ReplyRequest) (string, error) {
	if !c.config.Enabled {
		return "", fmt.Errorf("OpenAI API is not enabled")
	}

	collected, err := json.MarshalIndent(req.Listing, "", "  ")
	if err != nil {
		collected = []byte("{}")
	}
	systemPrompt := fmt.Sprintf(replySystemPromptTemplate, req.Phase, string(collected))

	messages := make([]ChatMessage, 0, len(req.History)+2)
	messages = append(messages, ChatMessage{Role: "system", Content: systemPrompt})
	for _, msg := range req.History {
		messages = append(messages, ChatMessage{Role: msg.Role, Content: msg.Content})
	}
	messages = append(messages, ChatMessage{Role: model.RoleUser, Content: req.Utterance})

	resp, err := c.ChatCompletion(ctx, ChatCompletionRequest{
		Model:    c.config.ChatModel,
		Messages: messages,
	})
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("no response from model")
	}

	return resp.Choices[0].Message.Content, nil
}
