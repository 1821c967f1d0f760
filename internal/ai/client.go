// Package ai suggests which engineer should take a new work order, using
// the Claude Messages API.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/nhle/fieldservice/internal/model"
)

const (
	defaultModel     = "claude-sonnet-4-20250514"
	defaultMaxTokens = 512
	defaultBaseURL   = "https://api.anthropic.com"
	apiVersion       = "2023-06-01"
	toolName         = "recommend_engineer"
)

// Advisory texts shown in place of a reasoning when no suggestion is made.
const (
	MsgConfigMissing = "AI configuration missing."
	MsgUnavailable   = "AI service unavailable."
	MsgNoBestFit     = "Could not determine best fit."
)

// Recommendation is an advisory engineer suggestion. An empty EngineerID
// means no suggestion; Reasoning then explains why.
type Recommendation struct {
	EngineerID string
	Reasoning  string
}

// Recommender picks the best engineer for a job. Implementations never
// fail; problems are reported through Reasoning.
type Recommender interface {
	Recommend(ctx context.Context, title, description string, engineers []model.Engineer) Recommendation
}

// Client is a Recommender backed by the Claude Messages API.
type Client struct {
	apiKey    string
	model     string
	maxTokens int
	baseURL   string
	client    *http.Client
	limiter   *rate.Limiter
	log       zerolog.Logger
}

// New creates a client from cfg. An empty apiKey yields a client that
// answers every request with MsgConfigMissing.
func New(apiKey string, cfg model.AIConfig, log zerolog.Logger) *Client {
	modelName := cfg.Model
	if modelName == "" {
		modelName = defaultModel
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	limit := rate.Inf
	if cfg.RequestsPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(cfg.RequestsPerMinute))
	}

	return &Client{
		apiKey:    apiKey,
		model:     modelName,
		maxTokens: maxTokens,
		baseURL:   baseURL,
		client:    &http.Client{Timeout: 30 * time.Second},
		limiter:   rate.NewLimiter(limit, 1),
		log:       log.With().Str("component", "ai").Logger(),
	}
}

// Recommend asks the model to pick one of engineers for the job.
func (c *Client) Recommend(
	ctx context.Context,
	title, description string,
	engineers []model.Engineer,
) Recommendation {
	if c.apiKey == "" {
		return Recommendation{Reasoning: MsgConfigMissing}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		c.log.Warn().Err(err).Msg("rate limiter wait failed")
		return Recommendation{Reasoning: MsgUnavailable}
	}

	resp, err := c.callAPI(ctx, c.buildRequest(title, description, engineers))
	if err != nil {
		c.log.Error().Err(err).Msg("recommendation request failed")
		return Recommendation{Reasoning: MsgUnavailable}
	}

	rec, err := parseRecommendation(resp)
	if err != nil {
		c.log.Error().Err(err).Msg("decoding recommendation")
		return Recommendation{Reasoning: MsgUnavailable}
	}

	c.log.Debug().Str("engineer_id", rec.EngineerID).Msg("recommendation received")
	return rec
}

// rosterEntry is the engineer view sent to the model.
type rosterEntry struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Specialties []string `json:"specialties"`
	Tags        []string `json:"tags"`
}

type jobPayload struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Engineers   []rosterEntry `json:"engineers"`
}

func (c *Client) buildRequest(title, description string, engineers []model.Engineer) apiRequest {
	payload := jobPayload{
		Title:       title,
		Description: description,
		Engineers:   make([]rosterEntry, 0, len(engineers)),
	}
	for _, e := range engineers {
		payload.Engineers = append(payload.Engineers, rosterEntry{
			ID:          e.ID,
			Name:        e.Name,
			Specialties: e.Specialties,
			Tags:        e.Tags,
		})
	}

	// Marshaling plain strings and slices cannot fail.
	body, _ := json.MarshalIndent(payload, "", "  ")

	return apiRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		System:    systemPrompt,
		Messages: []apiMessage{{
			Role:    "user",
			Content: []apiContentBlock{{Type: "text", Text: string(body)}},
		}},
		Tools:      []apiTool{recommendTool()},
		ToolChoice: &apiToolChoice{Type: "tool", Name: toolName},
	}
}

const systemPrompt = "You are a dispatcher for a field service company. " +
	"Given a work order title and description and the list of available engineers, " +
	"choose the single engineer whose specialties and tags best fit the job. " +
	"Answer by calling the recommend_engineer tool with the engineer's id and " +
	"one or two sentences of reasoning."

// callAPI makes a single request to the Claude Messages API.
func (c *Client) callAPI(ctx context.Context, reqBody apiRequest) (*apiResponse, error) {
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(bodyBytes),
	)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling Claude API: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiErrorResponse
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("API error (%d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return nil, fmt.Errorf("API error (%d): %s", resp.StatusCode, string(respBody))
	}

	var result apiResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &result, nil
}

// parseRecommendation reads the forced tool call out of resp. A reply
// without the tool call, or with empty fields, falls back to defaults.
func parseRecommendation(resp *apiResponse) (Recommendation, error) {
	var params struct {
		EngineerID string `json:"engineerId"`
		Reasoning  string `json:"reasoning"`
	}

	for _, block := range resp.Content {
		if block.Type != "tool_use" || block.Name != toolName {
			continue
		}
		if len(block.Input) > 0 {
			if err := json.Unmarshal(block.Input, &params); err != nil {
				return Recommendation{}, fmt.Errorf("decoding tool input: %w", err)
			}
		}
		break
	}

	rec := Recommendation{
		EngineerID: strings.TrimSpace(params.EngineerID),
		Reasoning:  strings.TrimSpace(params.Reasoning),
	}
	if rec.Reasoning == "" {
		rec.Reasoning = MsgNoBestFit
	}
	return rec, nil
}

// --- Claude API types ---

type apiRequest struct {
	Model      string         `json:"model"`
	MaxTokens  int            `json:"max_tokens"`
	System     string         `json:"system"`
	Messages   []apiMessage   `json:"messages"`
	Tools      []apiTool      `json:"tools,omitempty"`
	ToolChoice *apiToolChoice `json:"tool_choice,omitempty"`
}

type apiMessage struct {
	Role    string            `json:"role"`
	Content []apiContentBlock `json:"content"`
}

type apiContentBlock struct {
	Type string `json:"type"`

	// For text blocks
	Text string `json:"text,omitempty"`

	// For tool_use blocks
	ID    string          `json:"id,omitempty"`
	Name  string          `json:"name,omitempty"`
	Input json.RawMessage `json:"input,omitempty"`
}

type apiResponse struct {
	ID         string            `json:"id"`
	Type       string            `json:"type"`
	Role       string            `json:"role"`
	Content    []apiContentBlock `json:"content"`
	Model      string            `json:"model"`
	StopReason string            `json:"stop_reason"`
}

type apiErrorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

type apiTool struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"input_schema"`
}

type apiToolChoice struct {
	Type string `json:"type"`
	Name string `json:"name,omitempty"`
}

func recommendTool() apiTool {
	return apiTool{
		Name:        toolName,
		Description: "Record the engineer best suited to the work order.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"engineerId": {
					"type": "string",
					"description": "The id of the chosen engineer"
				},
				"reasoning": {
					"type": "string",
					"description": "Short explanation of the choice"
				}
			},
			"required": ["engineerId", "reasoning"]
		}`),
	}
}
