package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"voyago/models"
)

const (
	defaultBaseURL = "https://openrouter.ai/api/v1"
	defaultModel   = "meta-llama/llama-3.1-70b-instruct"
	reqTimeout     = 60 * time.Second
)

// Client calls an OpenRouter-compatible chat completions API. With no
// API key configured it returns deterministic mock drafts so the rest
// of the pipeline can run without credentials.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

func NewClient() *Client {
	baseURL := os.Getenv("OPENROUTER_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := os.Getenv("OPENROUTER_MODEL")
	if model == "" {
		model = defaultModel
	}
	return &Client{
		apiKey:     os.Getenv("OPENROUTER_API_KEY"),
		baseURL:    baseURL,
		model:      model,
		httpClient: &http.Client{Timeout: reqTimeout},
	}
}

func (c *Client) Configured() bool {
	return c.apiKey != ""
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// complete sends a single prompt and returns the raw completion text.
func (c *Client) complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	payload := chatRequest{
		Model:       c.model,
		Temperature: 0.7,
		MaxTokens:   maxTokens,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("llm api status %d: %s", resp.StatusCode, truncate(string(raw), 200))
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", err
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("llm api error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("llm returned no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

// GenerateDraft asks the model for a day-by-day place plan. Malformed
// model output goes through the recovery parser; if everything fails
// a mock draft keeps generation alive.
func (c *Client) GenerateDraft(ctx context.Context, userCtx models.UserContext, days int) (*Draft, error) {
	if days <= 0 {
		days = 1
	}
	if !c.Configured() {
		return MockDraft(userCtx.Destination, days), nil
	}

	system := "You are a travel planning assistant. Respond only with valid JSON, no markdown."
	user := draftPrompt(userCtx, days)

	raw, err := c.complete(ctx, system, user, 4000)
	if err != nil {
		log.Printf("llm draft request failed, using mock: %v", err)
		return MockDraft(userCtx.Destination, days), nil
	}

	draft, err := ParseDraft(raw)
	if err != nil {
		log.Printf("llm draft unrecoverable, using mock: %v", err)
		return MockDraft(userCtx.Destination, days), nil
	}
	padDraft(draft, userCtx.Destination, days)
	return draft, nil
}

func draftPrompt(userCtx models.UserContext, days int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Plan a %d-day trip to %s", days, userCtx.Destination)
	if userCtx.TotalBudget > 0 {
		fmt.Fprintf(&sb, " with a total budget of %.0f", userCtx.TotalBudget)
	}
	if len(userCtx.Interests) > 0 {
		fmt.Fprintf(&sb, ". Traveler interests: %s", strings.Join(userCtx.Interests, ", "))
	}
	if userCtx.TravelGroup.Size > 1 {
		fmt.Fprintf(&sb, ". Group of %d", userCtx.TravelGroup.Size)
		if userCtx.TravelGroup.HasChildren {
			sb.WriteString(" including children")
		}
		if userCtx.TravelGroup.HasElderly {
			sb.WriteString(" including elderly travelers")
		}
	}
	sb.WriteString(`. Return JSON with this exact shape:
{"days":[{"dayNumber":1,"theme":"Cultural Immersion","places":[{"place_name":"...","city":"...","category":"museum","importance":"...","duration":120,"estimatedCost":500}]}]}
Include 3-4 places per day. Duration is minutes.`)
	return sb.String()
}

// DescribePlace produces a short traveler-facing description.
func (c *Client) DescribePlace(ctx context.Context, placeName, city string) (string, error) {
	if !c.Configured() {
		return fmt.Sprintf("%s is a popular spot in %s, well worth a visit.", placeName, city), nil
	}
	system := "You are a travel guide. Answer in 2-3 sentences, plain text."
	user := fmt.Sprintf("Describe %s in %s for a traveler.", placeName, city)
	out, err := c.complete(ctx, system, user, 300)
	if err != nil {
		return fmt.Sprintf("%s is a popular spot in %s, well worth a visit.", placeName, city), nil
	}
	return strings.TrimSpace(out), nil
}

// GuideChat answers a free-form traveler question, optionally grounded
// in the current itinerary summary.
func (c *Client) GuideChat(ctx context.Context, question, itinerarySummary string) (string, error) {
	if !c.Configured() {
		return "I'm offline right now, but local tourist information centers can help with that question.", nil
	}
	system := "You are a knowledgeable, concise travel guide."
	user := question
	if itinerarySummary != "" {
		user = fmt.Sprintf("Current itinerary:\n%s\n\nQuestion: %s", itinerarySummary, question)
	}
	out, err := c.complete(ctx, system, user, 800)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// ExplainItinerary writes a short narrative of why the plan fits the user.
func (c *Client) ExplainItinerary(ctx context.Context, destination string, themes []string, interests []string) (string, error) {
	fallback := fmt.Sprintf("This %s itinerary balances %s with time to rest, matched to your stated interests.",
		destination, strings.Join(themes, ", "))
	if !c.Configured() {
		return fallback, nil
	}
	system := "You are a travel planner. Answer in 2-3 sentences, plain text."
	user := fmt.Sprintf("Explain briefly why a trip to %s covering themes (%s) suits a traveler interested in %s.",
		destination, strings.Join(themes, ", "), strings.Join(interests, ", "))
	out, err := c.complete(ctx, system, user, 300)
	if err != nil {
		return fallback, nil
	}
	return strings.TrimSpace(out), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
