package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"okoval/fitness-planner/internal/config"

	log "github.com/sirupsen/logrus"
)

// Client calls an OpenAI-compatible chat-completion API and turns the
// response into a validated GeneratedPlan. The API is an opaque
// collaborator: one request in, one JSON plan document out.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewClient(cfg config.AIConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		httpClient: httpClient,
	}
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	ResponseFormat responseFormat `json:"response_format"`
	Temperature    float64        `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

const systemPrompt = `You are a certified personal trainer and nutritionist. ` +
	`Design a weekly workout plan for the user based on their goal, experience ` +
	`level and available equipment. Respond with a single JSON object matching ` +
	`this shape exactly: {"name": string, "description": string, "days": ` +
	`[{"name": string, "focus": string, "dayOfWeek": int, ` +
	`"estimatedDurationMinutes": int, "exercises": [{"name": string, "sets": int, ` +
	`"reps": int, "durationSeconds": int, "restSeconds": int, "equipment": ` +
	`string}]}], "nutrition": {"dailyCalories": int, "proteinGrams": int, ` +
	`"carbsGrams": int, "fatGrams": int, "tips": [string]}}. ` +
	`Only prescribe exercises doable with the listed equipment or bodyweight.`

// GeneratePlan performs one chat-completion round trip and validates the
// returned plan document.
func (c *Client) GeneratePlan(ctx context.Context, planReq PlanRequest) (*GeneratedPlan, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildUserPrompt(planReq)},
		},
		ResponseFormat: responseFormat{Type: "json_object"},
		Temperature:    0.7,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal chat request: %w", err)
	}

	url := c.baseURL + "/chat/completions"
	log.Debugf("calling chat-completion api: %s, model %s", url, c.model)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read chat-completion response bytes: %w", err)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBytes, &chatResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal chat-completion response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if chatResp.Error != nil {
			return nil, fmt.Errorf("chat-completion api status %d: %s", resp.StatusCode, chatResp.Error.Message)
		}
		return nil, fmt.Errorf("chat-completion api status %d", resp.StatusCode)
	}
	if len(chatResp.Choices) == 0 {
		return nil, fmt.Errorf("chat-completion response has no choices")
	}

	var plan GeneratedPlan
	if err := json.Unmarshal([]byte(chatResp.Choices[0].Message.Content), &plan); err != nil {
		return nil, fmt.Errorf("failed to unmarshal plan document: %w", err)
	}
	if err := plan.Validate(); err != nil {
		return nil, err
	}

	return &plan, nil
}

func buildUserPrompt(req PlanRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Goal: %s\n", req.Goal)
	fmt.Fprintf(&b, "Experience level: %s\n", req.ExperienceLevel)
	fmt.Fprintf(&b, "Training days per week: %d\n", req.DaysPerWeek)
	fmt.Fprintf(&b, "Preferred session length: %d minutes\n", req.SessionMinutes)
	if len(req.Equipment) > 0 {
		fmt.Fprintf(&b, "Available equipment: %s\n", strings.Join(req.Equipment, ", "))
	} else {
		b.WriteString("Available equipment: none, bodyweight only\n")
	}
	return b.String()
}
