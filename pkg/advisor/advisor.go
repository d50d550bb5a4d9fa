// Package advisor asks a hosted large language model for budget allocation
// and analysis suggestions.
//
// The advisor is optional and unreliable by nature. Every failure is
// returned as an error and callers are expected to fall back to local
// computations.
package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tripbudget/backend/internal/config"
	"golang.org/x/sync/singleflight"
)

const generationPath = "/services/aigc/text-generation/generation"

var (
	ErrDisabled  = errors.New("the advisor is not configured")
	ErrMalformed = errors.New("the advisor returned a malformed response")
)

// Client talks to a DashScope compatible text generation endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	timeout    time.Duration
	httpClient *http.Client

	// Identical requests that are in flight at the same time share one call
	group singleflight.Group
}

func New(cfg config.AdvisorConfig) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		timeout:    cfg.Timeout,
		httpClient: &http.Client{},
	}
}

// Enabled reports whether the client has credentials.
func (c *Client) Enabled() bool {
	return c != nil && c.apiKey != ""
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type generationRequest struct {
	Model string `json:"model"`
	Input struct {
		Messages []message `json:"messages"`
	} `json:"input"`
	Parameters struct {
		ResultFormat string `json:"result_format"`
	} `json:"parameters"`
}

type generationResponse struct {
	Output struct {
		Choices []struct {
			Message message `json:"message"`
		} `json:"choices"`
		Text string `json:"text"`
	} `json:"output"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// content returns the generated text. Chat style choices take precedence
// over the plain text output.
func (r generationResponse) content() string {
	if len(r.Output.Choices) > 0 && r.Output.Choices[0].Message.Content != "" {
		return r.Output.Choices[0].Message.Content
	}

	return r.Output.Text
}

// generate sends the prompt and decodes the JSON object in the answer into target.
func (c *Client) generate(ctx context.Context, system string, payload any, target any) error {
	if !c.Enabled() {
		return ErrDisabled
	}

	user, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal prompt: %w", err)
	}

	// The shared call must not be cancelled with the request that happened
	// to start it. It is bounded by the client timeout instead.
	key := system + "\x00" + string(user)
	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		return c.call(shared, system, string(user))
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return ctx.Err()
	case res = <-ch:
	}

	if res.Err != nil {
		return res.Err
	}

	object := extractJSON(res.Val.(string))
	if object == "" {
		return fmt.Errorf("%w: no JSON object found", ErrMalformed)
	}

	if err := json.Unmarshal([]byte(object), target); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	return nil
}

func (c *Client) call(ctx context.Context, system, user string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body generationRequest
	body.Model = c.model
	body.Input.Messages = []message{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	}
	body.Parameters.ResultFormat = "message"

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+generationPath, bytes.NewReader(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("advisor request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("advisor error (status %d): %s", resp.StatusCode, string(b))
	}

	var generated generationResponse
	if err := json.NewDecoder(resp.Body).Decode(&generated); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	return generated.content(), nil
}

func extractJSON(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end <= start {
		return ""
	}
	return text[start : end+1]
}

type allocationPrompt struct {
	TotalBudget decimal.Decimal   `json:"totalBudget"`
	DayCount    int               `json:"dayCount"`
	SpentPerDay []decimal.Decimal `json:"spentPerDay"`
}

// SuggestAllocation asks for one daily budget per entry in spent.
//
// The result is not validated against the total, see allocation.External.
func (c *Client) SuggestAllocation(ctx context.Context, total decimal.Decimal, spent []decimal.Decimal) ([]decimal.Decimal, error) {
	var answer struct {
		Budgets []decimal.Decimal `json:"budgets"`
	}

	err := c.generate(ctx, allocationSystemPrompt, allocationPrompt{
		TotalBudget: total,
		DayCount:    len(spent),
		SpentPerDay: spent,
	}, &answer)
	if err != nil {
		return nil, err
	}

	if answer.Budgets == nil {
		return nil, fmt.Errorf("%w: no budgets array", ErrMalformed)
	}

	return answer.Budgets, nil
}

// AnalysisInput is the budget state that suggestions are requested for.
type AnalysisInput struct {
	TotalBudget  decimal.Decimal            `json:"totalBudget"`
	DailyBudgets []decimal.Decimal          `json:"dailyBudgets"`
	SpentPerDay  []decimal.Decimal          `json:"spentPerDay"`
	ByCategory   map[string]decimal.Decimal `json:"byCategory"`
}

// SuggestAnalysis asks for human readable advice on the budget.
func (c *Client) SuggestAnalysis(ctx context.Context, in AnalysisInput) ([]string, error) {
	var answer struct {
		Suggestions []string `json:"suggestions"`
	}

	if err := c.generate(ctx, analysisSystemPrompt, in, &answer); err != nil {
		return nil, err
	}

	if answer.Suggestions == nil {
		return nil, fmt.Errorf("%w: no suggestions array", ErrMalformed)
	}

	return answer.Suggestions, nil
}
