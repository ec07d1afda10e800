// Package advisor generates a performance review of the current cycle
// using an LLM, with a static fallback when no API key is configured.
package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"

	"fig-tracker/internal/aggregate"
	apperrors "fig-tracker/internal/errors"
	"fig-tracker/internal/models"
	"fig-tracker/pkg/utils"
)

// DefaultModel is used when no model is configured.
const DefaultModel = openai.GPT4oMini

// Review is the structured advice returned for a cycle.
type Review struct {
	Summary string `json:"summary"`
	Advice  string `json:"advice"`
	Trend   string `json:"trend"`
}

// LLMClient abstracts the completion call so tests can stub it.
type LLMClient interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// OpenAIClient implements LLMClient against the OpenAI API.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient creates an LLM client. An empty model falls back to
// DefaultModel.
func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	if model == "" {
		model = DefaultModel
	}
	return &OpenAIClient{client: openai.NewClient(apiKey), model: model}
}

// Complete sends system and user prompts and returns the response text.
func (c *OpenAIClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from openai")
	}
	return resp.Choices[0].Message.Content, nil
}

// Advisor turns cycle entries into a Review.
type Advisor struct {
	llm    LLMClient
	logger zerolog.Logger
}

// New creates an advisor. A nil llm means only the static fallback is
// available.
func New(llm LLMClient, logger zerolog.Logger) *Advisor {
	return &Advisor{llm: llm, logger: logger.With().Str("component", "advisor").Logger()}
}

const systemPrompt = `You are a disciplined day-trading performance coach.
You receive a summary of one trading cycle and reply with strict JSON:
{"summary": "...", "advice": "...", "trend": "up|down|flat"}.
Keep summary and advice to two sentences each. No markdown, no code fences.`

// Analyze reviews the cycle. With no populated days or no configured LLM
// it returns the static fallback instead of calling out.
func (a *Advisor) Analyze(ctx context.Context, entries []models.DayEntry, totals aggregate.Totals) (Review, error) {
	if totals.PopulatedDays == 0 {
		return Review{
			Summary: "No trading days recorded yet.",
			Advice:  "Log your first sessions before asking for a review.",
			Trend:   "flat",
		}, nil
	}
	if a.llm == nil {
		return staticReview(totals), nil
	}

	raw, err := a.llm.Complete(ctx, systemPrompt, buildPrompt(entries, totals))
	if err != nil {
		a.logger.Warn().Err(err).Msg("LLM review failed, using static fallback")
		return staticReview(totals), apperrors.NewAdvisorError("analyze", err)
	}

	review, err := parseReview(raw)
	if err != nil {
		a.logger.Warn().Err(err).Msg("Unparseable LLM review, using static fallback")
		return staticReview(totals), apperrors.NewAdvisorError("parse review", err)
	}
	return review, nil
}

// buildPrompt renders populated days and the aggregate line for the model.
func buildPrompt(entries []models.DayEntry, totals aggregate.Totals) string {
	var b strings.Builder
	b.WriteString("Trading cycle summary:\n")
	fmt.Fprintf(&b, "- Days traded: %d of %d\n", totals.PopulatedDays, totals.TotalDays)
	fmt.Fprintf(&b, "- Gross profit: %s\n", utils.FormatBRL(totals.GrossProfit))
	fmt.Fprintf(&b, "- Gross loss: %s\n", utils.FormatBRL(totals.GrossLoss))
	fmt.Fprintf(&b, "- Net result: %s\n", utils.FormatBRL(totals.NetPnL))
	fmt.Fprintf(&b, "- Win rate: %d%%\n", totals.WinRate)
	b.WriteString("\nDaily results:\n")
	for _, e := range entries {
		if !e.HasData() {
			continue
		}
		fmt.Fprintf(&b, "- %s: %s", e.DayLabel, utils.FormatPnL(e.DailyValue))
		if e.Rating > 0 {
			fmt.Fprintf(&b, " (discipline %d/%d)", e.Rating, models.MaxRating)
		}
		if e.Note != "" {
			fmt.Fprintf(&b, " note: %s", e.Note)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// parseReview decodes the model reply, tolerating code fences some models
// insist on.
func parseReview(raw string) (Review, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var review Review
	if err := json.Unmarshal([]byte(cleaned), &review); err != nil {
		return Review{}, err
	}
	if review.Summary == "" {
		return Review{}, fmt.Errorf("empty summary in review")
	}
	switch review.Trend {
	case "up", "down", "flat":
	default:
		review.Trend = "flat"
	}
	return review, nil
}

func staticReview(totals aggregate.Totals) Review {
	trend := "flat"
	advice := "Keep position sizes steady and journal every session."
	switch {
	case totals.NetPnL > 0:
		trend = "up"
		advice = "Protect the gains: keep risk per trade unchanged and avoid oversizing after wins."
	case totals.NetPnL < 0:
		trend = "down"
		advice = "Cut size until the cycle turns: review the losing days for a shared setup."
	}
	return Review{
		Summary: fmt.Sprintf("Cycle net result %s across %d traded days with a %d%% win rate.",
			utils.FormatBRL(totals.NetPnL), totals.PopulatedDays, totals.WinRate),
		Advice: advice,
		Trend:  trend,
	}
}
