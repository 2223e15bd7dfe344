package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rs/zerolog/log"

	"icuflow-mcp/internal/workflow"
)

const defaultModel = "claude-sonnet-4-5-20250929"

// Config selects the model and credentials. An empty APIKey disables the
// advisor; every other feature keeps working without it.
type Config struct {
	APIKey string
	Model  string
}

// Usage accumulates token counts across calls.
type Usage struct {
	InputTokens  int64 `json:"input_tokens"`
	OutputTokens int64 `json:"output_tokens"`
}

func (u Usage) TotalTokens() int64 {
	return u.InputTokens + u.OutputTokens
}

func (u *Usage) Add(other Usage) {
	u.InputTokens += other.InputTokens
	u.OutputTokens += other.OutputTokens
}

// Impact is the model's estimated effect per metric, 0-100.
type Impact struct {
	Efficiency    float64 `json:"efficiency"`
	CognitiveLoad float64 `json:"cognitive_load"`
	BurnoutRisk   float64 `json:"burnout_risk"`
}

// Advice is the parsed recommendation set for one metric snapshot.
type Advice struct {
	Recommendations []string `json:"recommendations"`
	Impact          Impact   `json:"impact"`
	Priority        string   `json:"priority"`
	Confidence      float64  `json:"confidence"`
}

// Advisor produces workflow optimization recommendations from the current
// metrics via the Anthropic Messages API.
type Advisor struct {
	cfg Config
}

func New(cfg Config) *Advisor {
	return &Advisor{cfg: cfg}
}

// Enabled reports whether an API key is configured.
func (a *Advisor) Enabled() bool {
	return a.cfg.APIKey != ""
}

// Advise asks the model for optimization recommendations given a scenario
// snapshot and its computed metrics. Failures come back as errors, never
// as faults; callers decide how to surface them.
func (a *Advisor) Advise(ctx context.Context, scenarioName string, in workflow.Inputs, out workflow.Outputs) (Advice, Usage, error) {
	if !a.Enabled() {
		return Advice{}, Usage{}, fmt.Errorf("advisor disabled: no API key configured")
	}

	systemPrompt, userPrompt, err := buildPrompts(scenarioName, in, out)
	if err != nil {
		return Advice{}, Usage{}, err
	}

	model := a.cfg.Model
	if model == "" {
		model = defaultModel
	}
	log.Debug().Str("model", model).Str("scenario", scenarioName).Msg("requesting optimization advice")

	text, usage, err := callAnthropic(ctx, a.cfg.APIKey, model, systemPrompt, userPrompt)
	if err != nil {
		return Advice{}, usage, err
	}

	advice, err := parseAdvice(text)
	if err != nil {
		return Advice{}, usage, err
	}

	log.Info().
		Str("scenario", scenarioName).
		Int("recommendations", len(advice.Recommendations)).
		Int64("tokensIn", usage.InputTokens).
		Int64("tokensOut", usage.OutputTokens).
		Msg("optimization advice received")
	return advice, usage, nil
}

func buildPrompts(scenarioName string, in workflow.Inputs, out workflow.Outputs) (string, string, error) {
	systemPrompt := `You are an expert ICU workflow optimization advisor. Analyze the
workflow scenario and provide actionable recommendations for improving
efficiency, reducing burnout risk, and optimizing resource allocation.

Respond with JSON only (no markdown):
{
  "recommendations": ["A clear, actionable recommendation", ...],
  "impact": {"efficiency": 0-100, "cognitive_load": 0-100, "burnout_risk": 0-100},
  "priority": "low" | "medium" | "high",
  "confidence": 0.0-1.0
}`

	inJSON, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return "", "", fmt.Errorf("marshaling inputs: %w", err)
	}
	outJSON, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", "", fmt.Errorf("marshaling outputs: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Scenario: %s\n\n", scenarioName)
	fmt.Fprintf(&b, "Current metrics:\n- Workload score: %.2f\n- Cognitive load: %.0f/100\n- Provider efficiency: %.0f%%\n- Burnout score: %.2f (%s)\n- Bottleneck risk: %s\n- Focus hours remaining: %.1f\n\n",
		out.WorkloadScore, out.CognitiveLoad, out.ProviderEfficiency*100, out.BurnoutScore, out.BurnoutRisk, out.BottleneckRisk, out.FocusTime.HoursAvailable)
	if out.FocusTime.Overcommitted {
		fmt.Fprintf(&b, "WARNING: the shift is overcommitted by %.1f hours.\n\n", out.FocusTime.DeficitHours)
	}
	fmt.Fprintf(&b, "Scenario configuration:\n%s\n\nFull metric snapshot:\n%s\n", inJSON, outJSON)

	return systemPrompt, b.String(), nil
}

func callAnthropic(ctx context.Context, apiKey, model, systemPrompt, userPrompt string) (string, Usage, error) {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	message, err := client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: 2048,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt, CacheControl: anthropic.NewCacheControlEphemeralParam()},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	})
	if err != nil {
		return "", Usage{}, fmt.Errorf("anthropic API error: %w", err)
	}

	usage := Usage{
		InputTokens:  message.Usage.InputTokens,
		OutputTokens: message.Usage.OutputTokens,
	}

	for _, block := range message.Content {
		if block.Type == "text" {
			return block.Text, usage, nil
		}
	}
	return "", usage, fmt.Errorf("no text content in anthropic response")
}

func parseAdvice(responseText string) (Advice, error) {
	responseText = strings.TrimSpace(responseText)
	responseText = strings.TrimPrefix(responseText, "```json")
	responseText = strings.TrimPrefix(responseText, "```")
	responseText = strings.TrimSuffix(responseText, "```")
	responseText = strings.TrimSpace(responseText)

	var advice Advice
	if err := json.Unmarshal([]byte(responseText), &advice); err != nil {
		truncated := responseText
		if len(truncated) > 512 {
			truncated = truncated[:512] + "..."
		}
		return Advice{}, fmt.Errorf("parsing advice response: %w (response: %s)", err, truncated)
	}

	if advice.Confidence < 0 {
		advice.Confidence = 0
	}
	if advice.Confidence > 1 {
		advice.Confidence = 1
	}
	if advice.Priority == "" {
		advice.Priority = "medium"
	}
	return advice, nil
}
