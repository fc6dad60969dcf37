package difficulty

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/focusflow/focusflow/internal/llm"
)

// AdvisorConfig holds configuration for the LLM advisor.
type AdvisorConfig struct {
	MaxTokens   int
	Temperature float64
}

// DefaultAdvisorConfig returns sensible defaults.
func DefaultAdvisorConfig() AdvisorConfig {
	return AdvisorConfig{
		MaxTokens:   256,
		Temperature: 0.2,
	}
}

// Advice is an LLM second opinion on a classification. It never replaces
// the heuristic Result; callers decide whether to show or apply it.
type Advice struct {
	Tier       Tier    `json:"tier"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
	Model      string  `json:"model"`
	Agrees     bool    `json:"agrees"`
}

// Advisor asks an LLM whether it agrees with a heuristic classification.
type Advisor struct {
	provider llm.Provider
	cfg      AdvisorConfig
}

// NewAdvisor creates an LLM-backed advisor.
func NewAdvisor(provider llm.Provider, cfg AdvisorConfig) *Advisor {
	return &Advisor{provider: provider, cfg: cfg}
}

const reclassifiedSuffix = "reclassified as medium"

// Reclassified reports whether low confidence demoted the result to medium.
func Reclassified(r Result) bool {
	for _, reason := range r.Reasons {
		if strings.HasSuffix(reason, reclassifiedSuffix) {
			return true
		}
	}
	return false
}

// NeedsAdvice reports whether a result is weak enough to be worth a second
// opinion.
func NeedsAdvice(r Result, threshold float64) bool {
	return r.Confidence < threshold || Reclassified(r)
}

type adviceOutput struct {
	Tier       string  `json:"tier"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

type adviceTemplateData struct {
	Title       string
	Description string
	Tier        Tier
	Confidence  int
	Reasons     []string
}

// Advise requests a second opinion for a task already classified as r.
func (a *Advisor) Advise(ctx context.Context, title, description string, r Result) (*Advice, error) {
	ctx = llm.WithPurpose(ctx, "difficulty-advice")

	userMsg, err := buildAdviceMessage(adviceTemplateData{
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Tier:        r.Tier,
		Confidence:  int(r.Confidence*100 + 0.5),
		Reasons:     r.Reasons,
	})
	if err != nil {
		return nil, fmt.Errorf("build advice prompt: %w", err)
	}

	resp, err := a.provider.Generate(ctx, llm.Request{
		System: adviceSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		Schema:      AdviceSchema,
		MaxTokens:   a.cfg.MaxTokens,
		Temperature: a.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM advice failed: %w", err)
	}

	var raw adviceOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("parse advice response: %w", err)
	}

	tier, ok := ParseTier(raw.Tier)
	if !ok {
		return nil, fmt.Errorf("advice returned unknown tier %q", raw.Tier)
	}

	conf := raw.Confidence
	if conf < 0 {
		conf = 0
	} else if conf > 1 {
		conf = 1
	}

	return &Advice{
		Tier:       tier,
		Confidence: conf,
		Reasoning:  raw.Reasoning,
		Model:      resp.Model,
		Agrees:     tier == r.Tier,
	}, nil
}

const adviceSystemPrompt = `You help neurodivergent people plan their day. Given a task, judge how much effort and executive function it demands.

Tiers:
- easy: a single quick step, roughly 15 minutes, little planning.
- medium: a few steps or up to about an hour of focus.
- hard: multi-step, unfamiliar, or several hours of focused work.

Instructions:
- A keyword heuristic already suggested a tier. Agree with it unless the task clearly belongs elsewhere.
- Provide a confidence score (0.0–1.0).
- Keep reasoning to one short, encouraging sentence.`

var adviceUserTemplate = template.Must(template.New("advice").Parse(`Task: {{.Title}}
{{if .Description}}Details: {{.Description}}
{{end}}Heuristic tier: {{.Tier}} ({{.Confidence}}% confident)
{{if .Reasons}}Heuristic signals:
{{range .Reasons}}- {{.}}
{{end}}{{end}}`))

func buildAdviceMessage(data adviceTemplateData) (string, error) {
	var buf bytes.Buffer
	if err := adviceUserTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
