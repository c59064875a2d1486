package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"

	"github.com/checkmate-app/backend/config"
	"github.com/checkmate-app/backend/errs"
)

// ProjectBrief is the structured project description forwarded to the
// model. Deadline, when present, is a YYYY-MM-DD string.
type ProjectBrief struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Type         string   `json:"type"`
	Technologies []string `json:"technologies"`
	Objectives   string   `json:"objectives"`
	Deadline     string   `json:"deadline,omitempty"`
}

// ChecklistGenerator turns a project brief into a list of checklist item
// descriptions. Implementations must return a de-numbered list of any
// length >= 0.
type ChecklistGenerator interface {
	Generate(ctx context.Context, brief ProjectBrief) ([]string, error)
}

// AnthropicGenerator calls Claude through langchaingo. The API key lives
// server-side only; it is never handed to a client.
type AnthropicGenerator struct {
	llm    llms.Model
	logger zerolog.Logger
}

func NewAnthropicGenerator() (*AnthropicGenerator, error) {
	cfg := config.New()

	apiKey := config.GetString(cfg, "ANTHROPIC_API_KEY", "")
	if apiKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable is required: %w", errs.ErrMissingAPIKey)
	}
	model := config.GetString(cfg, "ANTHROPIC_MODEL", "claude-3-5-haiku-20241022")

	llm, err := anthropic.New(
		anthropic.WithToken(apiKey),
		anthropic.WithModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Anthropic client: %w", err)
	}

	return &AnthropicGenerator{
		llm:    llm,
		logger: log.With().Str("serviceName", "checklistGenerator").Logger(),
	}, nil
}

// Generate sends a single request to the model and parses a numbered list
// out of its free-text reply. No streaming, no retry; callers own the
// deadline on ctx.
func (g *AnthropicGenerator) Generate(ctx context.Context, brief ProjectBrief) ([]string, error) {
	prompt := buildChecklistPrompt(brief)

	g.logger.Debug().Str("project", brief.Name).Msg("Requesting checklist generation")

	raw, err := llms.GenerateFromSinglePrompt(ctx, g.llm, prompt,
		llms.WithTemperature(0.2),
		llms.WithMaxTokens(1024),
	)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, errs.NewGenerationTimeoutError(err)
		}
		return nil, errs.NewGenerationError(err)
	}

	items := ParseChecklist(raw)
	g.logger.Info().
		Str("project", brief.Name).
		Int("itemCount", len(items)).
		Msg("Checklist generated")

	return items, nil
}

func buildChecklistPrompt(brief ProjectBrief) string {
	var b strings.Builder
	b.WriteString("You are a software delivery expert.\n")
	b.WriteString("Generate a detailed checklist (10 to 14 items) for planning and delivering a project with these characteristics:\n\n")
	fmt.Fprintf(&b, "- Project name: %s\n", brief.Name)
	fmt.Fprintf(&b, "- Description: %s\n", brief.Description)
	fmt.Fprintf(&b, "- Project type: %s\n", brief.Type)
	fmt.Fprintf(&b, "- Main technologies: %s\n", strings.Join(brief.Technologies, ", "))
	fmt.Fprintf(&b, "- Objectives: %s\n", brief.Objectives)
	if brief.Deadline != "" {
		fmt.Fprintf(&b, "- Deadline: %s\n", brief.Deadline)
	}
	b.WriteString("\nThe checklist must be practical and cover planning, authentication, core logic, integrations, code quality and delivery.\n")
	b.WriteString("Reply strictly in this format:\n")
	b.WriteString("CHECKLIST:\n1. [Most important step]\n2. [Next step]\n...\n")
	b.WriteString("(Do not include any extra text, only the clear numbered list.)")
	return b.String()
}

var (
	numberedPrefix = regexp.MustCompile(`^\d+(\.|\))`)
	denseSplit     = regexp.MustCompile(`[0-9]+\.`)
)

// ParseChecklist extracts item descriptions from the model's reply.
// Primary path: one item per line, numbering stripped, blank lines and the
// CHECKLIST: header dropped. If fewer than 4 items survive, the reply is
// assumed to be densely formatted and re-split on the numbering itself.
// Best effort: may return fewer items than the model produced, including
// an empty list.
func ParseChecklist(raw string) []string {
	var items []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(numberedPrefix.ReplaceAllString(strings.TrimSpace(line), ""))
		if line == "" || strings.HasPrefix(strings.ToLower(line), "checklist:") {
			continue
		}
		items = append(items, line)
	}

	if len(items) < 4 {
		items = items[:0]
		for _, part := range denseSplit.Split(raw, -1) {
			part = strings.TrimSpace(part)
			if part == "" || strings.EqualFold(part, "checklist:") {
				continue
			}
			items = append(items, part)
		}
	}

	return items
}
