package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"jobscout/internal/ai"
	"jobscout/internal/gaps"
	"jobscout/internal/logger"
	"jobscout/internal/posting"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

//go:embed prompt.md
var promptTemplate string

const defaultMaxLogLength = 200

// Advisor asks Gemini for posting-specific resume edits covering the gaps
// the static analyzer found.
type Advisor struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewAdvisor(generator contentGenerator, log *zap.Logger, maxLogLength int) *Advisor {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	return &Advisor{generator: generator, logger: log, maxLogLen: maxLogLength}
}

func (a *Advisor) Advise(ctx context.Context, p *posting.Posting, entries []gaps.Entry, resumeText string) ([]ai.Advice, error) {
	if p == nil {
		return nil, fmt.Errorf("posting is required")
	}

	open := make([]gaps.Entry, 0, len(entries))
	for _, e := range entries {
		if e.Delta > 0 {
			open = append(open, e)
		}
	}
	if len(open) == 0 {
		return nil, nil
	}

	gapsJSON, err := json.MarshalIndent(open, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal gap entries: %w", err)
	}

	prompt := buildPrompt(p, string(gapsJSON), resumeText)

	a.logger.Debug("gemini advise request",
		zap.String("posting_id", p.ID),
		zap.Int("open_gaps", len(open)),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, a.maxLogLen)),
	)

	raw, err := a.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("gemini advise response",
		zap.String("posting_id", p.ID),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, a.maxLogLen)),
	)

	return parseResponse(raw)
}

func buildPrompt(p *posting.Posting, gapsJSON, resumeText string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Job:\n{{JOB_TITLE}} at {{JOB_COMPANY}}\n\nGaps:\n{{GAPS_JSON}}\n\nResume:\n{{RESUME_TEXT}}\n\nJSON Response:"
	}
	out := strings.ReplaceAll(template, "{{JOB_TITLE}}", p.Title)
	out = strings.ReplaceAll(out, "{{JOB_COMPANY}}", p.Company)
	out = strings.ReplaceAll(out, "{{JOB_DESCRIPTION}}", p.Description)
	out = strings.ReplaceAll(out, "{{GAPS_JSON}}", gapsJSON)
	out = strings.ReplaceAll(out, "{{RESUME_TEXT}}", resumeText)
	return out
}

func parseResponse(raw string) ([]ai.Advice, error) {
	cleaned := extractJSON(strings.TrimSpace(raw))

	var items []map[string]any
	if err := json.Unmarshal([]byte(cleaned), &items); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	advice := make([]ai.Advice, 0, len(items))
	for _, item := range items {
		a := ai.Advice{
			Bucket:     coerceString(item["bucket"]),
			Suggestion: coerceString(item["suggestion"]),
			Bullet:     coerceString(item["bullet"]),
			Raw:        raw,
		}
		if a.Bucket == "" && a.Suggestion == "" {
			continue
		}
		advice = append(advice, a)
	}
	return advice, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	default:
		if v == nil {
			return ""
		}
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}
