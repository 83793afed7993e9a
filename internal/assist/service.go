// Package assist fronts the text-generation provider for the résumé editor.
//
// Every operation is total: provider errors, timeouts and malformed replies
// are logged and replaced by a fallback value, so callers never see an error.
package assist

import (
	"context"
	"encoding/json"
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"resume-builder/internal/llm"
	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/telemetry"
)

const (
	// DefaultRole is used when the résumé has no experience entries.
	DefaultRole = "Professional"
	// DefaultExperienceHint stands in for a years-of-experience figure.
	DefaultExperienceHint = "several"
)

// Service applies prompts and fallbacks around an llm.Completer.
type Service struct {
	completer llm.Completer
	policy    *bluemonday.Policy
}

// NewService constructs the assistant. A nil completer behaves like llm.PlaceholderClient.
func NewService(completer llm.Completer) *Service {
	if completer == nil {
		completer = llm.PlaceholderClient{}
	}
	return &Service{completer: completer, policy: bluemonday.StrictPolicy()}
}

// DraftSummary writes a short professional summary. It returns "" and false
// when the provider fails.
func (s *Service) DraftSummary(ctx context.Context, role, experienceHint string, skills []string) (string, bool) {
	prompt := llm.SummaryPrompt(orDefault(role, DefaultRole), orDefault(experienceHint, DefaultExperienceHint), skills)
	out, err := s.completer.Complete(ctx, prompt, llm.CompleteOptions{})
	if err != nil {
		fallback("summary", map[string]any{"err": err})
		return "", false
	}
	text := s.clean(out)
	if text == "" {
		fallback("summary", map[string]any{"reason": "empty"})
		return "", false
	}
	return text, true
}

// RewriteBullet strengthens one achievement line. On failure the original
// bullet is returned unchanged together with false.
func (s *Service) RewriteBullet(ctx context.Context, bullet, role string) (string, bool) {
	if strings.TrimSpace(bullet) == "" {
		return bullet, false
	}
	out, err := s.completer.Complete(ctx, llm.BulletPrompt(bullet, orDefault(role, DefaultRole)), llm.CompleteOptions{})
	if err != nil {
		fallback("bullet", map[string]any{"err": err})
		return bullet, false
	}
	text := strings.Trim(s.clean(out), `"`)
	if text == "" {
		fallback("bullet", map[string]any{"reason": "empty"})
		return bullet, false
	}
	return text, true
}

// SuggestSkills proposes skill names for role. Any provider failure or reply
// that is not a JSON array of strings yields an empty, non-nil slice.
func (s *Service) SuggestSkills(ctx context.Context, role string) ([]string, bool) {
	out, err := s.completer.Complete(ctx, llm.SkillsPrompt(orDefault(role, DefaultRole)), llm.CompleteOptions{JSON: true})
	if err != nil {
		fallback("skills", map[string]any{"err": err})
		return []string{}, false
	}
	names, ok := parseSkillList(out)
	if !ok {
		fallback("skills", map[string]any{"reason": "malformed"})
		return []string{}, false
	}
	cleaned := make([]string, 0, len(names))
	for _, name := range names {
		if c := s.clean(name); c != "" {
			cleaned = append(cleaned, c)
		}
	}
	return cleaned, true
}

var fencePattern = regexp.MustCompile("(?s)^```[a-zA-Z]*\\s*(.*?)\\s*```$")

func parseSkillList(raw string) ([]string, bool) {
	raw = strings.TrimSpace(raw)
	if m := fencePattern.FindStringSubmatch(raw); m != nil {
		raw = m[1]
	}
	var items []any
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		name, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, name)
	}
	return out, true
}

// clean strips markup and returns plain text.
func (s *Service) clean(raw string) string {
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(raw)))
}

func fallback(op string, fields map[string]any) {
	metrics.IncAssistFallback(op)
	fields["op"] = op
	telemetry.Warn("assist.fallback", fields)
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
