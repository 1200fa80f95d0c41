package tool

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	contractx "github.com/tanpawarit/Recruitment-Dispatcher/agent/contract"
	"github.com/tanpawarit/Recruitment-Dispatcher/agent/observe"
)

const (
	ReviewCoreConceptsMessage = "Review the core concepts for this role."
	GenericPrepMessage        = "Study the job requirements and prepare concrete examples from your experience."
)

// TipKeywords is scanned in this order; the first keyword found in a job
// description decides the tip. Reordering changes output for descriptions
// that mention several keywords.
var TipKeywords = []string{"python", "sql", "react", "kubernetes", "fastapi"}

type Tip struct {
	Text    string              `json:"text"`
	Source  contractx.TipSource `json:"source"`
	Keyword string              `json:"keyword,omitempty"`
}

type tipTier struct {
	source  contractx.TipSource
	attempt func(ctx context.Context, description string, preferExternal bool) (Tip, bool)
}

// GenerateTip walks the tiers in order and returns the first success. The
// generic tier always succeeds, so the result is never empty.
func (t *Toolset) GenerateTip(ctx context.Context, description string, preferExternal bool) Tip {
	tiers := []tipTier{
		{source: contractx.TipSourceExternal, attempt: t.externalTip},
		{source: contractx.TipSourceKeyword, attempt: t.keywordTip},
		{source: contractx.TipSourceGeneric, attempt: t.genericTip},
	}

	for _, tier := range tiers {
		tip, ok := tier.attempt(ctx, description, preferExternal)
		if !ok {
			continue
		}
		observe.Emit(ctx, t.obs, zerolog.DebugLevel, "tool.tip_generated", map[string]any{
			"source":  string(tier.source),
			"keyword": tip.Keyword,
		})
		return tip
	}

	// unreachable: genericTip never fails
	return Tip{Text: GenericPrepMessage, Source: contractx.TipSourceGeneric}
}

func (t *Toolset) externalTip(ctx context.Context, description string, preferExternal bool) (Tip, bool) {
	if !preferExternal {
		return Tip{}, false
	}
	if t.generator == nil {
		observe.Emit(ctx, t.obs, zerolog.InfoLevel, "tool.external_skipped", map[string]any{
			"reason": "no generator credential configured",
		})
		return Tip{}, false
	}

	text, err := t.callExternal(ctx, contractx.GenerateRequest{
		Description:     description,
		Instruction:     t.opts.Instruction,
		MaxOutputTokens: t.opts.MaxOutputTokens,
	})
	if err != nil {
		observe.Emit(ctx, t.obs, zerolog.WarnLevel, "tool.external_failed", map[string]any{
			"error":    err.Error(),
			"fallback": string(contractx.TipSourceKeyword),
		})
		return Tip{}, false
	}
	return Tip{Text: text, Source: contractx.TipSourceExternal}, true
}

// callExternal runs the generator under a deadline. The caller stops waiting
// at the deadline even if the generator ignores context cancellation.
func (t *Toolset) callExternal(ctx context.Context, req contractx.GenerateRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.opts.ExternalTimeout)
	defer cancel()

	type outcome struct {
		text string
		err  error
	}
	done := make(chan outcome, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("%w: generator panic: %v", contractx.ErrModelInvoke, r)}
			}
		}()
		text, err := t.generator.Generate(ctx, req)
		done <- outcome{text: text, err: err}
	}()

	select {
	case out := <-done:
		if out.err != nil {
			return "", out.err
		}
		text := strings.TrimSpace(out.text)
		if text == "" {
			return "", fmt.Errorf("%w: generator returned empty text", contractx.ErrModelInvoke)
		}
		return text, nil
	case <-ctx.Done():
		return "", fmt.Errorf("%w: %v", contractx.ErrModelInvoke, ctx.Err())
	}
}

func (t *Toolset) keywordTip(_ context.Context, description string, _ bool) (Tip, bool) {
	lower := strings.ToLower(description)
	for _, keyword := range TipKeywords {
		if !strings.Contains(lower, keyword) {
			continue
		}
		text, ok := t.store.Tip(keyword)
		if !ok {
			text = ReviewCoreConceptsMessage
		}
		return Tip{Text: text, Source: contractx.TipSourceKeyword, Keyword: keyword}, true
	}
	return Tip{}, false
}

func (t *Toolset) genericTip(context.Context, string, bool) (Tip, bool) {
	return Tip{Text: GenericPrepMessage, Source: contractx.TipSourceGeneric}, true
}
