package tool

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	contractx "github.com/tanpawarit/Recruitment-Dispatcher/agent/contract"
	"github.com/tanpawarit/Recruitment-Dispatcher/agent/observe"
	promptx "github.com/tanpawarit/Recruitment-Dispatcher/agent/prompt"
)

const (
	NoTipsFoundMessage = "No specific tips found. General advice: Review the job description carefully and prepare examples from your past experience."

	DefaultSnippetLimit    = 150
	DefaultExternalTimeout = 15 * time.Second
	DefaultMaxOutputTokens = 100

	truncationMarker = "..."
)

type Options struct {
	// ExternalTimeout bounds a single external generator call.
	ExternalTimeout time.Duration
	MaxOutputTokens int
	Instruction     string
	SnippetLimit    int
}

// Toolset is the tool layer shared by the specialist handlers. It holds no
// mutable state and is safe for concurrent use.
type Toolset struct {
	store     contractx.KnowledgeStore
	generator contractx.TextGenerator
	obs       contractx.Observer
	opts      Options
}

// New builds a Toolset. A nil generator disables the external tier.
func New(store contractx.KnowledgeStore, generator contractx.TextGenerator, obs contractx.Observer, opts Options) *Toolset {
	if obs == nil {
		obs = observe.Nop{}
	}
	if opts.ExternalTimeout <= 0 {
		opts.ExternalTimeout = DefaultExternalTimeout
	}
	if opts.MaxOutputTokens <= 0 {
		opts.MaxOutputTokens = DefaultMaxOutputTokens
	}
	if opts.Instruction == "" {
		opts.Instruction = promptx.LoadPromptSet().TipInstruction
	}
	if opts.SnippetLimit <= 0 {
		opts.SnippetLimit = DefaultSnippetLimit
	}
	return &Toolset{
		store:     store,
		generator: generator,
		obs:       obs,
		opts:      opts,
	}
}

// LookupAssessmentLink always returns a link, falling back to the store's
// generic link for unmapped roles.
func (t *Toolset) LookupAssessmentLink(ctx context.Context, role string) string {
	link, mapped := t.store.LookupLink(role)
	observe.Emit(ctx, t.obs, zerolog.DebugLevel, "tool.assessment_link", map[string]any{
		"role":   role,
		"link":   link,
		"mapped": mapped,
	})
	return link
}

// RetrieveContext returns a snippet for query. A known job id yields the title
// and the truncated description; anything else is matched against the tip
// corpus as free text.
func (t *Toolset) RetrieveContext(ctx context.Context, query string) string {
	if job, ok := t.store.LookupJob(query); ok {
		snippet := job.Title + ": " + Truncate(job.Description, t.opts.SnippetLimit)
		t.emitContext(ctx, query, "job", snippet)
		return snippet
	}

	if tip, ok := t.store.MatchTip(query); ok {
		t.emitContext(ctx, query, "tip:"+tip.Keyword, tip.Text)
		return tip.Text
	}

	t.emitContext(ctx, query, "none", NoTipsFoundMessage)
	return NoTipsFoundMessage
}

func (t *Toolset) emitContext(ctx context.Context, query, match, snippet string) {
	observe.Emit(ctx, t.obs, zerolog.DebugLevel, "tool.context_retrieved", map[string]any{
		"query":          query,
		"match":          match,
		"snippet_length": utf8.RuneCountInString(snippet),
	})
}

// Truncate caps s at limit runes and appends "..." when it had to cut.
func Truncate(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit]) + truncationMarker
}
