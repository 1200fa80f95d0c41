package contract

import "context"

type Handler interface {
	Handle(ctx context.Context, req RequestContext) (HandlerResult, error)
}

type Registry interface {
	Assessment() Handler
	Interview() Handler
}

// KnowledgeStore is a read-only view over the job catalog, the role to
// assessment-link map and the tip corpus. A missing key is reported through
// the boolean result and is never an error.
type KnowledgeStore interface {
	LookupJob(id string) (JobPosting, bool)
	LookupLink(role string) (string, bool)
	MatchTip(text string) (TipEntry, bool)
	Tip(keyword string) (string, bool)
}

// TextGenerator is the external text-generation boundary.
type TextGenerator interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

type Observer interface {
	Observe(ctx context.Context, evt Event)
}
