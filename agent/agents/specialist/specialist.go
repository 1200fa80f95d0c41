package specialist

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	contractx "github.com/tanpawarit/Recruitment-Dispatcher/agent/contract"
	"github.com/tanpawarit/Recruitment-Dispatcher/agent/observe"
	toolx "github.com/tanpawarit/Recruitment-Dispatcher/agent/tool"
)

// LinkResolver is the slice of the tool layer the assessment handler needs.
type LinkResolver interface {
	LookupAssessmentLink(ctx context.Context, role string) string
}

// CoachingTools is the slice of the tool layer the interview handler needs.
type CoachingTools interface {
	RetrieveContext(ctx context.Context, query string) string
	GenerateTip(ctx context.Context, description string, preferExternal bool) toolx.Tip
}

var (
	_ LinkResolver  = (*toolx.Toolset)(nil)
	_ CoachingTools = (*toolx.Toolset)(nil)
)

func emitDrafted(ctx context.Context, obs contractx.Observer, handler contractx.HandlerID, req contractx.RequestContext, message string) {
	observe.Emit(ctx, obs, zerolog.InfoLevel, "handler.message_drafted", map[string]any{
		"handler":        string(handler),
		"candidate":      req.CandidateName,
		"job_id":         req.JobID,
		"message_length": utf8.RuneCountInString(message),
	})
}

func defaultObserver(obs contractx.Observer) contractx.Observer {
	if obs == nil {
		return observe.Nop{}
	}
	return obs
}

func nowUTC(now func() time.Time) time.Time {
	return now().UTC()
}
