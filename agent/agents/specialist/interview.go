package specialist

import (
	"context"
	"time"

	contractx "github.com/tanpawarit/Recruitment-Dispatcher/agent/contract"
	promptx "github.com/tanpawarit/Recruitment-Dispatcher/agent/prompt"
)

// InterviewHandler drafts the interview coaching message from a context
// snippet and a tip produced by the tiered tip policy.
type InterviewHandler struct {
	tools    CoachingTools
	template string
	obs      contractx.Observer
	now      func() time.Time
}

func NewInterview(tools CoachingTools, obs contractx.Observer) *InterviewHandler {
	return &InterviewHandler{
		tools:    tools,
		template: promptx.LoadPromptSet().Interview,
		obs:      defaultObserver(obs),
		now:      time.Now,
	}
}

func (h *InterviewHandler) Handle(ctx context.Context, req contractx.RequestContext) (contractx.HandlerResult, error) {
	snippet := h.tools.RetrieveContext(ctx, req.JobID)
	tip := h.tools.GenerateTip(ctx, req.JobDescription, req.UseExternalGenerator)

	message := promptx.Render(h.template, map[string]string{
		"CANDIDATE_NAME": req.CandidateName,
		"JOB_TITLE":      req.JobTitle,
		"TIP":            tip.Text,
		"CONTEXT":        snippet,
	})
	emitDrafted(ctx, h.obs, contractx.HandlerInterview, req, message)

	return contractx.HandlerResult{
		Message: message,
		Metadata: contractx.Metadata{
			Handler:   contractx.HandlerInterview,
			Tip:       tip.Text,
			TipSource: tip.Source,
			Timestamp: nowUTC(h.now),
		},
	}, nil
}
