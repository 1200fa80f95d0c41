package specialist

import (
	"context"
	"strconv"
	"time"

	contractx "github.com/tanpawarit/Recruitment-Dispatcher/agent/contract"
	promptx "github.com/tanpawarit/Recruitment-Dispatcher/agent/prompt"
)

const DefaultTimeLimitMinutes = 60

// AssessmentHandler drafts the assessment invitation. Link resolution falls
// back to the generic link, so Handle never fails.
type AssessmentHandler struct {
	links     LinkResolver
	template  string
	timeLimit int
	obs       contractx.Observer
	now       func() time.Time
}

func NewAssessment(links LinkResolver, obs contractx.Observer) *AssessmentHandler {
	return &AssessmentHandler{
		links:     links,
		template:  promptx.LoadPromptSet().Assessment,
		timeLimit: DefaultTimeLimitMinutes,
		obs:       defaultObserver(obs),
		now:       time.Now,
	}
}

func (h *AssessmentHandler) Handle(ctx context.Context, req contractx.RequestContext) (contractx.HandlerResult, error) {
	link := h.links.LookupAssessmentLink(ctx, req.JobTitle)

	message := promptx.Render(h.template, map[string]string{
		"CANDIDATE_NAME": req.CandidateName,
		"JOB_TITLE":      req.JobTitle,
		"LINK":           link,
		"TIME_LIMIT":     strconv.Itoa(h.timeLimit),
	})
	emitDrafted(ctx, h.obs, contractx.HandlerAssessment, req, message)

	return contractx.HandlerResult{
		Message: message,
		Metadata: contractx.Metadata{
			Handler:   contractx.HandlerAssessment,
			Link:      link,
			Timestamp: nowUTC(h.now),
		},
	}, nil
}
