package orchestrator

import (
	contractx "github.com/tanpawarit/Recruitment-Dispatcher/agent/contract"
)

// Route is total: only "assessment" (any case) selects the assessment
// handler, everything else goes to the interview handler.
func Route(status string) contractx.HandlerID {
	if contractx.ParseStatus(status) == contractx.StatusAssessment {
		return contractx.HandlerAssessment
	}
	return contractx.HandlerInterview
}
