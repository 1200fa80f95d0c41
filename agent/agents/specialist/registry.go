package specialist

import (
	contractx "github.com/tanpawarit/Recruitment-Dispatcher/agent/contract"
	toolx "github.com/tanpawarit/Recruitment-Dispatcher/agent/tool"
)

type registryImpl struct {
	assessment contractx.Handler
	interview  contractx.Handler
}

func (r *registryImpl) Assessment() contractx.Handler {
	return r.assessment
}

func (r *registryImpl) Interview() contractx.Handler {
	return r.interview
}

// NewRegistry wires both handlers onto a single shared toolset.
func NewRegistry(tools *toolx.Toolset, obs contractx.Observer) contractx.Registry {
	return &registryImpl{
		assessment: NewAssessment(tools, obs),
		interview:  NewInterview(tools, obs),
	}
}
