package orchestratornode

import (
	"fmt"
	"strings"
	"time"

	contractx "github.com/tanpawarit/Recruitment-Dispatcher/agent/contract"
)

var (
	ErrInvalidCandidate = fmt.Errorf("%w: candidate name is empty", contractx.ErrValidation)
	ErrInvalidContact   = fmt.Errorf("%w: candidate contact is empty", contractx.ErrValidation)
)

type GraphInput struct {
	DispatchID           string
	CandidateName        string
	CandidateContact     string
	Status               string
	JobID                string
	UseExternalGenerator bool
}

type GraphOutput struct {
	Result contractx.HandlerResult
}

type GraphState struct {
	DispatchID string
	Now        time.Time
	Request    contractx.RequestContext
	JobFound   bool
	Handler    contractx.HandlerID
	Result     contractx.HandlerResult
}

func ValidateRequest(in GraphInput, nowFn func() time.Time) (*GraphState, error) {
	name := strings.TrimSpace(in.CandidateName)
	if name == "" {
		return nil, ErrInvalidCandidate
	}

	contact := strings.TrimSpace(in.CandidateContact)
	if contact == "" {
		return nil, ErrInvalidContact
	}

	return &GraphState{
		DispatchID: in.DispatchID,
		Now:        nowFn().UTC(),
		Request: contractx.RequestContext{
			CandidateName:        name,
			CandidateContact:     contact,
			Status:               contractx.ParseStatus(in.Status),
			JobID:                in.JobID,
			UseExternalGenerator: in.UseExternalGenerator,
		},
	}, nil
}
