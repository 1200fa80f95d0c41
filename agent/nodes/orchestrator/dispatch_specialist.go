package orchestratornode

import (
	"context"
	"fmt"

	contractx "github.com/tanpawarit/Recruitment-Dispatcher/agent/contract"
)

func DispatchSpecialist(
	ctx context.Context,
	in *GraphState,
	handlerID contractx.HandlerID,
	models contractx.Registry,
) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	handler, err := pickHandler(handlerID, models)
	if err != nil {
		return nil, err
	}

	result, err := handler.Handle(ctx, in.Request)
	if err != nil {
		return nil, err
	}
	if result.Metadata.Handler == "" {
		result.Metadata.Handler = handlerID
	}
	result.Metadata.DispatchID = in.DispatchID
	if result.Metadata.Timestamp.IsZero() {
		result.Metadata.Timestamp = in.Now
	}

	in.Handler = handlerID
	in.Result = result
	return in, nil
}

func pickHandler(handlerID contractx.HandlerID, models contractx.Registry) (contractx.Handler, error) {
	var handler contractx.Handler
	switch handlerID {
	case contractx.HandlerAssessment:
		handler = models.Assessment()
	case contractx.HandlerInterview:
		handler = models.Interview()
	default:
		return nil, fmt.Errorf("%w: unsupported handler=%q", contractx.ErrValidation, handlerID)
	}
	if handler == nil {
		return nil, fmt.Errorf("%w: handler=%s is not registered", contractx.ErrValidation, handlerID)
	}
	return handler, nil
}
