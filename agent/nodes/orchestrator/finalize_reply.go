package orchestratornode

import (
	"fmt"
	"strings"

	contractx "github.com/tanpawarit/Recruitment-Dispatcher/agent/contract"
)

func FinalizeReply(in *GraphState) (GraphOutput, error) {
	if in == nil {
		return GraphOutput{}, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	if strings.TrimSpace(in.Result.Message) == "" {
		return GraphOutput{}, fmt.Errorf("%w: handler=%s returned empty message", contractx.ErrValidation, in.Handler)
	}
	return GraphOutput{Result: in.Result}, nil
}
