package orchestratornode

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	contractx "github.com/tanpawarit/Recruitment-Dispatcher/agent/contract"
	"github.com/tanpawarit/Recruitment-Dispatcher/agent/knowledge"
	"github.com/tanpawarit/Recruitment-Dispatcher/agent/observe"
)

// ResolveJob fills the job title and description. An unknown id is not an
// error: the generic posting is used instead.
func ResolveJob(
	ctx context.Context,
	in *GraphState,
	store contractx.KnowledgeStore,
	obs contractx.Observer,
) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	job, ok := store.LookupJob(in.Request.JobID)
	if !ok {
		job = knowledge.GenericJob(in.Request.JobID)
		observe.Emit(ctx, obs, zerolog.WarnLevel, "dispatch.job_not_found", map[string]any{
			"dispatch_id": in.DispatchID,
			"job_id":      in.Request.JobID,
			"job_title":   job.Title,
		})
	}

	in.JobFound = ok
	in.Request.JobTitle = job.Title
	in.Request.JobDescription = job.Description
	return in, nil
}
