package orchestrator

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"
	"github.com/rs/zerolog"
	contractx "github.com/tanpawarit/Recruitment-Dispatcher/agent/contract"
	nodex "github.com/tanpawarit/Recruitment-Dispatcher/agent/nodes/orchestrator"
	"github.com/tanpawarit/Recruitment-Dispatcher/agent/observe"
)

const (
	nodeValidateRequest = "validate_request"
	nodeResolveJob      = "resolve_job"
	nodeAssessment      = "assessment_handler"
	nodeInterview       = "interview_handler"
)

func (d *Dispatcher) compileDispatchGraph(
	ctx context.Context,
) (compose.Runnable[nodex.GraphInput, nodex.GraphOutput], error) {
	graph := compose.NewGraph[nodex.GraphInput, nodex.GraphOutput]()

	if err := graph.AddLambdaNode(nodeValidateRequest,
		compose.InvokableLambda(func(ctx context.Context, in nodex.GraphInput) (*nodex.GraphState, error) {
			return nodex.ValidateRequest(in, d.now)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node %s: %w", nodeValidateRequest, err)
	}

	if err := graph.AddLambdaNode(nodeResolveJob,
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.ResolveJob(ctx, in, d.store, d.obs)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node %s: %w", nodeResolveJob, err)
	}

	for node, handlerID := range map[string]contractx.HandlerID{
		nodeAssessment: contractx.HandlerAssessment,
		nodeInterview:  contractx.HandlerInterview,
	} {
		if err := graph.AddLambdaNode(node,
			compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (nodex.GraphOutput, error) {
				st, err := nodex.DispatchSpecialist(ctx, in, handlerID, d.models)
				if err != nil {
					return nodex.GraphOutput{}, err
				}
				return nodex.FinalizeReply(st)
			}),
		); err != nil {
			return nil, fmt.Errorf("add node %s: %w", node, err)
		}
		if err := graph.AddEdge(node, compose.END); err != nil {
			return nil, fmt.Errorf("add edge %s->end: %w", node, err)
		}
	}

	branch := compose.NewGraphBranch(
		func(ctx context.Context, in *nodex.GraphState) (string, error) {
			if in == nil {
				return "", fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
			}
			handlerID := Route(string(in.Request.Status))
			observe.Emit(ctx, d.obs, zerolog.DebugLevel, "dispatch.routed", map[string]any{
				"status":  string(in.Request.Status),
				"handler": string(handlerID),
			})
			if handlerID == contractx.HandlerAssessment {
				return nodeAssessment, nil
			}
			return nodeInterview, nil
		},
		map[string]bool{
			nodeAssessment: true,
			nodeInterview:  true,
		},
	)
	if err := graph.AddBranch(nodeResolveJob, branch); err != nil {
		return nil, fmt.Errorf("add router branch: %w", err)
	}

	edges := [][2]string{
		{compose.START, nodeValidateRequest},
		{nodeValidateRequest, nodeResolveJob},
	}
	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("orchestrator.dispatch"))
	if err != nil {
		return nil, fmt.Errorf("compile dispatch graph: %w", err)
	}
	return runner, nil
}
