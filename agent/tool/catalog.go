package tool

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"
	contractx "github.com/tanpawarit/Recruitment-Dispatcher/agent/contract"
)

const (
	ToolAssessmentLink  = "assessment.lookup_link"
	ToolContextRetrieve = "context.retrieve"
	ToolTipGenerate     = "tip.generate"
)

type Executor func(ctx context.Context, tool string, args map[string]any) (contractx.ToolResult, error)

// BuildForHandler returns the tools a handler may call and an executor bound
// to toolset. Tools outside the handler's set are rejected.
func BuildForHandler(handler contractx.HandlerID, toolset *Toolset) ([]*schema.ToolInfo, Executor) {
	return infosForHandler(handler), NewExecutor(handler, toolset)
}

func NewExecutor(handler contractx.HandlerID, toolset *Toolset) Executor {
	fallback := DefaultExecutor(handler)
	allowed := make(map[string]struct{})
	for _, info := range infosForHandler(handler) {
		allowed[info.Name] = struct{}{}
	}

	return func(ctx context.Context, tool string, args map[string]any) (contractx.ToolResult, error) {
		if _, ok := allowed[tool]; !ok || toolset == nil {
			return fallback(ctx, tool, args)
		}

		switch tool {
		case ToolAssessmentLink:
			role, err := stringArg(tool, args, "role")
			if err != nil {
				return contractx.ToolResult{Tool: tool, Error: err.Error()}, err
			}
			return contractx.ToolResult{Tool: tool, Result: toolset.LookupAssessmentLink(ctx, role)}, nil
		case ToolContextRetrieve:
			query, err := stringArg(tool, args, "query")
			if err != nil {
				return contractx.ToolResult{Tool: tool, Error: err.Error()}, err
			}
			return contractx.ToolResult{Tool: tool, Result: toolset.RetrieveContext(ctx, query)}, nil
		case ToolTipGenerate:
			description, err := stringArg(tool, args, "description")
			if err != nil {
				return contractx.ToolResult{Tool: tool, Error: err.Error()}, err
			}
			preferExternal, _ := args["prefer_external"].(bool)
			return contractx.ToolResult{Tool: tool, Result: toolset.GenerateTip(ctx, description, preferExternal)}, nil
		default:
			return fallback(ctx, tool, args)
		}
	}
}

func DefaultExecutor(handler contractx.HandlerID) Executor {
	return func(_ context.Context, tool string, _ map[string]any) (contractx.ToolResult, error) {
		err := fmt.Errorf("%w: tool=%s is unavailable for handler=%s", contractx.ErrUnknownTool, tool, handler)
		return contractx.ToolResult{
			Tool:  tool,
			Error: err.Error(),
		}, err
	}
}

// ToolNames lists every tool in the catalog, in handler order.
func ToolNames() []string {
	names := make([]string, 0, 3)
	for _, handler := range []contractx.HandlerID{contractx.HandlerAssessment, contractx.HandlerInterview} {
		for _, info := range infosForHandler(handler) {
			names = append(names, info.Name)
		}
	}
	return names
}

// HandlerForTool reports which handler owns the named tool.
func HandlerForTool(tool string) (contractx.HandlerID, bool) {
	for _, handler := range []contractx.HandlerID{contractx.HandlerAssessment, contractx.HandlerInterview} {
		for _, info := range infosForHandler(handler) {
			if info.Name == tool {
				return handler, true
			}
		}
	}
	return "", false
}

func stringArg(tool string, args map[string]any, key string) (string, error) {
	raw, ok := args[key]
	if !ok {
		return "", fmt.Errorf("%w: tool=%s missing argument %q", contractx.ErrValidation, tool, key)
	}
	value, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: tool=%s argument %q must be a string", contractx.ErrValidation, tool, key)
	}
	return strings.TrimSpace(value), nil
}

var toolParams = map[string]map[string]*schema.ParameterInfo{
	ToolAssessmentLink: {
		"role": {Type: schema.String, Desc: "Job title or job id", Required: true},
	},
	ToolContextRetrieve: {
		"query": {Type: schema.String, Desc: "Job id or free-text query", Required: true},
	},
	ToolTipGenerate: {
		"description":     {Type: schema.String, Desc: "Job description", Required: true},
		"prefer_external": {Type: schema.Boolean, Desc: "Try the external text generator first"},
	},
}

// ParamType reports the declared type of a tool argument.
func ParamType(tool, key string) (schema.DataType, bool) {
	info, ok := toolParams[tool][key]
	if !ok {
		return "", false
	}
	return info.Type, true
}

func infosForHandler(handler contractx.HandlerID) []*schema.ToolInfo {
	switch handler {
	case contractx.HandlerAssessment:
		return []*schema.ToolInfo{
			{
				Name:        ToolAssessmentLink,
				Desc:        "Return the assessment link for a role, or the generic link when the role is not mapped.",
				ParamsOneOf: schema.NewParamsOneOfByParams(toolParams[ToolAssessmentLink]),
			},
		}
	case contractx.HandlerInterview:
		return []*schema.ToolInfo{
			{
				Name:        ToolContextRetrieve,
				Desc:        "Retrieve a short context snippet for a job id or free-text query.",
				ParamsOneOf: schema.NewParamsOneOfByParams(toolParams[ToolContextRetrieve]),
			},
			{
				Name:        ToolTipGenerate,
				Desc:        "Produce one interview preparation tip for a job description.",
				ParamsOneOf: schema.NewParamsOneOfByParams(toolParams[ToolTipGenerate]),
			},
		}
	default:
		return nil
	}
}
