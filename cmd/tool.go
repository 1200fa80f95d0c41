package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/cloudwego/eino/schema"
	"github.com/spf13/cobra"
	contractx "github.com/tanpawarit/Recruitment-Dispatcher/agent/contract"
	toolx "github.com/tanpawarit/Recruitment-Dispatcher/agent/tool"
)

var toolCmd = &cobra.Command{
	Use:   "tool <name>",
	Short: "Invoke a single tool from the catalog",
	Long:  "Invoke a single tool from the catalog. Available tools: " + strings.Join(toolx.ToolNames(), ", "),
	Example: `  recruit-dispatch tool context.retrieve --arg query=J123
  recruit-dispatch tool tip.generate --arg description="React and TypeScript" --arg prefer_external=true`,
	Args: cobra.ExactArgs(1),
	RunE: runTool,
}

func init() {
	rootCmd.AddCommand(toolCmd)

	toolCmd.Flags().StringToString("arg", nil, "tool argument as key=value, repeatable")
}

func runTool(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	name := args[0]

	handler, ok := toolx.HandlerForTool(name)
	if !ok {
		return fmt.Errorf("unknown tool %q, available: %s", name, strings.Join(toolx.ToolNames(), ", "))
	}

	raw, _ := cmd.Flags().GetStringToString("arg")
	toolArgs, err := parseToolArgs(name, raw)
	if err != nil {
		return err
	}

	rt, err := buildRuntime(ctx)
	if err != nil {
		return err
	}

	_, execute := toolx.BuildForHandler(handler, rt.tools)
	result, err := execute(ctx, name, toolArgs)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// parseToolArgs converts only the arguments the tool declares as booleans.
// Everything else stays a string, so a query of "1" is still a query.
func parseToolArgs(tool string, raw map[string]string) (map[string]any, error) {
	args := make(map[string]any, len(raw))
	for k, v := range raw {
		if typ, ok := toolx.ParamType(tool, k); ok && typ == schema.Boolean {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return nil, fmt.Errorf("%w: tool=%s argument %q must be a boolean", contractx.ErrValidation, tool, k)
			}
			args[k] = b
			continue
		}
		args[k] = v
	}
	return args, nil
}
