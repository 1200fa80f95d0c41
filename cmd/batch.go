package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	orchestratorx "github.com/tanpawarit/Recruitment-Dispatcher/agent/agents/orchestrator"
	contractx "github.com/tanpawarit/Recruitment-Dispatcher/agent/contract"
	"gopkg.in/yaml.v3"
)

type batchFile struct {
	Candidates []orchestratorx.Request `yaml:"candidates"`
}

type batchOutput struct {
	Index     int                     `json:"index"`
	Candidate string                  `json:"candidate"`
	Result    contractx.HandlerResult `json:"result"`
	Error     string                  `json:"error,omitempty"`
}

var batchCmd = &cobra.Command{
	Use:   "batch <candidates.yaml>",
	Short: "Draft notifications for a list of candidates concurrently",
	Args:  cobra.ExactArgs(1),
	RunE:  runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntP("concurrency", "p", 0, "maximum concurrent dispatches (default DISPATCH_BATCH_LIMIT)")
}

func loadBatchFile(path string) ([]orchestratorx.Request, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read batch file: %w", err)
	}
	var f batchFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode batch file: %w", err)
	}
	if len(f.Candidates) == 0 {
		return nil, fmt.Errorf("batch file %q has no candidates", path)
	}
	return f.Candidates, nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	limit, _ := cmd.Flags().GetInt("concurrency")

	reqs, err := loadBatchFile(args[0])
	if err != nil {
		return err
	}

	rt, err := buildRuntime(ctx)
	if err != nil {
		return err
	}

	items, err := rt.dispatcher.DispatchBatch(ctx, reqs, limit)
	if err != nil {
		return err
	}

	failed := 0
	enc := json.NewEncoder(cmd.OutOrStdout())
	for _, item := range items {
		out := batchOutput{
			Index:     item.Index,
			Candidate: item.Request.CandidateName,
			Result:    item.Result,
		}
		if item.Err != nil {
			failed++
			out.Error = item.Err.Error()
		}
		if err := enc.Encode(out); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d candidates failed", failed, len(items))
	}
	return nil
}
