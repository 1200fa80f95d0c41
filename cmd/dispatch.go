package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	orchestratorx "github.com/tanpawarit/Recruitment-Dispatcher/agent/agents/orchestrator"
)

var dispatchCmd = &cobra.Command{
	Use:   "dispatch",
	Short: "Draft the notification for one candidate status update",
	Example: `  recruit-dispatch dispatch --name "Sarah Johnson" --contact sarah@example.com --status Assessment --job J123
  recruit-dispatch dispatch --name "Mike Chen" --contact mike@example.com --status Interview --job J456 --external --json`,
	RunE: runDispatch,
}

func init() {
	rootCmd.AddCommand(dispatchCmd)

	dispatchCmd.Flags().StringP("name", "n", "", "candidate name")
	dispatchCmd.Flags().StringP("contact", "c", "", "candidate contact (email or phone)")
	dispatchCmd.Flags().StringP("status", "s", "", `candidate status; "Assessment" routes to the assessment handler, anything else to the interview handler`)
	dispatchCmd.Flags().StringP("job", "j", "", "job id")
	dispatchCmd.Flags().Bool("external", false, "try the external tip generator first")
	dispatchCmd.Flags().Bool("json", false, "print the message with its metadata as JSON")
	dispatchCmd.Flags().String("publish", "", "publish the JSON result to this destination URL through QStash")

	_ = dispatchCmd.MarkFlagRequired("name")
	_ = dispatchCmd.MarkFlagRequired("contact")
}

func runDispatch(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	flags := cmd.Flags()

	name, _ := flags.GetString("name")
	contact, _ := flags.GetString("contact")
	status, _ := flags.GetString("status")
	job, _ := flags.GetString("job")
	external, _ := flags.GetBool("external")
	asJSON, _ := flags.GetBool("json")
	destination, _ := flags.GetString("publish")

	rt, err := buildRuntime(ctx)
	if err != nil {
		return err
	}

	result, err := rt.dispatcher.DispatchResult(ctx, orchestratorx.Request{
		CandidateName:        name,
		CandidateContact:     contact,
		Status:               status,
		JobID:                job,
		UseExternalGenerator: external,
	})
	if err != nil {
		return err
	}

	if destination != "" {
		publisher, err := newPublisher()
		if err != nil {
			return err
		}
		body, err := json.Marshal(result)
		if err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		messageID, err := publisher.Publish(ctx, destination, body)
		if err != nil {
			return err
		}
		log.Info().
			Str("event", "dispatch.published").
			Str("destination", destination).
			Str("message_id", messageID).
			Send()
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	_, err = fmt.Fprintln(out, result.Message)
	return err
}
