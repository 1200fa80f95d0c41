package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	configx "github.com/tanpawarit/Recruitment-Dispatcher/pkg/config"
	logx "github.com/tanpawarit/Recruitment-Dispatcher/pkg/logger"
)

const app = "recruit-dispatch"

var (
	envFile string

	rootCmd = &cobra.Command{
		Use:           app,
		Short:         "recruit-dispatch drafts candidate notifications for assessment and interview stages",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			configx.SetEnvFile(envFile)
			_, err := initLogger()
			return err
		},
	}
)

// Execute runs the root command with a context cancelled on SIGINT/SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		log.Error().Err(err).Str("event", "cli.failed").Send()
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", "", "path to .env file (default is .env in current directory when present)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().Bool("pretty", false, "human readable console logs instead of JSON")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("pretty", rootCmd.PersistentFlags().Lookup("pretty"))
}

// initLogger merges LOG_* settings with the command line flags. A flag can
// only switch a setting on.
func initLogger() (zerolog.Logger, error) {
	conf, err := configx.New[logx.Config]("LOG")
	if err != nil {
		return zerolog.Nop(), err
	}
	if viper.GetBool("debug") {
		conf.Debug = true
	}
	if viper.GetBool("pretty") {
		conf.PrettyFormat = true
	}
	return logx.Init(*conf), nil
}
