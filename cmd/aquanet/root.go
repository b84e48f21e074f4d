package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hkroes/aquanet/pkg/logging"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitInvalid   = 2 // validation found violations
)

var flagLogLevel string

var rootCmd = &cobra.Command{
	Use:           "aquanet",
	Short:         "Aquanet prepares and validates hydraulic network model bundles",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := viper.GetString("log_level")
		logging.SetDefaultLogger(logging.NewJSONLogger(cmd.ErrOrStderr(), logging.ParseLevel(level)))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "log level (debug, info, warn, error)")

	viper.SetEnvPrefix("AQUANET")
	viper.AutomaticEnv()
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(infoCmd)
}
