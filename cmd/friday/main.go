// Command friday runs the FRIDAY assistant as an HTTP service, a
// terminal chat or a one-shot query.
package main

import (
	"os"

	"github.com/phuslu/log"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("friday failed")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts appOptions
	rootCmd := &cobra.Command{
		Use:           "friday",
		Short:         "Rule-based assistant with stock and mutual fund analysis",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", envOr("CONFIG_PATH", "configs/config.yaml"), "path to the YAML config file")
	rootCmd.PersistentFlags().StringVar(&opts.envPath, "env", ".env", "path to the .env file")

	rootCmd.AddCommand(newServeCmd(&opts))
	rootCmd.AddCommand(newChatCmd(&opts))
	rootCmd.AddCommand(newAskCmd(&opts))
	return rootCmd
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
