package cmd

import (
	"os"

	"github.com/spf13/cobra"

	logger "github.com/envlock-dev/envlock/internal/logging"
)

var (
	verbose      bool
	debug        bool
	identityFlag string
	Logger       logger.Logger

	rootCmd = &cobra.Command{
		Use:   "envlock",
		Short: "Secrets without servers",
		Long: `Envlock stores a team's secrets, encrypted, in a single .envlock file
that lives alongside your source. Any current team member's local
identity key decrypts them; no server is involved.

Team mutations (adding, removing, or rotating members) re-encrypt
every secret to exactly the current team, atomically.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing envlock with verbose=%t, debug=%t", verbose, debug)
		},
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&identityFlag, "identity", "", "identity key file to use for this command")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(lsCmd)
	rootCmd.AddCommand(memberCmd)
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
