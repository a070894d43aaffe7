package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/envlock-dev/envlock/internal/identity"
	"github.com/envlock-dev/envlock/internal/store"
	"github.com/envlock-dev/envlock/internal/ui"
	"github.com/envlock-dev/envlock/internal/workflows"
)

var envFlag string

func init() {
	setCmd.Flags().StringVarP(&envFlag, "env", "e", store.DefaultEnvName, "environment to store the secret in")
}

var setCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Encrypt and store a secret key/value pair",
	Long: `Encrypts VALUE to every current team member and stores it under KEY.

Key names use uppercase letters, digits, and underscores, and must not
start with a digit.

Examples:
  envlock set DATABASE_URL postgres://localhost/dev
  envlock set API_KEY shhh`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		bundle, err := resolveIdentity()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load identity: %v", err)
		}
		storePath, err := workingStorePath()
		if err != nil {
			return Logger.ErrorfAndReturn("%v", err)
		}

		spinner, cleanup := startSpinner("Encrypting secret...", verbose)
		defer cleanup()

		result, err := workflows.Set(context.Background(), workflows.SetOptions{
			StorePath: storePath,
			Identity:  bundle,
			Username:  identity.DetectUsername(),
			Env:       envFlag,
			Key:       key,
			Value:     value,
		})
		if err != nil {
			return Logger.ErrorfAndReturn("failed to set %s: %v", key, err)
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " " + fmt.Sprintf(
			"Encrypted %s for %d recipient%s %s",
			ui.Highlight.Sprint(key), result.Recipients, plural(result.Recipients), ui.Muted.Sprint(envFlag),
		)
		return nil
	},
}
