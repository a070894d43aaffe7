package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/envlock-dev/envlock/internal/store"
	"github.com/envlock-dev/envlock/internal/ui"
	"github.com/envlock-dev/envlock/internal/workflows"
)

var memberUpdateCmd = &cobra.Command{
	Use:   "update NAME NEW_PUBKEY",
	Short: "Replace a team member's public key and re-encrypt secrets",
	Long: `Replaces NAME's recorded public key and re-encrypts every secret, so
the old key can no longer decrypt anything. Requires an admin
identity.

You cannot rotate your own key; another admin must do it for you, so
the team always keeps an admin whose key is known to work.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, pubkey := args[0], args[1]

		bundle, err := resolveIdentity()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load identity: %v", err)
		}
		storePath, err := workingStorePath()
		if err != nil {
			return Logger.ErrorfAndReturn("%v", err)
		}

		spinner, cleanup := startSpinner("Updating member key...", verbose)
		defer cleanup()

		result, err := workflows.MemberUpdateKey(context.Background(), workflows.MemberUpdateKeyOptions{
			StorePath: storePath,
			Identity:  bundle,
			Name:      name,
			NewPubkey: pubkey,
		})
		if err != nil {
			return Logger.ErrorfAndReturn("failed to update %s: %v", name, err)
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " " + fmt.Sprintf(
			"Updated key for %s, re-encrypted %d secret%s in %s",
			ui.Highlight.Sprint(name), result.Reencrypted, plural(result.Reencrypted), store.DefaultEnvName,
		)
		return nil
	},
}
