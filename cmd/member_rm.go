package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/envlock-dev/envlock/internal/store"
	"github.com/envlock-dev/envlock/internal/ui"
	"github.com/envlock-dev/envlock/internal/workflows"
)

var memberRmYes bool

func init() {
	memberRmCmd.Flags().BoolVar(&memberRmYes, "yes", false, "skip the confirmation prompt")
}

var memberRmCmd = &cobra.Command{
	Use:   "rm NAME",
	Short: "Remove a team member and re-encrypt secrets without that recipient",
	Long: `Removes NAME from the team and re-encrypts every secret to the
remaining members, so the removed member's key can no longer decrypt
anything. Requires an admin identity. You cannot remove yourself.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		if !memberRmYes {
			if !stdinIsTerminal() {
				return Logger.ErrorfAndReturn("refusing to prompt without a terminal; pass --yes")
			}
			fmt.Printf("%s Removing %s requires re-encrypting all accessible secrets.\n",
				ui.Warning.Sprint("!"), ui.Highlight.Sprint(name))
			fmt.Printf("  This generates new envelopes that %s cannot decrypt.\n", name)
			ok, err := confirm("  Continue?")
			if err != nil {
				return Logger.ErrorfAndReturn("%v", err)
			}
			if !ok {
				fmt.Println(ui.Error.Sprint("✗") + " Aborted; team unchanged")
				return fmt.Errorf("aborted")
			}
		}

		bundle, err := resolveIdentity()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load identity: %v", err)
		}
		storePath, err := workingStorePath()
		if err != nil {
			return Logger.ErrorfAndReturn("%v", err)
		}

		spinner, cleanup := startSpinner("Removing team member...", verbose)
		defer cleanup()

		result, err := workflows.MemberRemove(context.Background(), workflows.MemberRemoveOptions{
			StorePath: storePath,
			Identity:  bundle,
			Name:      name,
		})
		if err != nil {
			return Logger.ErrorfAndReturn("failed to remove %s: %v", name, err)
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " " + fmt.Sprintf(
			"Removed %s, re-encrypted %d secret%s in %s",
			ui.Highlight.Sprint(name), result.Reencrypted, plural(result.Reencrypted), store.DefaultEnvName,
		)
		return nil
	},
}
