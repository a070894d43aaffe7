package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/envlock-dev/envlock/internal/store"
	"github.com/envlock-dev/envlock/internal/ui"
	"github.com/envlock-dev/envlock/internal/workflows"
)

var memberRoleCmd = &cobra.Command{
	Use:   "role NAME ROLE",
	Short: "Change a team member's role",
	Long: `Changes NAME's role to ROLE (admin, member, ci, or readonly).
Requires an admin identity; you cannot change your own role, and
assigning the role the member already has is rejected.

Roles gate who may change the team, not who may decrypt: every member
of any role can decrypt every secret.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		role, err := store.ParseRole(args[1])
		if err != nil {
			return Logger.ErrorfAndReturn("%v", err)
		}

		bundle, err := resolveIdentity()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load identity: %v", err)
		}
		storePath, err := workingStorePath()
		if err != nil {
			return Logger.ErrorfAndReturn("%v", err)
		}

		spinner, cleanup := startSpinner("Changing member role...", verbose)
		defer cleanup()

		result, err := workflows.MemberSetRole(context.Background(), workflows.MemberSetRoleOptions{
			StorePath: storePath,
			Identity:  bundle,
			Name:      name,
			NewRole:   role,
		})
		if err != nil {
			return Logger.ErrorfAndReturn("failed to change role for %s: %v", name, err)
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " " + fmt.Sprintf(
			"Changed %s from %s to %s, re-encrypted %d secret%s",
			ui.Highlight.Sprint(name), ui.Muted.Sprint(result.OldRole), ui.Muted.Sprint(role),
			result.Reencrypted, plural(result.Reencrypted),
		)
		return nil
	},
}
