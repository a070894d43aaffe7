package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/envlock-dev/envlock/internal/store"
	"github.com/envlock-dev/envlock/internal/ui"
	"github.com/envlock-dev/envlock/internal/workflows"
)

var memberAddRole string

func init() {
	memberAddCmd.Flags().StringVar(&memberAddRole, "role", store.RoleMember.String(), "role for the new member (admin, member, ci, readonly)")
}

var memberAddCmd = &cobra.Command{
	Use:   "add NAME [PUBKEY]",
	Short: "Add a team member and re-encrypt secrets for the new recipient",
	Long: `Adds NAME to the team with the given age public key and re-encrypts
every secret so the new member can decrypt them. Requires an admin
identity.

For --role ci the public key may be omitted: envlock generates a fresh
keypair, records the public half, and prints the private key exactly
once so you can install it in your CI credential store. It is never
written to disk.

Examples:
  envlock member add bob age1ql3z7hjy54pw3hyww5ayyfg7zqgvc7w3j2elw8zmrj2kg5sfn9aqmcac8p
  envlock member add deploy-bot --role ci`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		pubkey := ""
		if len(args) == 2 {
			pubkey = args[1]
		}

		role, err := store.ParseRole(memberAddRole)
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

		spinner, cleanup := startSpinner("Adding team member...", verbose)
		defer cleanup()

		result, err := workflows.MemberAdd(context.Background(), workflows.MemberAddOptions{
			StorePath: storePath,
			Identity:  bundle,
			Name:      name,
			Pubkey:    pubkey,
			Role:      role,
		})
		if err != nil {
			return Logger.ErrorfAndReturn("failed to add %s: %v", name, err)
		}

		msg := ui.Success.Sprint("✓") + " " + fmt.Sprintf(
			"Added %s %s, re-encrypted %d secret%s in %s",
			ui.Highlight.Sprint(name), ui.Muted.Sprint(result.Role), result.Reencrypted,
			plural(result.Reencrypted), store.DefaultEnvName,
		)
		if result.GeneratedIdentity != "" {
			msg += "\n" + ui.Warning.Sprint("!") + " Generated CI private key (shown once, never stored):\n" +
				"  " + result.GeneratedIdentity
		}
		spinner.FinalMSG = msg
		return nil
	},
}
