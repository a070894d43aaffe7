package cmd

import (
	"github.com/spf13/cobra"
)

var memberCmd = &cobra.Command{
	Use:   "member",
	Short: "Manage team membership",
	Long: `Manages who can decrypt the store's secrets.

Every membership change (add, rm, update, role) re-encrypts every
secret so that exactly the current team can decrypt them. Membership
changes require an admin identity.`,
}

func init() {
	memberCmd.AddCommand(memberAddCmd)
	memberCmd.AddCommand(memberRmCmd)
	memberCmd.AddCommand(memberUpdateCmd)
	memberCmd.AddCommand(memberRoleCmd)
	memberCmd.AddCommand(memberLsCmd)
}
