package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/envlock-dev/envlock/internal/workflows"
)

var memberLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List team members",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		storePath, err := workingStorePath()
		if err != nil {
			return Logger.ErrorfAndReturn("%v", err)
		}

		result, err := workflows.MemberList(context.Background(), workflows.MemberListOptions{
			StorePath: storePath,
		})
		if err != nil {
			return Logger.ErrorfAndReturn("failed to list members: %v", err)
		}

		nameW, roleW, envW := len("NAME"), len("ROLE"), len("ENVIRONMENTS")
		for _, m := range result.Members {
			nameW = max(nameW, len(m.Name))
			roleW = max(roleW, len(m.Role))
			envW = max(envW, len(m.Environments))
		}

		fmt.Printf("%-*s  %-*s  %-*s  ADDED\n", nameW, "NAME", roleW, "ROLE", envW, "ENVIRONMENTS")
		for _, m := range result.Members {
			fmt.Printf("%-*s  %-*s  %-*s  %s\n", nameW, m.Name, roleW, m.Role, envW, m.Environments, m.Added)
		}
		return nil
	},
}
