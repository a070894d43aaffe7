package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/envlock-dev/envlock/internal/store"
	"github.com/envlock-dev/envlock/internal/workflows"
)

func init() {
	lsCmd.Flags().StringVarP(&envFlag, "env", "e", store.DefaultEnvName, "environment to list")
}

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List secret keys and metadata",
	Long:  `Lists the secret keys in the environment with who set them and when. Values stay encrypted.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		storePath, err := workingStorePath()
		if err != nil {
			return Logger.ErrorfAndReturn("%v", err)
		}

		result, err := workflows.List(context.Background(), workflows.ListOptions{
			StorePath: storePath,
			Env:       envFlag,
		})
		if err != nil {
			return Logger.ErrorfAndReturn("failed to list secrets: %v", err)
		}

		envW, keyW, setByW := len("ENVIRONMENT"), len("KEY"), len("SET_BY")
		for _, e := range result.Entries {
			envW = max(envW, len(e.Env))
			keyW = max(keyW, len(e.Key))
			setByW = max(setByW, len(e.SetBy))
		}

		fmt.Printf("%-*s  %-*s  %-*s  MODIFIED\n", envW, "ENVIRONMENT", keyW, "KEY", setByW, "SET_BY")
		for _, e := range result.Entries {
			fmt.Printf("%-*s  %-*s  %-*s  %s\n", envW, e.Env, keyW, e.Key, setByW, e.SetBy, e.Modified)
		}
		return nil
	},
}
