package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/envlock-dev/envlock/internal/store"
	"github.com/envlock-dev/envlock/internal/workflows"
)

func init() {
	getCmd.Flags().StringVarP(&envFlag, "env", "e", store.DefaultEnvName, "environment to read the secret from")
}

var getCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Decrypt and print a secret value",
	Long: `Decrypts the secret stored under KEY with your identity and prints
the plaintext to stdout, suitable for command substitution:

  export API_KEY="$(envlock get API_KEY)"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]

		bundle, err := resolveIdentity()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load identity: %v", err)
		}
		storePath, err := workingStorePath()
		if err != nil {
			return Logger.ErrorfAndReturn("%v", err)
		}

		result, err := workflows.Get(context.Background(), workflows.GetOptions{
			StorePath: storePath,
			Identity:  bundle,
			Env:       envFlag,
			Key:       key,
		})
		if err != nil {
			return Logger.ErrorfAndReturn("failed to get %s: %v", key, err)
		}

		// Plaintext only; no decoration, so the output is pipeable.
		fmt.Println(result.Value)
		return nil
	},
}
