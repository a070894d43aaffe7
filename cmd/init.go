package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"

	"github.com/envlock-dev/envlock/internal/config"
	"github.com/envlock-dev/envlock/internal/identity"
	"github.com/envlock-dev/envlock/internal/ui"
	"github.com/envlock-dev/envlock/internal/workflows"
)

var initForce bool

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "force identity regeneration (blocked if .envlock already exists)")
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a local identity and initialize .envlock",
	Long: `Generates an age identity key for you (if you don't have one) and
creates a .envlock file in the current directory with you as the sole
admin.

The identity key lives at ~/.envlock/identity.age by default; pass
--identity, set ENVLOCK_IDENTITY, or configure identity.path in
~/.envlock/config.toml to put it elsewhere.

Examples:
  # Initialize with the default identity location
  envlock init

  # Initialize with an explicit identity file
  envlock init --identity ~/keys/work.age`,
	RunE: func(cmd *cobra.Command, args []string) error {
		identityPath, err := resolveInitIdentityPath()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to resolve identity path: %v", err)
		}

		spinner, cleanup := startSpinner("Initializing envlock...", verbose)
		defer cleanup()

		bundle, generated, err := identity.LoadOrGenerate(identityPath, initForce)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to prepare identity: %v", err)
		}

		storePath, err := workingStorePath()
		if err != nil {
			return Logger.ErrorfAndReturn("%v", err)
		}

		result, err := workflows.Init(context.Background(), workflows.InitOptions{
			StorePath: storePath,
			Identity:  bundle,
			Username:  identity.DetectUsername(),
			Force:     initForce,
		})
		if err != nil {
			return Logger.ErrorfAndReturn("failed to initialize store: %v", err)
		}

		rememberIdentityPath(identityPath)

		var msg strings.Builder
		if result.Created {
			spinner.Stop()
			figure.NewFigure("envlock", "", true).Print()
		}
		if generated {
			msg.WriteString(ui.Success.Sprint("✓") + " Generated identity key at " + ui.Path.Sprint(bundle.Path) + "\n")
		} else {
			msg.WriteString(ui.Success.Sprint("✓") + " Using existing identity key at " + ui.Path.Sprint(bundle.Path) + "\n")
		}
		if result.Created {
			msg.WriteString(ui.Success.Sprint("✓") + " Created .envlock with you as admin\n")
		} else {
			msg.WriteString(ui.Success.Sprint("✓") + " .envlock already exists\n")
		}
		msg.WriteString(ui.Success.Sprint("✓") + " Public key: " + ui.Highlight.Sprint(result.Recipient))
		if result.Created {
			msg.WriteString("\n" + ui.Info.Sprint("→") + " Store your first secret with " + ui.Code.Sprint("envlock set API_KEY value"))
		}
		spinner.FinalMSG = msg.String()
		return nil
	},
}

// resolveInitIdentityPath picks where init should put (or find) the
// identity key: the --identity flag, then ENVLOCK_IDENTITY, then an
// interactive prompt when stdin is a terminal, then the default.
func resolveInitIdentityPath() (string, error) {
	if identityFlag != "" {
		path, err := identity.ExpandHome(identityFlag)
		if err != nil {
			return "", err
		}
		return path, validateIdentityFilePath(path)
	}

	if env := os.Getenv(identity.EnvIdentityPath); env != "" {
		path, err := identity.ExpandHome(env)
		if err != nil {
			return "", err
		}
		return path, validateIdentityFilePath(path)
	}

	def, err := identity.DefaultPath()
	if err != nil {
		return "", err
	}
	if stdinIsTerminal() {
		chosen, err := promptForIdentityPath(def)
		if err != nil {
			return "", err
		}
		return chosen, validateIdentityFilePath(chosen)
	}
	return def, nil
}

func promptForIdentityPath(defaultPath string) (string, error) {
	fmt.Printf("Identity file [%s]: ", defaultPath)
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading identity path: %w", err)
	}
	input = strings.TrimSpace(input)
	if input == "" {
		return defaultPath, nil
	}
	return identity.ExpandHome(input)
}

func validateIdentityFilePath(path string) error {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return fmt.Errorf("identity path must be a file path, got directory: %s", path)
	}
	return nil
}

// rememberIdentityPath records a non-default identity location in the
// user config so later commands find it without the flag. Best effort.
func rememberIdentityPath(path string) {
	def, err := identity.DefaultPath()
	if err != nil || path == def {
		return
	}
	cfg, err := config.Load()
	if err != nil || cfg.Identity.Path == path {
		return
	}
	cfg.Identity.Path = path
	if err := config.Save(cfg); err != nil {
		Logger.Warnf("Failed to record identity path in config: %v", err)
	}
}
