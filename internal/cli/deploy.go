package cli

import (
	"fmt"

	"github.com/capsync-labs/capsync/internal/config"
	"github.com/capsync-labs/capsync/internal/deploy"
	"github.com/spf13/cobra"
)

var deployCmd = &cobra.Command{
	Use:   "deploy <target>",
	Short: "Copy the registry into a target runtime location",
	Long: `Deploy materializes the registry's on-disk tree into the target directory.
It is a plain copy: exit code 0 when every file lands, non-zero on any copy
failure.`,
	Args: cobra.ExactArgs(1),
	RunE: runDeploy,
}

func init() {
	rootCmd.AddCommand(deployCmd)
}

func runDeploy(cmd *cobra.Command, args []string) error {
	source := config.RegistryRoot()
	target := args[0]

	copied, err := deploy.Materialize(source, target)
	if err != nil {
		return fmt.Errorf("deploying registry: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Deployed %d files from %s to %s\n", copied, source, target)
	return nil
}
