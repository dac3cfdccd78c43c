package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/capsync-labs/capsync/internal/branding"
	"github.com/capsync-labs/capsync/internal/config"
	"github.com/capsync-labs/capsync/internal/registry"
	"github.com/capsync-labs/capsync/internal/router"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` classifies a workspace's technology stack from on-disk signals,
routes requests to the registered capability module for that stack, and keeps
each module's declared libraries reconciled with the workspace's live
dependencies. Mutations are proposed first and applied only after approval.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
	},
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// openStore returns the registry store at the configured root.
func openStore() *registry.Store {
	return registry.NewStore(config.RegistryRoot())
}

// loadTriggerTable returns the configured external trigger table, or the
// embedded default when none is configured.
func loadTriggerTable() (*router.Table, error) {
	if path := config.TriggerTablePath(); path != "" {
		return router.LoadTable(path)
	}
	return router.DefaultTable(), nil
}

// confirm prints the prompt and reads a y/n answer from stdin. Empty input
// counts as yes.
func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprint(cmd.OutOrStdout(), prompt+" (Y/n) ")
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return false
	}
	answer := strings.TrimSpace(strings.ToLower(scanner.Text()))
	return answer == "" || answer == "y" || answer == "yes"
}

// workspaceArg resolves the optional workspace path argument, defaulting to
// the current directory.
func workspaceArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}
