package cli

import (
	"errors"
	"fmt"

	"github.com/capsync-labs/capsync/internal/classify"
	"github.com/capsync-labs/capsync/internal/reconcile"
	"github.com/capsync-labs/capsync/internal/registry"
	"github.com/capsync-labs/capsync/internal/workspace"
	"github.com/spf13/cobra"
)

var (
	syncYes    bool
	syncDryRun bool
)

var syncCmd = &cobra.Command{
	Use:   "sync [path]",
	Short: "Reconcile a module's declared libraries with the workspace",
	Long: `Sync classifies the workspace, looks up its capability module, and diffs the
module's declared libraries against the live dependency set. The plan lists
additions first, then version updates, then proposed removals. Nothing is
applied without approval; removals are proposals, never forced.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVarP(&syncYes, "yes", "y", false, "Apply the plan without prompting")
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "Print the plan without applying it")
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	root := workspaceArg(args)
	w := cmd.OutOrStdout()

	signals, err := workspace.Scan(root)
	if err != nil {
		return err
	}

	profile := classify.NewClassifier().Classify(signals)
	if !profile.Known() {
		fmt.Fprintln(w, "Workspace stack is unknown; nothing to sync.")
		return nil
	}

	store := openStore()
	key := registry.Key{Layer: profile.Layer, Stack: profile.Stack}
	live := workspace.DetectDependencies(root)

	if syncDryRun {
		module, err := store.Lookup(key)
		if err != nil {
			return missingModuleHint(err, key)
		}
		plan := reconcile.Diff(module.DeclaredLibraries(), live)
		if len(plan) == 0 {
			fmt.Fprintf(w, "Module %s is in sync (%d libraries).\n", key, len(module.Libraries))
			return nil
		}
		fmt.Fprintf(w, "Plan for %s (%d actions):\n", key, len(plan))
		reconcile.WritePlan(w, plan)
		return nil
	}

	approve := func(plan []reconcile.Action) (bool, error) {
		fmt.Fprintf(w, "Plan for %s (%d actions):\n", key, len(plan))
		reconcile.WritePlan(w, plan)
		if syncYes {
			return true, nil
		}
		return confirm(cmd, "? Apply these changes?"), nil
	}

	module, plan, applied, err := reconcile.Reconcile(store, key, live, approve)
	if err != nil {
		return missingModuleHint(err, key)
	}

	switch {
	case len(plan) == 0:
		fmt.Fprintf(w, "Module %s is in sync (%d libraries).\n", key, len(module.Libraries))
	case !applied:
		fmt.Fprintln(w, "Plan not applied.")
	default:
		fmt.Fprintf(w, "✓ Synced %s: %d libraries declared, last_sync updated.\n", key, len(module.Libraries))
	}
	return nil
}

// missingModuleHint decorates a registry miss with the create-command hint.
func missingModuleHint(err error, key registry.Key) error {
	if errors.Is(err, registry.ErrNotFound) {
		return fmt.Errorf("no module registered for %s, run `capsync create` first", key)
	}
	return err
}
