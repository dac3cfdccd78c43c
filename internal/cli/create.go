package cli

import (
	"errors"
	"fmt"

	"github.com/capsync-labs/capsync/internal/classify"
	"github.com/capsync-labs/capsync/internal/lifecycle"
	"github.com/capsync-labs/capsync/internal/registry"
	"github.com/capsync-labs/capsync/internal/workspace"
	"github.com/spf13/cobra"
)

var createYes bool

var createCmd = &cobra.Command{
	Use:   "create [path]",
	Short: "Create a capability module for an unregistered stack",
	Long: `Create classifies the workspace and, when no capability module is registered
for the classified stack, drafts a creation proposal. The proposal suspends
until approved; only then is the module generated from the template and
inserted into the registry. Rejection cancels with nothing written.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCreate,
}

func init() {
	createCmd.Flags().BoolVarP(&createYes, "yes", "y", false, "Approve the proposal without prompting")
	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	root := workspaceArg(args)
	w := cmd.OutOrStdout()

	signals, err := workspace.Scan(root)
	if err != nil {
		return err
	}

	profile := classify.NewClassifier().Classify(signals)
	if !profile.Known() {
		fmt.Fprintln(w, "Workspace stack is unknown; nothing to create.")
		fmt.Fprintln(w, "Run `capsync scan` to see which signals were observed.")
		return nil
	}

	store := openStore()
	key := registry.Key{Layer: profile.Layer, Stack: profile.Stack}

	if _, err := store.Lookup(key); err == nil {
		fmt.Fprintf(w, "Module %s is already registered. Run `capsync sync` to reconcile it.\n", key)
		return nil
	} else if !errors.Is(err, registry.ErrNotFound) {
		return err
	}

	deps := workspace.DetectDependencies(root)

	manager := lifecycle.NewManager(store)
	proposal, err := manager.Draft(profile, deps)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Proposal %s\n", proposal.ID)
	fmt.Fprintf(w, "  module:  %s (version %s)\n", proposal.ModuleName, proposal.Version)
	fmt.Fprintf(w, "  key:     %s\n", proposal.Key)
	fmt.Fprintf(w, "  stack:   %s (score %d)\n", profile.Stack, profile.Score)
	fmt.Fprintf(w, "  declares %d detected libraries\n", len(proposal.Dependencies))

	approved := createYes
	if !approved {
		approved = confirm(cmd, "? Approve module creation?")
	}

	if !approved {
		if err := manager.Reject(); err != nil {
			return err
		}
		fmt.Fprintln(w, "Proposal rejected; nothing was created.")
		return nil
	}

	if err := manager.Approve(); err != nil {
		return err
	}

	module, err := manager.Generate()
	if err != nil {
		var tmplErr *lifecycle.TemplateError
		if errors.As(err, &tmplErr) {
			// Surfaced verbatim; the machine is back at AwaitingApproval.
			return fmt.Errorf("generation failed: %w", tmplErr)
		}
		return err
	}

	fmt.Fprintf(w, "✓ Created %s (%d libraries declared)\n", module.Key, len(module.Libraries))
	return nil
}
