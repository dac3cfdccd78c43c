package cli

import (
	"encoding/json"
	"fmt"

	"github.com/capsync-labs/capsync/internal/classify"
	"github.com/capsync-labs/capsync/internal/workspace"
	"github.com/spf13/cobra"
)

var scanJSON bool

var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "Scan a workspace and classify its technology stack",
	Long: `Scan inspects the workspace (read-only), prints the observed signals, and
classifies the stack against the built-in rule table. An unclassifiable
workspace reports "unknown", which is an answer rather than a failure.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().BoolVar(&scanJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(scanCmd)
}

// scanReport is the machine-readable scan output.
type scanReport struct {
	Workspace string              `json:"workspace"`
	Signals   workspace.SignalSet `json:"signals"`
	Profile   classify.Profile    `json:"profile"`
}

func runScan(cmd *cobra.Command, args []string) error {
	root := workspaceArg(args)

	signals, err := workspace.Scan(root)
	if err != nil {
		return err
	}

	profile := classify.NewClassifier().Classify(signals)

	if scanJSON {
		out, err := json.MarshalIndent(scanReport{
			Workspace: root,
			Signals:   signals,
			Profile:   profile,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling scan report: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Workspace: %s\n", root)
	fmt.Fprintf(w, "Signals (%d):\n", len(signals))
	for _, sig := range signals {
		if sig.Value != "" {
			fmt.Fprintf(w, "  %-13s %s = %s\n", sig.Kind, sig.Ref, sig.Value)
		} else {
			fmt.Fprintf(w, "  %-13s %s\n", sig.Kind, sig.Ref)
		}
	}

	if !profile.Known() {
		fmt.Fprintln(w, "Stack: unknown (no classification rule matched)")
		return nil
	}

	fmt.Fprintf(w, "Stack: %s (layer: %s, score: %d)\n", profile.Stack, profile.Layer, profile.Score)
	return nil
}
