package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/capsync-labs/capsync/internal/classify"
	"github.com/capsync-labs/capsync/internal/router"
	"github.com/capsync-labs/capsync/internal/workspace"
	"github.com/spf13/cobra"
)

var (
	routeJSON      bool
	routeWorkspace string
)

var routeCmd = &cobra.Command{
	Use:   "route <text>...",
	Short: "Match a request to a capability category",
	Long: `Route matches free-form request text against the trigger table and prints
the selected capability category. Evaluation is priority-ordered and
first-match-wins, so identical text always routes identically. When nothing
matches, route asks for clarification instead of guessing.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRoute,
}

func init() {
	routeCmd.Flags().BoolVar(&routeJSON, "json", false, "Output in JSON format")
	routeCmd.Flags().StringVar(&routeWorkspace, "workspace", "", "Also classify this workspace and attach its stack profile")
	rootCmd.AddCommand(routeCmd)
}

// routeReport is the machine-readable routing output.
type routeReport struct {
	Text     string            `json:"text"`
	Decision *router.Decision  `json:"decision,omitempty"`
	NoMatch  bool              `json:"no_match,omitempty"`
	Profile  *classify.Profile `json:"profile,omitempty"`
}

func runRoute(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	w := cmd.OutOrStdout()

	table, err := loadTriggerTable()
	if err != nil {
		return err
	}

	// The stack profile travels alongside the decision for the downstream
	// workflow; it does not influence matching.
	var profile *classify.Profile
	if routeWorkspace != "" {
		signals, err := workspace.Scan(routeWorkspace)
		if err != nil {
			return err
		}
		p := classify.NewClassifier().Classify(signals)
		profile = &p
	}

	decision, ok := table.Route(text)

	if routeJSON {
		report := routeReport{Text: text, Profile: profile, NoMatch: !ok}
		if ok {
			report.Decision = &decision
		}
		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling route report: %w", err)
		}
		fmt.Fprintln(w, string(out))
		return nil
	}

	if !ok {
		fmt.Fprintln(w, "No trigger matched this request.")
		fmt.Fprintln(w, "Please rephrase with what you want done (e.g. \"implement\", \"sync\", \"review\").")
		return nil
	}

	fmt.Fprintf(w, "Category: %s (trigger %q, priority %d)\n",
		decision.Category, decision.Matched.Pattern, decision.Matched.Priority)
	if profile != nil && profile.Known() {
		fmt.Fprintf(w, "Stack:    %s (layer: %s)\n", profile.Stack, profile.Layer)
	}
	return nil
}
