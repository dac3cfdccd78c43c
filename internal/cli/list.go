package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/capsync-labs/capsync/internal/registry"
	"github.com/spf13/cobra"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered capability modules",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	store := openStore()

	cachePath, _ := registry.DefaultIndexPath()
	entries, err := registry.ListCached(store, cachePath)
	if err != nil {
		return fmt.Errorf("listing modules: %w", err)
	}

	w := cmd.OutOrStdout()

	if listJSON {
		out, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling module list: %w", err)
		}
		fmt.Fprintln(w, string(out))
		return nil
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No capability modules registered. Run `capsync create` in a workspace.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tNAME\tVERSION\tLIBRARIES\tLAST SYNC")
	for _, entry := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
			entry.Key, entry.Name, entry.Version, entry.Libraries,
			entry.LastSync.Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}
