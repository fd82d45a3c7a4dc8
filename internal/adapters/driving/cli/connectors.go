package cli

import (
	"sort"

	"github.com/spf13/cobra"
)

var connectorsCmd = &cobra.Command{
	Use:   "connectors",
	Short: "List registered connectors",
	RunE:  runConnectors,
}

func init() {
	rootCmd.AddCommand(connectorsCmd)
}

func runConnectors(cmd *cobra.Command, _ []string) error {
	if err := requireSetup(); err != nil {
		return err
	}

	names := registry.Names()
	if len(names) == 0 {
		cmd.Println("No connectors configured.")
		cmd.Printf("Add client credentials under [connectors.<name>] in %s\n", store.Path())
		return nil
	}

	sort.Strings(names)
	cmd.Println("Registered connectors:")
	for _, name := range names {
		cmd.Printf("  %s\n", name)
	}
	return nil
}
