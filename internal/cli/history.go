package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/graphctl/internal/config"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent directory operations",
	Long:  `List recent create and delete operations recorded by this machine.`,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of entries to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if historyStore == nil {
		return errors.New("history store not configured")
	}

	entries, err := historyStore.Recent(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		cmd.Println("No recorded operations.")
		return nil
	}

	if outputFormat == config.OutputTable {
		cmd.Println(renderHistoryTable(entries))
		return nil
	}
	return printJSON(cmd, entries)
}
