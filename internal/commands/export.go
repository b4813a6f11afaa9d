package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"laboura/internal/export"
	"laboura/internal/ledger"
	"laboura/internal/query"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export totals or sessions as CSV",
}

var exportTotalsCmd = &cobra.Command{
	Use:   "totals",
	Short: "Export accumulated totals as CSV",
	Run: withLedger(func(l *ledger.Ledger, cmd *cobra.Command, args []string) {
		withOutput(cmd, func(w io.Writer) error {
			return export.WriteTotalsCSV(w, l.Totals())
		})
	}),
}

var exportSessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Export filtered sessions as CSV",
	Long: `Export sessions as CSV. The same filters as 'laboura ls' apply; rows are
ordered by start time ascending regardless of any display sort.`,
	Run: withLedger(func(l *ledger.Ledger, cmd *cobra.Command, args []string) {
		filter, _, _, err := filterFromFlags(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		filtered := query.Filtered(l.Sessions(), filter)
		withOutput(cmd, func(w io.Writer) error {
			return export.WriteSessionsCSV(w, filtered)
		})
	}),
}

// withOutput runs fn against the -o file, or stdout when none is given.
func withOutput(cmd *cobra.Command, fn func(io.Writer) error) {
	path, _ := cmd.Flags().GetString("output")
	if path == "" {
		if err := fn(os.Stdout); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
		return
	}

	f, err := os.Create(path)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer f.Close()
	if err := fn(f); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("Exported: %s\n", path)
}

func init() {
	exportTotalsCmd.Flags().StringP("output", "o", "", "Write to file instead of stdout")
	exportSessionsCmd.Flags().StringP("output", "o", "", "Write to file instead of stdout")
	registerFilterFlags(exportSessionsCmd)
	exportCmd.AddCommand(exportTotalsCmd)
	exportCmd.AddCommand(exportSessionsCmd)
}
