package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"laboura/internal/format"
	"laboura/internal/ledger"
	"laboura/internal/models"
	"laboura/internal/query"
)

const dateLayout = "2006-01-02"

var lsCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list", "history"},
	Short:   "List recorded sessions",
	Long: `List recorded sessions with optional filters for section, subdivision
and date range. With --group the output becomes a period summary.

Examples:
  laboura ls --section Work --from 2024-01-01 --to 2024-01-31
  laboura ls --group week --merge`,
	Run: withLedger(func(l *ledger.Ledger, cmd *cobra.Command, args []string) {
		filter, mode, merge, err := filterFromFlags(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		filtered := query.Filtered(l.Sessions(), filter)
		if len(filtered) == 0 {
			fmt.Println("No sessions match the given filters.")
			return
		}

		if mode == query.GroupNone {
			printSessionsTable(filtered)
			return
		}
		printSummaryTable(query.Grouped(filtered, mode, merge))
	}),
}

// registerFilterFlags adds the shared query flags to a command. Used by ls
// and by the sessions export so both run the same pipeline.
func registerFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("section", "s", "", "Filter by exact section name")
	cmd.Flags().String("sub", "", "Filter by exact subdivision name")
	cmd.Flags().String("from", "", "Include sessions starting on or after this date (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "Include sessions starting on or before this date (YYYY-MM-DD)")
	cmd.Flags().StringP("group", "g", "", "Group by period: day, week or month")
	cmd.Flags().BoolP("merge", "m", false, "Merge subdivisions of a section into one bucket")
}

func filterFromFlags(cmd *cobra.Command) (query.Filter, query.GroupMode, bool, error) {
	section, _ := cmd.Flags().GetString("section")
	sub, _ := cmd.Flags().GetString("sub")
	fromStr, _ := cmd.Flags().GetString("from")
	toStr, _ := cmd.Flags().GetString("to")
	groupStr, _ := cmd.Flags().GetString("group")
	merge, _ := cmd.Flags().GetBool("merge")

	filter := query.Filter{Section: section, Sub: sub}
	if fromStr != "" {
		from, err := time.ParseInLocation(dateLayout, fromStr, time.Local)
		if err != nil {
			return filter, query.GroupNone, false, fmt.Errorf("invalid --from date %q", fromStr)
		}
		filter.From = from
	}
	if toStr != "" {
		to, err := time.ParseInLocation(dateLayout, toStr, time.Local)
		if err != nil {
			return filter, query.GroupNone, false, fmt.Errorf("invalid --to date %q", toStr)
		}
		filter.To = to
	}

	mode, err := query.ParseGroupMode(groupStr)
	if err != nil {
		return filter, query.GroupNone, false, err
	}
	return filter, mode, merge, nil
}

func printSessionsTable(sessions []models.Session) {
	fmt.Printf("%-36s %-15s %-15s %-19s %-19s %s\n",
		"ID", "SECTION", "SUB", "START", "END", "HH:MM:SS")
	fmt.Println(strings.Repeat("-", 116))
	for _, s := range sessions {
		fmt.Printf("%-36s %-15s %-15s %-19s %-19s %s\n",
			s.ID, truncate(s.Section, 15), truncate(s.Sub, 15),
			s.StartISO, s.EndISO, format.HMS(s.Seconds))
	}
}

func printSummaryTable(rows []query.GroupRow) {
	fmt.Printf("%-10s %-15s %-15s %s\n", "PERIOD", "SECTION", "SUB", "HH:MM:SS")
	fmt.Println(strings.Repeat("-", 52))
	for _, r := range rows {
		fmt.Printf("%-10s %-15s %-15s %s\n",
			r.Period, truncate(r.Section, 15), truncate(r.Sub, 15), format.HMS(r.Seconds))
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

func init() {
	registerFilterFlags(lsCmd)
}
