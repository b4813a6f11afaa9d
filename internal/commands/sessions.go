package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"laboura/internal/format"
	"laboura/internal/ledger"
	"laboura/internal/models"
)

var editCmd = &cobra.Command{
	Use:   "edit <session-id>",
	Short: "Edit an existing session",
	Long: `Edit an existing session. Fields not given keep their current value;
start and end use the "YYYY-MM-DD HH:MM:SS" layout in local time.

Examples:
  laboura edit 4f1c... --section Work
  laboura edit 4f1c... --end "2024-01-02 18:30:00"`,
	Args: cobra.ExactArgs(1),
	Run: withLedger(func(l *ledger.Ledger, cmd *cobra.Command, args []string) {
		id := args[0]
		var existing *models.Session
		for _, s := range l.Sessions() {
			if s.ID == id {
				cp := s
				existing = &cp
				break
			}
		}
		if existing == nil {
			fmt.Printf("Error: session %s not found\n", id)
			return
		}

		req := ledger.EditRequest{
			Section: existing.Section,
			Sub:     existing.Sub,
			Start:   time.Unix(int64(existing.StartTS), 0),
			End:     time.Unix(int64(existing.EndTS), 0),
		}
		if v, _ := cmd.Flags().GetString("section"); v != "" {
			req.Section = v
		}
		if v, _ := cmd.Flags().GetString("sub"); v != "" {
			req.Sub = v
		}
		if v, _ := cmd.Flags().GetString("start"); v != "" {
			t, err := format.ParseISO(v)
			if err != nil {
				fmt.Printf("Error: invalid --start %q\n", v)
				return
			}
			req.Start = t
		}
		if v, _ := cmd.Flags().GetString("end"); v != "" {
			t, err := format.ParseISO(v)
			if err != nil {
				fmt.Printf("Error: invalid --end %q\n", v)
				return
			}
			req.End = t
		}

		session, err := l.Edit(id, req)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("Session updated: %s / %s  %s → %s  (%s)\n",
			session.Section, session.Sub, session.StartISO, session.EndISO,
			format.HMS(session.Seconds))
	}),
}

var rmCmd = &cobra.Command{
	Use:     "rm <session-id>...",
	Aliases: []string{"delete"},
	Short:   "Delete one or more sessions",
	Args:    cobra.MinimumNArgs(1),
	Run: withLedger(func(l *ledger.Ledger, cmd *cobra.Command, args []string) {
		removed, err := l.Delete(args)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("Deleted %d session(s)\n", removed)
	}),
}

func init() {
	editCmd.Flags().String("section", "", "New section name")
	editCmd.Flags().String("sub", "", "New subdivision name")
	editCmd.Flags().String("start", "", "New start (YYYY-MM-DD HH:MM:SS)")
	editCmd.Flags().String("end", "", "New end (YYYY-MM-DD HH:MM:SS)")
}
