package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"laboura/internal/format"
	"laboura/internal/ledger"
	"laboura/internal/tui"
)

var startCmd = &cobra.Command{
	Use:   "start <section> <sub>",
	Short: "Start tracking time on a section/subdivision",
	Long: `Start tracking time. Opens the interactive timer by default, use --no-ui
for a simple start.

Examples:
  laboura start Work emails          # Start timer with interactive UI
  laboura start Work emails --no-ui  # Start timer and return immediately`,
	Args: cobra.ExactArgs(2),
	Run: withLedger(func(l *ledger.Ledger, cmd *cobra.Command, args []string) {
		if err := l.Start(args[0], args[1]); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		current := l.Current()

		noUI, _ := cmd.Flags().GetBool("no-ui")
		if noUI {
			fmt.Printf("⏱️  Started tracking %s / %s\n", current.Section, current.Sub)
			fmt.Printf("Started at: %s\n", format.ToISO(current.StartTS))
			return
		}

		stop, err := tui.RunTimer(current)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if !stop {
			fmt.Printf("⏱️  Still tracking %s / %s. Use 'laboura stop' to finish.\n",
				current.Section, current.Sub)
			return
		}
		session, err := l.Stop()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("⏹️  Stopped tracking %s / %s\n", session.Section, session.Sub)
		fmt.Printf("Session duration: %s\n", format.HMS(session.Seconds))
	}),
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop tracking time",
	Run: withLedger(func(l *ledger.Ledger, cmd *cobra.Command, args []string) {
		session, err := l.Stop()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("⏹️  Stopped tracking %s / %s\n", session.Section, session.Sub)
		fmt.Printf("Session duration: %s\n", format.HMS(session.Seconds))
	}),
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current time tracking status",
	Run: withLedger(func(l *ledger.Ledger, cmd *cobra.Command, args []string) {
		current := l.Current()
		if current == nil {
			fmt.Println("No active time tracking session")
			return
		}
		elapsed, _ := l.Elapsed()
		fmt.Printf("⏱️  Currently tracking: %s / %s\n", current.Section, current.Sub)
		fmt.Printf("Started at: %s\n", format.ToISO(current.StartTS))
		fmt.Printf("Elapsed time: %s\n", format.HMS(int(elapsed.Seconds())))
	}),
}

func init() {
	startCmd.Flags().Bool("no-ui", false, "Start timer without interactive UI")
}
