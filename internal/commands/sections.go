package commands

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"laboura/internal/format"
	"laboura/internal/ledger"
	"laboura/internal/tui"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a new section or subdivision",
}

var addSectionCmd = &cobra.Command{
	Use:   "section <name>",
	Short: "Register a new section",
	Args:  cobra.ExactArgs(1),
	Run: withLedger(func(l *ledger.Ledger, cmd *cobra.Command, args []string) {
		if err := l.AddSection(args[0]); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("Section %q added\n", args[0])
	}),
}

var addSubCmd = &cobra.Command{
	Use:   "sub <section> <name>",
	Short: "Register a new subdivision under a section",
	Args:  cobra.ExactArgs(2),
	Run: withLedger(func(l *ledger.Ledger, cmd *cobra.Command, args []string) {
		if err := l.AddSub(args[0], args[1]); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("Subdivision %q added under %q\n", args[1], args[0])
	}),
}

var renameCmd = &cobra.Command{
	Use:   "rename",
	Short: "Rename a section or subdivision across all history",
	Long: `Rename a section or subdivision. The new name is rewritten onto every
historical session that carries the old one, and totals are rebuilt.`,
}

var renameSectionCmd = &cobra.Command{
	Use:   "section <old> <new>",
	Short: "Rename a section everywhere",
	Args:  cobra.ExactArgs(2),
	Run: withLedger(func(l *ledger.Ledger, cmd *cobra.Command, args []string) {
		if err := l.RenameSection(args[0], args[1]); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("Section %q renamed to %q\n", args[0], args[1])
	}),
}

var renameSubCmd = &cobra.Command{
	Use:   "sub <section> <old> <new>",
	Short: "Rename a subdivision within a section everywhere",
	Args:  cobra.ExactArgs(3),
	Run: withLedger(func(l *ledger.Ledger, cmd *cobra.Command, args []string) {
		if err := l.RenameSub(args[0], args[1], args[2]); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("Subdivision %q renamed to %q in %q\n", args[1], args[2], args[0])
	}),
}

var totalsCmd = &cobra.Command{
	Use:   "totals",
	Short: "Show accumulated time per section and subdivision",
	Run: withLedger(func(l *ledger.Ledger, cmd *cobra.Command, args []string) {
		totals := l.Totals()
		if len(totals) == 0 {
			fmt.Println("No time recorded yet. Use 'laboura start <section> <sub>' to begin.")
			return
		}

		sectionStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(tui.ColorAccentBright)).Bold(true)
		timeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(tui.ColorPrimaryText))
		subStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(tui.ColorSecondaryText))

		sections := make([]string, 0, len(totals))
		for sec := range totals {
			sections = append(sections, sec)
		}
		sort.Strings(sections)

		for _, sec := range sections {
			secTotal := 0
			for _, secs := range totals[sec] {
				secTotal += secs
			}
			fmt.Printf("%s  %s\n", sectionStyle.Render(sec), timeStyle.Render(format.HMS(secTotal)))

			subs := make([]string, 0, len(totals[sec]))
			for sub := range totals[sec] {
				subs = append(subs, sub)
			}
			sort.Strings(subs)
			for _, sub := range subs {
				fmt.Printf("  %s %s  %s\n", subStyle.Render("└"), subStyle.Render(sub),
					timeStyle.Render(format.HMS(totals[sec][sub])))
			}
		}
	}),
}

func init() {
	addCmd.AddCommand(addSectionCmd)
	addCmd.AddCommand(addSubCmd)
	renameCmd.AddCommand(renameSectionCmd)
	renameCmd.AddCommand(renameSubCmd)
}
