package cmd

import (
	"fmt"
	"strings"

	"github.com/marcus/usermenu/internal/config"
	"github.com/marcus/usermenu/internal/output"
	"github.com/marcus/usermenu/internal/visibility"
	"github.com/spf13/cobra"
)

type transitionRow struct {
	from  visibility.State
	event string
	to    visibility.State
}

var transitionTable = []transitionRow{
	{visibility.Closed, "enter trigger / menu", visibility.Open},
	{visibility.Open, "leave trigger / menu", visibility.OpenPendingClose},
	{visibility.OpenPendingClose, "enter trigger / menu (timer cancelled)", visibility.Open},
	{visibility.OpenPendingClose, "close timer fires", visibility.Closed},
	{visibility.OpenPendingClose, "leave again (no-op, timer kept)", visibility.OpenPendingClose},
	{visibility.Open, "toggle", visibility.Closed},
	{visibility.Closed, "toggle", visibility.Open},
	{visibility.Open, "logout (delayed close)", visibility.OpenPendingClose},
}

// statesMarkdown describes the menu state machine for the given delay.
func statesMarkdown(delayLabel string) string {
	var sb strings.Builder
	sb.WriteString("# Menu states\n\n")
	fmt.Fprintf(&sb, "Close delay: **%s**. Visible only when open *and* permitted.\n\n", delayLabel)
	sb.WriteString("| From | Event | To |\n|---|---|---|\n")
	for _, r := range transitionTable {
		fmt.Fprintf(&sb, "| %s | %s | %s |\n", r.from, r.event, r.to)
	}
	return sb.String()
}

var statesCmd = &cobra.Command{
	Use:     "states",
	Short:   "Describe the menu visibility state machine",
	GroupID: "system",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(getBaseDir())
		if err != nil {
			output.Error("%v", err)
			return err
		}
		md := statesMarkdown(config.CloseDelay(cfg).String())

		if raw, _ := cmd.Flags().GetBool("raw"); raw {
			fmt.Print(md)
			return nil
		}
		rendered, err := output.RenderMarkdown(md)
		if err != nil {
			return fmt.Errorf("render states: %w", err)
		}
		fmt.Println(rendered)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statesCmd)
	statesCmd.Flags().Bool("raw", false, "Print markdown source")
}
