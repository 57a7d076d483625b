package cmd

import (
	"fmt"

	"github.com/marcus/usermenu/internal/gating"
	"github.com/marcus/usermenu/internal/output"
	"github.com/spf13/cobra"
)

var gateCmd = &cobra.Command{
	Use:     "gate",
	Short:   "Show whether the account menu is permitted here",
	GroupID: "core",
	RunE: func(cmd *cobra.Command, args []string) error {
		signals, err := gating.Resolve(getBaseDir())
		if err != nil {
			output.Error("%v", err)
			return err
		}
		permitted := gating.Permitted(signals)

		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			return output.JSON(struct {
				gating.Signals
				Permitted bool `json:"permitted"`
			}{signals, permitted})
		}

		fmt.Printf("%-18s %s\n", "account features:", output.FormatEnabled(signals.UserHasAccountFeatures))
		fmt.Printf("%-18s %s (open: %s)\n", "deployment mode:", signals.DeploymentMode, output.FormatEnabled(signals.DeploymentMode.IsOpen()))
		fmt.Printf("%-18s %s\n", "menu permitted:", output.FormatEnabled(permitted))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(gateCmd)
	gateCmd.Flags().Bool("json", false, "JSON output")
}
