package cmd

import (
	"fmt"
	"strings"

	"github.com/marcus/usermenu/internal/config"
	"github.com/marcus/usermenu/internal/features"
	"github.com/marcus/usermenu/internal/output"
	"github.com/spf13/cobra"
)

var featuresCmd = &cobra.Command{
	Use:     "features",
	Short:   "List feature flags with their resolved values",
	GroupID: "system",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(getBaseDir())
		if err != nil {
			output.Error("%v", err)
			return err
		}
		rows := features.ResolveAll(cfg)

		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			type row struct {
				Name        string   `json:"name"`
				Enabled     bool     `json:"enabled"`
				Source      string   `json:"source"`
				Description string   `json:"description"`
				Surfaces    []string `json:"surfaces,omitempty"`
			}
			out := make([]row, 0, len(rows))
			for _, r := range rows {
				out = append(out, row{r.Feature.Name, r.Enabled, string(r.Source), r.Feature.Description, r.Surfaces})
			}
			return output.JSON(out)
		}

		for _, r := range rows {
			fmt.Printf("%-18s %s  %s\n", output.Title(r.Feature.Name), output.FormatEnabled(r.Enabled), output.Subtle("("+string(r.Source)+")"))
			fmt.Println(output.IndentString(r.Feature.Description, 2))
			if len(r.Surfaces) > 0 {
				fmt.Println(output.IndentString("gates: "+strings.Join(r.Surfaces, ", "), 2))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(featuresCmd)
	featuresCmd.Flags().Bool("json", false, "JSON output")
}
