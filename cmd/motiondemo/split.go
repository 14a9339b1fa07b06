package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phanxgames/motion"
)

var splitCmd = &cobra.Command{
	Use:   "split <text>",
	Short: "Show how text is segmented and when each segment starts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		perName, _ := cmd.Flags().GetString("per")
		speed, _ := cmd.Flags().GetFloat64("speed-reveal")
		per, err := motion.ParseSplitMode(perName)
		if err != nil {
			return err
		}
		stagger := motion.StaggerInterval(per, speed)
		out := cmd.OutOrStdout()
		for _, seg := range motion.Split(args[0], per) {
			fmt.Fprintf(out, "%3d  %6.3fs  %q\n", seg.Index, float64(seg.Index)*stagger, seg.Text)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(splitCmd)
	splitCmd.Flags().String("per", "word", "Split unit: char, word or line")
	splitCmd.Flags().Float64("speed-reveal", 1, "Reveal speed multiplier")
}
