package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var presetsCmd = &cobra.Command{
	Use:   "presets [name]",
	Short: "List presets, or print one as YAML",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry(cmd, "")
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(args) == 0 {
			fmt.Fprintln(out, strings.Join(reg.Names(), "\n"))
			return nil
		}
		set, err := reg.Lookup(args[0])
		if err != nil {
			return err
		}
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(map[string]any{args[0]: set})
	},
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}
