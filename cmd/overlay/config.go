package main

import (
	"fmt"
	"os"

	"github.com/phanxgames/overlay"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config [file]",
		Short: "Print the effective debug config",
		Long: `Loads a YAML config file (defaults when omitted), applies the
OVERLAY_* environment overrides and prints the result as YAML.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := overlay.DefaultConfig()
			if len(args) == 1 {
				var err error
				if cfg, err = overlay.LoadConfigFile(args[0]); err != nil {
					return err
				}
			}
			if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
				return fmt.Errorf("apply env: %w", err)
			}
			out, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}
