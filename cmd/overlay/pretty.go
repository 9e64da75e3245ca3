package main

import (
	"fmt"

	"github.com/phanxgames/overlay"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newPrettyCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "pretty [file]",
		Short: "Pretty-print a YAML or JSON value as the overlay panels show it",
		Long: `Decodes a YAML (or JSON) document from file, or stdin when file is
omitted or "-", and prints it with the overlay's value printer.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer in.Close()

			var v any
			if err := yaml.NewDecoder(in).Decode(&v); err != nil {
				return fmt.Errorf("decode value: %w", err)
			}
			return renderMarkup(cmd.OutOrStdout(), root.profile(), overlay.Pretty(v), nil)
		},
	}
}
