package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/phanxgames/overlay"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// logFixture is one entry of a logs input file.
type logFixture struct {
	Time  float64 `yaml:"time"`
	Msg   any     `yaml:"msg"`
	Error bool    `yaml:"error"`
}

type logsOptions struct {
	at        float64
	retention time.Duration
	max       int
}

func newLogsCmd(root *rootOptions) *cobra.Command {
	opts := &logsOptions{}
	cmd := &cobra.Command{
		Use:   "logs [file]",
		Short: "Print the log panel as it would look at a given time",
		Long: `Reads a YAML list of log entries ({time, msg, error}) in the order they
were logged and prints every panel line, newest first. Entries that would
have expired by --at are counted on stderr.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer in.Close()

			var fixtures []logFixture
			if err := yaml.NewDecoder(in).Decode(&fixtures); err != nil {
				return fmt.Errorf("decode logs: %w", err)
			}

			cfg := overlay.DefaultConfig()
			if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
				return fmt.Errorf("apply env: %w", err)
			}
			if cmd.Flags().Changed("retention") {
				cfg.LogRetention = opts.retention
			}
			if cmd.Flags().Changed("max") {
				cfg.LogMax = opts.max
			}

			buf := overlay.NewLogBuffer(nil, cfg.LogMax)
			for _, f := range fixtures {
				msg := f.Msg
				if f.Error {
					msg = errors.New(fmt.Sprint(f.Msg))
				}
				buf.Add(overlay.LogEntry{Time: f.Time, Msg: msg})
			}

			out := cmd.OutOrStdout()
			p := root.profile()
			for _, e := range buf.Entries() {
				if err := renderMarkup(out, p, overlay.FormatLogLine(e), overlay.LogStyles); err != nil {
					return err
				}
			}
			if n := buf.Prune(opts.at, cfg.Retention()); n > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "%d expired at %.2f\n", n, opts.at)
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&opts.at, "at", 0, "Application time in seconds")
	cmd.Flags().DurationVar(&opts.retention, "retention", overlay.DefaultLogRetention, "Log retention")
	cmd.Flags().IntVar(&opts.max, "max", overlay.DefaultLogMax, "Maximum number of entries kept")
	return cmd
}
