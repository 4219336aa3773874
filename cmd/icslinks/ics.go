package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/crusherrl/icslinks"
)

func newICSCmd(opts *options) *cobra.Command {
	var uid string

	cmd := &cobra.Command{
		Use:   "ics <file>",
		Short: "Generate links for an event of an .ics file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			b, err := icslinks.FromICS(f, uid)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			opts.logger.Debug("read event", "file", args[0], "uid", uid)
			return opts.emit(cmd, b)
		},
	}

	cmd.Flags().StringVar(&uid, "uid", "", "UID of the VEVENT to use (default: first event)")
	opts.addOutputFlags(cmd)

	return cmd
}
