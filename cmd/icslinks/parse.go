package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crusherrl/icslinks"
)

func newParseCmd(opts *options) *cobra.Command {
	var isBase64 bool

	cmd := &cobra.Command{
		Use:   "parse <url>",
		Short: "Regenerate links from an existing link or event URL",
		Long: `Reads event fields from the query string of a URL, either generic keys
(DTSTART, DTEND, SUMMARY, LOCATION, DESCRIPTION, ALLDAY) or the keys of a
link produced by this tool, and regenerates every provider link.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := icslinks.FromURL(args[0], isBase64)
			if err != nil {
				return fmt.Errorf("parsing url: %w", err)
			}
			opts.logger.Debug("parsed url", "base64", isBase64, "event", fmt.Sprintf("%+v", b.Event()))
			return opts.emit(cmd, b)
		},
	}

	cmd.Flags().BoolVar(&isBase64, "base64", false, "The query component is base64 encoded")
	opts.addOutputFlags(cmd)

	return cmd
}
