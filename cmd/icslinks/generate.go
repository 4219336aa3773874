package main

import (
	"github.com/spf13/cobra"

	"github.com/crusherrl/icslinks"
)

func newGenerateCmd(opts *options) *cobra.Command {
	var (
		start, end                     string
		summary, location, description string
		allDay                         bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate links from event fields",
		Example: `  icslinks generate --start "2023-08-15 15:00:00" --end "2023-08-15 16:30:00" \
    --summary Meeting --location Office --description "Discuss project"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b := icslinks.New(start, end,
				icslinks.WithSummary(summary),
				icslinks.WithLocation(location),
				icslinks.WithDescription(description),
				icslinks.WithAllDay(allDay),
			)
			opts.logger.Debug("generating links", "start", start, "end", end, "all_day", allDay)
			return opts.emit(cmd, b)
		},
	}

	cmd.Flags().StringVarP(&start, "start", "s", "", "Event start, e.g. \"2023-08-15 15:00:00\" (required)")
	cmd.Flags().StringVarP(&end, "end", "e", "", "Event end (required)")
	cmd.Flags().StringVar(&summary, "summary", "", "Event summary")
	cmd.Flags().StringVar(&location, "location", "", "Event location")
	cmd.Flags().StringVar(&description, "description", "", "Event description")
	cmd.Flags().BoolVar(&allDay, "all-day", false, "Mark the event as all-day")
	opts.addOutputFlags(cmd)

	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}
