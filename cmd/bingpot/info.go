package main

import (
	"fmt"
	"strconv"

	"github.com/handiism/bingpot/internal/bing"
	"github.com/handiism/bingpot/internal/config"
	"github.com/handiism/bingpot/internal/http"
	ioutils "github.com/handiism/bingpot/internal/io"
	"github.com/spf13/cobra"
)

func newInfoCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "info [offset]",
		Short: "Show an archive record without downloading the image",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			offset := 0
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid offset %q: %w", args[0], err)
				}
				offset = n
			}

			settings, err := config.Load(opts.configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			client := bing.NewClient(
				http.NewClient(settings.UserAgent, settings.Timeout()),
				ioutils.NewImageService(settings.JPEGQuality),
				settings.ArchiveURL,
				settings.ImageBaseURL,
			)
			record, err := client.Record(cmd.Context(), offset)
			if err != nil {
				return err
			}
			imageURL, err := client.ImageURL(record, offset)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, titleStyle.Render(record.Title))
			if date, err := record.Date(); err == nil {
				fmt.Fprintf(out, "Date:      %s\n", date)
			}
			fmt.Fprintf(out, "Offset:    %d\n", offset)
			fmt.Fprintf(out, "Copyright: %s\n", record.Copyright)
			fmt.Fprintf(out, "Image:     %s\n", imageURL)
			if opts.verbose && record.CopyrightLink != "" {
				fmt.Fprintln(out, dimStyle.Render("More:      "+record.CopyrightLink))
			}
			return nil
		},
	}
}
