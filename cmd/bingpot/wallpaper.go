package main

import (
	"fmt"

	"github.com/handiism/bingpot/internal/config"
	"github.com/handiism/bingpot/internal/download"
	"github.com/spf13/cobra"
)

func newWallpaperCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "wallpaper",
		Short: "Save today's image as " + download.WallpaperFileName,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Load(opts.configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			out := cmd.OutOrStdout()
			pipeline := download.NewPipeline(settings, progressPrinter(out, opts.verbose))
			path, err := pipeline.GetWallpaper(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(out, successStyle.Render("Wallpaper saved to "+path))
			return nil
		},
	}
}
