package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/handiism/bingpot/internal/config"
	"github.com/handiism/bingpot/internal/download"
	"github.com/handiism/bingpot/internal/model"
	"github.com/spf13/cobra"
)

// defaultSelection is used when no days are given.
const defaultSelection = "8-15"

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFE66D"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#95E1A3"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#A8DADC"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C757D"))
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00809D"))
)

type rootOptions struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "bingpot [days...]",
		Short: "Download Bing images of the day",
		Long: `bingpot saves images from the Bing homepage archive as JPEG files in the
current directory, one "<offset>.jpg" per day, where offset counts days back
from today.

Days may be given as offsets, inclusive offset ranges or dates:
  bingpot                      # days 8 to 15 before today
  bingpot 0                    # today's image as 0.jpg
  bingpot 1-3 2024-03-14       # three recent days and a specific date
  bingpot wallpaper            # today's image as wallpaper.jpg
  bingpot config init          # write a default config file`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImages(cmd, opts, args)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default is "+config.DefaultPath()+")")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(newWallpaperCmd(opts), newInfoCmd(opts), newConfigCmd(opts))
	return cmd
}

func runImages(cmd *cobra.Command, opts *rootOptions, args []string) error {
	settings, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	out := cmd.OutOrStdout()
	pipeline := download.NewPipeline(settings, progressPrinter(out, opts.verbose))

	selection := strings.Join(args, " ")
	if strings.TrimSpace(selection) == "" {
		selection = defaultSelection
	}
	today := pipeline.Today()
	dates, err := model.ParseSelection(selection, today)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("Fetching %d image(s)", len(dates))))
	written, err := pipeline.GetImagesAt(cmd.Context(), dates, today)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("Complete! Saved %d file(s)", len(written))))
	return nil
}

// progressPrinter prints one styled line per pipeline event. Verbose events
// are skipped unless verbose is set.
func progressPrinter(w io.Writer, verbose bool) func(download.ProgressEvent) {
	return func(event download.ProgressEvent) {
		if event.Message == "" {
			return
		}
		if event.Level == download.LevelVerbose && !verbose {
			return
		}

		var line string
		switch event.Level {
		case download.LevelError:
			line = errorStyle.Render("✗ " + event.Message)
		case download.LevelWarning:
			line = warningStyle.Render("! " + event.Message)
		case download.LevelSuccess:
			line = successStyle.Render("✓ " + event.Message)
		case download.LevelInfo:
			line = infoStyle.Render("› " + event.Message)
		default:
			line = dimStyle.Render("  " + event.Message)
		}
		fmt.Fprintln(w, line)
	}
}
