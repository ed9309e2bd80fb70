package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"refscribe/internal/catalog"
	"refscribe/internal/config"
	"refscribe/internal/journal"
	"refscribe/internal/preflight"
)

const (
	ansiReset = "\x1b[0m"
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
	ansiBlue  = "\x1b[34m"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var runLimit int

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show catalog progress, environment checks, and recent runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			printHeading(out, "Environment", colorize)
			for _, result := range preflight.CheckAll(cfg) {
				fmt.Fprintln(out, checkLine(result, colorize))
			}

			fmt.Fprintln(out)
			printHeading(out, "Catalog", colorize)
			printCatalogSummary(out, cfg, colorize)

			if cfg.Journal.Enabled {
				fmt.Fprintln(out)
				printHeading(out, "Recent runs", colorize)
				printRecentRuns(cmd, cfg, runLimit)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&runLimit, "runs", 5, "Number of recent runs to display")
	return cmd
}

func printHeading(out io.Writer, title string, colorize bool) {
	if colorize {
		title = ansiBlue + title + ansiReset
	}
	fmt.Fprintln(out, title)
}

// checkLine renders one preflight result, e.g. `  ok    catalog  writable`.
func checkLine(result preflight.Result, colorize bool) string {
	mark, color := "ok  ", ansiGreen
	if !result.Passed {
		mark, color = "FAIL", ansiRed
	}
	if colorize {
		mark = color + mark + ansiReset
	}
	line := fmt.Sprintf("  %s  %-16s", mark, result.Name)
	if result.Detail != "" {
		line += " " + result.Detail
	}
	return line
}

func progressLine(label, value string) string {
	return fmt.Sprintf("  %-16s %s", label, value)
}

func printCatalogSummary(out io.Writer, cfg *config.Config, colorize bool) {
	cat, err := catalog.Load(cfg.Paths.CatalogPath)
	if err != nil {
		detail := err.Error()
		if errors.Is(err, catalog.ErrNotFound) {
			detail = fmt.Sprintf("not found at %s", cfg.Paths.CatalogPath)
		}
		fmt.Fprintln(out, checkLine(preflight.Result{Name: "catalog", Detail: detail}, colorize))
		return
	}

	total := cat.EntryCount()
	pending := len(cat.Pending())
	fmt.Fprintln(out, progressLine("entries", strconv.Itoa(total)))
	fmt.Fprintln(out, progressLine("pending", strconv.Itoa(pending)))
	if total > 0 {
		done := total - pending
		pct := float64(done) / float64(total) * 100
		fmt.Fprintln(out, progressLine("progress", fmt.Sprintf("%d/%d (%.0f%%)", done, total, pct)))
	}
}

func printRecentRuns(cmd *cobra.Command, cfg *config.Config, limit int) {
	out := cmd.OutOrStdout()

	if _, err := os.Stat(cfg.JournalPath()); err != nil {
		fmt.Fprintln(out, "  no runs recorded yet")
		return
	}
	store, err := journal.Open(cfg.JournalPath())
	if err != nil {
		fmt.Fprintf(out, "  journal unavailable: %v\n", err)
		return
	}
	defer store.Close()

	runs, err := store.RecentRuns(cmd.Context(), limit)
	if err != nil {
		fmt.Fprintf(out, "  journal unavailable: %v\n", err)
		return
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "  no runs recorded yet")
		return
	}
	fmt.Fprintln(out, renderRunsTable(runs))
}

// renderRunsTable lays out journal runs newest-first with the count columns
// right-aligned.
func renderRunsTable(runs []journal.Run) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Run", "Started", "State", "Duration", "Pending", "Updated", "Skipped"})
	for _, run := range runs {
		tw.AppendRow(table.Row{
			shortRunID(run.ID),
			run.StartedAt.Local().Format("2006-01-02 15:04"),
			runState(run),
			formatDuration(run),
			run.Pending,
			run.Updated,
			run.Skipped,
		})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
	})
	return tw.Render()
}

func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func runState(run journal.Run) string {
	switch {
	case run.FinishedAt == nil:
		return "running"
	case run.Interrupted:
		return "interrupted"
	default:
		return "completed"
	}
}

func formatDuration(run journal.Run) string {
	if run.FinishedAt == nil {
		return "-"
	}
	return run.FinishedAt.Sub(run.StartedAt).Round(time.Second).String()
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
