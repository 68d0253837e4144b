package main

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/quantmind-br/jesse/internal/domain"
	"github.com/quantmind-br/jesse/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List previous scans",
	RunE:  runHistory,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <uid>",
	Short: "Show a single scan record",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every scan record",
	RunE:  runHistoryClear,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of records (0 for all)")
	historyCmd.Flags().String("target", "", "Only show scans of this target")

	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyClearCmd)
}

func withHistory(fn func(store *history.Store) error) error {
	cfg, err := setup()
	if err != nil {
		return err
	}
	if !cfg.History.Enabled {
		return domain.NewValidationError("history.enabled", "scan history is disabled")
	}
	store, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	target, _ := cmd.Flags().GetString("target")

	return withHistory(func(store *history.Store) error {
		var records []history.Record
		var err error
		if target != "" {
			records, err = store.ByTarget(target)
			if err == nil && limit > 0 && len(records) > limit {
				records = records[:limit]
			}
		} else {
			records, err = store.List(limit)
		}
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(records) == 0 {
			fmt.Fprintln(out, "No scans recorded.")
			return nil
		}
		fmt.Fprintln(out, historyTable(records, time.Now()))
		fmt.Fprintf(out, "Showing %d of %s record(s)\n", len(records), humanize.Comma(store.Size()))
		return nil
	})
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	return withHistory(func(store *history.Store) error {
		rec, err := store.Get(args[0])
		if err != nil {
			return err
		}
		printRecord(cmd.OutOrStdout(), rec)
		return nil
	})
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	return withHistory(func(store *history.Store) error {
		if err := store.Clear(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
		return nil
	})
}

// historyTable renders records newest first with relative timestamps
func historyTable(records []history.Record, now time.Time) *table.Table {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			rec.UID,
			humanize.RelTime(rec.ScannedAt, now, "ago", "from now"),
			rec.Target,
			recordStatus(rec),
		})
	}

	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("UID", "WHEN", "TARGET", "RESULT").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
}

func recordStatus(rec history.Record) string {
	if rec.Failed() {
		return "error"
	}
	return rec.Summary
}

func printRecord(w io.Writer, rec *history.Record) {
	fmt.Fprintf(w, "UID:        %s\n", rec.UID)
	fmt.Fprintf(w, "Target:     %s\n", rec.Target)
	if rec.Title != "" {
		fmt.Fprintf(w, "Title:      %s\n", rec.Title)
	}
	if rec.Requester != "" {
		fmt.Fprintf(w, "Requester:  %s\n", rec.Requester)
	}
	fmt.Fprintf(w, "Scanned:    %s (%s)\n", rec.ScannedAt.Format(time.RFC3339), humanize.Time(rec.ScannedAt))
	fmt.Fprintf(w, "Duration:   %s\n", rec.Duration.Round(time.Millisecond))
	if rec.Summary != "" {
		fmt.Fprintf(w, "Summary:    %s\n", rec.Summary)
	}
	if rec.ReportDir != "" {
		fmt.Fprintf(w, "Report dir: %s\n", rec.ReportDir)
	}
	if rec.Error != "" {
		fmt.Fprintf(w, "Error:      %s\n", rec.Error)
	}
}
