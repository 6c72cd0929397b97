package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"pkg.jsn.cam/wordrange/internal/store"
	"pkg.jsn.cam/wordrange/internal/worker"
)

const rule = "─────────────────────────────────────────────────────────────────────────────────────────"

func printReport(report *worker.Report, verbose bool) {
	fmt.Printf("Words:   %s\n", humanize.Comma(int64(report.Total())))
	fmt.Printf("File:    %s (%s)\n", report.Path, humanize.Bytes(report.FileSize))
	fmt.Printf("Workers: %d (buffer %s)\n", report.Workers, humanize.Bytes(uint64(report.BufferSize)))
	fmt.Printf("Time:    %.2fs\n", report.Elapsed.Seconds())

	if retries := report.Retries(); retries > 0 {
		fmt.Printf("Retries: %d\n", retries)
	}

	if verbose {
		fmt.Println()
		fmt.Printf("%-6s %-14s %-12s %-10s %-8s %s\n", "RANGE", "OFFSET", "SIZE", "WORDS", "RETRIES", "STATUS")
		fmt.Println(rule)
		for _, res := range report.Results {
			status := "ok"
			if res.Degraded {
				status = "degraded"
			}
			fmt.Printf("%-6d %-14d %-12s %-10d %-8d %s\n",
				res.Range.Index, res.Range.Offset, humanize.Bytes(res.Range.Size), res.Count, res.Retries, status)
		}
	}

	if report.Degraded() {
		fmt.Printf("\nWARNING: %d of %d ranges failed; the word count is a lower bound.\n",
			len(report.Summary.DegradedRanges), report.Workers)
		fmt.Printf("%v\n", report.Err())
	}
}

func printHistory(records []store.Record) {
	if len(records) == 0 {
		fmt.Println("No runs recorded")
		return
	}

	fmt.Printf("%-36s %-14s %-10s %-8s %-10s %s\n", "RUN ID", "WORDS", "SIZE", "WORKERS", "STATUS", "STARTED")
	fmt.Println(rule)
	for _, rec := range records {
		fmt.Printf("%-36s %-14s %-10s %-8d %-10s %s\n",
			rec.RunID,
			humanize.Comma(int64(rec.Total)),
			humanize.Bytes(rec.FileSize),
			rec.Workers,
			status(rec.Degraded),
			humanize.Time(rec.StartedAt))
	}
}

func printRecord(rec store.Record) {
	fmt.Printf("Run Details:\n")
	fmt.Printf("  ID:          %s\n", rec.RunID)
	fmt.Printf("  Status:      %s\n", status(rec.Degraded))
	fmt.Printf("  Path:        %s\n", rec.Path)
	fmt.Printf("  Size:        %s\n", humanize.Bytes(rec.FileSize))
	fmt.Printf("  Words:       %s\n", humanize.Comma(int64(rec.Total)))
	fmt.Printf("  Workers:     %d\n", rec.Workers)
	fmt.Printf("  Buffer:      %s\n", humanize.Bytes(uint64(rec.BufferSize)))
	fmt.Printf("  Skip bytes:  %q\n", rec.Skip)
	fmt.Printf("  Started:     %s\n", rec.StartedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("  Duration:    %v\n", rec.Elapsed.Round(time.Millisecond))

	fmt.Printf("\nRanges:\n")
	for _, r := range rec.Ranges {
		var events []string
		if r.BoundaryEvent {
			events = append(events, "boundary")
		}
		if r.TailEvent {
			events = append(events, "tail")
		}
		fmt.Printf("  %-14s words %-10d read %-10s retries %d %s\n",
			r.Range.String(), r.Count, humanize.Bytes(r.BytesRead), r.Retries, strings.Join(events, ","))
		if r.Error != "" {
			fmt.Printf("    error: %s\n", r.Error)
		}
	}
}

func status(degraded bool) string {
	if degraded {
		return "degraded"
	}
	return "complete"
}
