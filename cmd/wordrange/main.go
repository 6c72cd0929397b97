package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"

	"pkg.jsn.cam/wordrange/internal/store"
	"pkg.jsn.cam/wordrange/internal/worker"
	"pkg.jsn.cam/wordrange/pkg/wordrange"
)

const defaultDBPath = "var/wordrange/history.db"

// exitDegraded signals that the printed total is only a lower bound.
const exitDegraded = 2

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: wordrange <command> [flags]

Commands:
  count     count the words of a file with concurrent range workers
  history   list recorded runs
  show      print one recorded run with its ranges
  prune     delete all but the newest recorded runs

Run "wordrange <command> -h" for the flags of a command.
`)
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd, args := os.Args[1], os.Args[2:]
	switch cmd {
	case "count":
		os.Exit(runCount(args))
	case "history":
		runHistory(args)
	case "show":
		runShow(args)
	case "prune":
		runPrune(args)
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", cmd)
		usage()
		os.Exit(1)
	}
}

func runCount(args []string) int {
	fs := flag.NewFlagSet("count", flag.ExitOnError)
	path := fs.String("path", "", "Path to the input text file")
	workers := fs.Int("workers", runtime.NumCPU(), "Number of ranges scanned concurrently")
	bufferSize := fs.Int("buffer", wordrange.DefaultBufferSize, "Read window per worker in bytes")
	skip := fs.String("skip", wordrange.DefaultSkip, "Bytes that neither end nor separate words")
	progress := fs.Bool("progress", false, "Show a progress bar on stderr")
	dbPath := fs.String("db", "", "Record the run in this history database")
	verbose := fs.Bool("v", false, "Print per-range results")
	fs.Parse(args)

	if *path == "" {
		log.Fatal("path is required")
	}

	absPath, err := filepath.Abs(*path)
	if err != nil {
		log.Fatalf("Invalid path: %v", err)
	}

	cfg := worker.Config{
		Workers:    *workers,
		BufferSize: *bufferSize,
		Skip:       append([]byte{}, *skip...),
	}
	if *progress {
		cfg.Progress = os.Stderr
	}

	pool, err := worker.NewPool(cfg)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report, err := pool.Run(ctx, absPath)
	if errors.Is(err, wordrange.ErrInvalidConfig) {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if err != nil {
		log.Fatalf("Scan failed: %v", err)
	}

	printReport(report, *verbose)

	if *dbPath != "" {
		saveReport(*dbPath, report)
	}

	if report.Degraded() {
		return exitDegraded
	}
	return 0
}

func saveReport(dbPath string, report *worker.Report) {
	history, err := store.NewStorage(dbPath)
	if err != nil {
		log.Printf("Failed to open history: %v", err)
		return
	}
	defer history.Close()

	if _, err := history.Save(report); err != nil {
		log.Printf("Failed to record run: %v", err)
		return
	}

	fmt.Printf("\nRecorded as run %s\n", report.RunID)
}

func openHistory(fs *flag.FlagSet, args []string) *store.Storage {
	dbPath := fs.String("db", defaultDBPath, "Path to the history database")
	fs.Parse(args)

	history, err := store.NewStorage(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open history: %v", err)
	}

	return history
}

func runHistory(args []string) {
	history := openHistory(flag.NewFlagSet("history", flag.ExitOnError), args)
	defer history.Close()

	records, err := history.List()
	if err != nil {
		log.Fatalf("Failed to list runs: %v", err)
	}

	printHistory(records)
}

func runShow(args []string) {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	runID := fs.String("run", "", "Run ID to show")
	history := openHistory(fs, args)
	defer history.Close()

	if *runID == "" {
		log.Fatal("run is required")
	}

	rec, err := history.Get(*runID)
	if err != nil {
		log.Fatalf("Failed to load run: %v", err)
	}

	printRecord(rec)
}

func runPrune(args []string) {
	fs := flag.NewFlagSet("prune", flag.ExitOnError)
	keep := fs.Int("keep", 10, "Number of newest runs to keep")
	history := openHistory(fs, args)
	defer history.Close()

	removed, err := history.Prune(*keep)
	if err != nil {
		log.Fatalf("Failed to prune history: %v", err)
	}

	fmt.Printf("Removed %d runs\n", removed)
}
