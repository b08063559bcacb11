// Command kokkai-sessions builds a Diet session list from the National Diet
// Library meeting-records API.
//
// It walks the paginated meeting list for a date window, folds the records
// into one date range per session, and writes the result as a TSV file.
//
// Usage:
//
//	kokkai-sessions [flags]
//
// Flags:
//
//	-start-date string  Window start, YYYY-MM-DD (default: 30 days ago)
//	-end-date string    Window end, YYYY-MM-DD (default: today)
//	-output string      Output TSV path (default: kokkai_session_list.tsv)
//	-config string      Config file path (default: kokkai.yaml)
//	-print              Print the session table to stdout
//	-no-progress        Disable the live progress display
//	-v                  Enable debug logging
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/fwojciec/kokkai"
	bt "github.com/fwojciec/kokkai/bubbletea"
	"github.com/fwojciec/kokkai/ndl"
	"github.com/fwojciec/kokkai/table"
	"github.com/fwojciec/kokkai/tsv"
	"golang.org/x/term"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "kokkai-sessions: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Parse flags.
	var (
		startDate  = flag.String("start-date", "", "window start, YYYY-MM-DD (default: 30 days ago)")
		endDate    = flag.String("end-date", "", "window end, YYYY-MM-DD (default: today)")
		output     = flag.String("output", "", "output TSV path (default: "+tsv.DefaultFilename+")")
		configPath = flag.String("config", defaultConfigPath, "config file path")
		printTable = flag.Bool("print", false, "print the session table to stdout")
		noProgress = flag.Bool("no-progress", false, "disable the live progress display")
		verbose    = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	// Handle OS signals for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger := newLogger(os.Stderr, *verbose)

	// Resolve configuration. Env vars are read here and passed as values.
	cfg, err := resolveConfig(*configPath, env.ToMap(os.Environ()), *output)
	if err != nil {
		return err
	}

	start, end, err := resolveDates(*startDate, *endDate, time.Now())
	if err != nil {
		return err
	}

	query := kokkai.Query{NameOfMeeting: cfg.Meeting, Start: start, End: end}
	logger.Debug("resolved query",
		"start", start.Format(time.DateOnly),
		"end", end.Format(time.DateOnly),
		"meeting", cfg.Meeting,
		"output", cfg.Output)

	opts := []ndl.Option{
		ndl.WithPageSize(cfg.PageSize),
		ndl.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.Timeout) * time.Second}),
		ndl.WithLogger(logger),
	}
	if cfg.Endpoint != "" {
		opts = append(opts, ndl.WithBaseURL(cfg.Endpoint))
	}
	pipeline := kokkai.NewPipeline(ndl.New(opts...))

	theme := kokkai.DefaultTheme()

	var (
		ranges  []kokkai.SessionRange
		records int
	)
	count := func(kokkai.Meeting) { records++ }
	useTUI := !*noProgress && term.IsTerminal(int(os.Stdout.Fd()))

	if useTUI {
		// Run the fetch behind the progress display. The display renders
		// the final table itself, so -print is already satisfied here.
		fetch := func(ctx context.Context, onRecord func(kokkai.Meeting)) ([]kokkai.SessionRange, error) {
			return pipeline.Run(ctx, query, kokkai.WithRecordHandler(func(rec kokkai.Meeting) {
				count(rec)
				onRecord(rec)
			}))
		}
		final, err := bt.Run(ctx, bt.New(ctx, fetch, theme))
		if err != nil {
			return fmt.Errorf("progress display: %w", err)
		}
		if final.Running() || errors.Is(final.Err(), context.Canceled) {
			return errors.New("interrupted")
		}
		if err := final.Err(); err != nil {
			return err
		}
		ranges = final.Ranges()
	} else {
		ranges, err = pipeline.Run(ctx, query, kokkai.WithRecordHandler(count))
		if err != nil {
			if ctx.Err() != nil {
				return errors.New("interrupted")
			}
			return err
		}
	}

	if err := tsv.Save(cfg.Output, ranges); err != nil {
		return err
	}

	logger.Info("wrote session list",
		"records", records,
		"sessions", len(ranges),
		"path", cfg.Output)

	if *printTable && !useTUI {
		fmt.Print(table.Render(ranges, theme))
	}

	return nil
}
