// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Command catalog-import copies a precomputed JSON catalog bundle into a
// DuckDB database so the server can run with CATALOG_SOURCE=duckdb.
//
//	catalog-import -movies movies.json -similarity similarity.json -db reelmatch.duckdb
//
// With -export it goes the other way and writes the DuckDB catalog back out
// as a JSON bundle.
//
// The source is validated before anything is written; an invalid source
// leaves the destination untouched.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/logging"
)

type options struct {
	moviesPath     string
	similarityPath string
	dbPath         string
	logLevel       string
	export         bool
}

var errEmptyDB = errors.New("-db must not be empty")

// parseFlags reports every error on stderr, followed by the usage text.
func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("catalog-import", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.moviesPath, "movies", "movies.json", "path to the movies JSON file")
	fs.StringVar(&opts.similarityPath, "similarity", "similarity.json", "path to the similarity matrix JSON file")
	fs.StringVar(&opts.dbPath, "db", "reelmatch.duckdb", "path to the DuckDB database")
	fs.StringVar(&opts.logLevel, "log-level", "info", "log level")
	fs.BoolVar(&opts.export, "export", false, "write the DuckDB catalog to the JSON files instead of importing them")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if opts.dbPath == "" {
		fmt.Fprintln(stderr, errEmptyDB)
		fs.Usage()
		return options{}, errEmptyDB
	}
	return opts, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		os.Exit(2)
	}

	logging.Init(logging.Config{Level: opts.logLevel, Format: "console", Timestamp: true})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts); err != nil {
		logging.Error().Err(err).Bool("export", opts.export).Msg("Catalog import failed")
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	if opts.export {
		return exportBundle(ctx, opts)
	}
	return importBundle(ctx, opts)
}

func importBundle(ctx context.Context, opts options) error {
	start := time.Now()

	cat, err := catalog.JSONSource{
		MoviesPath:     opts.moviesPath,
		SimilarityPath: opts.similarityPath,
	}.Load(ctx)
	if err != nil {
		return err
	}
	logging.Info().Int("movies", cat.Len()).Msg("Bundle validated")

	db, err := catalog.OpenDuckDB(ctx, opts.dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	src := catalog.NewDuckDBSource(db)
	if err := src.InitSchema(ctx); err != nil {
		return err
	}
	if err := src.Save(ctx, cat); err != nil {
		return err
	}

	logging.Info().
		Str("db", opts.dbPath).
		Int("movies", cat.Len()).
		Dur("duration", time.Since(start)).
		Msg("Catalog imported")
	return nil
}

func exportBundle(ctx context.Context, opts options) error {
	start := time.Now()

	if _, err := os.Stat(opts.dbPath); err != nil {
		return fmt.Errorf("catalog database: %w", err)
	}
	db, err := catalog.OpenDuckDB(ctx, opts.dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	cat, err := catalog.NewDuckDBSource(db).Load(ctx)
	if err != nil {
		return err
	}
	if err := catalog.WriteJSON(cat, opts.moviesPath, opts.similarityPath); err != nil {
		return err
	}

	logging.Info().
		Str("movies_path", opts.moviesPath).
		Str("similarity_path", opts.similarityPath).
		Int("movies", cat.Len()).
		Dur("duration", time.Since(start)).
		Msg("Catalog exported")
	return nil
}
