package main

import (
	"context"
	"fmt"
	"os"

	"github.com/lyrelab/intertext/internal/config"
	"github.com/lyrelab/intertext/internal/qids"
	"github.com/lyrelab/intertext/pkg/graph"
	"github.com/lyrelab/intertext/pkg/logger"
	"github.com/lyrelab/intertext/pkg/logger/console"
	"github.com/lyrelab/intertext/pkg/rdf"
	"github.com/lyrelab/intertext/pkg/sparql"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger.Init(console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: cfg.Debug,
	}))

	runID, err := gonanoid.New()
	if err != nil {
		logger.Fatal("Failed to generate run id", "error", err)
	}
	logger.Info("Starting relations build", "run_id", runID, "endpoint", cfg.Endpoint)

	workIDs, err := qids.Load(cfg.InputCSV)
	if err != nil {
		logger.Fatal("Failed to load work ids", "path", cfg.InputCSV, "error", err)
	}
	if len(workIDs) == 0 {
		logger.Fatal("Work id list is empty", "path", cfg.InputCSV)
	}
	logger.Info("Loaded work ids", "count", len(workIDs), "path", cfg.InputCSV)

	client := sparql.NewClient(sparql.NewClientParams{
		Endpoint:          cfg.Endpoint,
		UserAgent:         cfg.UserAgent,
		Timeout:           cfg.Timeout,
		MaxRetries:        cfg.MaxRetries,
		RequestsPerSecond: cfg.RequestsPerSecond,
	})
	labels := sparql.NewLabelResolver(sparql.NewLabelResolverParams{
		Client:        client,
		PreferredLang: cfg.PreferredLang,
		FallbackLang:  cfg.FallbackLang,
	})

	store := rdf.NewStore()
	builder := graph.NewBuilder(graph.NewBuilderParams{
		Store:   store,
		Queries: client,
		Labels:  labels,
		Profile: &cfg.Profile,
		BaseURI: cfg.BaseURI,
	})

	if err := builder.Run(context.Background(), workIDs); err != nil {
		logger.Fatal("Graph build aborted", "run_id", runID, "error", err)
	}

	out, err := os.Create(cfg.OutputPath)
	if err != nil {
		logger.Fatal("Failed to create output file", "path", cfg.OutputPath, "error", err)
	}
	defer out.Close()

	if err := rdf.WriteTurtle(out, store, graph.Prefixes(cfg.BaseURI)); err != nil {
		logger.Fatal("Failed to serialize graph", "path", cfg.OutputPath, "error", err)
	}

	logger.Info("Relations build finished",
		"run_id", runID, "triples", store.Len(), "output", cfg.OutputPath)
}
