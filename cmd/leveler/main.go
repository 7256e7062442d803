// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/poiesic/leveler"
	"github.com/poiesic/leveler/core"
	"github.com/poiesic/leveler/refine"
	"github.com/poiesic/leveler/retrieval"
	"github.com/poiesic/leveler/server"
	"github.com/urfave/cli/v2"
)

// credentialEnvVars enable the refinement policy when any is set.
var credentialEnvVars = []string{"OPENAI_API_KEY", "ANTHROPIC_API_KEY"}

func main() {
	if err := loadEnvFile(".env"); err != nil {
		log.Fatal(err)
	}
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func dbFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "db",
		Aliases:  []string{"d"},
		Usage:    "Path to BadgerDB database directory",
		EnvVars:  []string{"LEVELER_DB"},
		Required: true,
	}
}

// engineFlags configure corpus indexing and summary refinement.
func engineFlags() []cli.Flag {
	return []cli.Flag{
		dbFlag(),
		&cli.StringFlag{
			Name:  "strategy",
			Usage: "Retrieval backend (auto, brute, inverted)",
			Value: string(retrieval.StrategyAuto),
		},
		&cli.IntFlag{
			Name:  "dimensions",
			Usage: "Width of the hashed feature space",
			Value: leveler.DefaultConfig().Dimensions,
		},
		&cli.IntFlag{
			Name:  "pool-size",
			Usage: "Workers used to featurize the corpus",
			Value: leveler.DefaultConfig().PoolSize,
		},
		&cli.StringFlag{
			Name:  "llm-host",
			Usage: "OpenAI-compatible host for summary refinement",
			Value: refine.DefaultConfig().Host,
		},
		&cli.StringFlag{
			Name:  "llm-model",
			Usage: "Model for summary refinement; refinement by model is off when empty",
		},
		&cli.StringFlag{
			Name:    "llm-api-key",
			Usage:   "API key for the refinement host",
			EnvVars: []string{"OPENAI_API_KEY"},
		},
		&cli.IntFlag{
			Name:  "llm-max-attempts",
			Usage: "Maximum attempts for a failed refinement call",
			Value: refine.DefaultConfig().MaxAttempts,
		},
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "leveler",
		Usage: "Benchmark retrieval and leveling ladder synthesis",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "import",
				Usage:  "Load a JSON benchmark dataset into the database",
				Action: importCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.StringFlag{
						Name:     "data",
						Usage:    "Path to the benchmark dataset (JSON array)",
						Required: true,
					},
				},
			},
			{
				Name:   "generate",
				Usage:  "Generate a leveling ladder for a query",
				Action: generateCommand,
				Flags: append(engineFlags(),
					&cli.StringFlag{
						Name:  "query",
						Usage: "Path to the query JSON, or - for stdin",
						Value: "-",
					},
					&cli.BoolFlag{
						Name:  "explain",
						Usage: "Print the peer ranking trace to stderr",
					},
				),
			},
			{
				Name:   "serve",
				Usage:  "Serve ladder generation over HTTP",
				Action: serveCommand,
				Flags: append(engineFlags(),
					&cli.StringFlag{
						Name:    "addr",
						Usage:   "Listen address",
						Value:   ":8000",
						EnvVars: []string{"LEVELER_ADDR"},
					},
					&cli.StringSliceFlag{
						Name:  "allowed-origin",
						Usage: "CORS allowed origin (repeatable)",
					},
				),
			},
			{
				Name:   "inspect",
				Usage:  "Print the stored benchmark corpus",
				Action: inspectCommand,
				Flags:  []cli.Flag{dbFlag()},
			},
		},
	}
}

func importCommand(c *cli.Context) error {
	f, err := os.Open(c.String("data"))
	if err != nil {
		return fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	n, err := leveler.Import(c.Context, c.String("db"), f, c.App.ErrWriter)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Fprintf(c.App.Writer, "Imported %d benchmark records into %s\n", n, c.String("db"))
	return nil
}

func generateCommand(c *cli.Context) error {
	query, err := readQuery(c.String("query"), c.App.Reader)
	if err != nil {
		return err
	}
	if err := core.ValidateQuery(query); err != nil {
		return err
	}

	svc, err := openService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	var monitor *traceMonitor
	if c.Bool("explain") {
		monitor = newTraceMonitor(c.App.ErrWriter)
	}

	var result *core.Result
	if monitor != nil {
		result, err = svc.GenerateWithMonitor(c.Context, query, monitor)
	} else {
		result, err = svc.Generate(c.Context, query)
	}
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	encoder := json.NewEncoder(c.App.Writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func serveCommand(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc, err := openService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	srv, err := server.NewServer(svc, server.WithAllowedOrigins(c.StringSlice("allowed-origin")...))
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	return srv.ListenAndServe(ctx, c.String("addr"))
}

func inspectCommand(c *cli.Context) error {
	svc, err := leveler.Open(c.Context, c.String("db"), nil)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer svc.Close()

	corpus := svc.Corpus()
	fmt.Fprintf(c.App.Writer, "Records: %d\n", corpus.Len())
	fmt.Fprintf(c.App.Writer, "Companies: %d\n", len(corpus.Companies()))
	for _, record := range corpus.All() {
		fmt.Fprintf(c.App.Writer, "%016x  %-20s %-6s %s\n", uint64(record.Id), record.Company, record.LevelCode, record.Title)
	}
	return nil
}

func openService(c *cli.Context) (*leveler.Service, error) {
	strategy, err := retrieval.ParseStrategy(c.String("strategy"))
	if err != nil {
		return nil, err
	}

	opts := []leveler.Option{
		leveler.WithStrategy(strategy),
		leveler.WithDimensions(c.Int("dimensions")),
		leveler.WithPoolSize(c.Int("pool-size")),
		leveler.WithRefinePolicy(hasCredential(os.LookupEnv)),
	}
	if model := c.String("llm-model"); model != "" {
		opts = append(opts, leveler.WithLLM(refine.NewConfig(
			refine.WithHost(c.String("llm-host")),
			refine.WithModel(model),
			refine.WithAPIKey(c.String("llm-api-key")),
			refine.WithRetry(c.Int("llm-max-attempts"), refine.DefaultConfig().RetryDelay),
		)))
	}

	svc, err := leveler.Open(c.Context, c.String("db"), leveler.NewConfig(opts...))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return svc, nil
}

func readQuery(path string, stdin io.Reader) (*core.Query, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open query: %w", err)
		}
		defer f.Close()
		r = f
	}

	var query core.Query
	if err := json.NewDecoder(r).Decode(&query); err != nil {
		return nil, fmt.Errorf("invalid query json: %w", err)
	}
	return &query, nil
}

// hasCredential reports whether any LLM provider credential is present.
func hasCredential(lookup func(string) (string, bool)) bool {
	for _, name := range credentialEnvVars {
		if v, ok := lookup(name); ok && strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}

// loadEnvFile loads path into the environment if it exists. Variables
// already set take precedence.
func loadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
