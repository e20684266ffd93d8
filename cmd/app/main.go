package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/raido/internal"
	"github.com/starford/raido/internal/docservice"
	"github.com/starford/raido/internal/engine"
	"github.com/starford/raido/internal/mcpserver"
	"github.com/starford/raido/internal/storage"
	pkgconfig "github.com/starford/raido/pkg/config"
)

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.LoadIfExists(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if dir := cmd.String("dir"); dir != "" {
		cfg.Corpus.Path = dir
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newEngine builds an engine for one-shot commands. Logs go to stderr so
// stdout stays clean for the JSON payload.
func newEngine(cfg *internal.Config) (*engine.Engine, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	store, err := storage.NewFS(cfg.Corpus.Path)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	return engine.New(store, cfg.Corpus.Extension, logger), nil
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func searchAction(_ context.Context, cmd *cli.Command) error {
	query := cmd.Args().First()
	if query == "" {
		return fmt.Errorf("query argument is required")
	}
	limit := int(cmd.Int("limit"))
	offset := int(cmd.Int("offset"))
	if limit < 0 || offset < 0 {
		return fmt.Errorf("limit and offset must be non-negative")
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	eng, err := newEngine(cfg)
	if err != nil {
		return err
	}
	return printJSON(eng.Search(query, limit, offset))
}

func statsAction(_ context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	eng, err := newEngine(cfg)
	if err != nil {
		return err
	}
	return printJSON(eng.Stats())
}

func statusAction(_ context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	eng, err := newEngine(cfg)
	if err != nil {
		return err
	}
	return printJSON(eng.Status())
}

func maintenanceAction(_ context.Context, cmd *cli.Command) error {
	task := cmd.Args().First()
	if task == "" {
		return fmt.Errorf("task argument is required")
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	eng, err := newEngine(cfg)
	if err != nil {
		return err
	}
	// Unknown tasks are reported in the payload, not as a process failure.
	return printJSON(eng.RunMaintenance(task))
}

func addAction(_ context.Context, cmd *cli.Command) error {
	path := cmd.Args().First()
	if path == "" {
		return fmt.Errorf("path argument is required")
	}
	content := []byte(cmd.String("content"))
	if len(content) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		content = data
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	eng, err := newEngine(cfg)
	if err != nil {
		return err
	}
	info, err := eng.AddDocument(path, content)
	if err != nil {
		return err
	}
	return printJSON(info)
}

func serveAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := internal.Run(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

func mcpAction(_ context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	// MCP uses stdout for the protocol; keep logs on stderr.
	eng, err := newEngine(cfg)
	if err != nil {
		return err
	}
	svc := docservice.NewService(eng, nil)
	return mcpserver.New(svc).ServeStdio()
}

func main() {
	cmd := &cli.Command{
		Name:  "raido",
		Usage: "Grep-style ranked line search over a plain-text document corpus, with stats and maintenance tooling",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "Corpus directory (overrides config)",
				Sources: cli.EnvVars("SEARCH_DIRECTORY"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Search for lines matching a query",
				ArgsUsage: "QUERY",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Usage: "Maximum number of results", Value: 10},
					&cli.IntFlag{Name: "offset", Aliases: []string{"o"}, Usage: "Number of results to skip", Value: 0},
				},
				Action: searchAction,
			},
			{
				Name:   "stats",
				Usage:  "Print corpus statistics",
				Action: statsAction,
			},
			{
				Name:   "status",
				Usage:  "Print corpus status and health",
				Action: statusAction,
			},
			{
				Name:      "maintenance",
				Usage:     "Run a maintenance task (cleanup, update-stats, clear-all)",
				ArgsUsage: "TASK",
				Action:    maintenanceAction,
			},
			{
				Name:      "add",
				Usage:     "Ingest a document (content from --content or stdin)",
				ArgsUsage: "PATH",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "content", Usage: "Document content (reads stdin when empty)"},
				},
				Action: addAction,
			},
			{
				Name:   "serve",
				Usage:  "Run the HTTP API server",
				Action: serveAction,
			},
			{
				Name:   "mcp",
				Usage:  "Run the MCP server on stdio",
				Action: mcpAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
