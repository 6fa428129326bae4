package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/preamble/internal"
	"github.com/starford/preamble/internal/book"
	"github.com/starford/preamble/internal/bookservice"
	"github.com/starford/preamble/internal/frontmatter"
	"github.com/starford/preamble/internal/index"
	"github.com/starford/preamble/internal/mcpserver"
	"github.com/starford/preamble/internal/storage"
	pkgconfig "github.com/starford/preamble/pkg/config"
)

// stderrLogger keeps diagnostics off stdout, which carries the processed
// book JSON when running as a preprocessor.
func stderrLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, nil))
}

// preprocess is the default action: speak the mdBook preprocessor protocol
// on stdin/stdout.
func preprocess(ctx context.Context, cmd *cli.Command) error {
	r := frontmatter.Renderer{TableClass: cmd.String("table-class")}
	p := book.NewPreprocessor(r, stderrLogger())
	return p.Handle(os.Stdin, os.Stdout)
}

// supports implements the renderer capability handshake: exit 0 when the
// renderer is supported, 1 otherwise.
func supports(ctx context.Context, cmd *cli.Command) error {
	renderer := cmd.Args().First()
	if book.Supports(renderer) {
		return nil
	}
	return cli.Exit("", 1)
}

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	configPath := cmd.String("config")
	if _, err := os.Stat(configPath); err == nil || cmd.IsSet("config") {
		if err := pkgconfig.Load(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}
	return cfg, nil
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := internal.Run(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// apply rewrites every source file in place with its transformed content.
func apply(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	store, err := storage.NewFS(cfg.Book.Src)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}
	logger := stderrLogger()
	changed, err := bookservice.ApplyAll(store, cfg.Render.Renderer(), logger)
	if err != nil {
		return err
	}
	logger.Info("apply finished", slog.Int("changed", changed))
	return nil
}

// mcpServe runs the MCP server on stdio.
func mcpServe(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	store, err := storage.NewFS(cfg.Book.Src)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}
	db, err := index.Open(cfg.SQLite.Path)
	if err != nil {
		return fmt.Errorf("init index: %w", err)
	}
	defer db.Close()
	if err := index.Sync(db, store, stderrLogger()); err != nil {
		return fmt.Errorf("initial sync: %w", err)
	}
	return mcpserver.New(store, db, cfg.Render.Renderer()).ServeStdio()
}

func main() {
	configFlag := &cli.StringFlag{
		Name:        "config",
		Aliases:     []string{"c"},
		Usage:       "Path to config file",
		DefaultText: "config/config.yaml",
		Value:       "config/config.yaml",
		Sources:     cli.EnvVars("PREAMBLE_CONFIG_FILE"),
	}

	cmd := &cli.Command{
		Name:   "preamble",
		Usage:  "mdBook preprocessor that renders chapter frontmatter as an HTML table",
		Action: preprocess,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "table-class",
				Usage: "CSS class of the rendered table",
				Value: frontmatter.DefaultTableClass,
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "supports",
				Usage:     "Renderer capability check for mdBook",
				ArgsUsage: "<renderer>",
				Action:    supports,
			},
			{
				Name:   "serve",
				Usage:  "Run the live preview server over the book src directory",
				Flags:  []cli.Flag{configFlag},
				Action: serve,
			},
			{
				Name:   "apply",
				Usage:  "Rewrite source files in place with rendered frontmatter",
				Flags:  []cli.Flag{configFlag},
				Action: apply,
			},
			{
				Name:   "mcp",
				Usage:  "Run the MCP server on stdio",
				Flags:  []cli.Flag{configFlag},
				Action: mcpServe,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("preamble error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
