package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/cratedoc/cargo"
	"github.com/fwojciec/cratedoc/fs"
	"github.com/fwojciec/cratedoc/goquery"
	"github.com/fwojciec/cratedoc/htmltomarkdown"
	cratehttp "github.com/fwojciec/cratedoc/http"
	"github.com/fwojciec/cratedoc/resolve"
	crateslog "github.com/fwojciec/cratedoc/slog"
	_ "github.com/joho/godotenv/autoload"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("cratedoc"),
		kong.Description("Render Rust crate documentation as Markdown context"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle no arguments
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	registry := cratehttp.NewRegistry(
		cratehttp.WithBaseURL(cli.RegistryURL),
		cratehttp.WithUserAgent(cli.UserAgent),
		cratehttp.WithTimeout(cli.Timeout),
	)

	var stages []resolve.Stage
	toolchain := cargo.NewToolchain(
		cargo.WithBinary(cli.Cargo),
		cargo.WithTempDir(cli.TempDir),
	)
	if toolchain.Available() {
		stages = append(stages, &resolve.ToolchainStage{
			Toolchain: crateslog.NewLoggingToolchain(toolchain, logger),
			DocTree:   fs.NewDocTree(),
			Scraper:   goquery.NewScraper(htmltomarkdown.NewConverter()),
			Logger:    logger,
		})
	} else {
		logger.WarnContext(ctx, "cargo not found, falling back to registry metadata", "cargo", cli.Cargo)
	}
	stages = append(stages,
		&resolve.RegistryStage{
			Registry: crateslog.NewLoggingRegistry(registry, logger),
		},
		resolve.TemplateStage{},
	)

	resolver := resolve.NewResolver(logger, stages...)

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Loader: crateslog.NewLoggingLoader(resolve.NewLoader(resolver), logger),
	}
	if cli.Output != "" {
		deps.Writer = fs.NewWriter(cli.Output)
	}

	cmd := &ResolveCmd{
		Crates:      cli.Crates,
		Concurrency: cli.Concurrency,
		Output:      cli.Output,
	}

	return cmd.Run(deps)
}
