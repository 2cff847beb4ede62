package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	sbhttp "github.com/sammelband/sammelband/http"
	"github.com/sammelband/sammelband/rod"
	"github.com/sammelband/sammelband/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Browser shared by the page fetcher and the PDF renderer. Nil when
	// serving in static mode.
	Browser *rod.BrowserManager

	// HTTP server serving the API.
	HTTPServer *sbhttp.Server
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program. The HTTP server is stopped before the
// services it uses.
func (m *Main) Close() error {
	var errs []error
	if m.HTTPServer != nil {
		errs = append(errs, m.HTTPServer.Close())
	}
	if m.Browser != nil {
		errs = append(errs, m.Browser.Close())
	}
	if m.DB != nil {
		errs = append(errs, m.DB.Close())
	}
	return errors.Join(errs...)
}

// Run executes the CLI with the given arguments. The serve command blocks
// until ctx is canceled.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Main:   m,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("sammelband"),
		kong.Description("Bind web articles into one document."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) > 0 && (args[0] == "help" || args[0] == "--help" || args[0] == "-h") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	deps.Verbose = cli.Verbose
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	return kongCtx.Run(deps)
}
