package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	qcerrors "github.com/quickcode-ui/quickcode/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Output streams. Tests swap these to capture what the commands print.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

const banner = `
  ┌─┐ ┬ ┬┬┌─┐┬┌─┌─┐┌─┐┌┬┐┌─┐
  │─┼┐│ ││  ├┴┐│  │ │ ││├┤
  └─┘└└─┘┴└─┘┴ ┴└─┘└─┘─┴┘└─┘
`

const usage = `
Usage:
  quickcode add <Component...>

Examples:
  quickcode add Button
  quickcode add Accordion
  quickcode add Chart/LineChart Chart/BarChart
`

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	verbose bool
	trace   bool
}

// logger returns a debug logger on stderr with --verbose, and a discarding
// one otherwise.
func (o *rootOptions) logger() *slog.Logger {
	if !o.verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// tracerProvider returns a provider that prints finished spans to stderr
// with --trace, and a no-op provider otherwise. The returned shutdown
// flushes pending spans.
func (o *rootOptions) tracerProvider() (trace.TracerProvider, func(context.Context) error, error) {
	if !o.trace {
		return noop.NewTracerProvider(), func(context.Context) error { return nil }, nil
	}

	exporter, err := stdouttrace.New(
		stdouttrace.WithWriter(stderr),
		stdouttrace.WithPrettyPrint(),
	)
	if err != nil {
		return nil, nil, err
	}
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	return tp, tp.Shutdown, nil
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "quickcode",
		Short: "Copy QuickCode UI components into your project",
		Long: `QuickCode copies React UI components into your project as source you own.

Each component is downloaded from the QuickCode component map together with
the components and hooks it requires, and any missing npm packages are
installed with your package manager.`,
		// Unknown words print the usage text instead of failing.
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			printUsage()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug output to stderr")
	rootCmd.PersistentFlags().BoolVar(&opts.trace, "trace", false, "Print OpenTelemetry spans to stderr")

	// Bad flags get the usage text, like any other unrecognized input.
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		opts.logger().Debug("flag error", "command", cmd.Name(), "error", err)
		printUsage()
		return nil
	})

	rootCmd.AddCommand(
		addCmd(opts),
		listCmd(opts),
		initCmd(opts),
		versionCmd(),
	)

	return rootCmd
}

func main() {
	ctx, cancel := signalContext()
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		qcerrors.PrintError(stderr, err)
		os.Exit(1)
	}
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}

// printUsage prints the add usage text.
func printUsage() {
	fmt.Fprint(stdout, usage)
}

// printBanner prints the QuickCode ASCII art banner.
func printBanner() {
	fmt.Fprint(stdout, banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Fprintf(stdout, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Fprintf(stdout, "  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(format string, args ...any) {
	fmt.Fprintf(stdout, "\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}

// errorMsg prints an error message.
func errorMsg(format string, args ...any) {
	fmt.Fprintf(stderr, "\033[31m✗\033[0m %s\n", fmt.Sprintf(format, args...))
}
