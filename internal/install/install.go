package install

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/quickcode-ui/quickcode/internal/config"
	"github.com/quickcode-ui/quickcode/internal/errors"
	"github.com/quickcode-ui/quickcode/internal/prompt"
	"github.com/quickcode-ui/quickcode/internal/registry"
)

const tracerName = "quickcode"

// Options configures an Installer.
type Options struct {
	// Registry is the component map. Required.
	Registry *registry.Registry

	// Layout resolves destination paths. Required.
	Layout *config.Layout

	// Fetcher downloads source files. Required.
	Fetcher registry.Fetcher

	// Confirmer answers overwrite questions. Defaults to always No.
	Confirmer prompt.Confirmer

	// Deps installs npm packages. Nil skips the dependency step.
	Deps DependencyInstaller

	// Reporter receives progress events. Defaults to discarding them.
	Reporter Reporter

	// Logger receives debug logs. Defaults to discarding them.
	Logger *slog.Logger

	// Metrics records outcomes. Defaults to a fresh Metrics.
	Metrics *Metrics

	// TracerProvider creates spans. Defaults to the global provider.
	TracerProvider trace.TracerProvider
}

// Installer installs components from a registry.
type Installer struct {
	reg      *registry.Registry
	layout   *config.Layout
	fetcher  registry.Fetcher
	guard    *Guard
	deps     DependencyInstaller
	reporter Reporter
	logger   *slog.Logger
	metrics  *Metrics
	tracer   trace.Tracer
}

// New creates an Installer.
func New(opts Options) *Installer {
	in := &Installer{
		reg:      opts.Registry,
		layout:   opts.Layout,
		deps:     opts.Deps,
		reporter: opts.Reporter,
		logger:   opts.Logger,
		metrics:  opts.Metrics,
	}

	confirm := opts.Confirmer
	if confirm == nil {
		confirm = prompt.Always(false)
	}
	in.guard = NewGuard(confirm)

	if in.reporter == nil {
		in.reporter = discardReporter{}
	}
	if in.logger == nil {
		in.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if in.metrics == nil {
		in.metrics = NewMetrics()
	}

	tp := opts.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	in.tracer = tp.Tracer(tracerName)
	in.fetcher = &tracedFetcher{next: opts.Fetcher, tracer: in.tracer, metrics: in.metrics}

	return in
}

// Metrics returns the installer's metrics.
func (in *Installer) Metrics() *Metrics {
	return in.metrics
}

// Result describes one Install call.
type Result struct {
	// Requested is the name as given.
	Requested string

	// Order lists the registry keys installed, dependencies first.
	Order []string

	// Written lists files written, in order.
	Written []string

	// Backups lists .bak files created.
	Backups []string

	// Skipped lists files the user chose to keep.
	Skipped []string

	// Failed lists files that could not be fetched or written.
	Failed []string

	// Missing lists required components absent from the registry.
	Missing []string

	// Dependencies lists packages handed to the package manager.
	Dependencies []string

	// Err is set when the request as a whole failed (not found or cyclic).
	Err error
}

// step is one planned component install. found is false for a required
// component that is not in the registry.
type step struct {
	name  string
	key   string
	comp  registry.Component
	found bool
}

// InstallAll installs each name in order. A failed name does not stop the
// ones after it; a cancelled context does.
func (in *Installer) InstallAll(ctx context.Context, names []string) []*Result {
	results := make([]*Result, 0, len(names))
	for _, name := range names {
		if ctx.Err() != nil {
			break
		}
		res, _ := in.Install(ctx, name)
		results = append(results, res)
	}
	return results
}

// Install installs name, its requirements, hooks and dependencies.
func (in *Installer) Install(ctx context.Context, name string) (*Result, error) {
	ctx, span := in.tracer.Start(ctx, "install",
		trace.WithAttributes(attribute.String("quickcode.component", name)))
	defer span.End()

	res := &Result{Requested: name}
	fail := func(err error) (*Result, error) {
		res.Err = err
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return res, err
	}

	if _, _, ok := in.reg.Lookup(name); !ok {
		in.metrics.component(outcomeNotFound)
		in.reporter.Report(Event{Kind: EventNotFound, Target: TargetComponent, Name: name})
		return fail(errors.New("E110").
			WithDetailf("Component %q not found", name).
			WithSuggestion("Run 'quickcode list' to see available components"))
	}

	plan, err := in.plan(name)
	if err != nil {
		return fail(err)
	}
	in.logger.Debug("install planned", "component", name, "steps", len(plan))

	for _, s := range plan {
		if err := ctx.Err(); err != nil {
			return fail(err)
		}
		if !s.found {
			in.metrics.component(outcomeNotFound)
			in.reporter.Report(Event{Kind: EventNotFound, Target: TargetComponent, Name: s.name})
			res.Missing = append(res.Missing, s.name)
			continue
		}
		res.Order = append(res.Order, s.key)
		in.installComponent(ctx, s, res)
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}
	return res, nil
}

// plan walks requires depth-first and returns the components in install
// order. Components reached twice appear twice. A component that requires
// itself, directly or through others, is an E111 error.
func (in *Installer) plan(name string) ([]step, error) {
	var (
		order  []step
		path   []string
		onPath = make(map[string]bool)
	)

	var walk func(name string) error
	walk = func(name string) error {
		key, comp, ok := in.reg.Lookup(name)
		if !ok {
			order = append(order, step{name: name})
			return nil
		}
		if onPath[key] {
			cycle := append(append([]string{}, path...), key)
			return errors.New("E111").
				WithDetail(strings.Join(cycle, " -> "))
		}

		onPath[key] = true
		path = append(path, key)
		for _, req := range comp.Requires {
			if err := walk(req); err != nil {
				return err
			}
		}
		path = path[:len(path)-1]
		onPath[key] = false

		order = append(order, step{name: name, key: key, comp: comp, found: true})
		return nil
	}

	if err := walk(name); err != nil {
		return nil, err
	}
	return order, nil
}

// installComponent installs hooks, then the component file, then its
// dependencies. Declining the component overwrite skips the dependencies.
func (in *Installer) installComponent(ctx context.Context, s step, res *Result) {
	ctx, span := in.tracer.Start(ctx, "install.component",
		trace.WithAttributes(
			attribute.String("quickcode.component", s.key),
			attribute.Int("quickcode.hooks", len(s.comp.Hooks)),
			attribute.Int("quickcode.deps", len(s.comp.Deps)),
		))
	defer span.End()

	for _, hook := range s.comp.Hooks {
		if ctx.Err() != nil {
			return
		}
		in.installHook(ctx, hook, res)
	}

	dest, err := in.layout.ComponentPath(s.key)
	if err != nil {
		in.metrics.component(outcomeFailed)
		in.reportFailure(TargetComponent, s.key, "", err, res)
		return
	}

	written, declined := in.writeGuarded(ctx, TargetComponent, s.key, dest,
		fmt.Sprintf("Component %s exists. Overwrite?", s.key),
		s.comp.URL, res)
	switch {
	case declined:
		in.metrics.component(outcomeSkipped)
		return
	case written:
		in.metrics.component(outcomeInstalled)
	default:
		in.metrics.component(outcomeFailed)
	}

	if in.deps == nil {
		return
	}
	for _, pkg := range s.comp.DepNames() {
		if ctx.Err() != nil {
			return
		}
		in.installDependency(ctx, pkg, s.comp.Deps[pkg], res)
	}
}

func (in *Installer) installHook(ctx context.Context, hook string, res *Result) {
	file := in.layout.HookFile(hook)
	dest, err := in.layout.HookPath(hook)
	if err != nil {
		in.metrics.hook(outcomeFailed)
		in.reportFailure(TargetHook, file, "", err, res)
		return
	}

	written, declined := in.writeGuarded(ctx, TargetHook, file, dest,
		fmt.Sprintf("Hook %s already exists. Overwrite?", file),
		in.reg.HookURL(hook, in.layout.HookExt()), res)
	switch {
	case declined:
		in.metrics.hook(outcomeSkipped)
	case written:
		in.metrics.hook(outcomeInstalled)
	default:
		in.metrics.hook(outcomeFailed)
	}
}

// writeGuarded runs the Guard for dest, then fetches src and writes it.
// It reports whether the file was written and whether the user declined.
func (in *Installer) writeGuarded(ctx context.Context, target Target, name, dest, question, src string, res *Result) (written, declined bool) {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		in.reportFailure(target, name, dest, errors.New("E113").Wrap(err), res)
		return false, false
	}

	proceed, backup, err := in.guard.Check(dest, question)
	if err != nil {
		in.reportFailure(target, name, dest, errors.New("E113").Wrap(err), res)
		return false, false
	}
	if !proceed {
		res.Skipped = append(res.Skipped, dest)
		in.reporter.Report(Event{Kind: EventSkipped, Target: target, Name: name, Path: dest})
		return false, true
	}
	if backup != "" {
		res.Backups = append(res.Backups, backup)
		in.reporter.Report(Event{Kind: EventBackedUp, Target: target, Name: name, Path: backup})
	}

	url := registry.RawURL(src)
	in.logger.Debug("fetching", "target", string(target), "name", name, "url", url)
	body, err := in.fetcher.Fetch(ctx, url)
	if err != nil {
		in.reportFailure(target, name, dest, err, res)
		return false, false
	}

	if err := os.WriteFile(dest, body, 0644); err != nil {
		in.reportFailure(target, name, dest, errors.New("E113").Wrap(err), res)
		return false, false
	}

	res.Written = append(res.Written, dest)
	in.reporter.Report(Event{Kind: EventInstalled, Target: target, Name: name, Path: dest})
	return true, false
}

func (in *Installer) installDependency(ctx context.Context, pkg, version string, res *Result) {
	if in.deps.Resolvable(pkg) {
		in.metrics.dependency(outcomePresent)
		in.reporter.Report(Event{Kind: EventDependencyPresent, Target: TargetDependency, Name: pkg, Version: version})
		return
	}

	in.reporter.Report(Event{Kind: EventDependencyInstalling, Target: TargetDependency, Name: pkg, Version: version})
	if err := in.deps.Install(ctx, pkg, version); err != nil {
		in.metrics.dependency(outcomeFailed)
		in.logger.Debug("dependency install failed", "package", pkg, "error", err)
		in.reporter.Report(Event{Kind: EventDependencyFailed, Target: TargetDependency, Name: pkg, Version: version, Err: err})
		return
	}
	in.metrics.dependency(outcomeInstalled)
	res.Dependencies = append(res.Dependencies, pkg)
}

func (in *Installer) reportFailure(target Target, name, dest string, err error, res *Result) {
	in.logger.Debug("install step failed", "target", string(target), "name", name, "error", err)
	if dest != "" {
		res.Failed = append(res.Failed, dest)
	} else {
		res.Failed = append(res.Failed, name)
	}
	in.reporter.Report(Event{Kind: EventFailed, Target: target, Name: name, Path: dest, Err: err})
}

// tracedFetcher wraps each fetch in a span and records its outcome.
type tracedFetcher struct {
	next    registry.Fetcher
	tracer  trace.Tracer
	metrics *Metrics
}

func (f *tracedFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	scheme := "file"
	if i := strings.Index(rawURL, "://"); i > 1 {
		scheme = strings.ToLower(rawURL[:i])
	}

	ctx, span := f.tracer.Start(ctx, "fetch",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("url.full", rawURL)))
	defer span.End()

	start := time.Now()
	body, err := f.next.Fetch(ctx, rawURL)
	elapsed := time.Since(start).Seconds()

	if err != nil {
		f.metrics.fetch(scheme, outcomeError, elapsed)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	f.metrics.fetch(scheme, outcomeOK, elapsed)
	span.SetAttributes(attribute.Int("quickcode.bytes", len(body)))
	return body, nil
}
