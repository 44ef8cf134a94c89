package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/quickcode-ui/quickcode/internal/config"
	"github.com/quickcode-ui/quickcode/internal/errors"
	"github.com/quickcode-ui/quickcode/internal/install"
	"github.com/quickcode-ui/quickcode/internal/prompt"
	"github.com/quickcode-ui/quickcode/internal/registry"
)

type addOptions struct {
	registry    string
	cwd         string
	yes         bool
	no          bool
	skipDeps    bool
	metricsFile string
}

func addCmd(root *rootOptions) *cobra.Command {
	opts := &addOptions{}

	cmd := &cobra.Command{
		Use:   "add <Component...>",
		Short: "Add components to your project",
		Long: `Add components to your project.

Required components and hooks are installed first. Existing files are only
replaced after you confirm, and the old copy is kept as <file>.bak.

Examples:
  quickcode add Button
  quickcode add Accordion
  quickcode add Chart/LineChart Chart/BarChart
  quickcode add Card --yes --skip-deps`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				printUsage()
				return nil
			}
			return runAdd(cmd.Context(), root, opts, args)
		},
	}

	addRegistryFlags(cmd, &opts.registry, &opts.cwd)
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "Overwrite existing files without asking")
	cmd.Flags().BoolVarP(&opts.no, "no", "n", false, "Keep existing files without asking")
	cmd.Flags().BoolVar(&opts.skipDeps, "skip-deps", false, "Do not install npm dependencies")
	cmd.Flags().StringVar(&opts.metricsFile, "metrics-file", "", "Write install metrics in Prometheus text format to this file")

	return cmd
}

// addRegistryFlags registers the flags shared by add and list.
func addRegistryFlags(cmd *cobra.Command, registryURL, cwd *string) {
	cmd.Flags().StringVar(registryURL, "registry", "", "Component map URL (http, https, s3 or file)")
	cmd.Flags().StringVar(cwd, "cwd", "", "Project directory (default: current directory)")
}

func runAdd(ctx context.Context, root *rootOptions, opts *addOptions, names []string) error {
	if opts.yes && opts.no {
		return errors.New("E140").
			WithDetail("--yes and --no cannot be used together")
	}

	logger := root.logger()

	proj, err := loadProject(ctx, opts.cwd, opts.registry)
	if err != nil {
		return err
	}
	cfg := proj.cfg
	logger.Debug("registry loaded", "url", cfg.Registry, "components", len(proj.reg.Components))

	var confirm prompt.Confirmer
	switch {
	case opts.yes:
		confirm = prompt.Always(true)
	case opts.no:
		confirm = prompt.Always(false)
	default:
		confirm = prompt.Auto()
	}

	var deps install.DependencyInstaller
	if !opts.skipDeps {
		deps = install.NewPackageManager(cfg.PackageManager, cfg.Root())
	}

	tp, shutdown, err := root.tracerProvider()
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Debug("trace shutdown failed", "error", err)
		}
	}()

	inst := install.New(install.Options{
		Registry:  proj.reg,
		Layout:    cfg.Layout(),
		Fetcher:   proj.fetcher,
		Confirmer: confirm,
		Deps:      deps,
		Reporter:  install.ReporterFunc(reportEvent),
		Logger:    logger,

		TracerProvider: tp,
	})

	results := inst.InstallAll(ctx, names)
	if err := ctx.Err(); err != nil {
		return err
	}

	for _, res := range results {
		logger.Debug("install finished",
			"component", res.Requested,
			"order", res.Order,
			"written", len(res.Written),
			"failed", len(res.Failed),
			"error", res.Err)
	}
	// Lookup and fetch failures were already reported; they do not change
	// the exit status.
	success("All requested components/hooks installed.")

	if opts.metricsFile != "" {
		if err := inst.Metrics().WriteTextfile(opts.metricsFile); err != nil {
			warn("Could not write metrics to %s: %v", opts.metricsFile, err)
		}
	}
	return nil
}

// project is a loaded configuration and component map.
type project struct {
	cfg     *config.Config
	reg     *registry.Registry
	fetcher registry.Fetcher
}

// loadProject resolves the project directory, reads quickcode.json and
// loads the component map.
func loadProject(ctx context.Context, cwd, registryURL string) (*project, error) {
	dir, err := projectDir(cwd)
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadOrDefault(dir)
	if err != nil {
		return nil, err
	}
	if registryURL != "" {
		cfg.Registry = registryURL
	}

	fetcher, err := newFetcher(cfg)
	if err != nil {
		return nil, err
	}

	reg, err := registry.Load(ctx, fetcher, cfg.Registry)
	if err != nil {
		return nil, err
	}
	return &project{cfg: cfg, reg: reg, fetcher: fetcher}, nil
}

func newFetcher(cfg *config.Config) (registry.Fetcher, error) {
	timeout, err := cfg.FetchTimeout()
	if err != nil {
		return nil, err
	}
	return registry.NewMuxFetcher(registry.FetcherOptions{
		Timeout:  timeout,
		S3Region: cfg.S3Region,
	}), nil
}

// projectDir returns the absolute form of dir, defaulting to the working
// directory.
func projectDir(dir string) (string, error) {
	if dir == "" {
		return os.Getwd()
	}
	return filepath.Abs(dir)
}

// reportEvent prints install progress.
func reportEvent(e install.Event) {
	switch e.Kind {
	case install.EventNotFound:
		errorMsg("Component %q not found.", e.Name)

	case install.EventInstalled:
		if e.Target == install.TargetHook {
			success("Installed hook %s", e.Name)
		} else {
			success("Installed %s → %s", e.Name, e.Path)
		}

	case install.EventSkipped:
		if e.Target == install.TargetHook {
			info("Skipped hook %s", e.Name)
		} else {
			info("Skipped %s", e.Name)
		}

	case install.EventBackedUp:
		info("Backup created: %s", filepath.Base(e.Path))

	case install.EventFailed:
		if e.Target == install.TargetHook {
			errorMsg("Failed to fetch hook %s: %v", e.Name, e.Err)
		} else {
			errorMsg("Failed to fetch component %s: %v", e.Name, e.Err)
		}

	case install.EventDependencyPresent:
		info("Dependency %s already installed.", e.Name)

	case install.EventDependencyInstalling:
		info("Installing %s@%s...", e.Name, e.Version)

	case install.EventDependencyFailed:
		errorMsg("Failed to install %s@%s: %v", e.Name, e.Version, e.Err)
	}
}
