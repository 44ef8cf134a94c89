package install

import (
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/quickcode-ui/quickcode/internal/errors"
)

// DependencyInstaller checks for and installs npm packages.
type DependencyInstaller interface {
	// Resolvable reports whether pkg can already be resolved from the
	// project.
	Resolvable(pkg string) bool

	// Install adds pkg at version to the project.
	Install(ctx context.Context, pkg, version string) error
}

// PackageManager installs dependencies by running npm, pnpm, yarn or bun in
// the project directory with the caller's stdio.
type PackageManager struct {
	// Name is the package manager command.
	Name string

	// Dir is the project directory.
	Dir string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewPackageManager creates a PackageManager bound to the process stdio.
func NewPackageManager(name, dir string) *PackageManager {
	return &PackageManager{
		Name:   name,
		Dir:    dir,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Args returns the command line that installs pkg at version.
func (p *PackageManager) Args(pkg, version string) []string {
	spec := pkg
	if version != "" {
		spec = pkg + "@" + version
	}
	verb := "add"
	if p.Name == "npm" {
		verb = "install"
	}
	return []string{p.Name, verb, spec}
}

// Resolvable mirrors Node's lookup: pkg resolves when
// node_modules/<pkg>/package.json exists in Dir or any parent of it.
func (p *PackageManager) Resolvable(pkg string) bool {
	dir, err := filepath.Abs(p.Dir)
	if err != nil {
		return false
	}
	for {
		manifest := filepath.Join(dir, "node_modules", filepath.FromSlash(pkg), "package.json")
		if _, err := os.Stat(manifest); err == nil {
			return true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return false
		}
		dir = parent
	}
}

// Install runs the package manager and waits for it to finish.
func (p *PackageManager) Install(ctx context.Context, pkg, version string) error {
	if pkg == "" || strings.HasPrefix(pkg, "-") || strings.HasPrefix(version, "-") {
		return errors.New("E112").WithDetailf("refusing to install %q@%q", pkg, version)
	}

	args := p.Args(pkg, version)
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = p.Dir
	cmd.Stdin = p.Stdin
	cmd.Stdout = p.Stdout
	cmd.Stderr = p.Stderr

	if err := cmd.Run(); err != nil {
		return errors.New("E112").
			WithDetailf("%s: %v", strings.Join(args, " "), err).
			Wrap(err)
	}
	return nil
}
