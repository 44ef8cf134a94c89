package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/quickcode-ui/quickcode/internal/errors"
)

// Layout computes destination paths inside a project.
type Layout struct {
	root          string
	componentsDir string
	hooksDir      string
	componentExt  string
	hookExt       string
}

// NewLayout creates a Layout for root using the directories and extensions
// from cfg. A nil cfg uses the defaults.
func NewLayout(root string, cfg *Config) *Layout {
	if cfg == nil {
		cfg = New(root)
	}
	return &Layout{
		root:          root,
		componentsDir: cfg.ComponentsDir,
		hooksDir:      cfg.HooksDir,
		componentExt:  cfg.ComponentExt,
		hookExt:       cfg.HookExt,
	}
}

// Root returns the project root.
func (l *Layout) Root() string {
	return l.root
}

// HasSrc reports whether the project keeps its sources under src/.
func (l *Layout) HasSrc() bool {
	info, err := os.Stat(filepath.Join(l.root, "src"))
	return err == nil && info.IsDir()
}

// BaseDir returns <root>/src when it exists, otherwise <root>.
// It is evaluated on every call so a src/ created mid-run is honored.
func (l *Layout) BaseDir() string {
	if l.HasSrc() {
		return filepath.Join(l.root, "src")
	}
	return l.root
}

// ComponentsDir returns the absolute component directory.
func (l *Layout) ComponentsDir() string {
	return filepath.Join(l.BaseDir(), filepath.FromSlash(l.componentsDir))
}

// HooksDir returns the absolute hook directory.
func (l *Layout) HooksDir() string {
	return filepath.Join(l.BaseDir(), filepath.FromSlash(l.hooksDir))
}

// ComponentPath returns the destination for a component. Slashes in name
// become nested directories, so "Chart/LineChart" lands in
// components/ui/Chart/LineChart.tsx.
func (l *Layout) ComponentPath(name string) (string, error) {
	rel, err := localName(name, l.componentExt)
	if err != nil {
		return "", err
	}
	return filepath.Join(l.ComponentsDir(), rel), nil
}

// HookPath returns the destination for a hook.
func (l *Layout) HookPath(name string) (string, error) {
	rel, err := localName(name, l.hookExt)
	if err != nil {
		return "", err
	}
	return filepath.Join(l.HooksDir(), rel), nil
}

// HookExt returns the extension appended to hook names.
func (l *Layout) HookExt() string {
	return l.hookExt
}

// HookFile returns the file name used for a hook.
func (l *Layout) HookFile(name string) string {
	return name + l.hookExt
}

// UtilsPath returns <base>/lib/utils.ts.
func (l *Layout) UtilsPath() string {
	return filepath.Join(l.BaseDir(), "lib", "utils.ts")
}

// GlobalsPath returns <base>/app/globals.css.
func (l *Layout) GlobalsPath() string {
	return filepath.Join(l.BaseDir(), "app", "globals.css")
}

// localName turns a registry name into a relative file path and rejects
// names that would escape the destination directory.
func localName(name, ext string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", errors.New("E102").WithDetail("empty name")
	}
	rel := filepath.FromSlash(name + ext)
	if filepath.IsAbs(rel) || !filepath.IsLocal(rel) {
		return "", errors.New("E102").
			WithDetailf("%q resolves outside the project", name)
	}
	return rel, nil
}

// ProjectRoot returns the project directory for dir. When dir sits inside a
// node_modules tree (as it does while a package's install script runs), the
// root is everything before the last node_modules segment.
func ProjectRoot(dir string) string {
	parts := strings.Split(dir, string(filepath.Separator))
	idx := -1
	for i, p := range parts {
		if p == "node_modules" {
			idx = i
		}
	}
	if idx <= 0 {
		return dir
	}
	root := strings.Join(parts[:idx], string(filepath.Separator))
	if root == "" {
		return string(filepath.Separator)
	}
	return root
}
