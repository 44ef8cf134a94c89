package setup

import (
	_ "embed"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/quickcode-ui/quickcode/internal/config"
	"github.com/quickcode-ui/quickcode/internal/errors"
)

//go:embed theme.css
var theme string

// UtilsHelper is the cn helper written to lib/utils.ts.
const UtilsHelper = `import { clsx, type ClassValue } from "clsx";
import { twMerge } from "tailwind-merge";

export function cn(...inputs: ClassValue[]) {
  return twMerge(clsx(inputs));
}
`

// Both markers must be present for utils.ts to count as already patched.
const (
	cnSignature = "function cn(...inputs: ClassValue[]) {"
	cnBody      = "return twMerge(clsx(inputs));"
)

const themeBanner = "/* QuickCode Theme */"

// Theme returns the embedded stylesheet.
func Theme() string {
	return theme
}

// GlobalsContent returns what Run writes to globals.css.
func GlobalsContent() string {
	return "\n" + themeBanner + "\n" + theme + "\n"
}

// UtilsAction says what Run did to utils.ts.
type UtilsAction string

const (
	UtilsCreated   UtilsAction = "created"
	UtilsPrepended UtilsAction = "prepended"
	UtilsUnchanged UtilsAction = "unchanged"
)

// Report describes one Run.
type Report struct {
	UtilsPath   string
	Utils       UtilsAction
	GlobalsPath string

	// GlobalsBackup is set when an existing globals.css was moved aside.
	GlobalsBackup string
}

// Patcher seeds the utils helper and theme stylesheet into a project.
type Patcher struct {
	Layout *config.Layout
	Logger *slog.Logger
}

// New creates a Patcher for layout.
func New(layout *config.Layout, logger *slog.Logger) *Patcher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Patcher{Layout: layout, Logger: logger}
}

// Run patches utils.ts and replaces globals.css. Any filesystem failure is
// returned as E120.
func (p *Patcher) Run() (*Report, error) {
	report := &Report{
		UtilsPath:   p.Layout.UtilsPath(),
		GlobalsPath: p.Layout.GlobalsPath(),
	}

	action, err := p.ensureUtils(report.UtilsPath)
	if err != nil {
		return report, errors.New("E120").WithDetailf("utils.ts: %v", err).Wrap(err)
	}
	report.Utils = action

	backup, err := p.writeGlobals(report.GlobalsPath)
	if err != nil {
		return report, errors.New("E120").WithDetailf("globals.css: %v", err).Wrap(err)
	}
	report.GlobalsBackup = backup

	return report, nil
}

func (p *Patcher) ensureUtils(path string) (UtilsAction, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}

	existing, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		p.Logger.Debug("creating utils", "path", path)
		return UtilsCreated, os.WriteFile(path, []byte(UtilsHelper), 0644)
	}
	if err != nil {
		return "", err
	}

	if hasHelper(string(existing)) {
		p.Logger.Debug("utils already has cn", "path", path)
		return UtilsUnchanged, nil
	}

	p.Logger.Debug("prepending cn", "path", path)
	updated := UtilsHelper + "\n\n" + string(existing)
	return UtilsPrepended, os.WriteFile(path, []byte(updated), 0644)
}

func hasHelper(src string) bool {
	return strings.Contains(src, cnSignature) && strings.Contains(src, cnBody)
}

func (p *Patcher) writeGlobals(path string) (string, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}

	var backup string
	if _, err := os.Stat(path); err == nil {
		backup = path + ".bak"
		if err := os.Rename(path, backup); err != nil {
			return "", err
		}
		p.Logger.Debug("backed up globals", "path", backup)
	}

	if err := os.WriteFile(path, []byte(GlobalsContent()), 0644); err != nil {
		return backup, err
	}
	return backup, nil
}
