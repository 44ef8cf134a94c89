package setup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickcode-ui/quickcode/internal/config"
	qcerrors "github.com/quickcode-ui/quickcode/internal/errors"
)

func newPatcher(t *testing.T) (*Patcher, string) {
	t.Helper()
	root := t.TempDir()
	return New(config.NewLayout(root, nil), nil), root
}

func read(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRun_FreshProject(t *testing.T) {
	p, root := newPatcher(t)

	report, err := p.Run()
	require.NoError(t, err)

	assert.Equal(t, UtilsCreated, report.Utils)
	assert.Empty(t, report.GlobalsBackup)
	assert.Equal(t, UtilsHelper, read(t, filepath.Join(root, "lib", "utils.ts")))

	globals := read(t, filepath.Join(root, "app", "globals.css"))
	assert.True(t, strings.HasPrefix(globals, "\n/* QuickCode Theme */\n"))
	assert.Equal(t, GlobalsContent(), globals)
	assert.Equal(t, "\n/* QuickCode Theme */\n"+Theme()+"\n", globals)
	assert.Contains(t, Theme(), "--primary:")
}

func TestRun_SrcLayout(t *testing.T) {
	p, root := newPatcher(t)
	require.NoError(t, os.Mkdir(filepath.Join(root, "src"), 0755))

	report, err := p.Run()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "src", "lib", "utils.ts"), report.UtilsPath)
	assert.Equal(t, filepath.Join(root, "src", "app", "globals.css"), report.GlobalsPath)
	assert.FileExists(t, report.UtilsPath)
	assert.FileExists(t, report.GlobalsPath)
}

func TestRun_UtilsIdempotent(t *testing.T) {
	p, root := newPatcher(t)
	utils := filepath.Join(root, "lib", "utils.ts")

	_, err := p.Run()
	require.NoError(t, err)
	first := read(t, utils)

	report, err := p.Run()
	require.NoError(t, err)

	assert.Equal(t, UtilsUnchanged, report.Utils)
	assert.Equal(t, first, read(t, utils))
}

func TestRun_PrependsToExistingUtils(t *testing.T) {
	p, root := newPatcher(t)
	utils := filepath.Join(root, "lib", "utils.ts")
	require.NoError(t, os.MkdirAll(filepath.Dir(utils), 0755))
	existing := "export const sleep = (ms: number) => new Promise(r => setTimeout(r, ms));\n"
	require.NoError(t, os.WriteFile(utils, []byte(existing), 0644))

	report, err := p.Run()
	require.NoError(t, err)

	assert.Equal(t, UtilsPrepended, report.Utils)
	assert.Equal(t, UtilsHelper+"\n\n"+existing, read(t, utils))
}

func TestRun_OneMarkerIsNotEnough(t *testing.T) {
	p, root := newPatcher(t)
	utils := filepath.Join(root, "lib", "utils.ts")
	require.NoError(t, os.MkdirAll(filepath.Dir(utils), 0755))
	existing := "export function cn(...inputs: ClassValue[]) {\n  return inputs.join(' ');\n}\n"
	require.NoError(t, os.WriteFile(utils, []byte(existing), 0644))

	report, err := p.Run()
	require.NoError(t, err)
	assert.Equal(t, UtilsPrepended, report.Utils)
}

func TestRun_BacksUpGlobals(t *testing.T) {
	p, root := newPatcher(t)
	globals := filepath.Join(root, "app", "globals.css")
	require.NoError(t, os.MkdirAll(filepath.Dir(globals), 0755))
	require.NoError(t, os.WriteFile(globals, []byte("body { color: red; }\n"), 0644))

	report, err := p.Run()
	require.NoError(t, err)

	assert.Equal(t, globals+".bak", report.GlobalsBackup)
	assert.Equal(t, "body { color: red; }\n", read(t, globals+".bak"))
	assert.Equal(t, GlobalsContent(), read(t, globals))

	// A second run backs up the theme itself; the original is gone.
	_, err = p.Run()
	require.NoError(t, err)
	assert.Equal(t, GlobalsContent(), read(t, globals+".bak"))
}

func TestRun_UnwritableProject(t *testing.T) {
	p, root := newPatcher(t)
	// A regular file where lib/ should be.
	require.NoError(t, os.WriteFile(filepath.Join(root, "lib"), []byte("x"), 0644))

	_, err := p.Run()
	require.Error(t, err)
	assert.True(t, qcerrors.HasCode(err, "E120"))
}
