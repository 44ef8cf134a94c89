package install

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickcode-ui/quickcode/internal/prompt"
)

func TestGuard_MissingFileProceedsWithoutPrompt(t *testing.T) {
	script := prompt.NewScript()
	g := NewGuard(script)

	ok, backup, err := g.Check(filepath.Join(t.TempDir(), "Button.tsx"), "overwrite?")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, backup)
	assert.Empty(t, script.Questions)
}

func TestGuard_Declined(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Button.tsx")
	require.NoError(t, os.WriteFile(path, []byte("mine"), 0644))

	script := prompt.NewScript(false)
	ok, backup, err := NewGuard(script).Check(path, "Component Button exists. Overwrite?")
	require.NoError(t, err)

	assert.False(t, ok)
	assert.Empty(t, backup)
	assert.Equal(t, []string{"Component Button exists. Overwrite?"}, script.Questions)
	assert.NoFileExists(t, path+BackupSuffix)
	data, _ := os.ReadFile(path)
	assert.Equal(t, "mine", string(data))
}

func TestGuard_AcceptedReplacesOldBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Button.tsx")
	require.NoError(t, os.WriteFile(path, []byte("current"), 0644))
	require.NoError(t, os.WriteFile(path+BackupSuffix, []byte("ancient"), 0644))

	ok, backup, err := NewGuard(prompt.Always(true)).Check(path, "q")
	require.NoError(t, err)

	assert.True(t, ok)
	assert.Equal(t, path+BackupSuffix, backup)
	assert.NoFileExists(t, path)
	data, _ := os.ReadFile(backup)
	assert.Equal(t, "current", string(data))
}

func TestGuard_ConfirmError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Button.tsx")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	boom := errors.New("tty closed")
	_, _, err := NewGuard(prompt.ConfirmFunc(func(string) (bool, error) {
		return false, boom
	})).Check(path, "q")

	assert.ErrorIs(t, err, boom)
	assert.FileExists(t, path)
}

func TestGuard_DirectoryInTheWay(t *testing.T) {
	dir := t.TempDir()
	ok, _, err := NewGuard(prompt.Always(true)).Check(dir, "q")
	assert.False(t, ok)
	assert.Error(t, err)
}
