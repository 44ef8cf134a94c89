package install

import (
	"os"

	"github.com/quickcode-ui/quickcode/internal/prompt"
)

// BackupSuffix is appended to a file that is about to be replaced.
const BackupSuffix = ".bak"

// Guard protects existing files. A missing destination passes without a
// prompt; an existing one is only replaced after the user agrees, and is
// first renamed to <path>.bak (replacing any earlier backup).
type Guard struct {
	confirm prompt.Confirmer
}

// NewGuard creates a Guard that asks confirm before replacing files.
func NewGuard(confirm prompt.Confirmer) *Guard {
	return &Guard{confirm: confirm}
}

// Check decides whether path may be written. It returns the backup path
// when an existing file was moved aside.
func (g *Guard) Check(path, question string) (proceed bool, backup string, err error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return true, "", nil
	}
	if err != nil {
		return false, "", err
	}
	if info.IsDir() {
		return false, "", &os.PathError{Op: "write", Path: path, Err: os.ErrExist}
	}

	ok, err := g.confirm.Confirm(question)
	if err != nil || !ok {
		return false, "", err
	}

	backup = path + BackupSuffix
	if err := os.Rename(path, backup); err != nil {
		return false, "", err
	}
	return true, backup, nil
}
