// Package prompt implements the yes/no confirmations used before an existing
// file is replaced.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"sync"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/x/term"
)

// Confirmer asks a yes/no question.
type Confirmer interface {
	Confirm(question string) (bool, error)
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(question string) (bool, error)

// Confirm calls f.
func (f ConfirmFunc) Confirm(question string) (bool, error) {
	return f(question)
}

var yesRe = regexp.MustCompile(`(?i)^(y|yes)$`)

// IsYes reports whether answer is "y" or "yes", ignoring case and
// surrounding whitespace.
func IsYes(answer string) bool {
	return yesRe.MatchString(strings.TrimSpace(answer))
}

// Line reads answers one line at a time. Anything but y/yes is a no,
// including end of input.
type Line struct {
	out io.Writer

	mu sync.Mutex
	in *bufio.Reader
}

// NewLine creates a Line prompt that writes questions to out and reads
// answers from in.
func NewLine(in io.Reader, out io.Writer) *Line {
	return &Line{in: bufio.NewReader(in), out: out}
}

// Confirm prints question followed by "(y/N): " and reads one line.
func (l *Line) Confirm(question string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.out, "%s (y/N): ", question)
	answer, err := l.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	if err == io.EOF && answer == "" {
		fmt.Fprintln(l.out)
	}
	return IsYes(answer), nil
}

// TUI shows an interactive huh confirm that defaults to No.
type TUI struct{}

// Confirm runs the form. An aborted form counts as No.
func (TUI) Confirm(question string) (bool, error) {
	var result bool
	err := huh.NewConfirm().
		Title(question).
		Affirmative("Yes").
		Negative("No").
		Value(&result).
		Run()
	if err == huh.ErrUserAborted {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return result, nil
}

// Auto picks TUI when stdin and stdout are both terminals and Line
// otherwise, so piped input keeps working.
func Auto() Confirmer {
	if term.IsTerminal(os.Stdin.Fd()) && term.IsTerminal(os.Stdout.Fd()) {
		return TUI{}
	}
	return NewLine(os.Stdin, os.Stdout)
}

// Always answers every question with answer. It backs --yes and --no.
func Always(answer bool) Confirmer {
	return ConfirmFunc(func(string) (bool, error) {
		return answer, nil
	})
}

// Script replays a fixed list of answers and records the questions asked.
// Once the answers run out every further question gets No.
type Script struct {
	mu        sync.Mutex
	answers   []bool
	Questions []string
}

// NewScript creates a Script.
func NewScript(answers ...bool) *Script {
	return &Script{answers: answers}
}

// Confirm returns the next scripted answer.
func (s *Script) Confirm(question string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Questions = append(s.Questions, question)
	if len(s.answers) == 0 {
		return false, nil
	}
	answer := s.answers[0]
	s.answers = s.answers[1:]
	return answer, nil
}
