package monitor

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Mode selects how many polls are made
type Mode string

const (
	ModeOnce       Mode = "once"
	ModeFive       Mode = "five"
	ModeContinuous Mode = "continuous"
)

// DefaultMode is used for empty or unknown input
const DefaultMode = ModeFive

// ParseMode maps user input to a mode, falling back to DefaultMode
func ParseMode(s string) Mode {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeOnce, ModeFive, ModeContinuous:
		return m
	default:
		return DefaultMode
	}
}

// Iterations returns the poll count, 0 meaning until cancelled
func (m Mode) Iterations() int {
	switch m {
	case ModeOnce:
		return 1
	case ModeContinuous:
		return 0
	default:
		return 5
	}
}

// PromptMode asks for a mode on out and reads one line from in. It returns
// ctx.Err() as soon as ctx is cancelled, even while in is still blocked.
func PromptMode(ctx context.Context, in io.Reader, out io.Writer) (Mode, error) {
	fmt.Fprint(out, "Choose mode (once / five / continuous): ")

	lineCh := make(chan string, 1)
	go func() {
		// A read error leaves the partial line, empty falls back to DefaultMode
		line, _ := bufio.NewReader(in).ReadString('\n')
		lineCh <- line
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line := <-lineCh:
		return ParseMode(line), nil
	}
}
