package monitor

import (
	"fmt"
	"io"
)

// LogSource gives access to the trailing lines of the content log
type LogSource interface {
	TailLog(n int) ([]string, bool, error)
}

// DumpLog prints the last n lines of the content log
func DumpLog(w io.Writer, src LogSource, n int) error {
	lines, ok, err := src.TailLog(n)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(w, "content_log.txt not found")
		return nil
	}

	fmt.Fprintf(w, "Last %d lines of content_log.txt:\n\n", n)
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w)
	return nil
}
