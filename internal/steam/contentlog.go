// internal/steam/contentlog.go
package steam

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
)

// tailChunkSize is how much is read per step when walking backwards from EOF
const tailChunkSize = 64 * 1024

// TailLog returns the last n lines of content_log.txt, or every line when
// n <= 0. The bool is false when the log does not exist yet.
func (c *Client) TailLog(n int) ([]string, bool, error) {
	path := c.LogPath()

	f, err := c.fs.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			c.log.WithField("path", path).Debug("content log not found")
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("open content log: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, false, fmt.Errorf("stat content log: %w", err)
	}

	lines, err := readTail(f, info.Size(), n)
	if err != nil {
		return nil, false, fmt.Errorf("read content log: %w", err)
	}
	return lines, true, nil
}

// readTail reads backwards from size until more than n newlines are buffered
// (or the start of the file is reached) and returns the last n lines.
func readTail(r io.ReaderAt, size int64, n int) ([]string, error) {
	var (
		buf      []byte
		offset   = size
		newlines int
	)

	for offset > 0 {
		chunk := int64(tailChunkSize)
		if chunk > offset {
			chunk = offset
		}
		offset -= chunk

		part := make([]byte, chunk)
		read, err := r.ReadAt(part, offset)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		part = part[:read]

		newlines += bytes.Count(part, []byte{'\n'})
		buf = append(part, buf...)

		if n > 0 && newlines > n {
			break
		}
	}

	lines := splitLines(decodeText(buf))

	// Reading stopped mid-file, so the first line is most likely cut
	if offset > 0 && len(lines) > 0 {
		lines = lines[1:]
	}
	if n > 0 && len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines, nil
}
