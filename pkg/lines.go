package channelmap

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// ReadLines calls fn for every line of r, without the line terminator.
// Lines have no length limit. A final line without a newline is included.
func ReadLines(r io.Reader, fn func(line string)) error {
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		if len(line) > 0 {
			fn(strings.TrimRight(line, "\r\n"))
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
