package channelmap

import (
	"fmt"
	"strings"
	"sync"
)

type recordingLogger struct {
	mu     sync.Mutex
	infos  []string
	errors []string
}

func (l *recordingLogger) Info(message string, module string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos = append(l.infos, module+": "+message)
}

func (l *recordingLogger) Error(message string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, message)
}

func (l *recordingLogger) errorCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.errors)
}

// tableLine formats a channel map line in the usual column aligned layout.
func tableLine(crate, fem, channel, detector, plane, wire int) string {
	return fmt.Sprintf("%4d %4d %4d %4d %4d %6d", crate, fem, channel, detector, plane, wire)
}

func table(lines ...string) *strings.Reader {
	return strings.NewReader(strings.Join(lines, "\n") + "\n")
}
