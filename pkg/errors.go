package channelmap

import (
	"errors"
	"fmt"
)

var (
	ErrIndexOutOfRange  = errors.New("only index 0 is supported")
	ErrInvalidChannel   = errors.New("invalid channel id")
	ErrInvalidGeometry  = errors.New("invalid geometry id")
	ErrInvalidContext   = errors.New("event context must be set before translating")
	ErrUnsupportedKind  = errors.New("identifier kind has no simulated mapping")
	ErrNotFound         = errors.New("no entry in channel map")
	ErrTranslationPanic = errors.New("translation panicked")
	ErrLoadPanic        = errors.New("channel map loader panicked")
)

// ErrOpenFile represents an error when opening a file.
type ErrOpenFile struct {
	Filename string
	Err      error
}

func (e *ErrOpenFile) Error() string {
	return fmt.Sprintf("error opening file %q: %v", e.Filename, e.Err)
}

func (e *ErrOpenFile) Unwrap() error {
	return e.Err
}

// ErrParseField is reported when a field of a table line is not an integer.
type ErrParseField struct {
	LineNumber int
	Field      string
	Line       string
	Err        error
}

func (e *ErrParseField) Error() string {
	return fmt.Sprintf("line %d: could not parse %s number: %q", e.LineNumber, e.Field, e.Line)
}

func (e *ErrParseField) Unwrap() error {
	return e.Err
}

// ErrUnknownDetector is reported for a table line whose detector type is not TPC.
type ErrUnknownDetector struct {
	LineNumber int
	Detector   int
	Line       string
}

func (e *ErrUnknownDetector) Error() string {
	return fmt.Sprintf("line %d: unknown detector channel %d: %q", e.LineNumber, e.Detector, e.Line)
}

// ErrInvalidEntry is reported when the numbers of a table line are out of range.
type ErrInvalidEntry struct {
	LineNumber int
	Line       string
}

func (e *ErrInvalidEntry) Error() string {
	return fmt.Sprintf("line %d: identifiers out of range: %q", e.LineNumber, e.Line)
}

// ErrDuplicateEntry is reported when a table line reuses a channel or a
// geometry id already present in the map. Key names which one clashed and
// Previous the id it was paired with. The new line replaces the old pair.
type ErrDuplicateEntry struct {
	LineNumber int
	Key        string
	Channel    ChannelID
	Geometry   GeometryID
	Previous   string
}

func (e *ErrDuplicateEntry) Error() string {
	return fmt.Sprintf("line %d: %s already exists: %v -> %v (duplicate %s)",
		e.LineNumber, e.Key, e.Channel, e.Geometry, e.Previous)
}
