package channelmap

import (
	"strconv"
	"strings"
)

// Lines shorter than this after removing the comment are ignored.
const minLineLength = 20

var tableFields = [...]string{"crate", "fem", "channel", "detector", "plane", "wire"}

// parseLine turns one line of a channel map into an entry. It returns
// ok=false with a nil error for blank, comment-only and too short lines.
func parseLine(line string, lineNumber int) (Entry, bool, error) {
	content := line
	if comment := strings.Index(content, "#"); comment >= 0 {
		content = content[:comment]
	}
	if len(content) < minLineLength {
		return Entry{}, false, nil
	}

	tokens := strings.Fields(content)
	var values [len(tableFields)]int
	for i, field := range tableFields {
		if i >= len(tokens) {
			return Entry{}, false, &ErrParseField{LineNumber: lineNumber, Field: field, Line: line, Err: strconv.ErrSyntax}
		}
		v, err := strconv.Atoi(tokens[i])
		if err != nil {
			return Entry{}, false, &ErrParseField{LineNumber: lineNumber, Field: field, Line: line, Err: err}
		}
		values[i] = v
	}
	crate, fem, channel := values[0], values[1], values[2]
	detector, plane, wire := values[3], values[4], values[5]

	if detector != DetectorTPC {
		return Entry{}, false, &ErrUnknownDetector{LineNumber: lineNumber, Detector: detector, Line: line}
	}

	entry := Entry{
		Channel:  NewTPCChannelID(crate, fem, channel),
		Geometry: NewWireGeometryID(Plane(plane), wire),
	}
	if !entry.Channel.IsValid() || !entry.Geometry.IsValid() {
		return Entry{}, false, &ErrInvalidEntry{LineNumber: lineNumber, Line: line}
	}
	return entry, true, nil
}
