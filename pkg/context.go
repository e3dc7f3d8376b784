package channelmap

import (
	"fmt"
	"strings"
	"time"
)

// Partition is a bit set naming the detector that recorded an event, plus a
// bit flagging simulated data.
type Partition uint32

const (
	PartitionCAPTAIN  Partition = 1 << 0
	PartitionMCAPTAIN Partition = 1 << 1
	PartitionPDS      Partition = 1 << 2
	PartitionMCData   Partition = 1 << 8

	detectorMask = PartitionCAPTAIN | PartitionMCAPTAIN | PartitionPDS
)

var partitionNames = map[string]Partition{
	"captain":  PartitionCAPTAIN,
	"mcaptain": PartitionMCAPTAIN,
	"pds":      PartitionPDS,
}

// ParsePartition reads a detector name. A "mc-" prefix marks simulated data.
func ParsePartition(s string) (Partition, error) {
	name := strings.ToLower(s)
	var p Partition
	if rest, ok := strings.CutPrefix(name, "mc-"); ok {
		p |= PartitionMCData
		name = rest
	}
	detector, ok := partitionNames[name]
	if !ok {
		return 0, fmt.Errorf("unknown partition %q", s)
	}
	return p | detector, nil
}

func (p Partition) String() string {
	var names []string
	if p&PartitionMCData != 0 {
		names = append(names, "MC")
	}
	if p&PartitionCAPTAIN != 0 {
		names = append(names, "CAPTAIN")
	}
	if p&PartitionMCAPTAIN != 0 {
		names = append(names, "mCAPTAIN")
	}
	if p&PartitionPDS != 0 {
		names = append(names, "PDS")
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

type Mode int

const (
	InvalidMode Mode = iota
	Simulated
	Detector
)

func (m Mode) String() string {
	switch m {
	case Simulated:
		return "simulated"
	case Detector:
		return "detector"
	default:
		return "invalid"
	}
}

// EventContext is the frame of reference for a translation. The zero value
// is invalid.
type EventContext struct {
	Run       int
	Event     int
	Partition Partition
	Timestamp time.Time
}

func NewEventContext(run, event int, partition Partition, timestamp time.Time) EventContext {
	return EventContext{Run: run, Event: event, Partition: partition, Timestamp: timestamp}
}

func (c EventContext) IsValid() bool {
	return c.Partition&detectorMask != 0 && c.Run >= 0 && c.Event >= 0
}

func (c EventContext) Mode() Mode {
	switch {
	case !c.IsValid():
		return InvalidMode
	case c.Partition&PartitionMCData != 0:
		return Simulated
	default:
		return Detector
	}
}

func (c EventContext) IsMC() bool       { return c.Mode() == Simulated }
func (c EventContext) IsDetector() bool { return c.Mode() == Detector }

func (c EventContext) String() string {
	return fmt.Sprintf("run %d event %d partition %v (%v)", c.Run, c.Event, c.Partition, c.Mode())
}
