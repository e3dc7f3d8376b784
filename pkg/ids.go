package channelmap

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
)

type ChannelKind uint8

const (
	InvalidChannel ChannelKind = iota
	// WireChannel and PhotosensorChannel are the simulated channels.
	WireChannel
	PhotosensorChannel
	TPCChannel
)

// Type tags carried by simulated channel ids.
const (
	MCWireType        = 0
	MCPhotosensorType = 1
)

// DetectorTPC is the detector discriminant of TPC lines in a channel map.
const DetectorTPC = 1

func (k ChannelKind) String() string {
	switch k {
	case WireChannel:
		return "MCWire"
	case PhotosensorChannel:
		return "MCPhotosensor"
	case TPCChannel:
		return "TPC"
	default:
		return "Invalid"
	}
}

// ChannelID names an electronics channel. Simulated wire channels keep
// (plane, wire), simulated photosensor channels keep the sensor index and
// TPC channels keep (crate, slot, channel). The zero value is invalid.
type ChannelID struct {
	kind ChannelKind
	x    int32
	y    int32
	z    int32
}

func NewTPCChannelID(crate, slot, channel int) ChannelID {
	if !inRange(crate, 0, MaxCrate) || !inRange(slot, 0, MaxSlot) || !inRange(channel, 0, MaxTPCChannel) {
		return ChannelID{}
	}
	return ChannelID{kind: TPCChannel, x: int32(crate), y: int32(slot), z: int32(channel)}
}

func NewWireChannelID(plane Plane, wire int) ChannelID {
	if !plane.IsValid() || !inRange(wire, 0, MaxWire) {
		return ChannelID{}
	}
	return ChannelID{kind: WireChannel, x: int32(plane), y: int32(wire)}
}

func NewPhotosensorChannelID(index int) ChannelID {
	if !inRange(index, 0, MaxWire) {
		return ChannelID{}
	}
	return ChannelID{kind: PhotosensorChannel, y: int32(index)}
}

// NewMCChannelID builds a simulated channel from its packed form. Type 0 is
// a wire (sequence is the plane), type 1 a photosensor (sequence must be 0).
func NewMCChannelID(typ, sequence, number int) ChannelID {
	switch typ {
	case MCWireType:
		return NewWireChannelID(Plane(sequence), number)
	case MCPhotosensorType:
		if sequence != 0 {
			return ChannelID{}
		}
		return NewPhotosensorChannelID(number)
	}
	return ChannelID{}
}

// ParseTPCChannelID reads the "crate-slot-channel" form, e.g. "4-11-3".
func ParseTPCChannelID(s string) (ChannelID, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return ChannelID{}, fmt.Errorf("channel id %q: expected crate-slot-channel", s)
	}
	var values [3]int
	for i, part := range parts {
		v, err := strconv.Atoi(part)
		if err != nil {
			return ChannelID{}, fmt.Errorf("channel id %q: %w", s, err)
		}
		values[i] = v
	}
	cid := NewTPCChannelID(values[0], values[1], values[2])
	if !cid.IsValid() {
		return cid, fmt.Errorf("channel id %q: %w", s, ErrInvalidChannel)
	}
	return cid, nil
}

func (c ChannelID) Kind() ChannelKind  { return c.kind }
func (c ChannelID) IsValid() bool      { return c.kind != InvalidChannel }
func (c ChannelID) IsTPCChannel() bool { return c.kind == TPCChannel }

func (c ChannelID) IsMCChannel() bool {
	return inRange(c.kind, WireChannel, PhotosensorChannel)
}

// Crate, Slot and Channel return -1 unless c is a TPC channel.
func (c ChannelID) Crate() int {
	if !c.IsTPCChannel() {
		return -1
	}
	return int(c.x)
}

func (c ChannelID) Slot() int {
	if !c.IsTPCChannel() {
		return -1
	}
	return int(c.y)
}

func (c ChannelID) Channel() int {
	if !c.IsTPCChannel() {
		return -1
	}
	return int(c.z)
}

// Type, Sequence and Number return the packed simulated form, or -1 unless
// c is a simulated channel.
func (c ChannelID) Type() int {
	switch c.kind {
	case WireChannel:
		return MCWireType
	case PhotosensorChannel:
		return MCPhotosensorType
	}
	return -1
}

func (c ChannelID) Sequence() int {
	if !c.IsMCChannel() {
		return -1
	}
	return int(c.x)
}

func (c ChannelID) Number() int {
	if !c.IsMCChannel() {
		return -1
	}
	return int(c.y)
}

func (c ChannelID) Compare(o ChannelID) int {
	if r := cmp.Compare(c.kind, o.kind); r != 0 {
		return r
	}
	if r := cmp.Compare(c.x, o.x); r != 0 {
		return r
	}
	if r := cmp.Compare(c.y, o.y); r != 0 {
		return r
	}
	return cmp.Compare(c.z, o.z)
}

func (c ChannelID) String() string {
	switch c.kind {
	case TPCChannel:
		return fmt.Sprintf("%d-%d-%d", c.x, c.y, c.z)
	case WireChannel, PhotosensorChannel:
		return fmt.Sprintf("MC-%d-%d-%d", c.Type(), c.x, c.y)
	default:
		return "invalid-channel"
	}
}
