package channelmap

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/exp/constraints"
)

type Plane int

const (
	UPlane Plane = iota
	VPlane
	XPlane
)

const (
	MaxWire       = 65535
	MaxCrate      = 255
	MaxSlot       = 255
	MaxTPCChannel = 4095
)

func (p Plane) String() string {
	switch p {
	case UPlane:
		return "U"
	case VPlane:
		return "V"
	case XPlane:
		return "X"
	default:
		return "Unknown"
	}
}

func (p Plane) IsValid() bool {
	return inRange(p, UPlane, XPlane)
}

// ParsePlane accepts the plane letter in either case.
func ParsePlane(s string) (Plane, error) {
	switch strings.ToUpper(s) {
	case "U":
		return UPlane, nil
	case "V":
		return VPlane, nil
	case "X":
		return XPlane, nil
	}
	return -1, fmt.Errorf("unknown plane %q", s)
}

func inRange[T constraints.Integer](v, lo, hi T) bool {
	return v >= lo && v <= hi
}

type geometryKind uint8

const (
	invalidGeometry geometryKind = iota
	wireGeometry
	photosensorGeometry
)

// GeometryID names a physical detector element: a wire in one of the
// planes, or a photosensor. The zero value is invalid.
type GeometryID struct {
	kind   geometryKind
	plane  Plane
	number int32
}

func NewWireGeometryID(plane Plane, wire int) GeometryID {
	if !plane.IsValid() || !inRange(wire, 0, MaxWire) {
		return GeometryID{}
	}
	return GeometryID{kind: wireGeometry, plane: plane, number: int32(wire)}
}

func NewPhotosensorGeometryID(index int) GeometryID {
	if !inRange(index, 0, MaxWire) {
		return GeometryID{}
	}
	return GeometryID{kind: photosensorGeometry, number: int32(index)}
}

// ParseWireGeometryID reads the "<plane>-<wire>" form, e.g. "X-231" or "u-12".
func ParseWireGeometryID(s string) (GeometryID, error) {
	planeStr, wireStr, found := strings.Cut(s, "-")
	if !found {
		return GeometryID{}, fmt.Errorf("geometry id %q: expected <plane>-<wire>", s)
	}
	plane, err := ParsePlane(planeStr)
	if err != nil {
		return GeometryID{}, fmt.Errorf("geometry id %q: %w", s, err)
	}
	wire, err := strconv.Atoi(wireStr)
	if err != nil {
		return GeometryID{}, fmt.Errorf("geometry id %q: bad wire number: %w", s, err)
	}
	gid := NewWireGeometryID(plane, wire)
	if !gid.IsValid() {
		return gid, fmt.Errorf("geometry id %q: %w", s, ErrInvalidGeometry)
	}
	return gid, nil
}

func (g GeometryID) IsValid() bool       { return g.kind != invalidGeometry }
func (g GeometryID) IsWire() bool        { return g.kind == wireGeometry }
func (g GeometryID) IsPhotosensor() bool { return g.kind == photosensorGeometry }
func (g GeometryID) IsUWire() bool       { return g.IsWire() && g.plane == UPlane }
func (g GeometryID) IsVWire() bool       { return g.IsWire() && g.plane == VPlane }
func (g GeometryID) IsXWire() bool       { return g.IsWire() && g.plane == XPlane }

// Plane returns -1 when g is not a wire.
func (g GeometryID) Plane() Plane {
	if !g.IsWire() {
		return -1
	}
	return g.plane
}

// WireNumber returns -1 when g is not a wire.
func (g GeometryID) WireNumber() int {
	if !g.IsWire() {
		return -1
	}
	return int(g.number)
}

// Photosensor returns -1 when g is not a photosensor.
func (g GeometryID) Photosensor() int {
	if !g.IsPhotosensor() {
		return -1
	}
	return int(g.number)
}

func (g GeometryID) Compare(o GeometryID) int {
	if c := cmp.Compare(g.kind, o.kind); c != 0 {
		return c
	}
	if c := cmp.Compare(g.plane, o.plane); c != 0 {
		return c
	}
	return cmp.Compare(g.number, o.number)
}

func (g GeometryID) String() string {
	switch g.kind {
	case wireGeometry:
		return fmt.Sprintf("%v-%d", g.plane, g.number)
	case photosensorGeometry:
		return fmt.Sprintf("PDS-%d", g.number)
	default:
		return "invalid-geometry"
	}
}
