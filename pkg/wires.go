package channelmap

import "fmt"

const DefaultWiresPerPlane = 336

const channelsPerASIC = 16

// ASICAddress locates a TPC channel on the front end electronics.
type ASICAddress struct {
	Motherboard int
	ASIC        int
	Channel     int
}

// Packed returns motherboard*1000000 + asic*1000 + channel.
func (a ASICAddress) Packed() int {
	return a.Motherboard*1000*1000 + a.ASIC*1000 + a.Channel
}

func (a ASICAddress) String() string {
	return fmt.Sprintf("MB: %d ASIC: %d Chan: %d", a.Motherboard, a.ASIC, a.Channel)
}

// ASICFromChannel decomposes a TPC channel. The slot carries the
// motherboard.
func ASICFromChannel(cid ChannelID) (ASICAddress, bool) {
	if !cid.IsTPCChannel() {
		return ASICAddress{}, false
	}
	return ASICAddress{
		Motherboard: cid.Slot(),
		ASIC:        cid.Channel() / channelsPerASIC,
		Channel:     cid.Channel() % channelsPerASIC,
	}, true
}

// WireFromGeometry numbers the wires of all planes consecutively, U first.
// It returns -1 for anything that is not a wire within the plane size.
func (r *Resolver) WireFromGeometry(gid GeometryID) int {
	if !gid.IsWire() || gid.WireNumber() >= r.wiresPerPlane {
		return -1
	}
	return int(gid.Plane())*r.wiresPerPlane + gid.WireNumber()
}

// GeometryFromWire is the inverse of WireFromGeometry.
func (r *Resolver) GeometryFromWire(wire int) GeometryID {
	if wire < 0 {
		return GeometryID{}
	}
	return NewWireGeometryID(Plane(wire/r.wiresPerPlane), wire%r.wiresPerPlane)
}

func (r *Resolver) GetWireFromGeometry(gid GeometryID) int {
	return r.WireFromGeometry(gid)
}

func (r *Resolver) GetWireFromChannel(cid ChannelID) int {
	return r.WireFromGeometry(r.GetGeometry(cid, 0))
}

func (r *Resolver) GetChannelForWire(wire int) ChannelID {
	gid := r.GeometryFromWire(wire)
	if !gid.IsValid() {
		r.logger.Error(fmt.Sprintf("wire %d is out of range", wire))
		return ChannelID{}
	}
	return r.GetChannel(gid, 0)
}

func (r *Resolver) GetGeometryForWire(wire int) GeometryID {
	gid := r.GeometryFromWire(wire)
	if !gid.IsValid() {
		r.logger.Error(fmt.Sprintf("wire %d is out of range", wire))
	}
	return gid
}

// GetASIC returns the packed ASIC address of a TPC channel, or -1.
func (r *Resolver) GetASIC(cid ChannelID) int {
	address, ok := ASICFromChannel(cid)
	if !ok {
		r.logger.Error(fmt.Sprintf("no ASIC for channel %v", cid))
		return -1
	}
	return address.Packed()
}

func (r *Resolver) WiresPerPlane() int { return r.wiresPerPlane }
