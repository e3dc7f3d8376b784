package channelmap

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	mcContext       = NewEventContext(4400, 1, PartitionMCAPTAIN|PartitionMCData, time.Unix(1700000000, 0))
	detectorContext = NewEventContext(4400, 1, PartitionMCAPTAIN, time.Unix(1700000000, 0))
)

func detectorResolver(t *testing.T, log Logger) *Resolver {
	t.Helper()
	store, report := LoadStore(table(
		tableLine(4, 11, 3, DetectorTPC, int(XPlane), 231),
		tableLine(4, 11, 4, DetectorTPC, int(XPlane), 232),
		tableLine(1, 2, 17, DetectorTPC, int(UPlane), 0),
	), "test", log)
	require.Empty(t, report.Errors)
	return NewResolver(WithStore(store), WithLogger(log))
}

func TestResolver_DetectorEndToEnd(t *testing.T) {
	r := detectorResolver(t, &recordingLogger{})
	r.SetContext(detectorContext)

	cid := NewTPCChannelID(4, 11, 3)
	gid := r.GetGeometry(cid, 0)
	assert.Equal(t, NewWireGeometryID(XPlane, 231), gid)
	assert.True(t, gid.IsXWire())
	assert.Equal(t, cid, r.GetChannel(gid, 0))
}

func TestResolver_SimulatedEndToEnd(t *testing.T) {
	r := NewResolver(WithLogger(&recordingLogger{}))
	r.SetContext(mcContext)

	gid := NewWireGeometryID(XPlane, 231)
	cid := r.GetChannel(gid, 0)
	require.True(t, cid.IsMCChannel())
	assert.Equal(t, MCWireType, cid.Type())
	assert.Equal(t, int(XPlane), cid.Sequence())
	assert.Equal(t, 231, cid.Number())
	assert.Equal(t, gid, r.GetGeometry(cid, 0))
}

func TestResolver_SimulatedBijection(t *testing.T) {
	r := NewResolver(WithMapVariable("CHANNELMAP_NOT_USED"), WithLogger(&recordingLogger{}))

	for plane := UPlane; plane <= XPlane; plane++ {
		for wire := 0; wire < 400; wire++ {
			gid := NewWireGeometryID(plane, wire)
			cid, err := r.ChannelFor(mcContext, gid, 0)
			require.NoError(t, err)
			back, err := r.GeometryFor(mcContext, cid, 0)
			require.NoError(t, err)
			assert.Equal(t, gid, back)
		}
	}
	for sensor := 0; sensor < 64; sensor++ {
		gid := NewPhotosensorGeometryID(sensor)
		cid, err := r.ChannelFor(mcContext, gid, 0)
		require.NoError(t, err)
		assert.Equal(t, MCPhotosensorType, cid.Type())
		assert.Equal(t, 0, cid.Sequence())
		assert.Equal(t, sensor, cid.Number())
		back, err := r.GeometryFor(mcContext, cid, 0)
		require.NoError(t, err)
		assert.Equal(t, gid, back)
	}

	// The simulated path never touches the channel map.
	assert.Nil(t, r.store)
}

func TestResolver_InvalidInInvalidOut(t *testing.T) {
	r := detectorResolver(t, &recordingLogger{})

	tests := []struct {
		name string
		ctx  EventContext
		gid  GeometryID
		cid  ChannelID
		err  error
	}{
		{name: "no context", ctx: EventContext{}, gid: NewWireGeometryID(XPlane, 231), cid: NewTPCChannelID(4, 11, 3), err: ErrInvalidContext},
		{name: "invalid ids mc", ctx: mcContext, err: nil},
		{name: "invalid ids detector", ctx: detectorContext, err: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cid, err := r.ChannelFor(tt.ctx, tt.gid, 0)
			assert.Error(t, err)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidGeometry)
			}
			assert.False(t, cid.IsValid())

			gid, err := r.GeometryFor(tt.ctx, tt.cid, 0)
			assert.Error(t, err)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidChannel)
			}
			assert.False(t, gid.IsValid())
		})
	}
}

func TestResolver_ContextNeverSet(t *testing.T) {
	log := &recordingLogger{}
	r := detectorResolver(t, log)

	assert.False(t, r.GetContext().IsValid())
	assert.False(t, r.GetChannel(NewWireGeometryID(XPlane, 231), 0).IsValid())
	assert.False(t, r.GetGeometry(NewTPCChannelID(4, 11, 3), 0).IsValid())
	assert.GreaterOrEqual(t, log.errorCount(), 3)
}

func TestResolver_IndexBound(t *testing.T) {
	for _, ctx := range []EventContext{mcContext, detectorContext} {
		r := detectorResolver(t, &recordingLogger{})
		r.SetContext(ctx)
		for _, index := range []int{-1, 1, 2} {
			assert.False(t, r.GetChannel(NewWireGeometryID(XPlane, 231), index).IsValid())
			assert.False(t, r.GetGeometry(NewTPCChannelID(4, 11, 3), index).IsValid())

			_, err := r.ChannelFor(ctx, NewWireGeometryID(XPlane, 231), index)
			assert.ErrorIs(t, err, ErrIndexOutOfRange)
			_, err = r.GeometryFor(ctx, NewWireChannelID(XPlane, 231), index)
			assert.ErrorIs(t, err, ErrIndexOutOfRange)
		}
	}
}

func TestResolver_DetectorNotFound(t *testing.T) {
	log := &recordingLogger{}
	r := detectorResolver(t, log)
	r.SetContext(detectorContext)

	_, err := r.ChannelFor(detectorContext, NewWireGeometryID(VPlane, 5), 0)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = r.GeometryFor(detectorContext, NewTPCChannelID(9, 9, 9), 0)
	assert.ErrorIs(t, err, ErrNotFound)

	// Simulated channels are not in a detector channel map.
	_, err = r.GeometryFor(detectorContext, NewWireChannelID(XPlane, 231), 0)
	assert.ErrorIs(t, err, ErrNotFound)

	before := log.errorCount()
	assert.False(t, r.GetGeometry(NewTPCChannelID(9, 9, 9), 0).IsValid())
	assert.Greater(t, log.errorCount(), before)
}

func TestResolver_SimulatedUnsupportedKind(t *testing.T) {
	r := NewResolver(WithLogger(&recordingLogger{}))

	_, err := r.GeometryFor(mcContext, NewTPCChannelID(4, 11, 3), 0)
	assert.ErrorIs(t, err, ErrUnsupportedKind)
}

func TestResolver_NoChannelMapConfigured(t *testing.T) {
	t.Setenv("TEST_EMPTY_CHANNELMAP", "")
	log := &recordingLogger{}
	r := NewResolver(WithMapVariable("TEST_EMPTY_CHANNELMAP"), WithLogger(log))
	r.SetContext(detectorContext)

	assert.False(t, r.GetGeometry(NewTPCChannelID(4, 11, 3), 0).IsValid())
	assert.Positive(t, log.errorCount())
	assert.Zero(t, r.Store().Len())
	assert.Empty(t, r.LoadReport().Errors)
}

func TestResolver_LoadsChannelMapOnce(t *testing.T) {
	calls := 0
	r := NewResolver(WithLogger(&recordingLogger{}))
	r.loader = func(l Logger) (*Store, LoadReport) {
		calls++
		return LoadStore(table(tableLine(4, 11, 3, DetectorTPC, int(XPlane), 231)), "counted", l)
	}

	for range 5 {
		_, err := r.GeometryFor(detectorContext, NewTPCChannelID(4, 11, 3), 0)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, calls)
	assert.Equal(t, "counted", r.LoadReport().Source)
}

func TestResolver_SetContextReplaces(t *testing.T) {
	r := detectorResolver(t, &recordingLogger{})
	r.SetContext(mcContext)
	r.SetContext(detectorContext)

	assert.Equal(t, detectorContext, r.GetContext())
	assert.Equal(t, NewWireGeometryID(XPlane, 231), r.GetGeometry(NewTPCChannelID(4, 11, 3), 0))
}

func TestResolver_Counts(t *testing.T) {
	r := NewResolver()
	assert.Equal(t, 1, r.GetChannelCount(NewWireGeometryID(UPlane, 0)))
	assert.Equal(t, 0, r.GetChannelCount(GeometryID{}))
	assert.Equal(t, 1, r.GetGeometryCount(NewTPCChannelID(0, 0, 0)))
	assert.Equal(t, 0, r.GetGeometryCount(ChannelID{}))
}

func TestResolver_ConcurrentExplicitContext(t *testing.T) {
	r := detectorResolver(t, &recordingLogger{})

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func(mc bool) {
			defer wg.Done()
			ctx := detectorContext
			want := NewTPCChannelID(4, 11, 3)
			if mc {
				ctx = mcContext
				want = NewWireChannelID(XPlane, 231)
			}
			for range 100 {
				r.SetContext(ctx)
				cid, err := r.ChannelFor(ctx, NewWireGeometryID(XPlane, 231), 0)
				assert.NoError(t, err)
				assert.Equal(t, want, cid)
			}
		}(i%2 == 0)
	}
	wg.Wait()
}
