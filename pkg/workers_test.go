package channelmap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_TranslateChannels(t *testing.T) {
	r := detectorResolver(t, &recordingLogger{})
	channels := []ChannelID{
		NewTPCChannelID(4, 11, 3),
		NewTPCChannelID(9, 9, 9),
		{},
		NewTPCChannelID(1, 2, 17),
		NewTPCChannelID(4, 11, 4),
	}

	for _, workers := range []int{0, 1, 3, 16} {
		results := r.TranslateChannels(detectorContext, channels, workers)
		require.Len(t, results, len(channels))

		assert.Equal(t, NewWireGeometryID(XPlane, 231), results[0].Geometry)
		assert.NoError(t, results[0].Err)
		assert.ErrorIs(t, results[1].Err, ErrNotFound)
		assert.ErrorIs(t, results[2].Err, ErrInvalidChannel)
		assert.Equal(t, NewWireGeometryID(UPlane, 0), results[3].Geometry)
		assert.Equal(t, NewWireGeometryID(XPlane, 232), results[4].Geometry)
		for i, result := range results {
			assert.Equal(t, channels[i], result.Channel)
		}
	}
}

func TestResolver_TranslateChannelsRecoversPanics(t *testing.T) {
	log := &recordingLogger{}
	r := NewResolver(WithLogger(log))
	channels := []ChannelID{
		NewTPCChannelID(1, 0, 0),
		NewTPCChannelID(1, 0, 1),
		NewTPCChannelID(1, 0, 2),
	}

	translate := func(cid ChannelID) (GeometryID, error) {
		if cid.Channel() != 1 {
			panic("broken translation")
		}
		return NewWireGeometryID(UPlane, cid.Channel()), nil
	}

	for _, workers := range []int{1, 2} {
		done := make(chan []Translation)
		go func() { done <- r.translateChannels(channels, workers, translate) }()

		var results []Translation
		select {
		case results = <-done:
		case <-time.After(5 * time.Second):
			t.Fatalf("translation with %d workers did not finish", workers)
		}

		require.Len(t, results, 3)
		assert.ErrorIs(t, results[0].Err, ErrTranslationPanic)
		assert.False(t, results[0].Geometry.IsValid())
		assert.NoError(t, results[1].Err)
		assert.Equal(t, NewWireGeometryID(UPlane, 1), results[1].Geometry)
		assert.ErrorIs(t, results[2].Err, ErrTranslationPanic)
		assert.Equal(t, channels[2], results[2].Channel)
	}
	assert.Equal(t, 4, log.errorCount())
}

func TestResolver_PanickingLoaderLeavesEmptyStore(t *testing.T) {
	log := &recordingLogger{}
	r := NewResolver(WithLogger(log))
	r.loader = func(Logger) (*Store, LoadReport) {
		panic("cannot load")
	}

	done := make(chan []Translation)
	go func() {
		done <- r.TranslateChannels(detectorContext, []ChannelID{
			NewTPCChannelID(4, 11, 3),
			NewTPCChannelID(4, 11, 4),
			NewTPCChannelID(4, 11, 5),
		}, 1)
	}()

	var results []Translation
	select {
	case results = <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("translation did not finish after the loader panicked")
	}

	require.Len(t, results, 3)
	for _, result := range results {
		assert.ErrorIs(t, result.Err, ErrNotFound)
	}
	require.NotNil(t, r.Store())
	assert.Zero(t, r.Store().Len())
	require.Len(t, r.LoadReport().Errors, 1)
	assert.ErrorIs(t, r.LoadReport().Errors[0], ErrLoadPanic)

	_, err := r.ChannelFor(detectorContext, NewWireGeometryID(XPlane, 231), 0)
	assert.ErrorIs(t, err, ErrNotFound)
}
