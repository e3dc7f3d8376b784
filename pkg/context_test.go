package channelmap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventContext_Mode(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name string
		ctx  EventContext
		mode Mode
	}{
		{name: "zero", ctx: EventContext{}, mode: InvalidMode},
		{name: "mc bit only", ctx: NewEventContext(1, 1, PartitionMCData, now), mode: InvalidMode},
		{name: "negative run", ctx: NewEventContext(-1, 1, PartitionCAPTAIN, now), mode: InvalidMode},
		{name: "detector", ctx: NewEventContext(4400, 1, PartitionMCAPTAIN, now), mode: Detector},
		{name: "simulated", ctx: NewEventContext(0, 0, PartitionCAPTAIN|PartitionMCData, now), mode: Simulated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.mode, tt.ctx.Mode())
			assert.Equal(t, tt.mode != InvalidMode, tt.ctx.IsValid())
			if tt.ctx.IsValid() {
				assert.NotEqual(t, tt.ctx.IsMC(), tt.ctx.IsDetector())
			} else {
				assert.False(t, tt.ctx.IsMC())
				assert.False(t, tt.ctx.IsDetector())
			}
		})
	}
}

func TestParsePartition(t *testing.T) {
	p, err := ParsePartition("mCAPTAIN")
	require.NoError(t, err)
	assert.Equal(t, PartitionMCAPTAIN, p)

	p, err = ParsePartition("mc-captain")
	require.NoError(t, err)
	assert.Equal(t, PartitionCAPTAIN|PartitionMCData, p)
	assert.Equal(t, "MC|CAPTAIN", p.String())

	_, err = ParsePartition("dune")
	assert.Error(t, err)
}
