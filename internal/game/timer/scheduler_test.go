package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_FiresAfterTicks(t *testing.T) {
	s := NewScheduler()
	fired := 0
	require.True(t, s.Schedule(Key{Cast: 1, Kind: Spawn}, 3, func() { fired++ }))

	for i := 1; i <= 2; i++ {
		assert.Equal(t, 0, s.Advance(), "tick %d", i)
	}
	remaining, ok := s.Pending(Key{Cast: 1, Kind: Spawn})
	require.True(t, ok)
	assert.Equal(t, 1, remaining)

	assert.Equal(t, 1, s.Advance())
	assert.Equal(t, 1, fired)
	assert.Equal(t, 0, s.Len())

	assert.Equal(t, 0, s.Advance(), "a fired timer must not fire again")
}

func TestScheduler_ZeroTicksFiresNextAdvance(t *testing.T) {
	s := NewScheduler()
	fired := false
	s.Schedule(Key{Cast: 1, Kind: Recovery}, 0, func() { fired = true })

	assert.False(t, fired)
	s.Advance()
	assert.True(t, fired)
}

func TestScheduler_DuplicateKey(t *testing.T) {
	s := NewScheduler()
	key := Key{Cast: 7, Kind: Spawn}
	assert.True(t, s.Schedule(key, 2, func() {}))
	assert.False(t, s.Schedule(key, 5, func() {}))

	remaining, _ := s.Pending(key)
	assert.Equal(t, 2, remaining)
}

func TestScheduler_OrderWithinTick(t *testing.T) {
	s := NewScheduler()
	var order []Key

	keys := []Key{
		{Cast: 2, Kind: Recovery},
		{Cast: 1, Kind: Recovery},
		{Cast: 2, Kind: Spawn},
		{Cast: 1, Kind: Spawn},
	}
	for _, k := range keys {
		s.Schedule(k, 1, func() { order = append(order, k) })
	}

	assert.Equal(t, 4, s.Advance())
	assert.Equal(t, []Key{
		{Cast: 1, Kind: Spawn},
		{Cast: 1, Kind: Recovery},
		{Cast: 2, Kind: Spawn},
		{Cast: 2, Kind: Recovery},
	}, order)
}

func TestScheduler_CallbackSchedulesTimer(t *testing.T) {
	s := NewScheduler()
	second := false
	s.Schedule(Key{Cast: 1, Kind: Spawn}, 1, func() {
		s.Schedule(Key{Cast: 2, Kind: Spawn}, 1, func() { second = true })
	})

	s.Advance()
	assert.False(t, second, "timer scheduled during Advance must wait a full tick")
	s.Advance()
	assert.True(t, second)
}

func TestScheduler_CancelAll(t *testing.T) {
	s := NewScheduler()
	fired := false
	s.Schedule(Key{Cast: 1, Kind: Spawn}, 1, func() { fired = true })
	s.Schedule(Key{Cast: 1, Kind: Recovery}, 2, func() { fired = true })

	assert.Equal(t, 2, s.CancelAll())
	s.Advance()
	s.Advance()
	assert.False(t, fired)
	assert.Equal(t, 0, s.Len())
}

func TestTicksFor(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		tick time.Duration
		want int
	}{
		{"exact", time.Second, 100 * time.Millisecond, 10},
		{"round up", 1050 * time.Millisecond, 100 * time.Millisecond, 11},
		{"zero duration", 0, 100 * time.Millisecond, 0},
		{"zero tick", time.Second, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TicksFor(tt.d, tt.tick))
		})
	}
}
