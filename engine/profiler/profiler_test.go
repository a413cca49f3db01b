package profiler

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func TestTickLogsSampleEachInterval(t *testing.T) {
	var buf bytes.Buffer
	clock := &fakeClock{t: time.Unix(1000, 0)}
	p := NewProfiler(
		WithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)),
		WithClock(clock.now),
		WithInterval(time.Second),
	)
	p.Record("draws", 12)

	for i := 0; i < 29; i++ {
		clock.t = clock.t.Add(10 * time.Millisecond)
		assert.False(t, p.Tick())
	}
	assert.Empty(t, buf.String())

	clock.t = time.Unix(1001, 0)
	require.True(t, p.Tick())

	var sample map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &sample))
	assert.Equal(t, "debug", sample["level"])
	assert.Equal(t, "frame sample", sample["message"])
	assert.InDelta(t, 30, sample["fps"], 1e-9)
	assert.EqualValues(t, 12, sample["draws"])
	assert.InDelta(t, 30, p.FPS(), 1e-9)
}

func TestTickSilentAboveDebug(t *testing.T) {
	var buf bytes.Buffer
	clock := &fakeClock{t: time.Unix(0, 0)}
	p := NewProfiler(WithLogger(zerolog.New(&buf).Level(zerolog.InfoLevel)), WithClock(clock.now))

	clock.t = clock.t.Add(2 * time.Second)
	assert.True(t, p.Tick())
	assert.Empty(t, buf.String())
}
