package monitoring

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter int

func (c counter) Count() int       { return int(c) }
func (c counter) ClientCount() int { return int(c) }

func TestCheck(t *testing.T) {
	started := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	hc := NewHealthChecker(counter(12), counter(3))
	hc.started = started
	hc.now = func() time.Time { return started.Add(90 * time.Second) }
	hc.sample = func() (ProcessSample, error) {
		return ProcessSample{RSSBytes: 4096, CPUPercent: 1.5}, nil
	}

	health, err := hc.Check()
	require.NoError(t, err)

	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, 90.0, health.UptimeSeconds)
	assert.Equal(t, 12, health.TotalEvents)
	assert.Equal(t, uint64(4096), health.MemoryRSSBytes)
	assert.Equal(t, 1.5, health.CPUPercent)
	assert.Equal(t, 3, health.ConnectedClients)
}

func TestCheck_NilClients(t *testing.T) {
	hc := NewHealthChecker(counter(0), nil)
	hc.sample = func() (ProcessSample, error) { return ProcessSample{}, nil }

	health, err := hc.Check()
	require.NoError(t, err)
	assert.Zero(t, health.ConnectedClients)
}

func TestCheck_SampleError(t *testing.T) {
	sampleErr := errors.New("no procfs")
	hc := NewHealthChecker(counter(0), nil)
	hc.sample = func() (ProcessSample, error) { return ProcessSample{}, sampleErr }

	_, err := hc.Check()
	assert.ErrorIs(t, err, sampleErr)
}

func TestSampleCurrentProcess(t *testing.T) {
	sample, err := SampleCurrentProcess()
	require.NoError(t, err)
	assert.NotZero(t, sample.RSSBytes)
}
