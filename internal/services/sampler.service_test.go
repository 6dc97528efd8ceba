package services

import (
	"errors"
	"testing"
	"time"

	"nigraan/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource is a MetricsSource with scripted responses
type fakeSource struct {
	cpu      *models.CPUSnapshot
	cpuErr   error
	mem      *models.MemorySnapshot
	memErr   error
	drives   []models.DriveUsage
	driveErr error
	counters models.NetCounters
	netErr   error
	boot     time.Time
}

func (f *fakeSource) SampleCPU() (*models.CPUSnapshot, error) {
	if f.cpuErr != nil {
		return nil, f.cpuErr
	}
	return f.cpu, nil
}

func (f *fakeSource) SampleMemory() (*models.MemorySnapshot, error) {
	if f.memErr != nil {
		return nil, f.memErr
	}
	return f.mem, nil
}

func (f *fakeSource) SampleDrives() ([]models.DriveUsage, error) {
	if f.driveErr != nil {
		return nil, f.driveErr
	}
	return f.drives, nil
}

func (f *fakeSource) SampleNetworkCounters() (models.NetCounters, error) {
	if f.netErr != nil {
		return models.NetCounters{}, f.netErr
	}
	return f.counters, nil
}

func (f *fakeSource) BootTime() (time.Time, error) {
	if f.boot.IsZero() {
		return time.Time{}, errors.New("boot time unavailable")
	}
	return f.boot, nil
}

func newTestSampler(source MetricsSource) (*Sampler, *DisplayBoard) {
	board := NewDisplayBoard()
	prober := NewLatencyProber("127.0.0.1:1", time.Millisecond, time.Hour)
	return NewSampler(source, prober, board, time.Second), board
}

func TestDriveRegistry(t *testing.T) {
	now := time.Now()
	registry := NewDriveRegistry()

	t.Run("same device twice yields one entry with latest values", func(t *testing.T) {
		registry.Observe(models.DriveUsage{Device: "/dev/sda1", UsedPercent: 40}, now)
		registry.Observe(models.DriveUsage{Device: "/dev/sda1", UsedPercent: 60}, now.Add(time.Second))

		entries := registry.Entries()
		require.Len(t, entries, 1)
		assert.Equal(t, 60.0, entries[0].UsedPercent)
		assert.Equal(t, now, entries[0].FirstSeen)
		assert.Equal(t, now.Add(time.Second), entries[0].LastSeen)
	})

	t.Run("discovery order is preserved", func(t *testing.T) {
		registry.Observe(models.DriveUsage{Device: "/dev/sdb1"}, now)
		registry.Observe(models.DriveUsage{Device: "/dev/sda1"}, now)

		entries := registry.Entries()
		require.Len(t, entries, 2)
		assert.Equal(t, "/dev/sda1", entries[0].Device)
		assert.Equal(t, "/dev/sdb1", entries[1].Device)
	})

	t.Run("missing drive is kept but marked stale", func(t *testing.T) {
		registry.MarkMissing(map[string]bool{"/dev/sda1": true})

		entries := registry.Entries()
		require.Len(t, entries, 2)
		assert.False(t, entries[0].Stale)
		assert.True(t, entries[1].Stale)
	})

	t.Run("reappearing drive clears the stale flag", func(t *testing.T) {
		registry.Observe(models.DriveUsage{Device: "/dev/sdb1"}, now.Add(2*time.Second))
		entries := registry.Entries()
		assert.False(t, entries[1].Stale)
	})
}

func TestSamplerTick_RateIsZeroForUnchangedCounters(t *testing.T) {
	source := &fakeSource{
		cpu:      &models.CPUSnapshot{UsedPercent: 10},
		mem:      &models.MemorySnapshot{UsedPercent: 20},
		counters: models.NetCounters{BytesRecv: 100, BytesSent: 200},
	}

	sampler, board := newTestSampler(source)
	now := time.Now()
	sampler.lastCounters = source.counters
	sampler.lastSample = now.Add(-time.Second)

	sampler.tick(now)
	sampler.lastSample = now
	sampler.tick(now.Add(time.Second))

	snapshot, ok := board.Snapshot()
	require.True(t, ok)
	assert.Equal(t, 0.0, snapshot.Network.DownBytesPerSec)
	assert.Equal(t, 0.0, snapshot.Network.UpBytesPerSec)

	state, _ := board.State()
	assert.Equal(t, "0.00B/s", state.Download)
	assert.Equal(t, "0.00B/s", state.Upload)
}

func TestSamplerTick_DerivesRateFromCounterDelta(t *testing.T) {
	source := &fakeSource{
		cpu:      &models.CPUSnapshot{UsedPercent: 10},
		mem:      &models.MemorySnapshot{},
		counters: models.NetCounters{BytesRecv: 150, BytesSent: 250},
	}

	sampler, board := newTestSampler(source)
	now := time.Now()
	sampler.lastCounters = models.NetCounters{BytesRecv: 100, BytesSent: 200}
	sampler.lastSample = now.Add(-time.Second)

	sampler.tick(now)

	snapshot, ok := board.Snapshot()
	require.True(t, ok)
	assert.InDelta(t, 50, snapshot.Network.DownBytesPerSec, 0.001)
	assert.InDelta(t, 50, snapshot.Network.UpBytesPerSec, 0.001)
	assert.Equal(t, source.counters, snapshot.Counters)
}

func TestSamplerTick_CounterResetDoesNotGoNegative(t *testing.T) {
	source := &fakeSource{
		cpu:      &models.CPUSnapshot{},
		mem:      &models.MemorySnapshot{},
		counters: models.NetCounters{BytesRecv: 5, BytesSent: 5},
	}

	sampler, board := newTestSampler(source)
	now := time.Now()
	sampler.lastCounters = models.NetCounters{BytesRecv: 100000, BytesSent: 100000}
	sampler.lastSample = now.Add(-time.Second)

	sampler.tick(now)

	snapshot, ok := board.Snapshot()
	require.True(t, ok)
	assert.Equal(t, 0.0, snapshot.Network.DownBytesPerSec)
	assert.Equal(t, 0.0, snapshot.Network.UpBytesPerSec)
}

func TestSamplerTick_DriveLifecycle(t *testing.T) {
	source := &fakeSource{
		cpu: &models.CPUSnapshot{},
		mem: &models.MemorySnapshot{},
		drives: []models.DriveUsage{
			{Device: "/dev/sda1", UsedPercent: 30, TotalBytes: 100, UsedBytes: 30},
			{Device: "/dev/sdb1", UsedPercent: 90, TotalBytes: 100, UsedBytes: 90},
		},
	}

	sampler, board := newTestSampler(source)
	now := time.Now()
	sampler.lastSample = now.Add(-time.Second)

	sampler.tick(now)

	state, ok := board.State()
	require.True(t, ok)
	require.Len(t, state.Drives, 2)
	assert.Equal(t, models.SeverityLow, state.Drives[0].Band)
	assert.Equal(t, models.SeverityHigh, state.Drives[1].Band)

	// Second drive unmounts: its widget stays, marked stale, values frozen
	source.drives = source.drives[:1]
	sampler.tick(now.Add(time.Second))

	state, _ = board.State()
	require.Len(t, state.Drives, 2)
	assert.Equal(t, "/dev/sda1", state.Drives[0].Label)
	assert.False(t, state.Drives[0].Stale)
	assert.Equal(t, "/dev/sdb1", state.Drives[1].Label)
	assert.True(t, state.Drives[1].Stale)
	assert.Equal(t, models.SeverityHigh, state.Drives[1].Band)
}

func TestSamplerTick_DegradesOnSourceFailures(t *testing.T) {
	source := &fakeSource{
		cpuErr:   errors.New("cpu unavailable"),
		memErr:   errors.New("mem unavailable"),
		driveErr: errors.New("disk unavailable"),
		netErr:   errors.New("net unavailable"),
	}

	sampler, board := newTestSampler(source)
	now := time.Now()
	sampler.lastSample = now.Add(-time.Second)

	assert.NotPanics(t, func() { sampler.tick(now) })

	state, ok := board.State()
	require.True(t, ok)
	assert.Equal(t, "Used: 0% | Free: 100.0%", state.CPU.Text)
	assert.Equal(t, models.SeverityLow, state.CPU.Band)
	assert.Empty(t, state.Drives)
	assert.Equal(t, "0.00B/s", state.Download)
}

func TestSamplerTick_RendersOfflinePing(t *testing.T) {
	source := &fakeSource{
		cpu: &models.CPUSnapshot{},
		mem: &models.MemorySnapshot{},
	}

	sampler, board := newTestSampler(source)
	now := time.Now()
	sampler.lastSample = now.Add(-time.Second)

	// Prober never started, so the sentinel is still in place
	sampler.tick(now)

	state, ok := board.State()
	require.True(t, ok)
	assert.Equal(t, "Ping: Offline", state.Ping.Text)
	assert.Equal(t, models.SeverityHigh, state.Ping.Band)

	sampler.prober.latencyMs.Store(42)
	sampler.tick(now.Add(time.Second))

	state, _ = board.State()
	assert.Equal(t, "Ping: 42 ms", state.Ping.Text)
}

func TestSamplerTick_UptimeFromBootTime(t *testing.T) {
	source := &fakeSource{
		cpu: &models.CPUSnapshot{},
		mem: &models.MemorySnapshot{},
	}

	sampler, board := newTestSampler(source)
	now := time.Now()
	sampler.bootTime = now.Add(-90 * time.Second)
	sampler.lastSample = now.Add(-time.Second)

	sampler.tick(now)

	state, ok := board.State()
	require.True(t, ok)
	assert.Equal(t, "System Uptime: 1m30s", state.Uptime)
}

func TestDisplayBoard_NotifyOnPublish(t *testing.T) {
	board := NewDisplayBoard()

	var got []models.DisplayState
	board.SetNotify(func(s models.DisplayState) { got = append(got, s) })

	_, ok := board.State()
	assert.False(t, ok)

	board.Publish(models.DisplayState{Hostname: "h"}, models.Snapshot{})

	require.Len(t, got, 1)
	assert.Equal(t, "h", got[0].Hostname)

	state, ok := board.State()
	assert.True(t, ok)
	assert.Equal(t, "h", state.Hostname)
}
