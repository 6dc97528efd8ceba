package services

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatencyProber_StartsUnreachable(t *testing.T) {
	prober := NewLatencyProber("127.0.0.1:1", time.Millisecond, time.Hour)
	assert.Equal(t, LatencyUnreachable, prober.LatencyMillis())
}

func TestLatencyProber_MeasuresReachableTarget(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()

	prober := NewLatencyProber(listener.Addr().String(), time.Second, time.Hour)
	prober.probe()

	latency := prober.LatencyMillis()
	assert.GreaterOrEqual(t, latency, int64(0))
	assert.Less(t, latency, int64(1000))
}

func TestLatencyProber_SentinelOnRefusedConnection(t *testing.T) {
	// Grab a port that is definitely closed by listening and releasing it
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	target := listener.Addr().String()
	require.NoError(t, listener.Close())

	prober := NewLatencyProber(target, 200*time.Millisecond, time.Hour)
	prober.probe()

	assert.Equal(t, LatencyUnreachable, prober.LatencyMillis())
}

func TestLatencyProber_RecoversAfterFailure(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()

	prober := NewLatencyProber(listener.Addr().String(), time.Second, time.Hour)
	prober.latencyMs.Store(LatencyUnreachable)

	prober.probe()
	assert.NotEqual(t, LatencyUnreachable, prober.LatencyMillis())
}
