package services

import (
	"log"
	"net"
	"sync"
	"sync/atomic"
	"time"
)

// LatencyUnreachable is the sentinel stored when a probe fails or times
// out. Distinct from a valid zero-millisecond measurement.
const LatencyUnreachable int64 = -1

// LatencyProber measures TCP connect latency to a fixed target on its own
// cadence, independent of the sampler tick. Single writer, any readers;
// the measured value is an atomic scalar and staleness of one cycle is fine.
type LatencyProber struct {
	target   string
	timeout  time.Duration
	interval time.Duration

	latencyMs atomic.Int64
	stopCh    chan struct{}
	stopOnce  sync.Once
}

func NewLatencyProber(target string, timeout, interval time.Duration) *LatencyProber {
	p := &LatencyProber{
		target:   target,
		timeout:  timeout,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
	p.latencyMs.Store(LatencyUnreachable)
	return p
}

// Start launches the probe loop. It runs for the lifetime of the process;
// Stop exists for tests.
func (p *LatencyProber) Start() {
	go func() {
		log.Printf("[PROBE] Latency prober started (target: %s, every %v)", p.target, p.interval)
		for {
			p.probe()

			select {
			case <-p.stopCh:
				return
			case <-time.After(p.interval):
			}
		}
	}()
}

// Stop terminates the probe loop
func (p *LatencyProber) Stop() {
	p.stopOnce.Do(func() { close(p.stopCh) })
}

// LatencyMillis returns the last measured round-trip in milliseconds, or
// LatencyUnreachable when the target could not be reached.
func (p *LatencyProber) LatencyMillis() int64 {
	return p.latencyMs.Load()
}

// probe performs one connect attempt and records the outcome
func (p *LatencyProber) probe() {
	start := time.Now()
	conn, err := net.DialTimeout("tcp", p.target, p.timeout)
	if err != nil {
		p.latencyMs.Store(LatencyUnreachable)
		return
	}
	conn.Close()
	p.latencyMs.Store(time.Since(start).Milliseconds())
}
