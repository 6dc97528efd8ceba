package services

import (
	"log"
	"os"
	"sync"
	"time"

	"nigraan/internal/models"
)

// DriveRegistry tracks every drive ever observed during this run, keyed by
// device identifier. Entries are created on first sight and updated in
// place afterwards; a drive that stops appearing is marked stale but never
// removed, so its last known state stays visible.
type DriveRegistry struct {
	entries map[string]*models.DriveEntry
	order   []string
}

func NewDriveRegistry() *DriveRegistry {
	return &DriveRegistry{
		entries: make(map[string]*models.DriveEntry),
	}
}

// Observe records one tick's usage for a device, allocating the entry on
// first sight
func (r *DriveRegistry) Observe(usage models.DriveUsage, now time.Time) *models.DriveEntry {
	entry, exists := r.entries[usage.Device]
	if !exists {
		entry = &models.DriveEntry{FirstSeen: now}
		r.entries[usage.Device] = entry
		r.order = append(r.order, usage.Device)
	}

	entry.DriveUsage = usage
	entry.LastSeen = now
	entry.Stale = false
	return entry
}

// MarkMissing flags every entry not observed this tick as stale
func (r *DriveRegistry) MarkMissing(seen map[string]bool) {
	for device, entry := range r.entries {
		if !seen[device] {
			entry.Stale = true
		}
	}
}

// Entries returns all registry entries in discovery order
func (r *DriveRegistry) Entries() []*models.DriveEntry {
	entries := make([]*models.DriveEntry, 0, len(r.order))
	for _, device := range r.order {
		entries = append(entries, r.entries[device])
	}
	return entries
}

// Sampler drives the fixed-period sample/derive/publish cycle. All work for
// a tick happens in one goroutine before the next tick is awaited, so ticks
// never overlap. Its only persistent state is the retained network counters
// and the drive registry.
type Sampler struct {
	source   MetricsSource
	prober   *LatencyProber
	board    *DisplayBoard
	interval time.Duration

	hostname     string
	bootTime     time.Time
	lastCounters models.NetCounters
	lastSample   time.Time
	drives       *DriveRegistry

	stopCh   chan struct{}
	stopOnce sync.Once
}

func NewSampler(source MetricsSource, prober *LatencyProber, board *DisplayBoard, interval time.Duration) *Sampler {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	return &Sampler{
		source:   source,
		prober:   prober,
		board:    board,
		interval: interval,
		hostname: hostname,
		drives:   NewDriveRegistry(),
		stopCh:   make(chan struct{}),
	}
}

// Start primes the retained state and launches the tick loop. Priming the
// counters here means the first tick's delta spans milliseconds instead of
// the totals accumulated since boot.
func (s *Sampler) Start() {
	boot, err := s.source.BootTime()
	if err != nil {
		log.Printf("[SAMPLER] Warning: could not get boot time: %v", err)
	}
	s.bootTime = boot

	counters, err := s.source.SampleNetworkCounters()
	if err != nil {
		log.Printf("[SAMPLER] Warning: could not prime network counters: %v", err)
	}
	s.lastCounters = counters
	s.lastSample = time.Now()

	go func() {
		log.Printf("[SAMPLER] Sampler started (interval: %v)", s.interval)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.tick(time.Now())
			case <-s.stopCh:
				log.Println("[SAMPLER] Sampler stopped")
				return
			}
		}
	}()
}

// Stop terminates the tick loop
func (s *Sampler) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
}

// tick runs one full sample/derive/publish cycle. Any single metric that
// fails degrades to a zero value; the tick itself never aborts.
func (s *Sampler) tick(now time.Time) {
	cpuSnap, err := s.source.SampleCPU()
	if err != nil {
		log.Printf("[SAMPLER] Warning: CPU sample failed: %v", err)
		cpuSnap = &models.CPUSnapshot{}
	}

	memSnap, err := s.source.SampleMemory()
	if err != nil {
		log.Printf("[SAMPLER] Warning: memory sample failed: %v", err)
		memSnap = &models.MemorySnapshot{}
	}

	drives, err := s.source.SampleDrives()
	if err != nil {
		log.Printf("[SAMPLER] Warning: drive scan failed: %v", err)
		drives = nil
	}

	counters, err := s.source.SampleNetworkCounters()
	if err != nil {
		log.Printf("[SAMPLER] Warning: network counters failed: %v", err)
		counters = s.lastCounters
	}

	elapsed := now.Sub(s.lastSample).Seconds()
	rate := ComputeNetworkRate(s.lastCounters, counters, elapsed)
	s.lastCounters = counters
	s.lastSample = now

	seen := make(map[string]bool, len(drives))
	for _, usage := range drives {
		s.drives.Observe(usage, now)
		seen[usage.Device] = true
	}
	s.drives.MarkMissing(seen)
	entries := s.drives.Entries()

	var uptime time.Duration
	if !s.bootTime.IsZero() {
		uptime = now.Sub(s.bootTime)
	}

	latencyMs := s.prober.LatencyMillis()

	state := BuildDisplayState(s.hostname, cpuSnap, memSnap, entries, rate, latencyMs, uptime, now)

	snapshotDrives := make([]models.DriveEntry, 0, len(entries))
	for _, entry := range entries {
		snapshotDrives = append(snapshotDrives, *entry)
	}

	s.board.Publish(state, models.Snapshot{
		CPU:       cpuSnap,
		Memory:    memSnap,
		Drives:    snapshotDrives,
		Network:   rate,
		Counters:  counters,
		LatencyMs: latencyMs,
		Uptime:    FormatUptime(uptime),
		Timestamp: now,
	})
}
