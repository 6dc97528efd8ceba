package services

import (
	"log"
	"strings"
	"time"

	"nigraan/internal/models"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"
)

// MetricsSource is the pull-based contract the sampler consumes. Every call
// returns a fresh snapshot; none of them mutate OS state.
type MetricsSource interface {
	SampleCPU() (*models.CPUSnapshot, error)
	SampleMemory() (*models.MemorySnapshot, error)
	SampleDrives() ([]models.DriveUsage, error)
	SampleNetworkCounters() (models.NetCounters, error)
	BootTime() (time.Time, error)
}

// SystemSource reads metrics from the local host via gopsutil
type SystemSource struct{}

func NewSystemSource() *SystemSource {
	return &SystemSource{}
}

// SampleCPU returns aggregate and per-core utilization plus the current
// clock frequency. A zero interval makes gopsutil compute utilization
// against the previous call, so successive ticks give stable percentages.
func (s *SystemSource) SampleCPU() (*models.CPUSnapshot, error) {
	percentage, err := cpu.Percent(0, false)
	if err != nil {
		return nil, err
	}

	perCore, err := cpu.Percent(0, true)
	if err != nil {
		log.Printf("[METRICS] Warning: could not get per-core CPU usage: %v", err)
		perCore = nil
	}

	coreCount, err := cpu.Counts(true)
	if err != nil {
		log.Printf("[METRICS] Warning: could not get CPU core count: %v", err)
		coreCount = 0
	}

	freq := 0.0
	if infos, err := cpu.Info(); err != nil {
		log.Printf("[METRICS] Warning: could not get CPU frequency: %v", err)
	} else if len(infos) > 0 {
		freq = infos[0].Mhz
	}

	used := 0.0
	if len(percentage) > 0 {
		used = percentage[0]
	}

	return &models.CPUSnapshot{
		UsedPercent:  used,
		PerCore:      perCore,
		CoreCount:    coreCount,
		FrequencyMHz: freq,
	}, nil
}

// SampleMemory returns RAM and swap usage. A swap failure degrades to zero
// swap rather than failing the whole snapshot.
func (s *SystemSource) SampleMemory() (*models.MemorySnapshot, error) {
	virtualMemory, err := mem.VirtualMemory()
	if err != nil {
		return nil, err
	}

	snapshot := &models.MemorySnapshot{
		TotalBytes:     virtualMemory.Total,
		UsedBytes:      virtualMemory.Used,
		AvailableBytes: virtualMemory.Available,
		UsedPercent:    virtualMemory.UsedPercent,
	}

	swap, err := mem.SwapMemory()
	if err != nil {
		log.Printf("[METRICS] Warning: could not get swap usage: %v", err)
		return snapshot, nil
	}

	snapshot.SwapTotalBytes = swap.Total
	snapshot.SwapUsedBytes = swap.Used
	snapshot.SwapUsedPercent = swap.UsedPercent

	return snapshot, nil
}

// SampleDrives returns usage for every mounted partition in mount order.
// Pseudo filesystems and optical media are filtered out, and a partition
// whose usage query fails is skipped for this tick.
func (s *SystemSource) SampleDrives() ([]models.DriveUsage, error) {
	partitions, err := disk.Partitions(false)
	if err != nil {
		return nil, err
	}

	var drives []models.DriveUsage

	for _, partition := range partitions {
		if partition.Fstype == "" || hasCdromOpt(partition.Opts) {
			continue
		}

		usage, err := disk.Usage(partition.Mountpoint)
		if err != nil {
			log.Printf("[METRICS] Warning: could not get disk usage for %s: %v", partition.Mountpoint, err)
			continue
		}

		drives = append(drives, models.DriveUsage{
			Device:      partition.Device,
			Mountpoint:  partition.Mountpoint,
			TotalBytes:  usage.Total,
			UsedBytes:   usage.Used,
			UsedPercent: usage.UsedPercent,
		})
	}

	return drives, nil
}

func hasCdromOpt(opts []string) bool {
	for _, opt := range opts {
		if strings.Contains(opt, "cdrom") {
			return true
		}
	}
	return false
}

// SampleNetworkCounters returns cumulative byte totals aggregated across
// all interfaces.
func (s *SystemSource) SampleNetworkCounters() (models.NetCounters, error) {
	counters, err := net.IOCounters(false)
	if err != nil {
		return models.NetCounters{}, err
	}

	var totals models.NetCounters
	for _, counter := range counters {
		totals.BytesRecv += counter.BytesRecv
		totals.BytesSent += counter.BytesSent
	}

	return totals, nil
}

// BootTime returns the instant the host booted
func (s *SystemSource) BootTime() (time.Time, error) {
	epoch, err := host.BootTime()
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(int64(epoch), 0), nil
}
