package services

import (
	"fmt"
	"strconv"
	"time"

	"nigraan/internal/models"
)

// PingWarnMillis is the latency above which the ping widget turns from
// good to warning
const PingWarnMillis int64 = 100

// FormatBytes renders a byte count as a human-readable string using binary
// units: repeated division by 1024, two decimals, unit glued to the number.
// 0 -> "0.00B", 1536 -> "1.50KB", 1<<30 -> "1.00GB".
func FormatBytes(n float64) string {
	const factor = 1024
	for _, unit := range []string{"", "K", "M", "G", "T"} {
		if n < factor {
			return fmt.Sprintf("%.2f%sB", n, unit)
		}
		n /= factor
	}
	return fmt.Sprintf("%.2fPB", n)
}

// FormatRate renders a bytes-per-second value, e.g. "1.50KB/s"
func FormatRate(bytesPerSec float64) string {
	return FormatBytes(bytesPerSec) + "/s"
}

// FormatUptime renders a boot-relative duration truncated to whole seconds
func FormatUptime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return "System Uptime: " + d.Truncate(time.Second).String()
}

// ComputeNetworkRate derives per-direction transfer rates from two
// cumulative counter snapshots. A counter that went backwards (reset or
// wrap) yields 0 for that direction rather than a negative rate. A
// non-positive elapsed time is treated as one second.
func ComputeNetworkRate(prev, cur models.NetCounters, elapsedSec float64) models.NetworkRate {
	if elapsedSec <= 0 {
		elapsedSec = 1
	}

	var rate models.NetworkRate
	if cur.BytesRecv >= prev.BytesRecv {
		rate.DownBytesPerSec = float64(cur.BytesRecv-prev.BytesRecv) / elapsedSec
	}
	if cur.BytesSent >= prev.BytesSent {
		rate.UpBytesPerSec = float64(cur.BytesSent-prev.BytesSent) / elapsedSec
	}
	return rate
}

// trimPercent renders a percentage without trailing zeros: 45 -> "45",
// 45.5 -> "45.5"
func trimPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// BuildCPUWidget renders the aggregate CPU widget
func BuildCPUWidget(usedPercent float64) models.Widget {
	free := 100 - usedPercent
	return models.Widget{
		Label: "CPU",
		Text:  fmt.Sprintf("Used: %s%% | Free: %.1f%%", trimPercent(usedPercent), free),
		Level: usedPercent / 100,
		Band:  models.ClassifySeverity(usedPercent),
	}
}

// BuildCoreWidgets renders one widget per logical core, 1-based labels
func BuildCoreWidgets(perCore []float64) []models.Widget {
	widgets := make([]models.Widget, 0, len(perCore))
	for i, usage := range perCore {
		widgets = append(widgets, models.Widget{
			Label: fmt.Sprintf("Core %d", i+1),
			Text:  fmt.Sprintf("Core %d: %.0f%%", i+1, usage),
			Level: usage / 100,
			Band:  models.ClassifySeverity(usage),
		})
	}
	return widgets
}

// BuildRAMWidget renders the physical memory widget
func BuildRAMWidget(mem *models.MemorySnapshot) models.Widget {
	return models.Widget{
		Label: "Physical RAM",
		Text: fmt.Sprintf("Total: %s | Used: %s (%.1f%%) | Free: %s",
			FormatBytes(float64(mem.TotalBytes)),
			FormatBytes(float64(mem.UsedBytes)),
			mem.UsedPercent,
			FormatBytes(float64(mem.AvailableBytes))),
		Level: mem.UsedPercent / 100,
		Band:  models.ClassifySeverity(mem.UsedPercent),
	}
}

// BuildSwapWidget renders the swap widget
func BuildSwapWidget(mem *models.MemorySnapshot) models.Widget {
	return models.Widget{
		Label: "Swap",
		Text: fmt.Sprintf("Total: %s | Used: %s (%.1f%%)",
			FormatBytes(float64(mem.SwapTotalBytes)),
			FormatBytes(float64(mem.SwapUsedBytes)),
			mem.SwapUsedPercent),
		Level: mem.SwapUsedPercent / 100,
		Band:  models.ClassifySeverity(mem.SwapUsedPercent),
	}
}

// BuildDriveWidget renders one drive's widget from its registry entry
func BuildDriveWidget(entry *models.DriveEntry) models.Widget {
	return models.Widget{
		Label: entry.Device,
		Text: fmt.Sprintf("%.1f%% (%s / %s)",
			entry.UsedPercent,
			FormatBytes(float64(entry.UsedBytes)),
			FormatBytes(float64(entry.TotalBytes))),
		Level: entry.UsedPercent / 100,
		Band:  models.ClassifySeverity(entry.UsedPercent),
		Stale: entry.Stale,
	}
}

// BuildPingWidget renders the latency widget. The sentinel shows a distinct
// offline status, never a numeric value.
func BuildPingWidget(latencyMs int64) models.Widget {
	if latencyMs == LatencyUnreachable {
		return models.Widget{
			Label: "Ping",
			Text:  "Ping: Offline",
			Band:  models.SeverityHigh,
		}
	}

	band := models.SeverityLow
	if latencyMs >= PingWarnMillis {
		band = models.SeverityMedium
	}

	return models.Widget{
		Label: "Ping",
		Text:  fmt.Sprintf("Ping: %d ms", latencyMs),
		Band:  band,
	}
}

// BuildDisplayState assembles the full display state for one tick
func BuildDisplayState(
	hostname string,
	cpu *models.CPUSnapshot,
	mem *models.MemorySnapshot,
	drives []*models.DriveEntry,
	rate models.NetworkRate,
	latencyMs int64,
	uptime time.Duration,
	now time.Time,
) models.DisplayState {
	driveWidgets := make([]models.Widget, 0, len(drives))
	for _, entry := range drives {
		driveWidgets = append(driveWidgets, BuildDriveWidget(entry))
	}

	return models.DisplayState{
		Hostname:  hostname,
		Uptime:    FormatUptime(uptime),
		CPU:       BuildCPUWidget(cpu.UsedPercent),
		Clock:     fmt.Sprintf("Clock: %.0f MHz", cpu.FrequencyMHz),
		Cores:     BuildCoreWidgets(cpu.PerCore),
		RAM:       BuildRAMWidget(mem),
		Swap:      BuildSwapWidget(mem),
		Drives:    driveWidgets,
		Download:  FormatRate(rate.DownBytesPerSec),
		Upload:    FormatRate(rate.UpBytesPerSec),
		Ping:      BuildPingWidget(latencyMs),
		Timestamp: now,
	}
}
