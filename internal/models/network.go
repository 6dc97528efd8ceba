package models

// NetCounters holds cumulative byte totals across all interfaces
type NetCounters struct {
	BytesRecv uint64 `json:"bytes_recv"`
	BytesSent uint64 `json:"bytes_sent"`
}

// NetworkRate holds derived transfer rates in bytes per second
type NetworkRate struct {
	DownBytesPerSec float64 `json:"down_bytes_per_sec"`
	UpBytesPerSec   float64 `json:"up_bytes_per_sec"`
}
