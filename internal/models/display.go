package models

import "time"

// Widget is one display element: a label, its rendered text, a proportional
// fill level in [0,1] and the severity band driving its color.
type Widget struct {
	Label string   `json:"label"`
	Text  string   `json:"text"`
	Level float64  `json:"level"`
	Band  Severity `json:"band"`
	Stale bool     `json:"stale,omitempty"`
}

// DisplayState is everything the dashboard renders for one tick
type DisplayState struct {
	Hostname  string    `json:"hostname"`
	Uptime    string    `json:"uptime"`
	CPU       Widget    `json:"cpu"`
	Clock     string    `json:"clock"`
	Cores     []Widget  `json:"cores"`
	RAM       Widget    `json:"ram"`
	Swap      Widget    `json:"swap"`
	Drives    []Widget  `json:"drives"`
	Download  string    `json:"download"`
	Upload    string    `json:"upload"`
	Ping      Widget    `json:"ping"`
	Timestamp time.Time `json:"timestamp"`
}

// Snapshot carries the raw derived values behind a DisplayState, served by
// the read-only metrics endpoints.
type Snapshot struct {
	CPU       *CPUSnapshot    `json:"cpu"`
	Memory    *MemorySnapshot `json:"memory"`
	Drives    []DriveEntry    `json:"drives"`
	Network   NetworkRate     `json:"network"`
	Counters  NetCounters     `json:"counters"`
	LatencyMs int64           `json:"latency_ms"`
	Uptime    string          `json:"uptime"`
	Timestamp time.Time       `json:"timestamp"`
}
