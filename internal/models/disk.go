package models

import "time"

// DriveUsage represents usage of one mounted partition as observed this tick
type DriveUsage struct {
	Device      string  `json:"device"`
	Mountpoint  string  `json:"mountpoint"`
	TotalBytes  uint64  `json:"total_bytes"`
	UsedBytes   uint64  `json:"used_bytes"`
	UsedPercent float64 `json:"used_percent"`
}

// DriveEntry is the registry record for a drive, keyed by device identifier.
// Created the first time a device is observed, updated in place afterwards,
// never removed (a drive that stops appearing is marked stale instead).
type DriveEntry struct {
	DriveUsage
	FirstSeen time.Time `json:"first_seen"`
	LastSeen  time.Time `json:"last_seen"`
	Stale     bool      `json:"stale,omitempty"`
}
