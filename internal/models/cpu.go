package models

// CPUSnapshot represents CPU readings from a single tick
type CPUSnapshot struct {
	UsedPercent  float64   `json:"used_percent"`
	PerCore      []float64 `json:"per_core,omitempty"`
	CoreCount    int       `json:"core_count"`
	FrequencyMHz float64   `json:"frequency_mhz"`
}
