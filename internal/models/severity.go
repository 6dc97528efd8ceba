package models

// Severity is the band a percentage-valued metric falls into
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Band thresholds: below 50 is low, 50 up to 80 is medium, 80 and above is high
const (
	MediumThreshold = 50.0
	HighThreshold   = 80.0
)

// ClassifySeverity maps a usage percentage to its severity band.
// Inputs outside [0,100] are clamped before classification.
func ClassifySeverity(percent float64) Severity {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	switch {
	case percent < MediumThreshold:
		return SeverityLow
	case percent < HighThreshold:
		return SeverityMedium
	default:
		return SeverityHigh
	}
}
