package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifySeverity(t *testing.T) {
	tests := []struct {
		name    string
		percent float64
		want    Severity
	}{
		{name: "zero", percent: 0, want: SeverityLow},
		{name: "just below medium", percent: 49.9, want: SeverityLow},
		{name: "medium boundary", percent: 50, want: SeverityMedium},
		{name: "just below high", percent: 79.9, want: SeverityMedium},
		{name: "high boundary", percent: 80, want: SeverityHigh},
		{name: "full", percent: 100, want: SeverityHigh},
		{name: "negative clamps low", percent: -5, want: SeverityLow},
		{name: "above range clamps high", percent: 150, want: SeverityHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifySeverity(tt.percent))
		})
	}
}
