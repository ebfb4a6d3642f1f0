package assistant

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExtractSource(t *testing.T) {
	tests := []struct {
		query  string
		source string
		ok     bool
	}{
		{"Show projects from Nadeem & sons", "Nadeem & sons", true},
		{"projects brought by Ali Khan", "Ali Khan", true},
		{"projects by acme", "acme", true},
		{"Show projects from Nadeem & sons?", "Nadeem & sons", true},
		{"show all projects", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			source, ok := ExtractSource(tt.query)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.source, source)
		})
	}
}

func TestExtractThreshold(t *testing.T) {
	tests := []struct {
		query     string
		threshold int64
		ok        bool
	}{
		{"investments above 100000", 100000, true},
		{"investments greater than 50,000", 50000, true},
		{"investments above 1,000,000 this year", 1000000, true},
		{"investments above", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			threshold, ok := ExtractThreshold(tt.query)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.threshold, threshold)
		})
	}
}

func TestExtractMonth(t *testing.T) {
	tests := []struct {
		query string
		month time.Month
		name  string
		ok    bool
	}{
		{"how much rent in july", time.July, "july", true},
		{"rent paid in December", time.December, "December", true},
		{"rent in March and April", time.March, "March", true},
		{"rent expenses", 0, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			month, name, ok := ExtractMonth(tt.query)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.month, month)
			assert.Equal(t, tt.name, name)
		})
	}
}
