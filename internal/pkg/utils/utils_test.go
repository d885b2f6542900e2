//go:build unit

package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		want     string
	}{
		{name: "hours_and_minutes", duration: 2*time.Hour + 5*time.Minute, want: "2h 5m"},
		{name: "whole_hours", duration: 11 * time.Hour, want: "11h"},
		{name: "minutes_only", duration: 45 * time.Minute, want: "45m"},
		{name: "zero", duration: 0, want: "0h"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDuration(tt.duration))
		})
	}
}

func TestFormatWon(t *testing.T) {
	tests := []struct {
		name   string
		amount int64
		want   string
	}{
		{name: "zero", amount: 0, want: "₩0"},
		{name: "hundreds", amount: 500, want: "₩500"},
		{name: "thousands", amount: 185000, want: "₩185,000"},
		{name: "millions", amount: 1250000, want: "₩1,250,000"},
		{name: "negative", amount: -95000, want: "₩-95,000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatWon(tt.amount))
		})
	}
}
