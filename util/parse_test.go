package util_test

import (
	"testing"

	"github.com/downfa11-org/jetstream-exerciser/util"
)

func TestParseInt(t *testing.T) {
	tests := []struct {
		input    string
		fallback int
		want     int
	}{
		{"123", 0, 123},
		{"0", 99, 0},
		{"-5", 0, -5},
		{"abc", 42, 42},
		{"", 7, 7},
	}

	for _, tt := range tests {
		got := util.ParseInt(tt.input, tt.fallback)
		if got != tt.want {
			t.Errorf("ParseInt(%q, %d) = %d; want %d", tt.input, tt.fallback, got, tt.want)
		}
	}
}

func TestParseBool(t *testing.T) {
	tests := []struct {
		input    string
		fallback bool
		want     bool
	}{
		{"true", false, true},
		{"false", true, false},
		{"1", false, true},
		{"0", true, false},
		{"", true, true},
		{"yes", false, false},
	}

	for _, tt := range tests {
		got := util.ParseBool(tt.input, tt.fallback)
		if got != tt.want {
			t.Errorf("ParseBool(%q, %v) = %v; want %v", tt.input, tt.fallback, got, tt.want)
		}
	}
}

func TestParseUint64(t *testing.T) {
	tests := []struct {
		input    string
		fallback uint64
		want     uint64
	}{
		{"0", 9, 0},
		{"42", 0, 42},
		{"18446744073709551615", 0, 18446744073709551615},
		{"-1", 5, 5},
		{"abc", 5, 5},
		{"", 5, 5},
	}

	for _, tt := range tests {
		got := util.ParseUint64(tt.input, tt.fallback)
		if got != tt.want {
			t.Errorf("ParseUint64(%q, %d) = %d; want %d", tt.input, tt.fallback, got, tt.want)
		}
	}
}
