package xhs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCount(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"  ", 0},
		{"0", 0},
		{"123", 123},
		{" 456 ", 456},
		{"1.2万", 12000},
		{"10万", 100000},
		{"abc", 0},
		{"万", 0},
		{"-5", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseCount(tt.in), "input %q", tt.in)
	}
}
