package sequence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPadded(t *testing.T) {
	tests := []struct {
		name  string
		value int64
		width int
		want  string
	}{
		{"single digit", 7, 4, "0007"},
		{"full width", 1234, 4, "1234"},
		{"overflows pad", 123456, 4, "123456"},
		{"one", 1, 4, "0001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Padded(tt.value, tt.width))
		})
	}
}
