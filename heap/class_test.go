package heap

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassOfBounds(t *testing.T) {
	opt := DefaultOption()

	tests := []struct {
		size int32
		want int
	}{
		{16, 0},
		{512, 0},
		{513, 1},
		{1024, 1},
		{1025, 2},
		{16384, 5},
		{16385, 6},
		{math.MaxInt32, 6},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, classOf(tt.size, opt), "size=%d", tt.size)
	}
}
