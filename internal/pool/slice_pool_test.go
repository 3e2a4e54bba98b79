package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetInt32Slice(t *testing.T) {
	tests := []struct {
		name string
		size int
		fill int32
	}{
		{"empty", 0, -1},
		{"small filled", 16, -1},
		{"zero filled", 100, 0},
		{"large", 1 << 15, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, cleanup := GetInt32Slice(tt.size, tt.fill)
			defer cleanup()

			require.Len(t, s, tt.size)
			for _, v := range s {
				require.Equal(t, tt.fill, v)
			}
		})
	}
}

func TestGetInt32Slice_ReuseIsRefilled(t *testing.T) {
	s, cleanup := GetInt32Slice(32, 0)
	for i := range s {
		s[i] = int32(i)
	}
	cleanup()

	again, cleanup2 := GetInt32Slice(16, -1)
	defer cleanup2()
	for _, v := range again {
		require.Equal(t, int32(-1), v)
	}
}
