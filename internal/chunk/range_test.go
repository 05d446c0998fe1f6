package chunk

import (
	"errors"
	"math"
	"testing"

	"github.com/aryankumar/chunkflow/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRange(t *testing.T) {
	tests := []struct {
		name             string
		begin, end, step int
		wantLen          int
		wantErr          bool
	}{
		{name: "unit step", begin: 0, end: 100, step: 1, wantLen: 100},
		{name: "step divides evenly", begin: 0, end: 100, step: 4, wantLen: 25},
		{name: "step with remainder", begin: 0, end: 10, step: 3, wantLen: 4},
		{name: "offset begin", begin: 5, end: 8, step: 1, wantLen: 3},
		{name: "negative step", begin: 10, end: 0, step: -2, wantLen: 5},
		{name: "negative step with remainder", begin: 10, end: 0, step: -3, wantLen: 4},
		{name: "empty", begin: 7, end: 7, step: 1, wantLen: 0},
		{name: "empty negative step", begin: 7, end: 7, step: -1, wantLen: 0},
		{name: "zero step", begin: 0, end: 10, step: 0, wantErr: true},
		{name: "negative step upward", begin: 0, end: 10, step: -1, wantErr: true},
		{name: "positive step downward", begin: 10, end: 0, step: 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRange(tt.begin, tt.end, tt.step)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, util.ErrInvalidRange))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLen, r.Len())
		})
	}
}

func TestRange_At(t *testing.T) {
	r, err := NewRange(10, 0, -3)
	require.NoError(t, err)

	var got []int
	for p := 0; p < r.Len(); p++ {
		got = append(got, r.At(p))
	}
	assert.Equal(t, []int{10, 7, 4, 1}, got)
}

func TestRange_Unsigned(t *testing.T) {
	r, err := NewRange[uint8](250, 255, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, r.Len())
	assert.Equal(t, uint8(254), r.At(2))

	_, err = NewRange[uint](10, 0, 1)
	assert.ErrorIs(t, err, util.ErrInvalidRange)
}

func TestRange_NarrowTypes(t *testing.T) {
	t.Run("int8 spanning zero", func(t *testing.T) {
		r, err := NewRange[int8](-100, 100, 1)
		require.NoError(t, err)
		assert.Equal(t, 200, r.Len())
		assert.Equal(t, int8(-100), r.At(0))
		assert.Equal(t, int8(99), r.At(199))
	})

	t.Run("int16 with remainder", func(t *testing.T) {
		r, err := NewRange[int16](-30000, 30000, 7)
		require.NoError(t, err)
		assert.Equal(t, 8572, r.Len())
		assert.Equal(t, int16(29997), r.At(8571))
	})

	t.Run("int8 full width downward", func(t *testing.T) {
		r, err := NewRange[int8](127, -128, -1)
		require.NoError(t, err)
		assert.Equal(t, 255, r.Len())
		assert.Equal(t, int8(-127), r.At(254))
	})

	t.Run("int8 minimum step", func(t *testing.T) {
		r, err := NewRange[int8](127, -128, -128)
		require.NoError(t, err)
		assert.Equal(t, 2, r.Len())
		assert.Equal(t, int8(-1), r.At(1))
	})

	t.Run("uint8 full width", func(t *testing.T) {
		r, err := NewRange[uint8](0, 255, 1)
		require.NoError(t, err)
		assert.Equal(t, 255, r.Len())
	})
}

func TestRange_TooLong(t *testing.T) {
	_, err := NewRange[uint64](0, math.MaxUint64, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, util.ErrInvalidRange)

	r := Range[uint64]{Begin: 0, End: math.MaxUint64, Step: 1}
	assert.Equal(t, 0, r.Len())

	r, err = NewRange[uint64](0, math.MaxUint64, math.MaxUint64/4)
	require.NoError(t, err)
	assert.Equal(t, 5, r.Len())
}

func TestChunk_Len(t *testing.T) {
	c := Chunk{Start: 3, Stop: 9}
	assert.Equal(t, 6, c.Len())
	assert.Equal(t, "[3, 9)", c.String())
}
