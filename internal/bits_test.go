package internal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBits_Int32(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(int32(-1), Int32(0xffffffff))
	assert.Equal(int32(math.MinInt32), Int32(0x80000000))
	assert.Equal(uint32(0xfffffffe), Word(-2))
	assert.Equal(uint32(0x7fffffff), Word(math.MaxInt32))
}

func TestBits_Float32(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(uint32(0x3f800000), FloatWord(1.0))
	assert.Equal(float32(-2.5), Float32(FloatWord(-2.5)))
	assert.True(math.IsNaN(float64(Float32(0x7fc00000))))
}

func TestBits_Split64(t *testing.T) {
	assert := assert.New(t)

	hi, lo := Split64(0x12345678_9abcdef0)
	assert.Equal(uint32(0x12345678), hi)
	assert.Equal(uint32(0x9abcdef0), lo)
	assert.Equal(uint64(0x12345678_9abcdef0), Join64(hi, lo))

	hi, lo = Split64(uint64(math.Float64bits(1.0)))
	assert.Equal(uint32(0x3ff00000), hi)
	assert.Equal(uint32(0), lo)
}

func TestBits_Float32ToInt32(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		in  float32
		out int32
	}){
		{0, 0},
		{3.0, 3},
		{3.9, 3},
		{-3.9, -3},
		{1e20, math.MaxInt32},
		{-1e20, math.MinInt32},
		{float32(math.Inf(1)), math.MaxInt32},
		{float32(math.Inf(-1)), math.MinInt32},
		{float32(math.NaN()), 0},
		{-2147483648, math.MinInt32},
	}

	for _, entry := range table {
		assert.Equal(entry.out, Float32ToInt32(entry.in), "%v", entry.in)
	}
}
