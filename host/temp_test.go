package host

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTemporary_Rewind(t *testing.T) {
	assert := assert.New(t)

	temp := &Temporary{
		Capacity:   10,
		ReadIndex:  3,
		WriteIndex: 7,
		Size:       4,
		Data:       []int32{1, 2, 3},
	}

	temp.Rewind()

	assert.Equal(0, temp.ReadIndex)
	assert.Equal(0, temp.WriteIndex)
	assert.Equal(0, temp.Size)
	assert.Len(temp.Data, 10)
}

func TestTemporary_Push_Pop(t *testing.T) {
	assert := assert.New(t)

	temp := &Temporary{Capacity: 8}
	temp.Rewind()

	for _, value := range []int32{1, -2, 3, 4} {
		err := temp.Push(value)
		assert.NoError(err)
	}

	assert.Equal(4, temp.Size)

	var values []int32
	for {
		value, err := temp.Pop()
		if err != nil {
			assert.ErrorIs(err, ErrTempEmpty)
			break
		}
		values = append(values, value)
	}

	assert.Equal([]int32{1, -2, 3, 4}, values)
	assert.Equal(0, temp.Size)
}

func TestTemporary_Push_CapacityFull(t *testing.T) {
	assert := assert.New(t)

	temp := &Temporary{Capacity: 3}
	temp.Rewind()

	assert.NoError(temp.Push(1))
	assert.NoError(temp.Push(2))
	assert.NoError(temp.Push(3))

	// Should be full
	err := temp.Push(4)
	assert.Equal(ErrTempFull, err)
}

func TestTemporary_WrapAround(t *testing.T) {
	assert := assert.New(t)

	temp := &Temporary{Capacity: 4}
	temp.Rewind()

	// Fill up
	for value := range int32(4) {
		assert.NoError(temp.Push(value))
	}

	// Read some
	value, err := temp.Pop()
	assert.NoError(err)
	assert.Equal(int32(0), value)
	value, err = temp.Pop()
	assert.NoError(err)
	assert.Equal(int32(1), value)

	// Now we have space, write more
	assert.NoError(temp.Push(4))
	assert.NoError(temp.Push(5))

	// Should have wrapped around
	assert.Equal(2, temp.WriteIndex)
	assert.Equal(2, temp.ReadIndex)
	assert.Equal(4, temp.Size)

	for expected := range int32(4) {
		value, err = temp.Pop()
		assert.NoError(err)
		assert.Equal(expected+2, value)
	}
}

func TestTemporary_Request(t *testing.T) {
	assert := assert.New(t)

	temp := &Temporary{Capacity: 2}
	temp.Rewind()

	table := [](struct {
		op     int32
		arg    int32
		result int32
		err    error
	}){
		{TEMP_OP_SIZE, 0, 0, nil},
		{TEMP_OP_POP, 0, RESULT_FAIL, ErrTempEmpty},
		{TEMP_OP_PUSH, 10, 0, nil},
		{TEMP_OP_PUSH, -1, 0, nil},
		{TEMP_OP_PUSH, 12, RESULT_FAIL, ErrTempFull},
		{TEMP_OP_SIZE, 0, 2, nil},
		{TEMP_OP_POP, 0, 10, nil},
		{TEMP_OP_POP, 0, -1, nil},
		{TEMP_OP_SIZE, 0, 0, nil},
		{0x33, 0, RESULT_FAIL, ErrOpInvalid},
	}

	for n, entry := range table {
		result, err := temp.Request(entry.op, entry.arg)
		assert.Equal(entry.result, result, n)
		if entry.err == nil {
			assert.NoError(err, n)
		} else {
			assert.ErrorIs(err, entry.err, n)
		}
	}
}
