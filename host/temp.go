package host

import (
	"fmt"
	"iter"
	"maps"
)

const (
	TEMP_OP_PUSH = int32(0) // Queue the argument, -1 when full.
	TEMP_OP_POP  = int32(1) // Dequeue the oldest word, -1 when empty.
	TEMP_OP_SIZE = int32(2) // Number of queued words.

	TEMP_CAPACITY = 4096 // Default capacity, in words.
)

// Temporary implements a circular buffer of words.
// It operates as a FIFO queue with a fixed capacity and separate read/write positions.
type Temporary struct {
	Capacity int // Capacity in words.

	ReadIndex  int
	WriteIndex int
	Size       int
	Data       []int32
}

var _ Handler = (*Temporary)(nil)

// Defines returns an iter of defines for the device.
func (temp *Temporary) Defines() iter.Seq2[string, string] {
	return maps.All(map[string]string{
		"SYS_TEMP_PUSH":     fmt.Sprintf("%#x", DEVICE_TEMP.Code(TEMP_OP_PUSH)),
		"SYS_TEMP_POP":      fmt.Sprintf("%#x", DEVICE_TEMP.Code(TEMP_OP_POP)),
		"SYS_TEMP_SIZE":     fmt.Sprintf("%#x", DEVICE_TEMP.Code(TEMP_OP_SIZE)),
		"SYS_TEMP_CAPACITY": fmt.Sprintf("%d", temp.Capacity),
	})
}

// Rewind resets the temporary storage to empty, resetting indices and
// reinitializing the data buffer.
func (temp *Temporary) Rewind() {
	temp.ReadIndex = 0
	temp.WriteIndex = 0
	temp.Size = 0
	temp.Data = make([]int32, temp.Capacity)
}

// Push writes a word to the buffer at the current write position.
// Returns ErrTempFull if the buffer has reached capacity.
func (temp *Temporary) Push(value int32) (err error) {
	if temp.Size >= temp.Capacity {
		err = ErrTempFull
		return
	}

	temp.Data[temp.WriteIndex] = value

	temp.WriteIndex++
	if temp.WriteIndex == temp.Capacity {
		temp.WriteIndex = 0
	}
	temp.Size++

	return
}

// Pop reads the oldest word from the buffer.
// Returns ErrTempEmpty if there is nothing queued.
func (temp *Temporary) Pop() (value int32, err error) {
	if temp.Size == 0 {
		err = ErrTempEmpty
		return
	}

	value = temp.Data[temp.ReadIndex]
	temp.ReadIndex++
	if temp.ReadIndex == temp.Capacity {
		temp.ReadIndex = 0
	}
	temp.Size--

	return
}

// Request performs a temp operation.
func (temp *Temporary) Request(op int32, arg int32) (result int32, err error) {
	switch op {
	case TEMP_OP_PUSH:
		err = temp.Push(arg)
	case TEMP_OP_POP:
		result, err = temp.Pop()
	case TEMP_OP_SIZE:
		result = int32(temp.Size)
	default:
		err = ErrOpInvalid
	}

	if err != nil {
		result = RESULT_FAIL
	}

	return
}
