package memory

import (
	"fmt"
	"log"
)

// Space is an ordered, growable sequence of regions with flat 32-bit
// addressing across all of them.
type Space struct {
	Verbose bool // Set to enable verbose logging.

	region []*Region
}

// Regions returns the number of allocated regions.
func (sp *Space) Regions() int {
	return len(sp.region)
}

// Size returns the total number of addressable cells.
func (sp *Space) Size() uint64 {
	return uint64(len(sp.region)) * REGION_SIZE
}

// Reset drops all regions.
func (sp *Space) Reset() {
	clear(sp.region)
	sp.region = sp.region[:0]
}

// Grow appends a zeroed region, and returns its index.
func (sp *Space) Grow() (index int) {
	index = len(sp.region)
	sp.region = append(sp.region, &Region{})

	if sp.Verbose {
		log.Printf("memory: grow region %d (base 0x%08x)", index, uint64(index)*REGION_SIZE)
	}

	return
}

// Read returns the value of a cell.
// Cells beyond the allocated regions read as zero.
func (sp *Space) Read(addr uint32) (value uint32) {
	index, offset := Locate(addr)
	if index >= len(sp.region) {
		return
	}

	return sp.region[index].Cell[offset]
}

// Write sets the value of a cell.
// Writing beyond the allocated regions is a region fault.
func (sp *Space) Write(addr uint32, value uint32) (err error) {
	index, offset := Locate(addr)
	if index >= len(sp.region) {
		err = ErrRegion{Address: addr, Regions: len(sp.region)}
		return
	}

	sp.region[index].Cell[offset] = value
	return
}

// Load writes a sequence of words starting at addr.
// On a region fault, the words before the faulting cell remain written.
func (sp *Space) Load(addr uint32, words []uint32) (err error) {
	for n, word := range words {
		err = sp.Write(addr+uint32(n), word)
		if err != nil {
			return
		}
	}

	return
}

// Cell returns a stable pointer to the storage of a cell, or nil if the
// address is not allocated. Hosts use this for zero-copy inspection.
func (sp *Space) Cell(addr uint32) *uint32 {
	index, offset := Locate(addr)
	if index >= len(sp.region) {
		return nil
	}

	return &sp.region[index].Cell[offset]
}

// String returns a summary of the space.
func (sp *Space) String() string {
	return fmt.Sprintf("%d regions, %d cells", sp.Regions(), sp.Size())
}
