package memory

const (
	REGION_SIZE  = 2048                   // Cells per region.
	REGION_LIMIT = (1 << 32) / REGION_SIZE // Regions covering the 32-bit address space.
)

// Region is a fixed capacity block of storage cells.
type Region struct {
	Cell [REGION_SIZE]uint32
}

// Locate splits an address into its region index and cell offset.
func Locate(addr uint32) (index int, offset int) {
	index = int(addr / REGION_SIZE)
	offset = int(addr % REGION_SIZE)
	return
}
