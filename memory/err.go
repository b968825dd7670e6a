package memory

import (
	"errors"

	"github.com/ezrec/bcpu/translate"
)

var f = translate.From

var (
	// Memory errors
	ErrRegionFault = errors.New(f("region fault"))
	ErrRegionLimit = errors.New(f("region limit"))
)

// ErrRegion reports an access to an address outside of the allocated regions.
type ErrRegion struct {
	Address uint32 // Faulting address.
	Regions int    // Regions allocated at the time of the fault.
}

func (err ErrRegion) Error() string {
	return f("address 0x%08x beyond %d regions: %v", err.Address, err.Regions, ErrRegionFault)
}

func (err ErrRegion) Unwrap() error {
	return ErrRegionFault
}
