package Go_Indexed

import "fmt"

// CapacityExceededError is the panic value raised when an index would have to grow beyond MaxCapacity slots.
// The index that raised it is left in its pre-resize state and must not be used any further.
type CapacityExceededError struct {
	Requested int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("capacity exceeded: %d slots requested, at most %d allowed", e.Requested, MaxCapacity)
}
