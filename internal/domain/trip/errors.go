package trip

import (
	"fmt"
	"strings"

	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/google/uuid"
)

var (
	// ErrTripNotFound is returned when no trip exists for the given id
	ErrTripNotFound = shared.NewDomainError("TRIP_NOT_FOUND", "trip not found")

	// ErrAllocationNotFound is returned when a trip operation references a
	// product that was never allocated to the trip.
	ErrAllocationNotFound = shared.NewDomainError("ALLOCATION_NOT_FOUND", "no allocation for product on this trip")
)

// Shortfall is one product line of an allocation request that the
// warehouse cannot cover.
type Shortfall struct {
	ProductID   uuid.UUID
	ProductName string
	Requested   int
	Available   int
}

// AllocationShortfallError aggregates every product line that failed an
// availability check. The whole allocation is rejected when any line is
// short, so all shortfalls are reported at once.
type AllocationShortfallError struct {
	Shortfalls []Shortfall
}

func (e *AllocationShortfallError) Error() string {
	parts := make([]string, 0, len(e.Shortfalls))
	for _, s := range e.Shortfalls {
		parts = append(parts, fmt.Sprintf("%s (requested %d, available %d)", s.ProductName, s.Requested, s.Available))
	}
	return "insufficient stock for allocation: " + strings.Join(parts, "; ")
}

// Code implements the coded-error contract used by the HTTP layer
func (e *AllocationShortfallError) Code() string {
	return "ALLOCATION_SHORTFALL"
}
