package trip

import (
	"time"

	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// TripStatus is the lifecycle state of a distribution trip
type TripStatus string

const (
	TripStatusPending TripStatus = "PENDING"
	TripStatusOngoing TripStatus = "ONGOING"
	TripStatusEnded   TripStatus = "ENDED"
)

// Trip is one distributor run: stock is allocated to it, sales and returns
// are recorded against it, and it is settled after it ends.
type Trip struct {
	shared.BaseEntity
	DistributorName string
	VehicleReg      string
	Route           string
	Status          TripStatus
	StartOdometer   int
	EndOdometer     int
	TotalKm         int
	StartedAt       *time.Time
	EndedAt         *time.Time
	DurationMinutes int
	// ActualCashSubmission is the money the distributor handed in after
	// the trip. Nil until recorded.
	ActualCashSubmission *decimal.Decimal
	Notes                string
}

// NewTrip creates a pending trip
func NewTrip(distributorName, vehicleReg, route string) (*Trip, error) {
	if distributorName == "" {
		return nil, shared.NewDomainError("MISSING_DISTRIBUTOR", "trip requires a distributor name")
	}
	return &Trip{
		BaseEntity:      shared.NewBaseEntity(),
		DistributorName: distributorName,
		VehicleReg:      vehicleReg,
		Route:           route,
		Status:          TripStatusPending,
	}, nil
}

// Start moves the trip to ONGOING and records the starting odometer
func (t *Trip) Start(startOdometer int, at time.Time) error {
	if t.Status != TripStatusPending {
		return shared.ErrInvalidState
	}
	if startOdometer < 0 {
		return shared.NewDomainError("INVALID_ODOMETER", "start odometer cannot be negative")
	}
	t.Status = TripStatusOngoing
	t.StartOdometer = startOdometer
	started := at
	t.StartedAt = &started
	t.UpdatedAt = time.Now()
	return nil
}

// End closes the trip, validating the odometer moved forward, and derives
// the distance covered and the trip duration.
func (t *Trip) End(endOdometer int, at time.Time) error {
	if t.Status != TripStatusOngoing {
		return shared.ErrInvalidState
	}
	if endOdometer <= t.StartOdometer {
		return shared.NewDomainError("INVALID_ODOMETER", "end odometer must exceed start odometer")
	}
	t.Status = TripStatusEnded
	t.EndOdometer = endOdometer
	t.TotalKm = endOdometer - t.StartOdometer
	ended := at
	t.EndedAt = &ended
	if t.StartedAt != nil {
		t.DurationMinutes = int(ended.Sub(*t.StartedAt).Minutes())
	}
	t.UpdatedAt = time.Now()
	return nil
}

// RecordCashSubmission records the money actually handed in. Allowed only
// once the trip has ended.
func (t *Trip) RecordCashSubmission(amount decimal.Decimal) error {
	if t.Status != TripStatusEnded {
		return shared.ErrInvalidState
	}
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "cash submission cannot be negative")
	}
	t.ActualCashSubmission = &amount
	t.UpdatedAt = time.Now()
	return nil
}

// IsActive reports whether sales and returns may still be recorded
func (t *Trip) IsActive() bool {
	return t.Status == TripStatusOngoing
}
