package models

import (
	"time"

	"github.com/fieldsales/backend/internal/domain/trip"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TripModel is the persistence model for distribution trips
type TripModel struct {
	BaseModel
	DistributorName      string `gorm:"not null;index"`
	VehicleReg           string
	Route                string
	Status               string `gorm:"not null;index"`
	StartOdometer        int    `gorm:"not null;default:0"`
	EndOdometer          int    `gorm:"not null;default:0"`
	TotalKm              int    `gorm:"not null;default:0"`
	StartedAt            *time.Time
	EndedAt              *time.Time
	DurationMinutes      int              `gorm:"not null;default:0"`
	ActualCashSubmission *decimal.Decimal `gorm:"type:decimal(18,4)"`
	Notes                string
}

// TableName returns the table name for GORM
func (TripModel) TableName() string {
	return "trips"
}

// ToDomain converts the persistence model to a domain Trip
func (m *TripModel) ToDomain() *trip.Trip {
	return &trip.Trip{
		BaseEntity:           m.BaseModel.ToDomain(),
		DistributorName:      m.DistributorName,
		VehicleReg:           m.VehicleReg,
		Route:                m.Route,
		Status:               trip.TripStatus(m.Status),
		StartOdometer:        m.StartOdometer,
		EndOdometer:          m.EndOdometer,
		TotalKm:              m.TotalKm,
		StartedAt:            m.StartedAt,
		EndedAt:              m.EndedAt,
		DurationMinutes:      m.DurationMinutes,
		ActualCashSubmission: m.ActualCashSubmission,
		Notes:                m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Trip
func (m *TripModel) FromDomain(t *trip.Trip) {
	m.BaseModel.FromDomain(t.BaseEntity)
	m.DistributorName = t.DistributorName
	m.VehicleReg = t.VehicleReg
	m.Route = t.Route
	m.Status = string(t.Status)
	m.StartOdometer = t.StartOdometer
	m.EndOdometer = t.EndOdometer
	m.TotalKm = t.TotalKm
	m.StartedAt = t.StartedAt
	m.EndedAt = t.EndedAt
	m.DurationMinutes = t.DurationMinutes
	m.ActualCashSubmission = t.ActualCashSubmission
	m.Notes = t.Notes
}

// AllocationModel is the persistence model for trip stock allocations
type AllocationModel struct {
	BaseModel
	TripID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Snapshot         SnapshotColumns `gorm:"embedded"`
	Quantity         int             `gorm:"not null"`
	SourceExpiryDate time.Time       `gorm:"not null"`
	AllocatedBy      string
	AllocatedAt      time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (AllocationModel) TableName() string {
	return "trip_allocations"
}

// ToDomain converts the persistence model to a domain Allocation
func (m *AllocationModel) ToDomain() *trip.Allocation {
	return &trip.Allocation{
		BaseEntity:       m.BaseModel.ToDomain(),
		TripID:           m.TripID,
		ProductID:        m.ProductID,
		Product:          m.Snapshot.ToSnapshot(m.ProductID),
		Quantity:         m.Quantity,
		SourceExpiryDate: m.SourceExpiryDate.UTC(),
		AllocatedBy:      m.AllocatedBy,
		AllocatedAt:      m.AllocatedAt,
	}
}

// FromDomain populates the persistence model from a domain Allocation
func (m *AllocationModel) FromDomain(a *trip.Allocation) {
	m.BaseModel.FromDomain(a.BaseEntity)
	m.TripID = a.TripID
	m.ProductID = a.ProductID
	m.Snapshot = SnapshotColumnsFromDomain(a.Product)
	m.Quantity = a.Quantity
	m.SourceExpiryDate = a.SourceExpiryDate
	m.AllocatedBy = a.AllocatedBy
	m.AllocatedAt = a.AllocatedAt
}
