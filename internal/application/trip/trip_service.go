package trip

import (
	"context"
	"fmt"
	"time"

	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/fieldsales/backend/internal/domain/trip"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TripService manages the trip lifecycle
type TripService struct {
	tripRepo trip.TripRepository
}

// NewTripService creates a new TripService
func NewTripService(tripRepo trip.TripRepository) *TripService {
	return &TripService{tripRepo: tripRepo}
}

// Create registers a pending trip
func (s *TripService) Create(ctx context.Context, distributorName, vehicleReg, route string) (*trip.Trip, error) {
	t, err := trip.NewTrip(distributorName, vehicleReg, route)
	if err != nil {
		return nil, err
	}
	if err := s.tripRepo.Save(ctx, t); err != nil {
		return nil, fmt.Errorf("save trip: %w", err)
	}
	return t, nil
}

// Start moves a pending trip to ONGOING
func (s *TripService) Start(ctx context.Context, tripID uuid.UUID, startOdometer int) (*trip.Trip, error) {
	t, err := s.tripRepo.FindByID(ctx, tripID)
	if err != nil {
		return nil, trip.ErrTripNotFound
	}
	if err := t.Start(startOdometer, time.Now()); err != nil {
		return nil, err
	}
	if err := s.tripRepo.Save(ctx, t); err != nil {
		return nil, fmt.Errorf("save trip: %w", err)
	}
	return t, nil
}

// End closes an ongoing trip, deriving distance and duration
func (s *TripService) End(ctx context.Context, tripID uuid.UUID, endOdometer int) (*trip.Trip, error) {
	t, err := s.tripRepo.FindByID(ctx, tripID)
	if err != nil {
		return nil, trip.ErrTripNotFound
	}
	if err := t.End(endOdometer, time.Now()); err != nil {
		return nil, err
	}
	if err := s.tripRepo.Save(ctx, t); err != nil {
		return nil, fmt.Errorf("save trip: %w", err)
	}
	return t, nil
}

// RecordCashSubmission records the money the distributor handed in
func (s *TripService) RecordCashSubmission(ctx context.Context, tripID uuid.UUID, amount decimal.Decimal) (*trip.Trip, error) {
	t, err := s.tripRepo.FindByID(ctx, tripID)
	if err != nil {
		return nil, trip.ErrTripNotFound
	}
	if err := t.RecordCashSubmission(amount); err != nil {
		return nil, err
	}
	if err := s.tripRepo.Save(ctx, t); err != nil {
		return nil, fmt.Errorf("save trip: %w", err)
	}
	return t, nil
}

// Get returns a trip by id
func (s *TripService) Get(ctx context.Context, tripID uuid.UUID) (*trip.Trip, error) {
	t, err := s.tripRepo.FindByID(ctx, tripID)
	if err != nil {
		return nil, trip.ErrTripNotFound
	}
	return t, nil
}

// List returns trips matching the filter
func (s *TripService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[*trip.Trip], error) {
	return s.tripRepo.FindAll(ctx, filter)
}
