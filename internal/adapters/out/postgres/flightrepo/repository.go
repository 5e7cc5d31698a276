package flightrepo

import (
	"context"
	"errors"

	"parcelmate/internal/core/domain/model/flight"
	"parcelmate/internal/core/domain/model/kernel"
	"parcelmate/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormFlightRepository implements FlightRepository using GORM. The
// capacity operations run as single conditional UPDATE statements, so the
// availability check and the increment are one atomic unit: of two
// concurrent reservations racing for the last kilograms, exactly one
// succeeds.
type GormFlightRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormFlightRepository creates a new GORM flight repository.
func NewGormFlightRepository(db *gorm.DB, tracker aggregateTracker) *GormFlightRepository {
	return &GormFlightRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new flight to the database.
func (r *GormFlightRepository) Add(ctx context.Context, aggregate *flight.Flight) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a flight by ID.
func (r *GormFlightRepository) Get(ctx context.Context, id kernel.UUID) (*flight.Flight, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto FlightDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("flight", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAll retrieves every posted flight, ordered by id for determinism.
func (r *GormFlightRepository) GetAll(ctx context.Context) ([]*flight.Flight, error) {
	var dtos []FlightDTO
	if err := r.db.WithContext(ctx).Order("id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	flights := make([]*flight.Flight, 0, len(dtos))
	for _, dto := range dtos {
		f, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}

	return flights, nil
}

// ReserveCapacity increments the reservation if and only if the weight
// still fits, in one UPDATE. Zero affected rows with an existing flight
// mean the capacity ran out; the flight is left untouched.
func (r *GormFlightRepository) ReserveCapacity(
	ctx context.Context,
	id kernel.UUID,
	weight kernel.Weight,
) (*flight.Flight, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := weight.Validate(); err != nil {
		return nil, err
	}

	result := r.db.WithContext(ctx).
		Model(&FlightDTO{}).
		Where("id = ? AND reserved_capacity_g + ? <= total_capacity_g", id.Bytes(), weight.Grams()).
		Update("reserved_capacity_g", gorm.Expr("reserved_capacity_g + ?", weight.Grams()))
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		current, err := r.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		return nil, errs.NewInsufficientCapacityError(
			id.String(), weight.Kg(), current.AvailableCapacity().Kg(),
		)
	}

	reserved, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	r.tracker.TrackAggregate(reserved.ID(), reserved)
	return reserved, nil
}

// ReleaseCapacity decrements the reservation, guarded against releasing
// more than is currently reserved.
func (r *GormFlightRepository) ReleaseCapacity(
	ctx context.Context,
	id kernel.UUID,
	weight kernel.Weight,
) (*flight.Flight, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := weight.Validate(); err != nil {
		return nil, err
	}

	result := r.db.WithContext(ctx).
		Model(&FlightDTO{}).
		Where("id = ? AND reserved_capacity_g >= ?", id.Bytes(), weight.Grams()).
		Update("reserved_capacity_g", gorm.Expr("reserved_capacity_g - ?", weight.Grams()))
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		if _, err := r.Get(ctx, id); err != nil {
			return nil, err
		}
		return nil, errs.NewValueIsInvalidError("release exceeds reserved capacity")
	}

	released, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	r.tracker.TrackAggregate(released.ID(), released)
	return released, nil
}
