package escrowrepo

import (
	"context"
	"errors"

	"parcelmate/internal/core/domain/model/escrow"
	"parcelmate/internal/core/domain/model/kernel"
	"parcelmate/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormEscrowRepository implements EscrowRepository using GORM. The primary
// key on the order id makes a second hold for the same order fail at the
// storage layer, and state changes are conditional on the entry still
// being Held.
type GormEscrowRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormEscrowRepository creates a new GORM escrow repository.
func NewGormEscrowRepository(db *gorm.DB, tracker aggregateTracker) *GormEscrowRepository {
	return &GormEscrowRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new escrow entry. A conflicting existing hold is detected
// via the primary key rather than a prior read, so two concurrent funding
// attempts cannot both land.
func (r *GormEscrowRepository) Add(ctx context.Context, aggregate *escrow.Entry) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewDuplicateHoldError(aggregate.OrderID().String())
	}

	r.tracker.TrackAggregate(aggregate.OrderID(), aggregate)
	return nil
}

// Get retrieves the escrow entry for an order.
func (r *GormEscrowRepository) Get(ctx context.Context, orderID kernel.UUID) (*escrow.Entry, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto EscrowEntryDTO
	err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("escrow entry", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Update persists a state change, conditional on the stored entry still
// being Held. Held is the only state money moves out of, so zero affected
// rows mean a concurrent settlement or refund won the race.
func (r *GormEscrowRepository) Update(ctx context.Context, aggregate *escrow.Entry) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&EscrowEntryDTO{}).
		Where("order_id = ? AND state = ?", dto.OrderID, int(escrow.Held)).
		Update("state", dto.State)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewConcurrencyConflictError("escrow entry", aggregate.OrderID().String())
	}

	r.tracker.TrackAggregate(aggregate.OrderID(), aggregate)
	return nil
}
