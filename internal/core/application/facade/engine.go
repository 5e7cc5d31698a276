// Package facade exposes the engine as one composed surface: the order
// lifecycle commands, the matching queries and the settlement sweep behind
// a single type, wired to whichever persistence adapter the caller brings.
package facade

import (
	"context"
	"iter"
	"log/slog"

	"parcelmate/internal/core/application/usecases/commands"
	"parcelmate/internal/core/domain/model/flight"
	"parcelmate/internal/core/domain/model/order"
	"parcelmate/internal/core/domain/services"
	"parcelmate/internal/core/ports"
)

// Engine composes the command handlers and the flight matcher over one
// unit-of-work factory. It is safe for concurrent use: every operation
// runs in its own unit of work.
type Engine struct {
	uowFactory ports.UnitOfWorkFactory
	matcher    services.FlightMatcher
	logger     *slog.Logger

	createOrder     commands.CreateOrderCommandHandler
	postFlight      commands.PostFlightCommandHandler
	acceptOrder     commands.AcceptOrderCommandHandler
	fundEscrow      commands.FundEscrowCommandHandler
	markDeparted    commands.MarkDepartedCommandHandler
	confirmDelivery commands.ConfirmDeliveryCommandHandler
	completeOrder   commands.CompleteOrderCommandHandler
	completeSweep   commands.CompleteDeliveredOrdersCommandHandler
	cancelOrder     commands.CancelOrderCommandHandler
	reportProblem   commands.ReportProblemCommandHandler
}

// NewEngine creates an engine over the given unit-of-work factory.
func NewEngine(uowFactory ports.UnitOfWorkFactory, logger *slog.Logger) *Engine {
	full := uowFactoryAdapter{factory: uowFactory}
	orderOnly := orderUoWFactoryAdapter{factory: uowFactory}
	flightOnly := flightUoWFactoryAdapter{factory: uowFactory}

	return &Engine{
		uowFactory:      uowFactory,
		matcher:         services.NewFlightMatcher(),
		logger:          logger,
		createOrder:     commands.NewCreateOrderCommandHandler(orderOnly),
		postFlight:      commands.NewPostFlightCommandHandler(flightOnly),
		acceptOrder:     commands.NewAcceptOrderCommandHandler(full),
		fundEscrow:      commands.NewFundEscrowCommandHandler(full),
		markDeparted:    commands.NewMarkDepartedCommandHandler(orderOnly),
		confirmDelivery: commands.NewConfirmDeliveryCommandHandler(orderOnly),
		completeOrder:   commands.NewCompleteOrderCommandHandler(full),
		completeSweep:   commands.NewCompleteDeliveredOrdersCommandHandler(full),
		cancelOrder:     commands.NewCancelOrderCommandHandler(full),
		reportProblem:   commands.NewReportProblemCommandHandler(orderOnly),
	}
}

// CreateOrder registers a new delivery order, immediately searching for a
// traveler.
func (e *Engine) CreateOrder(
	ctx context.Context,
	cmd commands.CreateOrderCommand,
) (*order.Order, error) {
	created, err := e.createOrder.Handle(ctx, cmd)
	if err != nil {
		return nil, err
	}

	e.logger.InfoContext(ctx, "order created",
		"order_id", created.ID().String(),
		"status", created.Status().String(),
	)
	return created, nil
}

// PostFlight publishes a traveler's capacity offer.
func (e *Engine) PostFlight(
	ctx context.Context,
	cmd commands.PostFlightCommand,
) (*flight.Flight, error) {
	posted, err := e.postFlight.Handle(ctx, cmd)
	if err != nil {
		return nil, err
	}

	e.logger.InfoContext(ctx, "flight posted",
		"flight_id", posted.ID().String(),
		"capacity_kg", posted.TotalCapacity().Kg(),
	)
	return posted, nil
}

// SearchFlights returns a lazy, restartable sequence of the flights
// matching the criteria. The flight set and its availability are
// re-fetched on every traversal; a fetch failure surfaces as the
// sequence's final (nil, err) pair.
func (e *Engine) SearchFlights(
	ctx context.Context,
	criteria services.Criteria,
) iter.Seq2[*flight.Flight, error] {
	return func(yield func(*flight.Flight, error) bool) {
		flights, err := e.fetchFlights(ctx)
		if err != nil {
			yield(nil, err)
			return
		}

		for f := range e.matcher.Match(flights, criteria) {
			if !yield(f, nil) {
				return
			}
		}
	}
}

// AcceptOrder reserves the parcel weight on the flight and assigns the
// order to the flight's traveler.
func (e *Engine) AcceptOrder(
	ctx context.Context,
	cmd commands.AcceptOrderCommand,
) (*order.Order, error) {
	accepted, err := e.acceptOrder.Handle(ctx, cmd)
	if err != nil {
		return nil, err
	}

	e.logger.InfoContext(ctx, "order accepted",
		"order_id", accepted.ID().String(),
		"flight_id", accepted.FlightID().String(),
	)
	return accepted, nil
}

// FundEscrow holds the order total in the ledger and moves the order to
// InEscrow.
func (e *Engine) FundEscrow(
	ctx context.Context,
	cmd commands.FundEscrowCommand,
) (*order.Order, error) {
	funded, err := e.fundEscrow.Handle(ctx, cmd)
	if err != nil {
		return nil, err
	}

	e.logger.InfoContext(ctx, "escrow funded",
		"order_id", funded.ID().String(),
		"held_amount", funded.Total().Amount(),
	)
	return funded, nil
}

// MarkDeparted moves a funded order to InTransit.
func (e *Engine) MarkDeparted(
	ctx context.Context,
	cmd commands.MarkDepartedCommand,
) (*order.Order, error) {
	return e.markDeparted.Handle(ctx, cmd)
}

// ConfirmDelivery records the delivery confirmation and then settles the
// order. The two run as separate units of work: the confirmation is never
// lost to a settlement failure. When settlement cannot complete, the
// Delivered snapshot is returned and the periodic sweep retries later.
func (e *Engine) ConfirmDelivery(
	ctx context.Context,
	cmd commands.ConfirmDeliveryCommand,
) (*order.Order, error) {
	delivered, err := e.confirmDelivery.Handle(ctx, cmd)
	if err != nil {
		return nil, err
	}

	completeCmd, err := commands.NewCompleteOrderCommand(delivered.ID())
	if err != nil {
		return nil, err
	}

	completed, err := e.completeOrder.Handle(ctx, completeCmd)
	if err != nil {
		e.logger.WarnContext(ctx, "settlement deferred",
			"order_id", delivered.ID().String(),
			"error", err,
		)
		return delivered, nil
	}

	e.logger.InfoContext(ctx, "order settled",
		"order_id", completed.ID().String(),
	)
	return completed, nil
}

// CompleteDeliveredOrders settles every order stuck in Delivered. Meant
// for periodic execution.
func (e *Engine) CompleteDeliveredOrders(ctx context.Context) error {
	return e.completeSweep.Handle(ctx, commands.NewCompleteDeliveredOrdersCommand())
}

// CancelOrder cancels a pre-transit order, refunding any held escrow and
// releasing any reserved capacity.
func (e *Engine) CancelOrder(
	ctx context.Context,
	cmd commands.CancelOrderCommand,
) (*order.Order, error) {
	cancelled, err := e.cancelOrder.Handle(ctx, cmd)
	if err != nil {
		return nil, err
	}

	e.logger.InfoContext(ctx, "order cancelled",
		"order_id", cancelled.ID().String(),
	)
	return cancelled, nil
}

// ReportProblem moves an in-flight or delivered order into Disputed,
// freezing its escrow until resolution.
func (e *Engine) ReportProblem(
	ctx context.Context,
	cmd commands.ReportProblemCommand,
) (*order.Order, error) {
	disputed, err := e.reportProblem.Handle(ctx, cmd)
	if err != nil {
		return nil, err
	}

	e.logger.WarnContext(ctx, "order disputed",
		"order_id", disputed.ID().String(),
	)
	return disputed, nil
}

// fetchFlights reads the current flight set in a short-lived unit of work.
func (e *Engine) fetchFlights(ctx context.Context) ([]*flight.Flight, error) {
	uow := e.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	flights, err := uow.FlightRepository().GetAll(ctx)
	if rollbackErr := uow.Rollback(ctx); rollbackErr != nil && err == nil {
		err = rollbackErr
	}
	if err != nil {
		return nil, err
	}

	return flights, nil
}

// The command handlers ask for the narrowest unit-of-work composition they
// need; ports.UnitOfWork satisfies all of them, so the adapters only
// narrow the factory's return type.

type uowFactoryAdapter struct {
	factory ports.UnitOfWorkFactory
}

func (a uowFactoryAdapter) Create() commands.UoW {
	return a.factory.Create()
}

type orderUoWFactoryAdapter struct {
	factory ports.UnitOfWorkFactory
}

func (a orderUoWFactoryAdapter) Create() commands.OrderUoW {
	return a.factory.Create()
}

type flightUoWFactoryAdapter struct {
	factory ports.UnitOfWorkFactory
}

func (a flightUoWFactoryAdapter) Create() commands.FlightUoW {
	return a.factory.Create()
}
