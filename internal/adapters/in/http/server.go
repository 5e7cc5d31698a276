// Package http exposes the engine over a REST surface: order lifecycle
// actions as POSTs under /api/v1/orders, flight publication and search
// under /api/v1/flights, and the order timeline as the audit read model.
package http

import (
	"errors"
	"net/http"
	"time"

	"parcelmate/internal/core/application/facade"
	"parcelmate/internal/core/application/usecases/commands"
	"parcelmate/internal/core/application/usecases/queries"
	"parcelmate/internal/core/domain/model/account"
	"parcelmate/internal/core/domain/model/flight"
	"parcelmate/internal/core/domain/model/kernel"
	"parcelmate/internal/core/domain/model/order"
	"parcelmate/internal/core/domain/services"
	"parcelmate/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and the engine. Writes go
// through the facade; reads go through the query handlers.
type Server struct {
	engine          *facade.Engine
	searchHandler   queries.SearchFlightsQueryHandler
	timelineHandler queries.GetOrderTimelineQueryHandler
}

// NewServer creates an HTTP server over the engine and the read-side
// query handlers.
func NewServer(
	engine *facade.Engine,
	searchHandler queries.SearchFlightsQueryHandler,
	timelineHandler queries.GetOrderTimelineQueryHandler,
) *Server {
	return &Server{
		engine:          engine,
		searchHandler:   searchHandler,
		timelineHandler: timelineHandler,
	}
}

// RegisterRoutes mounts all endpoints on the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/:orderID/accept", s.AcceptOrder)
	api.POST("/orders/:orderID/fund", s.FundEscrow)
	api.POST("/orders/:orderID/depart", s.MarkDeparted)
	api.POST("/orders/:orderID/confirm-delivery", s.ConfirmDelivery)
	api.POST("/orders/:orderID/cancel", s.CancelOrder)
	api.POST("/orders/:orderID/report-problem", s.ReportProblem)
	api.GET("/orders/:orderID/timeline", s.GetOrderTimeline)

	api.POST("/flights", s.PostFlight)
	api.GET("/flights", s.SearchFlights)

	e.GET("/health", s.Health)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req NewOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	customerID, err := kernel.UUIDFromBytes(req.CustomerID[:])
	if err != nil {
		return badRequest(ctx, "invalid customer id")
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), customerID,
		req.FromCity, req.ToCity, req.WeightKg, req.Reward,
	)
	if err != nil {
		return errorResponse(ctx, err)
	}

	created, err := s.engine.CreateOrder(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderResponse(created))
}

// AcceptOrder handles POST /api/v1/orders/{orderID}/accept.
func (s *Server) AcceptOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var req AcceptOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	flightID, err := kernel.UUIDFromBytes(req.FlightID[:])
	if err != nil {
		return badRequest(ctx, "invalid flight id")
	}

	cmd, err := commands.NewAcceptOrderCommand(orderID, flightID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	accepted, err := s.engine.AcceptOrder(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponse(accepted))
}

// FundEscrow handles POST /api/v1/orders/{orderID}/fund.
func (s *Server) FundEscrow(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	cmd, err := commands.NewFundEscrowCommand(orderID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	funded, err := s.engine.FundEscrow(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponse(funded))
}

// MarkDeparted handles POST /api/v1/orders/{orderID}/depart.
func (s *Server) MarkDeparted(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	cmd, err := commands.NewMarkDepartedCommand(orderID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	departed, err := s.engine.MarkDeparted(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponse(departed))
}

// ConfirmDelivery handles POST /api/v1/orders/{orderID}/confirm-delivery.
func (s *Server) ConfirmDelivery(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	by, err := bindActor(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewConfirmDeliveryCommand(orderID, by)
	if err != nil {
		return errorResponse(ctx, err)
	}

	confirmed, err := s.engine.ConfirmDelivery(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponse(confirmed))
}

// CancelOrder handles POST /api/v1/orders/{orderID}/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	by, err := bindActor(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, by)
	if err != nil {
		return errorResponse(ctx, err)
	}

	cancelled, err := s.engine.CancelOrder(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponse(cancelled))
}

// ReportProblem handles POST /api/v1/orders/{orderID}/report-problem.
func (s *Server) ReportProblem(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	by, err := bindActor(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewReportProblemCommand(orderID, by)
	if err != nil {
		return errorResponse(ctx, err)
	}

	disputed, err := s.engine.ReportProblem(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponse(disputed))
}

// GetOrderTimeline handles GET /api/v1/orders/{orderID}/timeline.
func (s *Server) GetOrderTimeline(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	query, err := queries.NewGetOrderTimelineQuery(orderID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	timeline, err := s.timelineHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := TimelineResponse{
		OrderID:     timeline.OrderID.Bytes(),
		Status:      timeline.Status,
		Transitions: make([]TransitionResponse, len(timeline.Transitions)),
	}
	for i, transition := range timeline.Transitions {
		response.Transitions[i] = TransitionResponse{
			At:    transition.At,
			From:  transition.From,
			To:    transition.To,
			Actor: transition.Actor,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// PostFlight handles POST /api/v1/flights.
func (s *Server) PostFlight(ctx echo.Context) error {
	var req NewFlightRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	travelerID, err := kernel.UUIDFromBytes(req.TravelerID[:])
	if err != nil {
		return badRequest(ctx, "invalid traveler id")
	}
	traveler, err := account.NewIdentity(travelerID, account.Traveler)
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewPostFlightCommand(
		kernel.NewUUID(), traveler,
		req.FromCity, req.ToCity,
		req.Departure, req.Arrival,
		req.TotalCapacityKg, req.Rating, req.CompletedDeliveries,
	)
	if err != nil {
		return errorResponse(ctx, err)
	}

	posted, err := s.engine.PostFlight(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, flightResponse(posted))
}

// SearchFlights handles GET /api/v1/flights. Filters come from query
// parameters: from, to, date (YYYY-MM-DD), weightKg and sort (date,
// rating, capacity or experience).
func (s *Server) SearchFlights(ctx echo.Context) error {
	var departureDate *time.Time
	if raw := ctx.QueryParam("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return badRequest(ctx, "invalid date, expected YYYY-MM-DD")
		}
		departureDate = &parsed
	}

	var requiredWeightKg *float64
	if raw := ctx.QueryParam("weightKg"); raw != "" {
		var parsed float64
		if err := echo.QueryParamsBinder(ctx).Float64("weightKg", &parsed).BindError(); err != nil {
			return badRequest(ctx, "invalid weightKg")
		}
		requiredWeightKg = &parsed
	}

	sortKey, err := sortKeyFromParam(ctx.QueryParam("sort"))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	query, err := queries.NewSearchFlightsQuery(
		ctx.QueryParam("from"), ctx.QueryParam("to"),
		departureDate, requiredWeightKg, sortKey,
	)
	if err != nil {
		return errorResponse(ctx, err)
	}

	flights, err := s.searchHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := make([]FlightResponse, len(flights))
	for i, f := range flights {
		response[i] = FlightResponse{
			ID:                  f.ID.Bytes(),
			TravelerID:          f.TravelerID.Bytes(),
			FromCity:            f.FromCity,
			ToCity:              f.ToCity,
			Departure:           f.Departure,
			Arrival:             f.Arrival,
			TotalCapacityKg:     f.TotalCapacityKg,
			AvailableCapacityKg: f.AvailableCapacityKg,
			Rating:              f.Rating,
			CompletedDeliveries: f.CompletedDeliveries,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func bindActor(ctx echo.Context) (account.Identity, error) {
	var req ActorRequest
	if err := ctx.Bind(&req); err != nil {
		return account.Identity{}, errors.New("invalid request body")
	}

	actorID, err := kernel.UUIDFromBytes(req.ActorID[:])
	if err != nil {
		return account.Identity{}, errors.New("invalid actor id")
	}

	var role account.Role
	switch req.Role {
	case "customer":
		role = account.Customer
	case "traveler":
		role = account.Traveler
	default:
		return account.Identity{}, errors.New("invalid role, expected customer or traveler")
	}

	return account.NewIdentity(actorID, role)
}

func sortKeyFromParam(raw string) (services.SortKey, error) {
	switch raw {
	case "", "date":
		return services.SortByDate, nil
	case "rating":
		return services.SortByRating, nil
	case "capacity":
		return services.SortByCapacity, nil
	case "experience":
		return services.SortByExperience, nil
	default:
		return 0, errors.New("invalid sort, expected date, rating, capacity or experience")
	}
}

func orderResponse(o *order.Order) OrderResponse {
	response := OrderResponse{
		ID:          o.ID().Bytes(),
		CustomerID:  o.CustomerID().Bytes(),
		FromCity:    o.Route().FromCity(),
		ToCity:      o.Route().ToCity(),
		WeightKg:    o.Weight().Kg(),
		Reward:      o.Reward().Amount(),
		Commission:  o.Commission().Amount(),
		Total:       o.Total().Amount(),
		Status:      o.Status().String(),
		CreatedAt:   o.CreatedAt(),
		AcceptedAt:  o.AcceptedAt(),
		DeliveredAt: o.DeliveredAt(),
		CompletedAt: o.CompletedAt(),
	}
	if travelerID := o.TravelerID(); travelerID != nil {
		id := travelerID.Bytes()
		response.TravelerID = &id
	}
	if flightID := o.FlightID(); flightID != nil {
		id := flightID.Bytes()
		response.FlightID = &id
	}
	return response
}

func flightResponse(f *flight.Flight) FlightResponse {
	return FlightResponse{
		ID:                  f.ID().Bytes(),
		TravelerID:          f.TravelerID().Bytes(),
		FromCity:            f.Route().FromCity(),
		ToCity:              f.Route().ToCity(),
		Departure:           f.Departure(),
		Arrival:             f.Arrival(),
		TotalCapacityKg:     f.TotalCapacity().Kg(),
		AvailableCapacityKg: f.AvailableCapacity().Kg(),
		Rating:              f.Profile().Rating(),
		CompletedDeliveries: f.Profile().CompletedDeliveries(),
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// errorResponse maps domain errors to HTTP statuses: missing objects to
// 404, validation failures to 400, state and capacity conflicts to 409.
func errorResponse(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	case errors.Is(err, errs.ErrIllegalTransition),
		errors.Is(err, errs.ErrInsufficientCapacity),
		errors.Is(err, errs.ErrDuplicateHold),
		errors.Is(err, errs.ErrInvalidEscrowState),
		errors.Is(err, errs.ErrConcurrencyConflict):
		status = http.StatusConflict
	}

	return ctx.JSON(status, Error{
		Code:    status,
		Message: err.Error(),
	})
}
