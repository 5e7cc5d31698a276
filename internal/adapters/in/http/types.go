package http

import (
	"time"

	"github.com/google/uuid"
)

// Error is the JSON body returned for every failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewOrderRequest is the body of POST /api/v1/orders.
type NewOrderRequest struct {
	CustomerID uuid.UUID `json:"customerId"`
	FromCity   string    `json:"fromCity"`
	ToCity     string    `json:"toCity"`
	WeightKg   float64   `json:"weightKg"`
	Reward     float64   `json:"reward"`
}

// NewFlightRequest is the body of POST /api/v1/flights.
type NewFlightRequest struct {
	TravelerID          uuid.UUID `json:"travelerId"`
	FromCity            string    `json:"fromCity"`
	ToCity              string    `json:"toCity"`
	Departure           time.Time `json:"departure"`
	Arrival             time.Time `json:"arrival"`
	TotalCapacityKg     float64   `json:"totalCapacityKg"`
	Rating              float64   `json:"rating"`
	CompletedDeliveries int       `json:"completedDeliveries"`
}

// AcceptOrderRequest is the body of POST /api/v1/orders/{id}/accept.
type AcceptOrderRequest struct {
	FlightID uuid.UUID `json:"flightId"`
}

// ActorRequest identifies the participant performing an order action.
// Role is "customer" or "traveler".
type ActorRequest struct {
	ActorID uuid.UUID `json:"actorId"`
	Role    string    `json:"role"`
}

// OrderResponse is the representation of an order returned by every
// lifecycle endpoint.
type OrderResponse struct {
	ID          uuid.UUID  `json:"id"`
	CustomerID  uuid.UUID  `json:"customerId"`
	TravelerID  *uuid.UUID `json:"travelerId,omitempty"`
	FlightID    *uuid.UUID `json:"flightId,omitempty"`
	FromCity    string     `json:"fromCity"`
	ToCity      string     `json:"toCity"`
	WeightKg    float64    `json:"weightKg"`
	Reward      int64      `json:"reward"`
	Commission  int64      `json:"commission"`
	Total       int64      `json:"total"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	AcceptedAt  *time.Time `json:"acceptedAt,omitempty"`
	DeliveredAt *time.Time `json:"deliveredAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// FlightResponse is the representation of a capacity offer.
type FlightResponse struct {
	ID                  uuid.UUID `json:"id"`
	TravelerID          uuid.UUID `json:"travelerId"`
	FromCity            string    `json:"fromCity"`
	ToCity              string    `json:"toCity"`
	Departure           time.Time `json:"departure"`
	Arrival             time.Time `json:"arrival"`
	TotalCapacityKg     float64   `json:"totalCapacityKg"`
	AvailableCapacityKg float64   `json:"availableCapacityKg"`
	Rating              float64   `json:"rating"`
	CompletedDeliveries int       `json:"completedDeliveries"`
}

// TransitionResponse is one entry of an order's timeline.
type TransitionResponse struct {
	At    time.Time `json:"at"`
	From  string    `json:"from"`
	To    string    `json:"to"`
	Actor string    `json:"actor"`
}

// TimelineResponse is the body of GET /api/v1/orders/{id}/timeline.
type TimelineResponse struct {
	OrderID     uuid.UUID            `json:"orderId"`
	Status      string               `json:"status"`
	Transitions []TransitionResponse `json:"transitions"`
}
