package commands

import (
	"errors"

	"parcelmate/internal/core/domain/model/kernel"
	"parcelmate/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a customer's request to have a parcel
// delivered: the route, the parcel weight and the reward offered, in the
// primitives external collaborators speak.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	customerID kernel.UUID
	route      kernel.Route
	weight     kernel.Weight
	reward     kernel.Money

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new delivery
// order. City names, weight and reward are converted to their value
// objects here; the range rules (weight at most 10 kg, reward at least
// 500) belong to the Order aggregate and surface on Handle.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customerID kernel.UUID,
	fromCity, toCity string,
	weightKg float64,
	reward float64,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
		cmd.setRoute(fromCity, toCity),
		cmd.setWeight(weightKg),
		cmd.setReward(reward),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier the new order will carry.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the customer creating the order.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// Route returns the parcel's itinerary.
func (c CreateOrderCommand) Route() kernel.Route {
	return c.route
}

// Weight returns the parcel weight.
func (c CreateOrderCommand) Weight() kernel.Weight {
	return c.weight
}

// Reward returns the reward offered to the traveler.
func (c CreateOrderCommand) Reward() kernel.Money {
	return c.reward
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setRoute(fromCity, toCity string) error {
	route, err := kernel.NewRoute(fromCity, toCity)
	if err != nil {
		return err
	}
	c.route = route
	return nil
}

func (c *CreateOrderCommand) setWeight(weightKg float64) error {
	weight, err := kernel.NewWeightFromKg(weightKg)
	if err != nil {
		return err
	}
	c.weight = weight
	return nil
}

func (c *CreateOrderCommand) setReward(reward float64) error {
	money, err := kernel.MoneyFromAmount(reward)
	if err != nil {
		return err
	}
	c.reward = money
	return nil
}
