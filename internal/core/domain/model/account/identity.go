package account

import (
	"errors"
	"fmt"
	"strings"

	"parcelmate/internal/core/domain/model/kernel"
	"parcelmate/internal/pkg/guard"
)

// ErrIdentityIsNotConstructed indicates an Identity was not created through
// NewIdentity.
var ErrIdentityIsNotConstructed = errors.New("Identity must be created via NewIdentity constructor")

// Identity is the caller-supplied identity attached to every operation that
// needs to know who is acting. There is no ambient logged-in user anywhere
// in the engine; collaborators pass an Identity in explicitly.
type Identity struct {
	id   kernel.UUID
	role Role

	guard guard.ConstructorGuard
}

// NewIdentity creates an Identity from a participant id and role.
func NewIdentity(id kernel.UUID, role Role) (Identity, error) {
	identity := Identity{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(identity.setID(id), identity.setRole(role)); err != nil {
		return Identity{}, err
	}

	return identity, nil
}

// ID returns the participant's unique identifier.
func (i Identity) ID() kernel.UUID {
	return i.id
}

// Role returns the participant's role.
func (i Identity) Role() Role {
	return i.role
}

// IsCustomer reports whether the identity belongs to a customer.
func (i Identity) IsCustomer() bool {
	return i.role == Customer
}

// IsTraveler reports whether the identity belongs to a traveler.
func (i Identity) IsTraveler() bool {
	return i.role == Traveler
}

// String renders the identity as "role id" for transition logs and messages.
func (i Identity) String() string {
	return fmt.Sprintf("%s %s", strings.ToLower(i.role.String()), i.id)
}

// Validate ensures the identity was created via the constructor.
func (i Identity) Validate() error {
	return i.guard.Validate(ErrIdentityIsNotConstructed)
}

func (i *Identity) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	i.id = id
	return nil
}

func (i *Identity) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}

	i.role = role
	return nil
}
