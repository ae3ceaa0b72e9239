package order

import (
	"fmt"

	"agrimarket/internal/core/domain/model/kernel"
	"agrimarket/internal/pkg/errs"
)

// Role classifies the actor requesting a mutation. Authorization for
// transitions is role-based: buyers may only cancel their own orders,
// sellers may only move their orders forward.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleBuyer is the customer who placed the order.
	RoleBuyer

	// RoleSeller is a seller with at least one line in the order.
	RoleSeller
)

// RoleFromString parses the wire representation of a role.
func RoleFromString(s string) (Role, error) {
	switch s {
	case "buyer":
		return RoleBuyer, nil
	case "seller":
		return RoleSeller, nil
	default:
		return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%q is not a valid role", s))
	}
}

// String returns the wire representation of the role.
func (r Role) String() string {
	switch r {
	case RoleBuyer:
		return "buyer"
	case RoleSeller:
		return "seller"
	default:
		return "unknown"
	}
}

// Validate checks that the role is one of the defined values.
func (r Role) Validate() error {
	if r != RoleBuyer && r != RoleSeller {
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%d is not a valid role", int(r)))
	}
	return nil
}

// Actor is the resolved identity behind a mutation request: the id and role
// produced by the session service for an opaque token.
type Actor struct {
	id   kernel.UUID
	role Role
}

// NewActor creates a validated actor.
func NewActor(id kernel.UUID, role Role) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}
	return Actor{id: id, role: role}, nil
}

// Validate checks that the actor carries a valid identity and role.
func (a Actor) Validate() error {
	if err := a.id.Validate(); err != nil {
		return err
	}
	return a.role.Validate()
}

// ID returns the actor's identifier.
func (a Actor) ID() kernel.UUID {
	return a.id
}

// Role returns the actor's role.
func (a Actor) Role() Role {
	return a.role
}
