package order

import (
	"fmt"

	"agrimarket/internal/pkg/errs"
)

// Status represents the lifecycle state of an order. Legal transitions depend
// on the order's delivery method and are defined in a single authoritative
// table shared by every caller.
//
// Parcel track:
//
//	Pending ──> Packed ──> Shipped ──> Delivered
//	   └──> Cancelled
//
// Self-pickup track:
//
//	Pending ──> Ready for Pickup ──> Delivered
//	   └──> Cancelled
//
// Delivered and Cancelled are terminal. Orders in a terminal state are kept
// for audit and never deleted.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// The zero value helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPending is the initial status of every order.
	StatusPending

	// StatusPacked indicates a parcel order has been packed by the seller.
	StatusPacked

	// StatusShipped indicates a parcel order has been handed to transport.
	StatusShipped

	// StatusReadyForPickup indicates a self-pickup order awaits collection.
	// Requires a pickup time to have been set first.
	StatusReadyForPickup

	// StatusDelivered is the terminal success state for both tracks.
	StatusDelivered

	// StatusCancelled is the terminal state reached by a buyer cancellation.
	StatusCancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:        "Unknown",
		StatusPending:        "Pending",
		StatusPacked:         "Packed",
		StatusShipped:        "Shipped",
		StatusReadyForPickup: "Ready for Pickup",
		StatusDelivered:      "Delivered",
		StatusCancelled:      "Cancelled",
	}
}

// StatusFromString parses the persisted/display representation of a status.
// Returns an error for unrecognized input.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != StatusUnknown && str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid order status", s))
}

// String returns the human-readable name of the status. It implements
// fmt.Stringer and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Validate checks that the Status is one of the defined states.
func (s Status) Validate() error {
	if s <= StatusUnknown || s > StatusCancelled {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", int(s)))
	}
	return nil
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// transitionTable is the single source of truth for legal status edges per
// delivery method. Buyer/seller permissions are layered on top by the Order
// aggregate; this table only answers reachability.
func transitionTable(method DeliveryMethod) map[Status][]Status {
	switch method {
	case MethodParcel:
		return map[Status][]Status{
			StatusPending: {StatusPacked, StatusCancelled},
			StatusPacked:  {StatusShipped},
			StatusShipped: {StatusDelivered},
		}
	case MethodSelfPickup:
		return map[Status][]Status{
			StatusPending:        {StatusReadyForPickup, StatusCancelled},
			StatusReadyForPickup: {StatusDelivered},
		}
	default:
		return nil
	}
}

// BelongsTo reports whether the status exists on the given delivery method's
// track at all (e.g. Packed never appears on a self-pickup order).
func (s Status) BelongsTo(method DeliveryMethod) bool {
	switch method {
	case MethodParcel:
		return s == StatusPending || s == StatusPacked || s == StatusShipped ||
			s == StatusDelivered || s == StatusCancelled
	case MethodSelfPickup:
		return s == StatusPending || s == StatusReadyForPickup ||
			s == StatusDelivered || s == StatusCancelled
	default:
		return false
	}
}

// CanTransition reports whether `to` is directly reachable from s on the
// given delivery method's track. Transitions never skip states.
func (s Status) CanTransition(method DeliveryMethod, to Status) bool {
	for _, next := range transitionTable(method)[s] {
		if next == to {
			return true
		}
	}
	return false
}

// NextStatuses returns the statuses directly reachable from s for the given
// delivery method. Terminal states return nil.
func (s Status) NextStatuses(method DeliveryMethod) []Status {
	return transitionTable(method)[s]
}
