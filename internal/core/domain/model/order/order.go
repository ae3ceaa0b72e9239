package order

import (
	"errors"
	"fmt"
	"math"
	"time"

	"agrimarket/internal/core/domain/model/kernel"
	"agrimarket/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderHasNoLines is returned when an order would be created without
	// any line items.
	ErrOrderHasNoLines = errors.New("order must contain at least one line item")

	// ErrForbidden is returned when the actor lacks permission for the
	// requested mutation. Distinct from transition errors so callers can tell
	// "not allowed" from "not currently possible".
	ErrForbidden = errors.New("actor is not permitted to perform this operation")

	// ErrInvalidTransition is the sentinel wrapped by InvalidTransitionError.
	ErrInvalidTransition = errors.New("status transition is not allowed")

	// ErrMissingPickupTime is returned when a self-pickup order is moved to
	// Ready for Pickup before a pickup time has been stored.
	ErrMissingPickupTime = errors.New("pickup time must be set before the order can be ready for pickup")

	// ErrDetailImmutable is returned when a delivery detail write is not
	// legal for the order's delivery method or current status.
	ErrDetailImmutable = errors.New("delivery detail cannot be set in the order's current state")
)

// MaxTrackingLinkLength bounds the tracking link stored on parcel orders.
const MaxTrackingLinkLength = 500

// InvalidTransitionError reports an edge that does not exist in the
// fulfillment table for the order's delivery method. Unwraps to
// ErrInvalidTransition.
type InvalidTransitionError struct {
	Method DeliveryMethod
	From   Status
	To     Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s order cannot move from %s to %s",
		ErrInvalidTransition, e.Method, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// Order is the aggregate root of the fulfillment domain: a committed purchase
// with an immutable line-item snapshot and a status that only moves along the
// transition table for its delivery method.
//
// Invariants:
//   - total price equals the sum of line subtotals plus the delivery fee
//   - at least one line item; lines never change after creation
//   - status edges follow the per-method table and never skip states
//   - pickup time is stored before the order may become Ready for Pickup
//   - only the owning buyer cancels, and only while Pending
//   - terminal orders (Delivered, Cancelled) are retained, never deleted
type Order struct {
	id             kernel.UUID
	buyerID        kernel.UUID
	lines          []Line
	profile        DeliveryProfile
	deliveryMethod DeliveryMethod
	paymentMethod  PaymentMethod
	status         Status
	pickupTime     *time.Time
	trackingLink   string
	totalPrice     float64
	createdAt      time.Time

	isConstructed bool
}

// NewOrder creates a new order in Pending status. The total price is computed
// here (line subtotals plus the method's delivery fee, rounded to two
// decimals) so a caller can never persist an inconsistent total.
func NewOrder(
	id kernel.UUID,
	buyerID kernel.UUID,
	lines []Line,
	profile DeliveryProfile,
	deliveryMethod DeliveryMethod,
	paymentMethod PaymentMethod,
) (*Order, error) {
	o := &Order{
		status:        StatusPending,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setBuyerID(buyerID),
		o.setLines(lines),
		o.setProfile(profile),
		o.setDeliveryMethod(deliveryMethod),
		o.setPaymentMethod(paymentMethod),
	); err != nil {
		return nil, err
	}

	o.totalPrice = roundMoney(o.linesSubtotal() + deliveryMethod.Fee())
	return o, nil
}

// RestoreOrder reconstructs an order from persistence. All stored attributes,
// including status, total and timestamps, are taken as-is after validation.
func RestoreOrder(
	id kernel.UUID,
	buyerID kernel.UUID,
	lines []Line,
	profile DeliveryProfile,
	deliveryMethod DeliveryMethod,
	paymentMethod PaymentMethod,
	status Status,
	pickupTime *time.Time,
	trackingLink string,
	totalPrice float64,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setBuyerID(buyerID),
		o.setLines(lines),
		o.setProfile(profile),
		o.setDeliveryMethod(deliveryMethod),
		o.setPaymentMethod(paymentMethod),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if !status.BelongsTo(deliveryMethod) {
		return nil, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status for a %s order", status, deliveryMethod))
	}

	o.status = status
	o.pickupTime = pickupTime
	o.trackingLink = trackingLink
	o.totalPrice = totalPrice
	o.createdAt = createdAt
	return o, nil
}

// Validate ensures the Order was created through a constructor. Called when
// reconstructing orders from persistence and before writes.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// BuyerID returns the owning buyer's identifier.
func (o *Order) BuyerID() kernel.UUID {
	return o.buyerID
}

// Lines returns a copy of the order's line items.
func (o *Order) Lines() []Line {
	lines := make([]Line, len(o.lines))
	copy(lines, o.lines)
	return lines
}

// DeliveryProfile returns the delivery profile copied at creation.
func (o *Order) DeliveryProfile() DeliveryProfile {
	return o.profile
}

// DeliveryMethod returns the order's fulfillment track.
func (o *Order) DeliveryMethod() DeliveryMethod {
	return o.deliveryMethod
}

// PaymentMethod returns the recorded payment choice.
func (o *Order) PaymentMethod() PaymentMethod {
	return o.paymentMethod
}

// Status returns the current lifecycle state.
func (o *Order) Status() Status {
	return o.status
}

// PickupTime returns the stored pickup time, or nil when unset.
func (o *Order) PickupTime() *time.Time {
	return o.pickupTime
}

// TrackingLink returns the stored tracking link, or "" when unset.
func (o *Order) TrackingLink() string {
	return o.trackingLink
}

// TotalPrice returns the committed order total.
func (o *Order) TotalPrice() float64 {
	return o.totalPrice
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// IsOwnedBy reports whether the given buyer placed this order.
func (o *Order) IsOwnedBy(buyerID kernel.UUID) bool {
	return o.buyerID.IsEqual(buyerID)
}

// HasSeller reports whether the given seller owns at least one line.
func (o *Order) HasSeller(sellerID kernel.UUID) bool {
	for _, line := range o.lines {
		if line.SellerID().IsEqual(sellerID) {
			return true
		}
	}
	return false
}

// LinesOfSeller returns the subset of lines belonging to the given seller.
func (o *Order) LinesOfSeller(sellerID kernel.UUID) []Line {
	var lines []Line
	for _, line := range o.lines {
		if line.SellerID().IsEqual(sellerID) {
			lines = append(lines, line)
		}
	}
	return lines
}

// TransitionTo requests a status change on behalf of an actor.
//
// Rules, in order:
//   - the target must be a status of the order's delivery method track
//   - the actor must be involved in the order: the owning buyer or a seller
//     with lines in it; anyone else is ErrForbidden, even when the request
//     would otherwise be a no-op
//   - requesting the current status again is a no-op success (safe retry)
//   - only the owning buyer may request Cancelled; only a seller may request
//     a forward edge
//   - the edge must exist in the transition table, else InvalidTransitionError
//   - Ready for Pickup additionally requires a stored pickup time
//
// Authorization failures are reported before state failures so a caller can
// distinguish "not allowed" from "not currently possible", and so an
// outsider cannot learn an order's status by retrying candidate values.
func (o *Order) TransitionTo(actor Actor, to Status) error {
	if err := to.Validate(); err != nil {
		return err
	}
	if !to.BelongsTo(o.deliveryMethod) {
		return &InvalidTransitionError{Method: o.deliveryMethod, From: o.status, To: to}
	}

	switch actor.Role() {
	case RoleBuyer:
		if !o.IsOwnedBy(actor.ID()) {
			return fmt.Errorf("%w: buyer %s does not own order %s", ErrForbidden, actor.ID(), o.id)
		}
	case RoleSeller:
		if !o.HasSeller(actor.ID()) {
			return fmt.Errorf("%w: seller %s has no lines in order %s", ErrForbidden, actor.ID(), o.id)
		}
	default:
		return fmt.Errorf("%w: unknown actor role", ErrForbidden)
	}

	if to == o.status {
		return nil
	}

	if actor.Role() == RoleBuyer && to != StatusCancelled {
		return fmt.Errorf("%w: buyers may only cancel orders", ErrForbidden)
	}
	if actor.Role() == RoleSeller && to == StatusCancelled {
		return fmt.Errorf("%w: only the owning buyer may cancel an order", ErrForbidden)
	}

	if !o.status.CanTransition(o.deliveryMethod, to) {
		return &InvalidTransitionError{Method: o.deliveryMethod, From: o.status, To: to}
	}
	if to == StatusReadyForPickup && o.pickupTime == nil {
		return ErrMissingPickupTime
	}

	o.status = to
	return nil
}

// SetPickupTime stores the pickup time for a self-pickup order. Legal only
// for a seller with lines in the order, and only while the order is Pending;
// afterwards the detail is immutable.
func (o *Order) SetPickupTime(actor Actor, pickupTime time.Time) error {
	if actor.Role() != RoleSeller || !o.HasSeller(actor.ID()) {
		return fmt.Errorf("%w: only a seller with lines in the order may set the pickup time", ErrForbidden)
	}
	if o.deliveryMethod != MethodSelfPickup {
		return fmt.Errorf("%w: pickup time only applies to self-pickup orders", ErrDetailImmutable)
	}
	if o.status != StatusPending {
		return fmt.Errorf("%w: pickup time can only be set while the order is Pending", ErrDetailImmutable)
	}
	if pickupTime.IsZero() {
		return errs.NewValueIsRequiredError("pickup_time")
	}

	t := pickupTime.UTC()
	o.pickupTime = &t
	return nil
}

// SetTrackingLink stores the tracking link for a parcel order. Legal only for
// a seller with lines in the order. Recommended, but not required, before the
// order is Shipped.
func (o *Order) SetTrackingLink(actor Actor, link string) error {
	if actor.Role() != RoleSeller || !o.HasSeller(actor.ID()) {
		return fmt.Errorf("%w: only a seller with lines in the order may set the tracking link", ErrForbidden)
	}
	if o.deliveryMethod != MethodParcel {
		return fmt.Errorf("%w: tracking link only applies to parcel orders", ErrDetailImmutable)
	}
	if link == "" {
		return errs.NewValueIsRequiredError("tracking_link")
	}
	if len(link) > MaxTrackingLinkLength {
		return errs.NewValueIsOutOfRangeError("tracking_link", len(link), 1, MaxTrackingLinkLength)
	}

	o.trackingLink = link
	return nil
}

func (o *Order) linesSubtotal() float64 {
	var sum float64
	for _, line := range o.lines {
		sum += line.Subtotal()
	}
	return sum
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setBuyerID(buyerID kernel.UUID) error {
	if err := buyerID.Validate(); err != nil {
		return err
	}
	o.buyerID = buyerID
	return nil
}

func (o *Order) setLines(lines []Line) error {
	if len(lines) == 0 {
		return ErrOrderHasNoLines
	}
	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return err
		}
	}
	o.lines = make([]Line, len(lines))
	copy(o.lines, lines)
	return nil
}

func (o *Order) setProfile(profile DeliveryProfile) error {
	if err := profile.Validate(); err != nil {
		return err
	}
	o.profile = profile
	return nil
}

func (o *Order) setDeliveryMethod(method DeliveryMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	o.deliveryMethod = method
	return nil
}

func (o *Order) setPaymentMethod(method PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	o.paymentMethod = method
	return nil
}

// roundMoney rounds to two decimal places, the monetary precision of the
// single implicit currency.
func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
