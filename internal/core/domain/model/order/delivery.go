package order

import (
	"errors"
	"fmt"
	"regexp"

	"agrimarket/internal/pkg/errs"
	"agrimarket/internal/pkg/guard"
)

// ParcelDeliveryFee is the flat fee added to the order total when the
// delivery method is parcel. Self-pickup carries no fee.
const ParcelDeliveryFee = 40.0

// DeliveryMethod selects the fulfillment track of an order.
type DeliveryMethod int

const (
	// MethodUnknown represents an invalid or undefined delivery method.
	MethodUnknown DeliveryMethod = iota

	// MethodSelfPickup means the buyer collects the goods from the seller.
	MethodSelfPickup

	// MethodParcel means the goods are shipped for a flat delivery fee.
	MethodParcel
)

// DeliveryMethodFromString parses the wire representation of a delivery
// method ("self_pickup" or "parcel").
func DeliveryMethodFromString(s string) (DeliveryMethod, error) {
	switch s {
	case "self_pickup":
		return MethodSelfPickup, nil
	case "parcel":
		return MethodParcel, nil
	default:
		return MethodUnknown, errs.NewValueIsInvalidErrorWithCause("delivery_method",
			fmt.Errorf("%q is not a valid delivery method", s))
	}
}

// String returns the wire representation of the delivery method.
func (m DeliveryMethod) String() string {
	switch m {
	case MethodSelfPickup:
		return "self_pickup"
	case MethodParcel:
		return "parcel"
	default:
		return "unknown"
	}
}

// Validate checks that the method is one of the defined values.
func (m DeliveryMethod) Validate() error {
	if m != MethodSelfPickup && m != MethodParcel {
		return errs.NewValueIsInvalidErrorWithCause("delivery_method",
			fmt.Errorf("%d is not a valid delivery method", int(m)))
	}
	return nil
}

// Fee returns the delivery fee charged for the method.
func (m DeliveryMethod) Fee() float64 {
	if m == MethodParcel {
		return ParcelDeliveryFee
	}
	return 0
}

// PaymentMethod selects how the buyer pays for the order. Payment capture
// itself happens in an external collaborator; only the choice is recorded.
type PaymentMethod int

const (
	// PaymentUnknown represents an invalid or undefined payment method.
	PaymentUnknown PaymentMethod = iota

	// PaymentUPI is an online UPI payment.
	PaymentUPI

	// PaymentOnDelivery is cash/collect on delivery.
	PaymentOnDelivery
)

// PaymentMethodFromString parses the wire representation of a payment method
// ("upi" or "pay_on_delivery").
func PaymentMethodFromString(s string) (PaymentMethod, error) {
	switch s {
	case "upi":
		return PaymentUPI, nil
	case "pay_on_delivery":
		return PaymentOnDelivery, nil
	default:
		return PaymentUnknown, errs.NewValueIsInvalidErrorWithCause("payment_method",
			fmt.Errorf("%q is not a valid payment method", s))
	}
}

// String returns the wire representation of the payment method.
func (p PaymentMethod) String() string {
	switch p {
	case PaymentUPI:
		return "upi"
	case PaymentOnDelivery:
		return "pay_on_delivery"
	default:
		return "unknown"
	}
}

// Validate checks that the payment method is one of the defined values.
func (p PaymentMethod) Validate() error {
	if p != PaymentUPI && p != PaymentOnDelivery {
		return errs.NewValueIsInvalidErrorWithCause("payment_method",
			fmt.Errorf("%d is not a valid payment method", int(p)))
	}
	return nil
}

// ErrDeliveryProfileIsNotConstructed is returned when a DeliveryProfile was
// not created through NewDeliveryProfile.
var ErrDeliveryProfileIsNotConstructed = errors.New("DeliveryProfile must be created via NewDeliveryProfile constructor")

// Field bounds for the delivery profile.
const (
	MaxFullNameLength = 100
	MaxAddressLength  = 200
	MaxCityLength     = 50
	MaxStateLength    = 50
)

var (
	phonePattern   = regexp.MustCompile(`^\d{10}$`)
	pinCodePattern = regexp.MustCompile(`^\d{6}$`)
)

// DeliveryProfile is the validated destination/contact information copied
// onto an order at creation. It is a value object: immutable once built.
type DeliveryProfile struct {
	fullName    string
	phoneNumber string
	address     string
	city        string
	state       string
	pinCode     string

	guard guard.ConstructorGuard
}

// NewDeliveryProfile validates every field and returns either a profile or a
// joined error naming each malformed or missing field, so a caller can
// surface all form problems at once rather than one per round trip.
func NewDeliveryProfile(fullName, phoneNumber, address, city, state, pinCode string) (DeliveryProfile, error) {
	if err := errors.Join(
		validateRequiredBounded("full_name", fullName, MaxFullNameLength),
		validatePhoneNumber(phoneNumber),
		validateRequiredBounded("address", address, MaxAddressLength),
		validateRequiredBounded("city", city, MaxCityLength),
		validateRequiredBounded("state", state, MaxStateLength),
		validatePinCode(pinCode),
	); err != nil {
		return DeliveryProfile{}, err
	}

	return DeliveryProfile{
		fullName:    fullName,
		phoneNumber: phoneNumber,
		address:     address,
		city:        city,
		state:       state,
		pinCode:     pinCode,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the profile was built through NewDeliveryProfile.
func (p DeliveryProfile) Validate() error {
	return p.guard.Validate(ErrDeliveryProfileIsNotConstructed)
}

// FullName returns the recipient's full name.
func (p DeliveryProfile) FullName() string {
	return p.fullName
}

// PhoneNumber returns the recipient's 10-digit phone number.
func (p DeliveryProfile) PhoneNumber() string {
	return p.phoneNumber
}

// Address returns the street address.
func (p DeliveryProfile) Address() string {
	return p.address
}

// City returns the city.
func (p DeliveryProfile) City() string {
	return p.city
}

// State returns the state.
func (p DeliveryProfile) State() string {
	return p.state
}

// PinCode returns the 6-digit postal code.
func (p DeliveryProfile) PinCode() string {
	return p.pinCode
}

func validateRequiredBounded(field, value string, maxLen int) error {
	if value == "" {
		return errs.NewValueIsRequiredError(field)
	}
	if len(value) > maxLen {
		return errs.NewValueIsOutOfRangeError(field, len(value), 1, maxLen)
	}
	return nil
}

func validatePhoneNumber(phone string) error {
	if phone == "" {
		return errs.NewValueIsRequiredError("phone_number")
	}
	if !phonePattern.MatchString(phone) {
		return errs.NewValueIsInvalidErrorWithCause("phone_number",
			errors.New("must be exactly 10 digits"))
	}
	return nil
}

func validatePinCode(pin string) error {
	if pin == "" {
		return errs.NewValueIsRequiredError("pin_code")
	}
	if !pinCodePattern.MatchString(pin) {
		return errs.NewValueIsInvalidErrorWithCause("pin_code",
			errors.New("must be exactly 6 digits"))
	}
	return nil
}
