package notification

import (
	"fmt"

	"fooddelivery/internal/pkg/errs"
)

// Type is the closed set of notification kinds.
type Type int

const (
	UnknownType Type = iota
	OrderCreated
	OrderAccepted
	OrderPrepared
	RiderAssigned
	OrderPickedUp
	OrderDelivered
	OrderCancelled
)

func getTypeStrings() map[Type]string {
	return map[Type]string{
		UnknownType:    "unknown",
		OrderCreated:   "order_created",
		OrderAccepted:  "order_accepted",
		OrderPrepared:  "order_prepared",
		RiderAssigned:  "rider_assigned",
		OrderPickedUp:  "order_picked_up",
		OrderDelivered: "order_delivered",
		OrderCancelled: "order_cancelled",
	}
}

func ParseType(s string) (Type, error) {
	for t, str := range getTypeStrings() {
		if t != UnknownType && str == s {
			return t, nil
		}
	}
	return UnknownType, errs.NewValueIsInvalidErrorWithCause("notification type", fmt.Errorf("%q is not a valid type", s))
}

func (t Type) Validate() error {
	if t <= UnknownType || t > OrderCancelled {
		return errs.NewValueIsInvalidErrorWithCause("notification type", fmt.Errorf("%d is not a valid type", t))
	}
	return nil
}

func (t Type) String() string {
	if str, ok := getTypeStrings()[t]; ok {
		return str
	}
	return "unknown"
}
