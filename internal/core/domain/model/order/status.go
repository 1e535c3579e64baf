package order

import (
	"fmt"

	"fooddelivery/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
// Transition graph:
//
//	Pending ──> Accepted ──> Preparing ──> ReadyForPickup ──> OutForDelivery ──> Delivered
//	   │           │             │                │                  │
//	   └───────────┴─────────────┴────────────────┴──────────────────┴──> Cancelled
//
// Delivered and Cancelled are terminal. Self-loops are not edges.
type Status int

const (
	// Unknown (0) catches uninitialized Status values.
	Unknown Status = iota
	Pending
	Accepted
	Preparing
	ReadyForPickup
	OutForDelivery
	Delivered
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "UNKNOWN",
		Pending:        "PENDING",
		Accepted:       "ACCEPTED",
		Preparing:      "PREPARING",
		ReadyForPickup: "READY_FOR_PICKUP",
		OutForDelivery: "OUT_FOR_DELIVERY",
		Delivered:      "DELIVERED",
		Cancelled:      "CANCELLED",
	}
}

// AllStatuses lists every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{Pending, Accepted, Preparing, ReadyForPickup, OutForDelivery, Delivered, Cancelled}
}

// ParseStatus maps the wire representation ("READY_FOR_PICKUP") to a Status.
func ParseStatus(s string) (Status, error) {
	for _, status := range AllStatuses() {
		if status.String() == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and values outside the enum, e.g. ones read from
// a corrupted row.
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return len(s.next()) == 0
}

// CanTransitionTo reports whether (s, to) is an edge of the graph.
func (s Status) CanTransitionTo(to Status) bool {
	for _, candidate := range s.next() {
		if candidate == to {
			return true
		}
	}
	return false
}

// AllowsRiderAssignment reports whether a rider may be (re)assigned while the
// order is in s.
func (s Status) AllowsRiderAssignment() bool {
	switch s {
	case Accepted, Preparing, ReadyForPickup:
		return true
	case Unknown, Pending, OutForDelivery, Delivered, Cancelled:
		return false
	}
	return false
}

// next is the transition table. The switch is exhaustive so a new status
// cannot be added without deciding its edges.
func (s Status) next() []Status {
	switch s {
	case Pending:
		return []Status{Accepted, Cancelled}
	case Accepted:
		return []Status{Preparing, Cancelled}
	case Preparing:
		return []Status{ReadyForPickup, Cancelled}
	case ReadyForPickup:
		return []Status{OutForDelivery, Cancelled}
	case OutForDelivery:
		return []Status{Delivered, Cancelled}
	case Unknown, Delivered, Cancelled:
		return nil
	}
	return nil
}
