package actor

import (
	"fmt"

	"fooddelivery/internal/pkg/errs"
)

// Role is the closed set of parties that act on orders.
type Role int

const (
	// UnknownRole catches uninitialized values.
	UnknownRole Role = iota
	Customer
	RestaurantOwner
	Rider
	Admin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		UnknownRole:     "UNKNOWN",
		Customer:        "CUSTOMER",
		RestaurantOwner: "RESTAURANT_OWNER",
		Rider:           "RIDER",
		Admin:           "ADMIN",
	}
}

// ParseRole maps the persisted or token representation back to a Role.
func ParseRole(s string) (Role, error) {
	for role, str := range getRoleStrings() {
		if role != UnknownRole && str == s {
			return role, nil
		}
	}
	return UnknownRole, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
}

func (r Role) Validate() error {
	if r == UnknownRole {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	if _, ok := getRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "UNKNOWN"
}
