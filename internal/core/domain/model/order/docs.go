// Package order contains the Order aggregate, its seven-state lifecycle and
// the append-only history entries produced by every status change.
//
// ValidateTransition is the only place that knows the transition graph; role
// rules live in the domain services package and never in this package.
package order
