// Package actor models who is acting: a user id paired with one of the
// four workflow roles.
package actor
