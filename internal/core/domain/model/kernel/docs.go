// Package kernel provides the value objects shared by every aggregate of the
// order workflow: UUID identifiers and Money amounts in cents.
package kernel
