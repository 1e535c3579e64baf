// Package guard holds the constructor guard embedded by domain types that must
// not be usable as zero values.
package guard
