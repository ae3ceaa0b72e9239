// Package kernel contains shared value objects used across the domain model.
// It currently holds the UUID identity type used by every aggregate. Types in
// this package are immutable, validated at construction, and carry no
// behavior beyond their own invariants.
package kernel
