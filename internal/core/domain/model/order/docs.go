// Package order contains the fulfillment aggregate: the Order root with its
// immutable line-item snapshot, the per-delivery-method status state machine,
// delivery profile and actor value objects, and the status-changed event.
//
// All mutation goes through the aggregate's methods; there is exactly one
// transition table and it lives in this package.
package order
