// Package services provides domain services that orchestrate business
// operations across multiple domain entities in the marketplace. It
// implements workflows that don't naturally belong to a single aggregate
// root.
//
// The package includes:
//   - CheckoutAssembler: merges a cart and delivery profile into an
//     OrderRequest, with no persistence or side effects
//   - OrderValidator: re-checks every requested line against authoritative
//     product state at commit time and computes the order total
//
// Domain services coordinate between aggregates, keeping the commit-time
// rules in one place shared by every caller.
package services
