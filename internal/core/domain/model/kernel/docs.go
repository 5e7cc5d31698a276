// Package kernel contains the shared value objects of the domain model:
// UUID identifiers, city-to-city routes, monetary amounts in minor currency
// units, and luggage weights backed by integral grams.
//
// All types in this package are immutable value objects. They are created
// through factory functions that validate their invariants, and the zero
// value of each type fails Validate, so aggregates can rely on a validated
// kernel value never appearing out of thin air.
package kernel
