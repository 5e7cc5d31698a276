// Package escrow provides the ledger aggregate tracking monetary holds and
// settlements per order.
//
// One Entry exists per order at most. Its held amount is written exactly
// once when the escrow is funded and never mutated; the entry then either
// releases (refund to the customer) or settles (payout to the traveler
// with the platform retaining its commission). Repeating either operation
// fails with an invalid-state error instead of moving money twice.
//
// The package knows nothing about flights, capacity or matching.
package escrow
