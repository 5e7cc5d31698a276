// Package order provides the aggregate root for delivery orders and the
// state machine governing their lifecycle.
//
// The package includes:
//   - Order: the aggregate root owning identity, money amounts, the
//     traveler/flight assignment and lifecycle timestamps
//   - Status: a state machine enforcing the marketplace workflow
//   - Transition: one record of the append-only transition log
//
// Key business rules:
//   - parcel weight is in (0, 10] kg; the reward is at least 500 minor
//     currency units
//   - the platform commission is 25% of the reward, rounded half up,
//     computed once at creation and immutable afterwards
//   - orders move Created -> Searching -> Accepted -> InEscrow ->
//     InTransit -> Delivered -> Completed; cancellation is possible up to
//     and including InEscrow, disputes from InTransit and Delivered
//   - an illegal event never changes state and reports the current state
//     together with the attempted event
package order
