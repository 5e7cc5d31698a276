// Package services provides domain services that operate across multiple
// domain entities of the marketplace. It implements business logic that
// doesn't naturally belong to a single aggregate root.
//
// The package includes:
//   - FlightMatcher: a stateless query service that filters and ranks
//     traveler capacity offers against search criteria
//
// Domain services own no state; callers pass in the aggregates to operate
// on, which keeps the services trivially concurrent and testable.
package services
