// Package flight provides the aggregate for traveler capacity offers.
//
// A Flight couples a booked itinerary with the traveler's declared spare
// luggage capacity (up to 20 kg) and a reputation snapshot used for
// ranking. The central invariant is reservedCapacity <= totalCapacity at
// all times; Reserve enforces it in memory, and persistence adapters make
// the check-and-increment atomic per flight so concurrent acceptances
// cannot over-commit the same luggage space.
package flight
