// Package account models marketplace participants: an Identity value object
// carrying a participant id and its Role (Customer or Traveler).
//
// Identity replaces any notion of a process-wide logged-in user. Every
// operation that depends on who is calling receives an Identity argument,
// and the role is checked explicitly at the two points where it matters:
// posting a flight (travelers only) and confirming delivery (either party
// of the order).
package account
