// Package queue defines message payloads exchanged over the message broker
// and the consumer that records them.
package queue

// SeatAssignedQueue is the durable queue seat assignments are published to.
const SeatAssignedQueue = "seat.assigned"

// SeatAssignedEvent is published when the assignment guard seats a guest.
// It carries enough information for a consumer to log the change or
// notify someone without opening the store.
type SeatAssignedEvent struct {
	Store          string `json:"store"`
	GuestID        int64  `json:"guest_id"`
	GuestName      string `json:"guest_name"`
	PartySize      int    `json:"party_size"`
	SeatID         int64  `json:"seat_id"`
	SeatName       string `json:"seat_name"`
	FloorID        int64  `json:"floor_id"`
	PreviousSeatID *int64 `json:"previous_seat_id,omitempty"`
	Remaining      int    `json:"remaining"`
	AssignedAt     string `json:"assigned_at"`
}
