package model

// Guest is a primary invitee (a participant row).  A guest may bring
// AdditionalGuests companions; together they need AdditionalGuests+1
// capacity units on the seat they are assigned to.
//
// Fields:
//  ID                  – primary key identifier.
//  FirstName, LastName – name used for search.
//  AdditionalGuests    – companions the guest brings.
//  CompanionsCheckedIn – companions already at the venue, in [0, AdditionalGuests].
//  CheckedIn           – whether the guest is at the venue.
//  SeatID              – assigned seat, nil when unassigned.
type Guest struct {
	ID                  int64  `json:"id"`                    // participant.id
	FirstName           string `json:"first_name"`            // participant.first_name
	LastName            string `json:"last_name"`             // participant.last_name
	AdditionalGuests    int    `json:"additional_guests"`     // participant.guests_amount
	CompanionsCheckedIn int    `json:"companions_checked_in"` // participant.guests_checkedin
	CheckedIn           bool   `json:"checked_in"`            // participant.checkedin
	SeatID              *int64 `json:"seat_id"`               // participant.seat_id (nullable)
}

// Party is the number of capacity units the guest occupies.
func (g Guest) Party() int {
	return g.AdditionalGuests + 1
}

// ClampCompanions bounds n to the range a guest's companion check-in
// counter may take.
func (g Guest) ClampCompanions(n int) int {
	if n < 0 {
		return 0
	}
	if n > g.AdditionalGuests {
		return g.AdditionalGuests
	}
	return n
}
