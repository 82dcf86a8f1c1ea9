package model

// SeatOccupation is the derived occupancy of one seat at the instant it
// was computed.  It is never persisted.
type SeatOccupation struct {
	SeatID    int64   `json:"seat_id"`
	Capacity  int     `json:"capacity"`
	Remaining int     `json:"remaining"`
	Occupied  int     `json:"occupied"`
	GuestIDs  []int64 `json:"guest_ids"`
}

// OccupancySnapshot lists seat occupations ordered by seat id.
type OccupancySnapshot []SeatOccupation

// Find returns the occupation of seatID.
func (s OccupancySnapshot) Find(seatID int64) (SeatOccupation, bool) {
	for _, o := range s {
		if o.SeatID == seatID {
			return o, true
		}
	}
	return SeatOccupation{}, false
}
