package model

import "math"

// Bounds is an axis-aligned rectangle in image pixel space.  The column
// names lat/lng are kept from the map widget that draws the seats; they
// are plain 2D coordinates here.
type Bounds struct {
	Lat1 float64 `json:"lat1"`
	Lng1 float64 `json:"lng1"`
	Lat2 float64 `json:"lat2"`
	Lng2 float64 `json:"lng2"`
}

// Area returns the rectangle's area regardless of corner order.
func (b Bounds) Area() float64 {
	return math.Abs((b.Lat2 - b.Lat1) * (b.Lng2 - b.Lng1))
}

// Seat is a capacity-bounded region on a floor that guests are assigned to.
//
// Fields:
//  ID       – primary key identifier.
//  Name     – display name; defaults to the next free numeric id.
//  Capacity – total capacity units (one per person).
//  FloorID  – owning floor.
//  Bounds   – rectangle on the floor image.
type Seat struct {
	ID       int64  `json:"id"`       // seat.id
	Name     string `json:"name"`     // seat.name
	Capacity int    `json:"capacity"` // seat.capacity
	FloorID  int64  `json:"floor_id"` // seat.floor_id
	Bounds
}
