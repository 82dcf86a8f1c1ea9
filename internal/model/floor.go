package model

// Floor is one level of the venue.  Its schematic image is the background
// on which seats are drawn.  Levels are unique and define the order in
// which floors are listed and navigated.
//
// Fields:
//  ID    – primary key identifier.
//  Level – unique ordering level.
//  Name  – display name.
//  Image – raw PNG/JPEG bytes; left nil by list queries.
type Floor struct {
	ID    int64  `json:"id"`    // floor.id
	Level int    `json:"level"` // floor.level
	Name  string `json:"name"`  // floor.name
	Image []byte `json:"-"`     // floor.image
}
