package model

// Session roles.  Editors change the plan; ushers work the door and may
// only read the plan and check guests in.
const (
	RoleEditor = "EDITOR"
	RoleUsher  = "USHER"
)
