package entity

// Role is an enumerated authorization role stored on the user record.
// New users always start as RoleUser; the lifecycle service never
// changes a role after creation.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)
