package models

// User role constants
const (
	RoleAdmin = "admin"
	RoleClerk = "clerk"
	RoleAgent = "agent"
)
