// Package models holds the shared enum constants for fieldops entities:
// roles, statuses, action types, notification types and channels. Entity
// read models live in ports/secondary as the repository Record types.
package models

// Job priority constants
const (
	PriorityLow       = "low"
	PriorityNormal    = "normal"
	PriorityHigh      = "high"
	PriorityEmergency = "emergency"
)

// Job type constants
const (
	JobTypeInspection = "inspection"
	JobTypeInventory  = "inventory"
	JobTypeCheckIn    = "check_in"
	JobTypeCheckOut   = "check_out"
)
