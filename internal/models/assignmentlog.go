package models

// Assignment log action types, one per kind of recorded transition.
const (
	ActionAutoAssign     = "AUTO_ASSIGN"
	ActionManualOverride = "MANUAL_OVERRIDE"
	ActionRejection      = "REJECTION"
	ActionLifecycle      = "LIFECYCLE"
	ActionCancellation   = "CANCELLATION"
)
