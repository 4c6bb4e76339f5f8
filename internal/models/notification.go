package models

// Notification type constants
const (
	NotificationJobAssigned  = "JOB_ASSIGNED"
	NotificationJobCancelled = "JOB_CANCELLED"
	NotificationJobRejected  = "JOB_REJECTED"
	NotificationJobCompleted = "JOB_COMPLETED"
)

// Notification channel constants
const (
	ChannelInApp = "in_app"
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)
