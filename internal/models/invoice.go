package models

// Invoice status constants
const (
	InvoiceSubmitted = "submitted"
	InvoicePaid      = "paid"
	InvoiceRejected  = "rejected"
)
