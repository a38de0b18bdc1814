package models

import "time"

// Activity log actions recorded by the workflow engine and admin surface.
const (
	ActionRegistrationSubmitted = "REGISTRATION_SUBMITTED"
	ActionRenewalSubmitted      = "RENEWAL_SUBMITTED"
	ActionEventSubmitted        = "EVENT_SUBMITTED"
	ActionRegistrationApproved  = "REGISTRATION_APPROVED"
	ActionRenewalApproved       = "RENEWAL_APPROVED"
	ActionEventApproved         = "EVENT_APPROVED"
	ActionRegistrationRejected  = "REGISTRATION_REJECTED"
	ActionRenewalRejected       = "RENEWAL_REJECTED"
	ActionEventRejected         = "EVENT_REJECTED"
	ActionBulkEmailSent         = "BULK_EMAIL_SENT"
	ActionAdminLogin            = "ADMIN_LOGIN"
	ActionAdminCreated          = "ADMIN_CREATED"
	ActionAdminUpdated          = "ADMIN_UPDATED"
)

// ActivityLog is an append-only audit record of who did what to which target.
type ActivityLog struct {
	ID        string    `db:"id" json:"id"`
	UserName  string    `db:"user_name" json:"user_name"`
	Action    string    `db:"action" json:"action"`
	Target    string    `db:"target" json:"target"`
	Detail    string    `db:"detail" json:"detail"`
	Timestamp time.Time `db:"timestamp" json:"timestamp"`
}

// ActivityLogFilter narrows activity log listings.
type ActivityLogFilter struct {
	UserName string
	Action   string
	Page     int
	PageSize int
}
