package models

import "time"

// Stage is one step in a request's approval sequence.
type Stage string

const (
	StagePendingDean     Stage = "PENDING_DEAN"
	StagePendingPremises Stage = "PENDING_PREMISES"
	StagePendingAR       Stage = "PENDING_AR"
	StagePendingVC       Stage = "PENDING_VC"
	StageApproved        Stage = "APPROVED"
	StageRejected        Stage = "REJECTED"
)

// Terminal reports whether no further transition is permitted.
func (s Stage) Terminal() bool {
	return s == StageApproved || s == StageRejected
}

// RequestKind identifies the three approval request flavours.
type RequestKind string

const (
	KindRegistration RequestKind = "registration"
	KindRenewal      RequestKind = "renewal"
	KindEvent        RequestKind = "event"
)

// PendingItem is a flattened view of any request awaiting action, used by the
// per-role approval inboxes and the monitoring view.
type PendingItem struct {
	ID            string      `json:"id"`
	Kind          RequestKind `json:"type"`
	SocietyName   string      `json:"society_name"`
	EventName     string      `json:"event_name,omitempty"`
	ApplicantName string      `json:"applicant_name"`
	Faculty       string      `json:"faculty,omitempty"`
	SubmittedDate time.Time   `json:"submitted_date"`
	Status        Stage       `json:"status"`
}
