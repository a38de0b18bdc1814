package models

import "time"

// EventPermission is a request to hold a society event. It is the only
// request kind with the extra Premises Officer stage for venue clearance.
type EventPermission struct {
	ID string `db:"id" json:"id"`

	ApplicantName     string `db:"applicant_name" json:"applicant_name"`
	ApplicantRegNo    string `db:"applicant_reg_no" json:"applicant_reg_no"`
	ApplicantEmail    string `db:"applicant_email" json:"applicant_email"`
	ApplicantMobile   string `db:"applicant_mobile" json:"applicant_mobile"`
	ApplicantPosition string `db:"applicant_position" json:"applicant_position"`

	// Derived from the society record, never from user input, so Dean
	// routing cannot be spoofed by the submitter.
	ApplicantFaculty string `db:"applicant_faculty" json:"applicant_faculty"`

	SocietyName string    `db:"society_name" json:"society_name"`
	EventName   string    `db:"event_name" json:"event_name"`
	EventDate   time.Time `db:"event_date" json:"event_date"`
	TimeFrom    *string   `db:"time_from" json:"time_from,omitempty"`
	TimeTo      *string   `db:"time_to" json:"time_to,omitempty"`
	Place       string    `db:"place" json:"place"`

	IsInsideUniversity     *bool  `db:"is_inside_university" json:"is_inside_university,omitempty"`
	LatePassRequired       *bool  `db:"late_pass_required" json:"late_pass_required,omitempty"`
	OutsidersInvited       *bool  `db:"outsiders_invited" json:"outsiders_invited,omitempty"`
	OutsidersList          string `db:"outsiders_list" json:"outsiders_list"`
	FirstYearParticipation *bool  `db:"first_year_participation" json:"first_year_participation,omitempty"`

	BudgetEstimate        string     `db:"budget_estimate" json:"budget_estimate"`
	FundCollectionMethods string     `db:"fund_collection_methods" json:"fund_collection_methods"`
	StudentFeeAmount      string     `db:"student_fee_amount" json:"student_fee_amount"`
	ReceiptNumber         string     `db:"receipt_number" json:"receipt_number"`
	PaymentDate           *time.Time `db:"payment_date" json:"payment_date,omitempty"`

	SeniorTreasurerName       string `db:"senior_treasurer_name" json:"senior_treasurer_name"`
	SeniorTreasurerDepartment string `db:"senior_treasurer_department" json:"senior_treasurer_department"`
	SeniorTreasurerMobile     string `db:"senior_treasurer_mobile" json:"senior_treasurer_mobile"`

	PremisesOfficerName        string `db:"premises_officer_name" json:"premises_officer_name"`
	PremisesOfficerDesignation string `db:"premises_officer_designation" json:"premises_officer_designation"`
	PremisesOfficerDivision    string `db:"premises_officer_division" json:"premises_officer_division"`

	Status          Stage      `db:"status" json:"status"`
	SubmittedDate   time.Time  `db:"submitted_date" json:"submitted_date"`
	ApprovedDate    *time.Time `db:"approved_date" json:"approved_date,omitempty"`
	RejectionReason *string    `db:"rejection_reason" json:"rejection_reason,omitempty"`

	IsDeanApproved     bool `db:"is_dean_approved" json:"is_dean_approved"`
	IsPremisesApproved bool `db:"is_premises_approved" json:"is_premises_approved"`
	IsARApproved       bool `db:"is_ar_approved" json:"is_ar_approved"`
	IsVCApproved       bool `db:"is_vc_approved" json:"is_vc_approved"`

	DeanApprovalDate     *time.Time `db:"dean_approval_date" json:"dean_approval_date,omitempty"`
	PremisesApprovalDate *time.Time `db:"premises_approval_date" json:"premises_approval_date,omitempty"`
	ARApprovalDate       *time.Time `db:"ar_approval_date" json:"ar_approval_date,omitempty"`
	VCApprovalDate       *time.Time `db:"vc_approval_date" json:"vc_approval_date,omitempty"`

	DeanComment     *string `db:"dean_comment" json:"dean_comment,omitempty"`
	PremisesComment *string `db:"premises_comment" json:"premises_comment,omitempty"`
	ARComment       *string `db:"ar_comment" json:"ar_comment,omitempty"`
	VCComment       *string `db:"vc_comment" json:"vc_comment,omitempty"`
}
