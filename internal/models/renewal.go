package models

import "time"

// SocietyRenewal is a yearly renewal application for an existing society.
// Officer fields are pointers: a nil slot means "keep the society's current
// value" when the renewal is materialized on final approval.
type SocietyRenewal struct {
	ID string `db:"id" json:"id"`

	ApplicantFullName string `db:"applicant_full_name" json:"applicant_full_name"`
	ApplicantRegNo    string `db:"applicant_reg_no" json:"applicant_reg_no"`
	ApplicantEmail    string `db:"applicant_email" json:"applicant_email"`
	ApplicantFaculty  string `db:"applicant_faculty" json:"applicant_faculty"`
	ApplicantMobile   string `db:"applicant_mobile" json:"applicant_mobile"`

	SocietyName  string     `db:"society_name" json:"society_name"`
	RenewalYear  int        `db:"renewal_year" json:"renewal_year"`
	AgmDate      *time.Time `db:"agm_date" json:"agm_date,omitempty"`
	Website      *string    `db:"website" json:"website,omitempty"`
	BankAccount  *string    `db:"bank_account" json:"bank_account,omitempty"`
	BankName     *string    `db:"bank_name" json:"bank_name,omitempty"`
	Difficulties string     `db:"difficulties" json:"difficulties"`

	SeniorTreasurerTitle       *string `db:"senior_treasurer_title" json:"senior_treasurer_title,omitempty"`
	SeniorTreasurerFullName    *string `db:"senior_treasurer_full_name" json:"senior_treasurer_full_name,omitempty"`
	SeniorTreasurerDesignation *string `db:"senior_treasurer_designation" json:"senior_treasurer_designation,omitempty"`
	SeniorTreasurerDepartment  *string `db:"senior_treasurer_department" json:"senior_treasurer_department,omitempty"`
	SeniorTreasurerEmail       *string `db:"senior_treasurer_email" json:"senior_treasurer_email,omitempty"`
	SeniorTreasurerMobile      *string `db:"senior_treasurer_mobile" json:"senior_treasurer_mobile,omitempty"`

	PresidentName   *string `db:"president_name" json:"president_name,omitempty"`
	PresidentRegNo  *string `db:"president_reg_no" json:"president_reg_no,omitempty"`
	PresidentEmail  *string `db:"president_email" json:"president_email,omitempty"`
	PresidentMobile *string `db:"president_mobile" json:"president_mobile,omitempty"`

	VicePresidentName   *string `db:"vice_president_name" json:"vice_president_name,omitempty"`
	VicePresidentRegNo  *string `db:"vice_president_reg_no" json:"vice_president_reg_no,omitempty"`
	VicePresidentEmail  *string `db:"vice_president_email" json:"vice_president_email,omitempty"`
	VicePresidentMobile *string `db:"vice_president_mobile" json:"vice_president_mobile,omitempty"`

	SecretaryName   *string `db:"secretary_name" json:"secretary_name,omitempty"`
	SecretaryRegNo  *string `db:"secretary_reg_no" json:"secretary_reg_no,omitempty"`
	SecretaryEmail  *string `db:"secretary_email" json:"secretary_email,omitempty"`
	SecretaryMobile *string `db:"secretary_mobile" json:"secretary_mobile,omitempty"`

	JointSecretaryName   *string `db:"joint_secretary_name" json:"joint_secretary_name,omitempty"`
	JointSecretaryRegNo  *string `db:"joint_secretary_reg_no" json:"joint_secretary_reg_no,omitempty"`
	JointSecretaryEmail  *string `db:"joint_secretary_email" json:"joint_secretary_email,omitempty"`
	JointSecretaryMobile *string `db:"joint_secretary_mobile" json:"joint_secretary_mobile,omitempty"`

	TreasurerName   *string `db:"treasurer_name" json:"treasurer_name,omitempty"`
	TreasurerRegNo  *string `db:"treasurer_reg_no" json:"treasurer_reg_no,omitempty"`
	TreasurerEmail  *string `db:"treasurer_email" json:"treasurer_email,omitempty"`
	TreasurerMobile *string `db:"treasurer_mobile" json:"treasurer_mobile,omitempty"`

	EditorName   *string `db:"editor_name" json:"editor_name,omitempty"`
	EditorRegNo  *string `db:"editor_reg_no" json:"editor_reg_no,omitempty"`
	EditorEmail  *string `db:"editor_email" json:"editor_email,omitempty"`
	EditorMobile *string `db:"editor_mobile" json:"editor_mobile,omitempty"`

	Status          Stage      `db:"status" json:"status"`
	SubmittedDate   time.Time  `db:"submitted_date" json:"submitted_date"`
	ApprovedDate    *time.Time `db:"approved_date" json:"approved_date,omitempty"`
	RejectionReason *string    `db:"rejection_reason" json:"rejection_reason,omitempty"`

	IsDeanApproved   bool       `db:"is_dean_approved" json:"is_dean_approved"`
	IsARApproved     bool       `db:"is_ar_approved" json:"is_ar_approved"`
	IsVCApproved     bool       `db:"is_vc_approved" json:"is_vc_approved"`
	DeanApprovalDate *time.Time `db:"dean_approval_date" json:"dean_approval_date,omitempty"`
	ARApprovalDate   *time.Time `db:"ar_approval_date" json:"ar_approval_date,omitempty"`
	VCApprovalDate   *time.Time `db:"vc_approval_date" json:"vc_approval_date,omitempty"`
	DeanComment      *string    `db:"dean_comment" json:"dean_comment,omitempty"`
	ARComment        *string    `db:"ar_comment" json:"ar_comment,omitempty"`
	VCComment        *string    `db:"vc_comment" json:"vc_comment,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// RenewalStatistics summarises renewal volume for dashboards.
type RenewalStatistics struct {
	TotalRenewals       int `json:"total_renewals"`
	CurrentYearRenewals int `json:"current_year_renewals"`
	ApprovedRenewals    int `json:"approved_renewals"`
}
