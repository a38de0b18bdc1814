package models

import "time"

// SocietyRegistration is a first-time registration application moving through
// the Dean -> AR -> VC approval chain.
type SocietyRegistration struct {
	ID string `db:"id" json:"id"`

	ApplicantFullName string `db:"applicant_full_name" json:"applicant_full_name"`
	ApplicantRegNo    string `db:"applicant_reg_no" json:"applicant_reg_no"`
	ApplicantEmail    string `db:"applicant_email" json:"applicant_email"`
	ApplicantFaculty  string `db:"applicant_faculty" json:"applicant_faculty"`
	ApplicantMobile   string `db:"applicant_mobile" json:"applicant_mobile"`

	SocietyName string     `db:"society_name" json:"society_name"`
	Aims        string     `db:"aims" json:"aims"`
	AgmDate     *time.Time `db:"agm_date" json:"agm_date,omitempty"`
	BankAccount string     `db:"bank_account" json:"bank_account"`
	BankName    string     `db:"bank_name" json:"bank_name"`

	SeniorTreasurerTitle       string `db:"senior_treasurer_title" json:"senior_treasurer_title"`
	SeniorTreasurerFullName    string `db:"senior_treasurer_full_name" json:"senior_treasurer_full_name"`
	SeniorTreasurerDesignation string `db:"senior_treasurer_designation" json:"senior_treasurer_designation"`
	SeniorTreasurerDepartment  string `db:"senior_treasurer_department" json:"senior_treasurer_department"`
	SeniorTreasurerEmail       string `db:"senior_treasurer_email" json:"senior_treasurer_email"`
	SeniorTreasurerAddress     string `db:"senior_treasurer_address" json:"senior_treasurer_address"`
	SeniorTreasurerMobile      string `db:"senior_treasurer_mobile" json:"senior_treasurer_mobile"`

	PresidentRegNo   string `db:"president_reg_no" json:"president_reg_no"`
	PresidentName    string `db:"president_name" json:"president_name"`
	PresidentAddress string `db:"president_address" json:"president_address"`
	PresidentEmail   string `db:"president_email" json:"president_email"`
	PresidentMobile  string `db:"president_mobile" json:"president_mobile"`

	VicePresidentRegNo   string `db:"vice_president_reg_no" json:"vice_president_reg_no"`
	VicePresidentName    string `db:"vice_president_name" json:"vice_president_name"`
	VicePresidentAddress string `db:"vice_president_address" json:"vice_president_address"`
	VicePresidentEmail   string `db:"vice_president_email" json:"vice_president_email"`
	VicePresidentMobile  string `db:"vice_president_mobile" json:"vice_president_mobile"`

	SecretaryRegNo   string `db:"secretary_reg_no" json:"secretary_reg_no"`
	SecretaryName    string `db:"secretary_name" json:"secretary_name"`
	SecretaryAddress string `db:"secretary_address" json:"secretary_address"`
	SecretaryEmail   string `db:"secretary_email" json:"secretary_email"`
	SecretaryMobile  string `db:"secretary_mobile" json:"secretary_mobile"`

	JointSecretaryRegNo   string `db:"joint_secretary_reg_no" json:"joint_secretary_reg_no"`
	JointSecretaryName    string `db:"joint_secretary_name" json:"joint_secretary_name"`
	JointSecretaryAddress string `db:"joint_secretary_address" json:"joint_secretary_address"`
	JointSecretaryEmail   string `db:"joint_secretary_email" json:"joint_secretary_email"`
	JointSecretaryMobile  string `db:"joint_secretary_mobile" json:"joint_secretary_mobile"`

	TreasurerRegNo   string `db:"treasurer_reg_no" json:"treasurer_reg_no"`
	TreasurerName    string `db:"treasurer_name" json:"treasurer_name"`
	TreasurerAddress string `db:"treasurer_address" json:"treasurer_address"`
	TreasurerEmail   string `db:"treasurer_email" json:"treasurer_email"`
	TreasurerMobile  string `db:"treasurer_mobile" json:"treasurer_mobile"`

	EditorRegNo   string `db:"editor_reg_no" json:"editor_reg_no"`
	EditorName    string `db:"editor_name" json:"editor_name"`
	EditorAddress string `db:"editor_address" json:"editor_address"`
	EditorEmail   string `db:"editor_email" json:"editor_email"`
	EditorMobile  string `db:"editor_mobile" json:"editor_mobile"`

	AdvisoryBoard    []AdvisoryBoardMember `db:"-" json:"advisory_board,omitempty"`
	CommitteeMembers []CommitteeMember     `db:"-" json:"committee_members,omitempty"`
	GeneralMembers   []GeneralMember       `db:"-" json:"general_members,omitempty"`
	PlanningEvents   []PlanningEvent       `db:"-" json:"planning_events,omitempty"`

	Status          Stage      `db:"status" json:"status"`
	Year            int        `db:"year" json:"year"`
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
}

// AdvisoryBoardMember is an academic staff member backing a registration.
type AdvisoryBoardMember struct {
	ID             string `db:"id" json:"id"`
	RegistrationID string `db:"registration_id" json:"-"`
	Name           string `db:"name" json:"name"`
	Designation    string `db:"designation" json:"designation"`
	Department     string `db:"department" json:"department"`
}

// CommitteeMember is a named committee member on a registration.
type CommitteeMember struct {
	ID             string `db:"id" json:"id"`
	RegistrationID string `db:"registration_id" json:"-"`
	RegNo          string `db:"reg_no" json:"reg_no"`
	Name           string `db:"name" json:"name"`
}

// GeneralMember is an ordinary member listed on a registration.
type GeneralMember struct {
	ID             string `db:"id" json:"id"`
	RegistrationID string `db:"registration_id" json:"-"`
	RegNo          string `db:"reg_no" json:"reg_no"`
	Name           string `db:"name" json:"name"`
}

// PlanningEvent is one row of the planned activity calendar on a registration.
type PlanningEvent struct {
	ID             string `db:"id" json:"id"`
	RegistrationID string `db:"registration_id" json:"-"`
	Month          string `db:"month" json:"month"`
	Activity       string `db:"activity" json:"activity"`
}
