package dto

// RenewalOfficerInput is an optional officer slot on the renewal form.
// A nil slot leaves the society's stored officer untouched on approval.
type RenewalOfficerInput struct {
	RegNo  string `json:"reg_no"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Mobile string `json:"mobile"`
}

// SubmitRenewalRequest is the yearly renewal form for an existing society.
type SubmitRenewalRequest struct {
	ApplicantFullName string `json:"applicant_full_name" validate:"required"`
	ApplicantRegNo    string `json:"applicant_reg_no" validate:"required"`
	ApplicantEmail    string `json:"applicant_email" validate:"required,email"`
	ApplicantFaculty  string `json:"applicant_faculty" validate:"required"`
	ApplicantMobile   string `json:"applicant_mobile"`

	SocietyName  string  `json:"society_name" validate:"required"`
	AgmDate      string  `json:"agm_date"`
	Website      *string `json:"website"`
	BankAccount  *string `json:"bank_account"`
	BankName     *string `json:"bank_name"`
	Difficulties string  `json:"difficulties"`

	SeniorTreasurer *SeniorTreasurerInput `json:"senior_treasurer"`

	President      *RenewalOfficerInput `json:"president"`
	VicePresident  *RenewalOfficerInput `json:"vice_president"`
	Secretary      *RenewalOfficerInput `json:"secretary"`
	JointSecretary *RenewalOfficerInput `json:"joint_secretary"`
	Treasurer      *RenewalOfficerInput `json:"treasurer"`
	Editor         *RenewalOfficerInput `json:"editor"`
}
