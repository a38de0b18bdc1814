package dto

// OfficerInput carries one officer slot from a submission form.
type OfficerInput struct {
	RegNo   string `json:"reg_no"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Email   string `json:"email"`
	Mobile  string `json:"mobile"`
}

// AdvisoryBoardMemberInput is one advisory board row on the registration form.
type AdvisoryBoardMemberInput struct {
	Name        string `json:"name"`
	Designation string `json:"designation"`
	Department  string `json:"department"`
}

// MemberInput is a committee or general member row.
type MemberInput struct {
	RegNo string `json:"reg_no"`
	Name  string `json:"name"`
}

// PlanningEventInput is one planned activity row.
type PlanningEventInput struct {
	Month    string `json:"month"`
	Activity string `json:"activity"`
}

// SeniorTreasurerInput is the nominated academic senior treasurer.
type SeniorTreasurerInput struct {
	Title       string `json:"title"`
	FullName    string `json:"full_name"`
	Designation string `json:"designation"`
	Department  string `json:"department"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	Mobile      string `json:"mobile"`
}

// SubmitRegistrationRequest is the full first-time registration form.
// Dates arrive as strings (YYYY-MM-DD) and are parsed during assembly.
type SubmitRegistrationRequest struct {
	ApplicantFullName string `json:"applicant_full_name" validate:"required"`
	ApplicantRegNo    string `json:"applicant_reg_no" validate:"required"`
	ApplicantEmail    string `json:"applicant_email" validate:"required,email"`
	ApplicantFaculty  string `json:"applicant_faculty" validate:"required"`
	ApplicantMobile   string `json:"applicant_mobile"`

	SocietyName string `json:"society_name" validate:"required"`
	Aims        string `json:"aims"`
	AgmDate     string `json:"agm_date"`
	BankAccount string `json:"bank_account"`
	BankName    string `json:"bank_name"`

	SeniorTreasurer SeniorTreasurerInput `json:"senior_treasurer"`

	President      OfficerInput `json:"president"`
	VicePresident  OfficerInput `json:"vice_president"`
	Secretary      OfficerInput `json:"secretary"`
	JointSecretary OfficerInput `json:"joint_secretary"`
	Treasurer      OfficerInput `json:"treasurer"`
	Editor         OfficerInput `json:"editor"`

	AdvisoryBoard    []AdvisoryBoardMemberInput `json:"advisory_board"`
	CommitteeMembers []MemberInput              `json:"committee_members"`
	GeneralMembers   []MemberInput              `json:"general_members"`
	PlanningEvents   []PlanningEventInput       `json:"planning_events"`
}
