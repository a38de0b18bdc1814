package dto

// SubmitEventRequest is the event permission form. Dates and times arrive as
// strings (YYYY-MM-DD / HH:MM) and are validated during assembly.
type SubmitEventRequest struct {
	ApplicantName     string `json:"applicant_name" validate:"required"`
	ApplicantRegNo    string `json:"applicant_reg_no" validate:"required"`
	ApplicantEmail    string `json:"applicant_email" validate:"required,email"`
	ApplicantMobile   string `json:"applicant_mobile"`
	ApplicantPosition string `json:"applicant_position" validate:"required"`

	SocietyName string `json:"society_name" validate:"required"`
	EventName   string `json:"event_name" validate:"required"`
	EventDate   string `json:"event_date" validate:"required"`
	TimeFrom    string `json:"time_from"`
	TimeTo      string `json:"time_to"`
	Place       string `json:"place"`

	IsInsideUniversity     *bool  `json:"is_inside_university"`
	LatePassRequired       *bool  `json:"late_pass_required"`
	OutsidersInvited       *bool  `json:"outsiders_invited"`
	OutsidersList          string `json:"outsiders_list"`
	FirstYearParticipation *bool  `json:"first_year_participation"`

	BudgetEstimate        string `json:"budget_estimate"`
	FundCollectionMethods string `json:"fund_collection_methods"`
	StudentFeeAmount      string `json:"student_fee_amount"`
	ReceiptNumber         string `json:"receipt_number"`
	PaymentDate           string `json:"payment_date"`

	SeniorTreasurerName       string `json:"senior_treasurer_name"`
	SeniorTreasurerDepartment string `json:"senior_treasurer_department"`
	SeniorTreasurerMobile     string `json:"senior_treasurer_mobile"`

	PremisesOfficerName        string `json:"premises_officer_name"`
	PremisesOfficerDesignation string `json:"premises_officer_designation"`
	PremisesOfficerDivision    string `json:"premises_officer_division"`
}

// ApplicantDetails is the stored officer tuple returned for form pre-fill.
type ApplicantDetails struct {
	Name    string `json:"name"`
	RegNo   string `json:"reg_no"`
	Email   string `json:"email"`
	Mobile  string `json:"mobile"`
	Faculty string `json:"faculty"`
}

// ValidatePositionRequest asks whether an applicant holds a society position.
type ValidatePositionRequest struct {
	SocietyName string `json:"society_name" validate:"required"`
	Position    string `json:"position" validate:"required"`
	RegNo       string `json:"reg_no" validate:"required"`
	Email       string `json:"email" validate:"required"`
}

// ValidatePositionResponse reports the outcome of a position check.
type ValidatePositionResponse struct {
	Valid bool `json:"valid"`
}
