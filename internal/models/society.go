package models

import "time"

// SocietyStatus represents the lifecycle state of a registered society.
type SocietyStatus string

const (
	SocietyActive   SocietyStatus = "ACTIVE"
	SocietyInactive SocietyStatus = "INACTIVE"
	SocietyPending  SocietyStatus = "PENDING"
)

// Officer is one named office holder of a society.
type Officer struct {
	Name   string `json:"name"`
	RegNo  string `json:"reg_no"`
	Email  string `json:"email"`
	Mobile string `json:"mobile"`
}

// OfficerPosition identifies one of the six student officer slots.
type OfficerPosition string

const (
	PositionPresident      OfficerPosition = "president"
	PositionVicePresident  OfficerPosition = "vice president"
	PositionSecretary      OfficerPosition = "secretary"
	PositionJointSecretary OfficerPosition = "joint secretary"
	PositionTreasurer      OfficerPosition = "junior treasurer"
	PositionEditor         OfficerPosition = "editor"
)

// Society is the canonical record of one society in one academic year.
// Unique per (society_name, year); mutated only when a registration or
// renewal reaches final approval.
type Society struct {
	ID          string        `db:"id" json:"id"`
	SocietyName string        `db:"society_name" json:"society_name"`
	Year        int           `db:"year" json:"year"`
	Faculty     string        `db:"faculty" json:"faculty"`
	Status      SocietyStatus `db:"status" json:"status"`
	Aims        string        `db:"aims" json:"aims"`
	AgmDate     *time.Time    `db:"agm_date" json:"agm_date,omitempty"`
	Website     string        `db:"website" json:"website"`
	BankAccount string        `db:"bank_account" json:"bank_account"`
	BankName    string        `db:"bank_name" json:"bank_name"`

	PresidentName   string `db:"president_name" json:"president_name"`
	PresidentRegNo  string `db:"president_reg_no" json:"president_reg_no"`
	PresidentEmail  string `db:"president_email" json:"president_email"`
	PresidentMobile string `db:"president_mobile" json:"president_mobile"`

	VicePresidentName   string `db:"vice_president_name" json:"vice_president_name"`
	VicePresidentRegNo  string `db:"vice_president_reg_no" json:"vice_president_reg_no"`
	VicePresidentEmail  string `db:"vice_president_email" json:"vice_president_email"`
	VicePresidentMobile string `db:"vice_president_mobile" json:"vice_president_mobile"`

	SecretaryName   string `db:"secretary_name" json:"secretary_name"`
	SecretaryRegNo  string `db:"secretary_reg_no" json:"secretary_reg_no"`
	SecretaryEmail  string `db:"secretary_email" json:"secretary_email"`
	SecretaryMobile string `db:"secretary_mobile" json:"secretary_mobile"`

	JointSecretaryName   string `db:"joint_secretary_name" json:"joint_secretary_name"`
	JointSecretaryRegNo  string `db:"joint_secretary_reg_no" json:"joint_secretary_reg_no"`
	JointSecretaryEmail  string `db:"joint_secretary_email" json:"joint_secretary_email"`
	JointSecretaryMobile string `db:"joint_secretary_mobile" json:"joint_secretary_mobile"`

	TreasurerName   string `db:"treasurer_name" json:"treasurer_name"`
	TreasurerRegNo  string `db:"treasurer_reg_no" json:"treasurer_reg_no"`
	TreasurerEmail  string `db:"treasurer_email" json:"treasurer_email"`
	TreasurerMobile string `db:"treasurer_mobile" json:"treasurer_mobile"`

	EditorName   string `db:"editor_name" json:"editor_name"`
	EditorRegNo  string `db:"editor_reg_no" json:"editor_reg_no"`
	EditorEmail  string `db:"editor_email" json:"editor_email"`
	EditorMobile string `db:"editor_mobile" json:"editor_mobile"`

	SeniorTreasurerName  string `db:"senior_treasurer_name" json:"senior_treasurer_name"`
	SeniorTreasurerEmail string `db:"senior_treasurer_email" json:"senior_treasurer_email"`

	RegisteredDate *time.Time `db:"registered_date" json:"registered_date,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

// OfficerAt returns the officer tuple stored for the given position.
func (s *Society) OfficerAt(position OfficerPosition) (Officer, bool) {
	switch position {
	case PositionPresident:
		return Officer{s.PresidentName, s.PresidentRegNo, s.PresidentEmail, s.PresidentMobile}, true
	case PositionVicePresident:
		return Officer{s.VicePresidentName, s.VicePresidentRegNo, s.VicePresidentEmail, s.VicePresidentMobile}, true
	case PositionSecretary:
		return Officer{s.SecretaryName, s.SecretaryRegNo, s.SecretaryEmail, s.SecretaryMobile}, true
	case PositionJointSecretary:
		return Officer{s.JointSecretaryName, s.JointSecretaryRegNo, s.JointSecretaryEmail, s.JointSecretaryMobile}, true
	case PositionTreasurer:
		return Officer{s.TreasurerName, s.TreasurerRegNo, s.TreasurerEmail, s.TreasurerMobile}, true
	case PositionEditor:
		return Officer{s.EditorName, s.EditorRegNo, s.EditorEmail, s.EditorMobile}, true
	}
	return Officer{}, false
}

// SocietyFilter captures search criteria for society listings.
type SocietyFilter struct {
	Search   string
	Status   *SocietyStatus
	Year     *int
	Page     int
	PageSize int
}

// SocietyStatistics summarises the registry for dashboards.
type SocietyStatistics struct {
	TotalSocieties           int `json:"total_societies"`
	ActiveSocieties          int `json:"active_societies"`
	CurrentYearRegistrations int `json:"current_year_registrations"`
}
