package dto

// ApproveRequest carries the approver's optional comment for the stage.
type ApproveRequest struct {
	Comment string `json:"comment"`
}

// RejectRequest carries the mandatory rejection reason.
type RejectRequest struct {
	Reason string `json:"reason" validate:"required"`
}
