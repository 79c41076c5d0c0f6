package model

import "time"

const (
	LeadStatusPending   = "pending"
	LeadStatusContacted = "contacted"
	LeadStatusConverted = "converted"
	LeadStatusRejected  = "rejected"
)

// Lead is a bank customer ("nasabah") joined with its owner name and latest ML score
type Lead struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	Email           *string    `json:"email"`
	Phone           *string    `json:"phone"`
	Age             *int32     `json:"age"`
	Job             *string    `json:"job"`
	Marital         *string    `json:"marital"`
	Education       *string    `json:"education"`
	Balance         float64    `json:"balance"`
	Housing         *string    `json:"housing"`
	Loan            *string    `json:"loan"`
	Contact         *string    `json:"contact"`
	Campaign        *int32     `json:"campaign"`
	PreviousOutcome *string    `json:"previousOutcome"`
	Status          string     `json:"status"`
	ContactedAt     *time.Time `json:"contactedAt"`
	Notes           *string    `json:"notes"`
	UserID          *string    `json:"userId"`
	ContactedByName *string    `json:"contactedByName"`
	PredictedScore  float64    `json:"predictedScore"` // 0 when no score has been calculated yet
}

// LeadFilter selects which leads a caller may see
type LeadFilter struct {
	UserID string
	Role   string
}

// UpdateLeadStatusRequest is the payload of PUT /api/leads/{id}/status
type UpdateLeadStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending contacted converted rejected"`
	UserID string `json:"userId" binding:"required"`
}

// UpdateLeadNotesRequest is the payload of PUT /api/leads/{id}/notes. Notes may be empty but not absent.
type UpdateLeadNotesRequest struct {
	Notes *string `json:"notes" binding:"required"`
}

// LeadStatusUpdate is returned after a status change
type LeadStatusUpdate struct {
	ID          int64      `json:"id"`
	Status      string     `json:"status"`
	ContactedAt *time.Time `json:"contactedAt"`
	UserID      *string    `json:"userId"`
}

// LeadNotesUpdate is returned after a notes change
type LeadNotesUpdate struct {
	ID    int64  `json:"id"`
	Notes string `json:"notes"`
}

// RefreshResult summarizes an ML scoring run
type RefreshResult struct {
	Message        string `json:"message"`
	TotalProcessed int64  `json:"totalProcessed"`
}
