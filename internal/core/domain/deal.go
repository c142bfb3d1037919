package domain

import "time"

type DealStage string

const (
	StageLead        DealStage = "lead"
	StageQualified   DealStage = "qualified"
	StageProposal    DealStage = "proposal"
	StageNegotiation DealStage = "negotiation"
	StageWon         DealStage = "won"
	StageLost        DealStage = "lost"
)

// Deal mirrors the backend deal serializer. Amount is a decimal string as
// rendered by the backend.
type Deal struct {
	ID                int64      `json:"id,omitempty"`
	Title             string     `json:"title"                     validate:"required,max=200"`
	Amount            string     `json:"amount"                    validate:"required,numeric"`
	Stage             DealStage  `json:"stage,omitempty"           validate:"omitempty,oneof=lead qualified proposal negotiation won lost"`
	Probability       int        `json:"probability"               validate:"min=0,max=100"`
	ExpectedCloseDate string     `json:"expected_close_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Company           int64      `json:"company"                   validate:"required,gt=0"`
	CompanyName       string     `json:"company_name,omitempty"`
	Contact           *int64     `json:"contact"`
	ContactName       string     `json:"contact_name,omitempty"`
	Notes             string     `json:"notes"`
	CreatedAt         *time.Time `json:"created_at,omitempty"`
	UpdatedAt         *time.Time `json:"updated_at,omitempty"`
	CreatedBy         *int64     `json:"created_by,omitempty"`
	CreatedByName     string     `json:"created_by_name,omitempty"`
}
