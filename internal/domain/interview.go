package domain

import (
	"context"
	"time"
)

// Interview request status constants. Only PENDING is ever assigned by the
// system itself (at creation); every later transition is caller-directed and
// unguarded, so e.g. REJECTED back to PENDING is allowed.
const (
	InterviewStatusPending   = "PENDING"
	InterviewStatusAccepted  = "ACCEPTED"
	InterviewStatusRejected  = "REJECTED"
	InterviewStatusWithdrawn = "WITHDRAWN"
)

// InterviewRequest represents an employer's interview request to a candidate
type InterviewRequest struct {
	ID          int64     `json:"id"`
	EmployerID  int64     `json:"employer_id"`
	CandidateID int64     `json:"candidate_id"`
	Message     string    `json:"message" validate:"required"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// InterviewRequestRepository defines data access methods for interview
// requests. Unlike messages there is no tombstone concept: Delete removes
// the row for good.
type InterviewRequestRepository interface {
	Create(ctx context.Context, req *InterviewRequest) error
	GetByID(ctx context.Context, id int64) (*InterviewRequest, error)
	GetByEmployerID(ctx context.Context, employerID int64) ([]InterviewRequest, error)
	GetByCandidateID(ctx context.Context, candidateID int64) ([]InterviewRequest, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*InterviewRequest, error)
	Delete(ctx context.Context, id int64) error
}

// InterviewRequestUsecase defines business logic for the interview workflow
type InterviewRequestUsecase interface {
	CreateRequest(ctx context.Context, employerID, candidateID int64, message string) (*InterviewRequest, error)
	ListByEmployer(ctx context.Context, employerID int64) ([]InterviewRequest, error)
	ListByCandidate(ctx context.Context, candidateID int64) ([]InterviewRequest, error)
	UpdateStatus(ctx context.Context, requestID int64, status string) (*InterviewRequest, error)
	DeleteRequest(ctx context.Context, requestID int64) error
}
