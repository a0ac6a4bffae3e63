package usecase

import (
	"context"
	"go-talent-marketplace/internal/domain"
	"go-talent-marketplace/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

type interviewUsecase struct {
	interviewRepo domain.InterviewRequestRepository
	userRepo      domain.UserRepository
	validate      *validator.Validate
}

// NewInterviewRequestUsecase creates a new interview request usecase
func NewInterviewRequestUsecase(
	interviewRepo domain.InterviewRequestRepository,
	userRepo domain.UserRepository,
	validate *validator.Validate,
) domain.InterviewRequestUsecase {
	return &interviewUsecase{
		interviewRepo: interviewRepo,
		userRepo:      userRepo,
		validate:      validate,
	}
}

// CreateRequest resolves both parties and persists a new request with status
// PENDING. The message text is required but otherwise unvalidated.
func (uc *interviewUsecase) CreateRequest(ctx context.Context, employerID, candidateID int64, message string) (*domain.InterviewRequest, error) {
	if _, err := uc.userRepo.GetByID(ctx, employerID); err != nil {
		return nil, resolveErr(err, "Employer not found")
	}
	if _, err := uc.userRepo.GetByID(ctx, candidateID); err != nil {
		return nil, resolveErr(err, "Candidate not found")
	}

	req := &domain.InterviewRequest{
		EmployerID:  employerID,
		CandidateID: candidateID,
		Message:     message,
		Status:      domain.InterviewStatusPending,
	}
	if err := uc.validate.Struct(req); err != nil {
		return nil, apperror.BadRequest("Interview request message is required")
	}

	if err := uc.interviewRepo.Create(ctx, req); err != nil {
		return nil, apperror.Internal(err)
	}
	return req, nil
}

// ListByEmployer returns all requests the employer has sent
func (uc *interviewUsecase) ListByEmployer(ctx context.Context, employerID int64) ([]domain.InterviewRequest, error) {
	if _, err := uc.userRepo.GetByID(ctx, employerID); err != nil {
		return nil, resolveErr(err, "Employer not found")
	}
	requests, err := uc.interviewRepo.GetByEmployerID(ctx, employerID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return requests, nil
}

// ListByCandidate returns all requests addressed to the candidate
func (uc *interviewUsecase) ListByCandidate(ctx context.Context, candidateID int64) ([]domain.InterviewRequest, error) {
	if _, err := uc.userRepo.GetByID(ctx, candidateID); err != nil {
		return nil, resolveErr(err, "Candidate not found")
	}
	requests, err := uc.interviewRepo.GetByCandidateID(ctx, candidateID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return requests, nil
}

// UpdateStatus overwrites the status unconditionally. There is no transition
// guard: any status can follow any other, including moving a terminal status
// back to PENDING. updated_at is refreshed by the store.
func (uc *interviewUsecase) UpdateStatus(ctx context.Context, requestID int64, status string) (*domain.InterviewRequest, error) {
	req, err := uc.interviewRepo.UpdateStatus(ctx, requestID, status)
	if err != nil {
		return nil, resolveErr(err, "Interview request not found")
	}
	return req, nil
}

// DeleteRequest hard-deletes the request; a missing id surfaces as NotFound
func (uc *interviewUsecase) DeleteRequest(ctx context.Context, requestID int64) error {
	if err := uc.interviewRepo.Delete(ctx, requestID); err != nil {
		return resolveErr(err, "Interview request not found")
	}
	return nil
}
