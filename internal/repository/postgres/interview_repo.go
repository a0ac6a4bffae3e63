package postgres

import (
	"context"
	"errors"
	"go-talent-marketplace/internal/domain"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type interviewRepo struct {
	db *pgxpool.Pool
}

// NewInterviewRequestRepository creates a new interview request repository
func NewInterviewRequestRepository(db *pgxpool.Pool) domain.InterviewRequestRepository {
	return &interviewRepo{db: db}
}

// Create inserts a new interview request
func (r *interviewRepo) Create(ctx context.Context, req *domain.InterviewRequest) error {
	query := `
		INSERT INTO interview_requests (employer_id, candidate_id, message, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	now := time.Now()
	req.CreatedAt = now
	req.UpdatedAt = now
	if req.Status == "" {
		req.Status = domain.InterviewStatusPending
	}

	return r.db.QueryRow(ctx, query,
		req.EmployerID,
		req.CandidateID,
		req.Message,
		req.Status,
		req.CreatedAt,
		req.UpdatedAt,
	).Scan(&req.ID)
}

// GetByID retrieves an interview request by ID
func (r *interviewRepo) GetByID(ctx context.Context, reqID int64) (*domain.InterviewRequest, error) {
	query := `
		SELECT id, employer_id, candidate_id, message, status, created_at, updated_at
		FROM interview_requests
		WHERE id = $1`

	var req domain.InterviewRequest
	err := r.db.QueryRow(ctx, query, reqID).Scan(
		&req.ID, &req.EmployerID, &req.CandidateID,
		&req.Message, &req.Status, &req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

// GetByEmployerID retrieves all requests sent by an employer, newest first
func (r *interviewRepo) GetByEmployerID(ctx context.Context, employerID int64) ([]domain.InterviewRequest, error) {
	query := `
		SELECT id, employer_id, candidate_id, message, status, created_at, updated_at
		FROM interview_requests
		WHERE employer_id = $1
		ORDER BY created_at DESC`

	return r.queryRequests(ctx, query, employerID)
}

// GetByCandidateID retrieves all requests addressed to a candidate, newest first
func (r *interviewRepo) GetByCandidateID(ctx context.Context, candidateID int64) ([]domain.InterviewRequest, error) {
	query := `
		SELECT id, employer_id, candidate_id, message, status, created_at, updated_at
		FROM interview_requests
		WHERE candidate_id = $1
		ORDER BY created_at DESC`

	return r.queryRequests(ctx, query, candidateID)
}

// UpdateStatus overwrites the status unconditionally and refreshes
// updated_at, returning the updated row. Missing id maps to ErrNotFound.
func (r *interviewRepo) UpdateStatus(ctx context.Context, reqID int64, status string) (*domain.InterviewRequest, error) {
	query := `
		UPDATE interview_requests SET status = $2, updated_at = $3
		WHERE id = $1
		RETURNING id, employer_id, candidate_id, message, status, created_at, updated_at`

	var req domain.InterviewRequest
	err := r.db.QueryRow(ctx, query, reqID, status, time.Now()).Scan(
		&req.ID, &req.EmployerID, &req.CandidateID,
		&req.Message, &req.Status, &req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

// Delete hard-deletes the request. A delete that matches no row is a
// reported failure, never silently swallowed.
func (r *interviewRepo) Delete(ctx context.Context, reqID int64) error {
	query := `DELETE FROM interview_requests WHERE id = $1`
	result, err := r.db.Exec(ctx, query, reqID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *interviewRepo) queryRequests(ctx context.Context, query string, arg int64) ([]domain.InterviewRequest, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []domain.InterviewRequest
	for rows.Next() {
		var req domain.InterviewRequest
		if err := rows.Scan(
			&req.ID, &req.EmployerID, &req.CandidateID,
			&req.Message, &req.Status, &req.CreatedAt, &req.UpdatedAt,
		); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}
