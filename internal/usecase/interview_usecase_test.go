package usecase_test

import (
	"context"
	"testing"
	"time"

	"go-talent-marketplace/internal/domain"
	"go-talent-marketplace/internal/usecase"
	"go-talent-marketplace/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockInterviewRepo struct {
	mock.Mock
}

func (m *MockInterviewRepo) Create(ctx context.Context, req *domain.InterviewRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *MockInterviewRepo) GetByID(ctx context.Context, id int64) (*domain.InterviewRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InterviewRequest), args.Error(1)
}

func (m *MockInterviewRepo) GetByEmployerID(ctx context.Context, employerID int64) ([]domain.InterviewRequest, error) {
	args := m.Called(ctx, employerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InterviewRequest), args.Error(1)
}

func (m *MockInterviewRepo) GetByCandidateID(ctx context.Context, candidateID int64) ([]domain.InterviewRequest, error) {
	args := m.Called(ctx, candidateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InterviewRequest), args.Error(1)
}

func (m *MockInterviewRepo) UpdateStatus(ctx context.Context, id int64, status string) (*domain.InterviewRequest, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InterviewRequest), args.Error(1)
}

func (m *MockInterviewRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func employerUser(id int64) *domain.User {
	return &domain.User{ID: id, Email: "e@example.com", Role: domain.RoleEmployer}
}

func TestCreateInterviewRequest(t *testing.T) {
	ctx := context.Background()
	validate := validator.New()

	t.Run("Should fail with 404 when employer does not resolve", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		repo := new(MockInterviewRepo)
		uc := usecase.NewInterviewRequestUsecase(repo, userRepo, validate)

		userRepo.On("GetByID", ctx, int64(1)).Return(nil, domain.ErrNotFound)

		_, err := uc.CreateRequest(ctx, 1, 2, "Are you available?")
		assert.Error(t, err)
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.Code)
		assert.Contains(t, appErr.Message, "Employer")
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should fail with 404 when candidate does not resolve", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		repo := new(MockInterviewRepo)
		uc := usecase.NewInterviewRequestUsecase(repo, userRepo, validate)

		userRepo.On("GetByID", ctx, int64(1)).Return(employerUser(1), nil)
		userRepo.On("GetByID", ctx, int64(2)).Return(nil, domain.ErrNotFound)

		_, err := uc.CreateRequest(ctx, 1, 2, "Are you available?")
		assert.Error(t, err)
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Contains(t, appErr.Message, "Candidate")
	})

	t.Run("Should reject a missing message", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		repo := new(MockInterviewRepo)
		uc := usecase.NewInterviewRequestUsecase(repo, userRepo, validate)

		userRepo.On("GetByID", ctx, int64(1)).Return(employerUser(1), nil)
		userRepo.On("GetByID", ctx, int64(2)).Return(candidateUser(2), nil)

		_, err := uc.CreateRequest(ctx, 1, 2, "")
		assert.Error(t, err)
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Code)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should create with status PENDING", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		repo := new(MockInterviewRepo)
		uc := usecase.NewInterviewRequestUsecase(repo, userRepo, validate)

		userRepo.On("GetByID", ctx, int64(1)).Return(employerUser(1), nil)
		userRepo.On("GetByID", ctx, int64(2)).Return(candidateUser(2), nil)
		repo.On("Create", ctx, mock.AnythingOfType("*domain.InterviewRequest")).Return(nil).Run(func(args mock.Arguments) {
			r := args.Get(1).(*domain.InterviewRequest)
			r.ID = 10
			r.CreatedAt = time.Now()
			r.UpdatedAt = r.CreatedAt
		})

		req, err := uc.CreateRequest(ctx, 1, 2, "Are you available?")
		assert.NoError(t, err)
		assert.Equal(t, domain.InterviewStatusPending, req.Status)
		assert.Equal(t, int64(10), req.ID)
		assert.Equal(t, "Are you available?", req.Message)
	})
}

func TestUpdateInterviewStatus(t *testing.T) {
	ctx := context.Background()
	validate := validator.New()

	t.Run("Should fail with 404 for an unknown request", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		repo := new(MockInterviewRepo)
		uc := usecase.NewInterviewRequestUsecase(repo, userRepo, validate)

		repo.On("UpdateStatus", ctx, int64(99), domain.InterviewStatusAccepted).Return(nil, domain.ErrNotFound)

		_, err := uc.UpdateStatus(ctx, 99, domain.InterviewStatusAccepted)
		assert.Error(t, err)
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.Code)
	})

	t.Run("Should overwrite unconditionally and refresh updated_at", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		repo := new(MockInterviewRepo)
		uc := usecase.NewInterviewRequestUsecase(repo, userRepo, validate)

		created := time.Now().Add(-time.Hour)
		repo.On("UpdateStatus", ctx, int64(10), domain.InterviewStatusRejected).Return(&domain.InterviewRequest{
			ID:        10,
			Status:    domain.InterviewStatusRejected,
			CreatedAt: created,
			UpdatedAt: time.Now(),
		}, nil)

		req, err := uc.UpdateStatus(ctx, 10, domain.InterviewStatusRejected)
		assert.NoError(t, err)
		assert.Equal(t, domain.InterviewStatusRejected, req.Status)
		assert.True(t, req.UpdatedAt.After(req.CreatedAt))
	})

	t.Run("Should allow leaving a terminal status: no transition guard", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		repo := new(MockInterviewRepo)
		uc := usecase.NewInterviewRequestUsecase(repo, userRepo, validate)

		repo.On("UpdateStatus", ctx, int64(10), domain.InterviewStatusPending).Return(&domain.InterviewRequest{
			ID:     10,
			Status: domain.InterviewStatusPending,
		}, nil)

		req, err := uc.UpdateStatus(ctx, 10, domain.InterviewStatusPending)
		assert.NoError(t, err)
		assert.Equal(t, domain.InterviewStatusPending, req.Status)
	})
}

func TestListInterviewRequests(t *testing.T) {
	ctx := context.Background()
	validate := validator.New()

	t.Run("Should fail with 404 when the party does not resolve", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		repo := new(MockInterviewRepo)
		uc := usecase.NewInterviewRequestUsecase(repo, userRepo, validate)

		userRepo.On("GetByID", ctx, int64(9)).Return(nil, domain.ErrNotFound)

		_, err := uc.ListByEmployer(ctx, 9)
		assert.Error(t, err)
		_, err = uc.ListByCandidate(ctx, 9)
		assert.Error(t, err)
	})

	t.Run("Should return the candidate's requests with their current status", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		repo := new(MockInterviewRepo)
		uc := usecase.NewInterviewRequestUsecase(repo, userRepo, validate)

		userRepo.On("GetByID", ctx, int64(2)).Return(candidateUser(2), nil)
		repo.On("GetByCandidateID", ctx, int64(2)).Return([]domain.InterviewRequest{
			{ID: 10, EmployerID: 1, CandidateID: 2, Status: domain.InterviewStatusRejected},
		}, nil)

		requests, err := uc.ListByCandidate(ctx, 2)
		assert.NoError(t, err)
		assert.Len(t, requests, 1)
		assert.Equal(t, domain.InterviewStatusRejected, requests[0].Status)
	})
}

func TestDeleteInterviewRequest(t *testing.T) {
	ctx := context.Background()
	validate := validator.New()

	t.Run("Should surface 404 instead of swallowing a no-op delete", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		repo := new(MockInterviewRepo)
		uc := usecase.NewInterviewRequestUsecase(repo, userRepo, validate)

		repo.On("Delete", ctx, int64(10)).Return(domain.ErrNotFound)

		err := uc.DeleteRequest(ctx, 10)
		assert.Error(t, err)
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.Code)
	})

	t.Run("Should hard-delete and make later updates fail", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		repo := new(MockInterviewRepo)
		uc := usecase.NewInterviewRequestUsecase(repo, userRepo, validate)

		repo.On("Delete", ctx, int64(10)).Return(nil)
		repo.On("UpdateStatus", ctx, int64(10), domain.InterviewStatusPending).Return(nil, domain.ErrNotFound)

		assert.NoError(t, uc.DeleteRequest(ctx, 10))

		_, err := uc.UpdateStatus(ctx, 10, domain.InterviewStatusPending)
		assert.Error(t, err)
	})
}
