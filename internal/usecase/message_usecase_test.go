package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-talent-marketplace/internal/domain"
	"go-talent-marketplace/internal/usecase"
	"go-talent-marketplace/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Mock Repositories

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockMessageRepo struct {
	mock.Mock
}

func (m *MockMessageRepo) Create(ctx context.Context, msg *domain.Message) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *MockMessageRepo) GetConversation(ctx context.Context, userA, userB int64) ([]domain.Message, error) {
	args := m.Called(ctx, userA, userB)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Message), args.Error(1)
}

func (m *MockMessageRepo) GetPartners(ctx context.Context, userID int64) ([]domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockMessageRepo) GetUnread(ctx context.Context, userID int64) ([]domain.Message, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Message), args.Error(1)
}

func (m *MockMessageRepo) MarkAsRead(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockMessageRepo) SoftDelete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// capturePublisher records publishes so tests can assert ordering against
// the durable insert
type capturePublisher struct {
	published []*domain.Message
	receivers []int64
}

func (p *capturePublisher) Publish(receiverID int64, msg *domain.Message) {
	p.receivers = append(p.receivers, receiverID)
	p.published = append(p.published, msg)
}

func candidateUser(id int64) *domain.User {
	return &domain.User{ID: id, Email: "c@example.com", Role: domain.RoleCandidate}
}

func TestSendMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("Should fail with 404 when sender does not resolve", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		msgRepo := new(MockMessageRepo)
		pub := &capturePublisher{}
		uc := usecase.NewMessageUsecase(msgRepo, userRepo, pub)

		userRepo.On("GetByID", ctx, int64(1)).Return(nil, domain.ErrNotFound)

		_, err := uc.Send(ctx, 1, 2, "hello")
		assert.Error(t, err)
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.Code)
		assert.Contains(t, appErr.Message, "Sender")
		msgRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		assert.Empty(t, pub.published)
	})

	t.Run("Should fail with 404 when receiver does not resolve", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		msgRepo := new(MockMessageRepo)
		pub := &capturePublisher{}
		uc := usecase.NewMessageUsecase(msgRepo, userRepo, pub)

		userRepo.On("GetByID", ctx, int64(1)).Return(candidateUser(1), nil)
		userRepo.On("GetByID", ctx, int64(2)).Return(nil, domain.ErrNotFound)

		_, err := uc.Send(ctx, 1, 2, "hello")
		assert.Error(t, err)
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.Code)
		assert.Contains(t, appErr.Message, "Receiver")
		msgRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should persist, then publish the stored message to the receiver", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		msgRepo := new(MockMessageRepo)
		pub := &capturePublisher{}
		uc := usecase.NewMessageUsecase(msgRepo, userRepo, pub)

		userRepo.On("GetByID", ctx, int64(1)).Return(candidateUser(1), nil)
		userRepo.On("GetByID", ctx, int64(2)).Return(candidateUser(2), nil)
		msgRepo.On("Create", ctx, mock.AnythingOfType("*domain.Message")).Return(nil).Run(func(args mock.Arguments) {
			// the store assigns id and sent_at at insert time
			m := args.Get(1).(*domain.Message)
			m.ID = 42
			m.SentAt = time.Now()
		})

		msg, err := uc.Send(ctx, 1, 2, "hello")
		assert.NoError(t, err)
		assert.Equal(t, int64(42), msg.ID)
		assert.False(t, msg.IsRead)
		assert.False(t, msg.IsDeleted)

		// the publish carries the already-persisted record
		assert.Equal(t, []int64{2}, pub.receivers)
		assert.Len(t, pub.published, 1)
		assert.Equal(t, int64(42), pub.published[0].ID)
	})

	t.Run("Should accept empty content as-is", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		msgRepo := new(MockMessageRepo)
		pub := &capturePublisher{}
		uc := usecase.NewMessageUsecase(msgRepo, userRepo, pub)

		userRepo.On("GetByID", ctx, int64(1)).Return(candidateUser(1), nil)
		userRepo.On("GetByID", ctx, int64(2)).Return(candidateUser(2), nil)
		msgRepo.On("Create", ctx, mock.AnythingOfType("*domain.Message")).Return(nil)

		msg, err := uc.Send(ctx, 1, 2, "")
		assert.NoError(t, err)
		assert.Equal(t, "", msg.Content)
	})

	t.Run("Should not publish when the insert fails", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		msgRepo := new(MockMessageRepo)
		pub := &capturePublisher{}
		uc := usecase.NewMessageUsecase(msgRepo, userRepo, pub)

		userRepo.On("GetByID", ctx, int64(1)).Return(candidateUser(1), nil)
		userRepo.On("GetByID", ctx, int64(2)).Return(candidateUser(2), nil)
		msgRepo.On("Create", ctx, mock.AnythingOfType("*domain.Message")).Return(errors.New("insert failed"))

		_, err := uc.Send(ctx, 1, 2, "hello")
		assert.Error(t, err)
		assert.Empty(t, pub.published)
	})
}

func TestGetConversation(t *testing.T) {
	ctx := context.Background()

	t.Run("Should fail with 404 when either user does not resolve", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		msgRepo := new(MockMessageRepo)
		uc := usecase.NewMessageUsecase(msgRepo, userRepo, &capturePublisher{})

		userRepo.On("GetByID", ctx, int64(1)).Return(candidateUser(1), nil)
		userRepo.On("GetByID", ctx, int64(9)).Return(nil, domain.ErrNotFound)

		_, err := uc.GetConversation(ctx, 1, 9)
		assert.Error(t, err)
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.Code)
	})

	t.Run("Should return the store's merged ordering untouched", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		msgRepo := new(MockMessageRepo)
		uc := usecase.NewMessageUsecase(msgRepo, userRepo, &capturePublisher{})

		now := time.Now()
		history := []domain.Message{
			{ID: 1, SenderID: 1, ReceiverID: 2, Content: "hello", SentAt: now},
			{ID: 2, SenderID: 2, ReceiverID: 1, Content: "hi back", SentAt: now.Add(time.Second)},
		}

		userRepo.On("GetByID", ctx, int64(1)).Return(candidateUser(1), nil)
		userRepo.On("GetByID", ctx, int64(2)).Return(candidateUser(2), nil)
		msgRepo.On("GetConversation", ctx, int64(1), int64(2)).Return(history, nil)

		messages, err := uc.GetConversation(ctx, 1, 2)
		assert.NoError(t, err)
		assert.Len(t, messages, 2)
		assert.Equal(t, "hello", messages[0].Content)
		assert.Equal(t, "hi back", messages[1].Content)
	})
}

func TestGetPartners(t *testing.T) {
	ctx := context.Background()

	t.Run("Should fail with 404 when the user does not resolve", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		msgRepo := new(MockMessageRepo)
		uc := usecase.NewMessageUsecase(msgRepo, userRepo, &capturePublisher{})

		userRepo.On("GetByID", ctx, int64(9)).Return(nil, domain.ErrNotFound)

		_, err := uc.GetPartners(ctx, 9)
		assert.Error(t, err)
	})

	t.Run("Should return the deduplicated partner set from the store", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		msgRepo := new(MockMessageRepo)
		uc := usecase.NewMessageUsecase(msgRepo, userRepo, &capturePublisher{})

		userRepo.On("GetByID", ctx, int64(1)).Return(candidateUser(1), nil)
		msgRepo.On("GetPartners", ctx, int64(1)).Return([]domain.User{
			{ID: 2}, {ID: 3},
		}, nil)

		partners, err := uc.GetPartners(ctx, 1)
		assert.NoError(t, err)
		assert.Len(t, partners, 2)
	})
}

func TestMarkAsRead(t *testing.T) {
	ctx := context.Background()

	t.Run("Should fail with 404 for an unknown message id", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		msgRepo := new(MockMessageRepo)
		uc := usecase.NewMessageUsecase(msgRepo, userRepo, &capturePublisher{})

		msgRepo.On("MarkAsRead", ctx, int64(7)).Return(domain.ErrNotFound)

		err := uc.MarkAsRead(ctx, 7)
		assert.Error(t, err)
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.Code)
	})

	t.Run("Should be idempotent: repeat calls keep succeeding", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		msgRepo := new(MockMessageRepo)
		uc := usecase.NewMessageUsecase(msgRepo, userRepo, &capturePublisher{})

		msgRepo.On("MarkAsRead", ctx, int64(7)).Return(nil)

		assert.NoError(t, uc.MarkAsRead(ctx, 7))
		assert.NoError(t, uc.MarkAsRead(ctx, 7))
		msgRepo.AssertNumberOfCalls(t, "MarkAsRead", 2)
	})
}

func TestDeleteMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("Should surface 404 from the store", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		msgRepo := new(MockMessageRepo)
		uc := usecase.NewMessageUsecase(msgRepo, userRepo, &capturePublisher{})

		msgRepo.On("SoftDelete", ctx, int64(8)).Return(domain.ErrNotFound)

		err := uc.DeleteMessage(ctx, 8)
		assert.Error(t, err)
	})

	t.Run("Should tombstone via the store", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		msgRepo := new(MockMessageRepo)
		uc := usecase.NewMessageUsecase(msgRepo, userRepo, &capturePublisher{})

		msgRepo.On("SoftDelete", ctx, int64(8)).Return(nil)

		assert.NoError(t, uc.DeleteMessage(ctx, 8))
		msgRepo.AssertCalled(t, "SoftDelete", ctx, int64(8))
	})
}
