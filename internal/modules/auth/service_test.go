package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"pipelinecrm/internal/domain"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	if u != nil && u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return args.Error(0)
}

type stubIssuer struct{}

func (stubIssuer) GenerateToken(userID uuid.UUID, role string) (string, error) {
	return "token-" + role, nil
}

func TestRegister(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewService(users, stubIssuer{})

	users.On("GetByEmail", mock.Anything, "jane@example.com").Return(nil, nil)
	users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

	result, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "jane@example.com",
		Password: "correct horse",
		Name:     "Jane",
	})

	assert.NoError(t, err)
	assert.Equal(t, "jane@example.com", result.User.Email)
	assert.Equal(t, domain.RoleRep, result.User.Role)
	assert.NotEmpty(t, result.Token)
	assert.NotEqual(t, "correct horse", result.User.PasswordHash)
}

func TestRegister_EmailExists(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewService(users, stubIssuer{})

	users.On("GetByEmail", mock.Anything, mock.Anything).
		Return(&domain.User{ID: uuid.New(), Email: "jane@example.com"}, nil)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "jane@example.com",
		Password: "irrelevant",
		Name:     "Jane",
	})
	assert.ErrorIs(t, err, ErrEmailExists)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLogin(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	user := &domain.User{
		ID:           uuid.New(),
		Email:        "jane@example.com",
		PasswordHash: string(hash),
		Role:         domain.RoleRep,
	}

	users := new(MockUserRepository)
	svc := NewService(users, stubIssuer{})
	users.On("GetByEmail", mock.Anything, "jane@example.com").Return(user, nil)

	result, err := svc.Login(context.Background(), LoginRequest{
		Email:    "jane@example.com",
		Password: "s3cret-pass",
	})
	assert.NoError(t, err)
	assert.Equal(t, "token-rep", result.Token)

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    "jane@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewService(users, stubIssuer{})
	users.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, nil)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
