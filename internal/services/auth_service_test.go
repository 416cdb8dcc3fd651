package services_test

import (
	"fmt"
	"log"
	"os"
	"testing"

	"pasar/internal/models"
	"pasar/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// TestMain is used to setup the test environment
func TestMain(m *testing.M) {
	log.SetOutput(os.Stdout)
	code := m.Run()
	os.Exit(code)
}

func TestAuthService_RegisterUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	user := &models.User{
		Username: "testuser",
		Email:    "test@example.com",
		Password: "password123",
	}

	// Successful registration: no existing username or email.
	mockRepo.On("GetByUsername", user.Username).Return(nil, fmt.Errorf("not found")).Once()
	mockRepo.On("GetByEmail", user.Email).Return(nil, fmt.Errorf("not found")).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	err := authService.RegisterUser(user)
	assert.NoError(t, err)
	// Password must have been replaced by a bcrypt hash.
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))
	mockRepo.AssertExpectations(t)

	// Username already taken.
	taken := &models.User{Username: "testuser", Email: "other@example.com", Password: "password123"}
	mockRepo.On("GetByUsername", taken.Username).Return(&models.User{ID: "u1", Username: "testuser"}, nil).Once()
	err = authService.RegisterUser(taken)
	assert.ErrorIs(t, err, services.ErrConflict)
	assert.Contains(t, err.Error(), "already taken")
	mockRepo.AssertExpectations(t)

	// Email already registered.
	dupEmail := &models.User{Username: "otheruser", Email: "test@example.com", Password: "password123"}
	mockRepo.On("GetByUsername", dupEmail.Username).Return(nil, fmt.Errorf("not found")).Once()
	mockRepo.On("GetByEmail", dupEmail.Email).Return(&models.User{ID: "u1", Email: "test@example.com"}, nil).Once()
	err = authService.RegisterUser(dupEmail)
	assert.ErrorIs(t, err, services.ErrConflict)
	assert.Contains(t, err.Error(), "already registered")
	mockRepo.AssertExpectations(t)
}

func TestAuthService_LoginUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	assert.NoError(t, err)
	storedUser := &models.User{
		ID:       "user-1",
		Username: "testuser",
		Email:    "test@example.com",
		Password: string(hashedPassword),
	}

	// Successful login returns a token carrying the user's claims.
	mockRepo.On("GetByUsername", "testuser").Return(storedUser, nil).Once()
	token, err := authService.LoginUser("testuser", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := authService.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims["user_id"])
	assert.Equal(t, "testuser", claims["username"])
	mockRepo.AssertExpectations(t)

	// Wrong password.
	mockRepo.On("GetByUsername", "testuser").Return(storedUser, nil).Once()
	token, err = authService.LoginUser("testuser", "wrongpassword")
	assert.Error(t, err)
	assert.Empty(t, token)
	mockRepo.AssertExpectations(t)

	// Unknown user: same opaque error as a wrong password.
	mockRepo.On("GetByUsername", "ghost").Return(nil, fmt.Errorf("not found")).Once()
	token, err = authService.LoginUser("ghost", "password123")
	assert.Error(t, err)
	assert.Empty(t, token)
	assert.Contains(t, err.Error(), "invalid credentials")
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken_Invalid(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	claims, err := authService.ValidateToken("not-a-token")
	assert.Error(t, err)
	assert.Nil(t, claims)

	// Token signed with a different secret must be rejected.
	otherService := services.NewAuthService(mockRepo, "other_secret")
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	assert.NoError(t, err)
	mockRepo.On("GetByUsername", "testuser").Return(&models.User{
		ID:       "user-1",
		Username: "testuser",
		Password: string(hashedPassword),
	}, nil).Once()
	foreignToken, err := otherService.LoginUser("testuser", "password123")
	assert.NoError(t, err)

	claims, err = authService.ValidateToken(foreignToken)
	assert.Error(t, err)
	assert.Nil(t, claims)
	mockRepo.AssertExpectations(t)
}
