package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/velunaskf/veluna-api/internal/api/handlers"
	"github.com/velunaskf/veluna-api/internal/models"
	"github.com/velunaskf/veluna-api/internal/repositories/mocks"
	service "github.com/velunaskf/veluna-api/internal/services"
)

type userHandlerDeps struct {
	userRepo      *mocks.UserRepository
	cartRepo      *mocks.CartRepository
	rateLimitRepo *mocks.RateLimitRepository
}

func setupUserHandler() (*handlers.UserHandler, *userHandlerDeps) {
	deps := &userHandlerDeps{
		userRepo:      new(mocks.UserRepository),
		cartRepo:      new(mocks.CartRepository),
		rateLimitRepo: new(mocks.RateLimitRepository),
	}

	userService := service.NewUserService(deps.userRepo, deps.cartRepo, deps.rateLimitRepo, []byte("test-signing-key"))

	return handlers.NewUserHandler(userService), deps
}

func loginRequest(t *testing.T, email, password string) *http.Request {
	t.Helper()

	body, err := json.Marshal(models.LoginRequest{Email: email, Password: password})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	return req
}

func TestUserHandler_Login(t *testing.T) {
	email := "asha@example.com"
	password := "correct-horse"

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		ID:       uuid.New(),
		Name:     "Asha Rao",
		Email:    email,
		Password: string(hashed),
		Role:     models.RoleCustomer,
	}

	t.Run("Success - Returns 200 With Token", func(t *testing.T) {
		// Arrange
		userHandler, deps := setupUserHandler()

		deps.rateLimitRepo.On("CheckLoginRateLimit", mock.Anything, email).Return(true, 5, 0, nil).Once()
		deps.userRepo.On("GetUserByEmail", mock.Anything, email).Return(user, nil).Once()

		req := loginRequest(t, email, password)
		w := httptest.NewRecorder()

		// Act
		userHandler.Login()(w, req)

		// Assert
		assert.Equal(t, http.StatusOK, w.Code)

		var resp models.LoginResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.NotEmpty(t, resp.Token)
		assert.Positive(t, resp.ExpiresIn)
	})

	t.Run("Success - Guest Session Header Triggers Cart Merge", func(t *testing.T) {
		// Arrange
		userHandler, deps := setupUserHandler()

		deps.rateLimitRepo.On("CheckLoginRateLimit", mock.Anything, email).Return(true, 5, 0, nil).Once()
		deps.userRepo.On("GetUserByEmail", mock.Anything, email).Return(user, nil).Once()
		deps.cartRepo.On("MergeGuestCart", mock.Anything, "sess-abc", user.ID).Return(nil).Once()

		req := loginRequest(t, email, password)
		req.Header.Set(handlers.SessionHeader, "sess-abc")
		w := httptest.NewRecorder()

		// Act
		userHandler.Login()(w, req)

		// Assert
		assert.Equal(t, http.StatusOK, w.Code)
		deps.cartRepo.AssertExpectations(t)
	})

	t.Run("Failure - Wrong Password Returns 401", func(t *testing.T) {
		// Arrange
		userHandler, deps := setupUserHandler()

		deps.rateLimitRepo.On("CheckLoginRateLimit", mock.Anything, email).Return(true, 2, 0, nil).Once()
		deps.userRepo.On("GetUserByEmail", mock.Anything, email).Return(user, nil).Once()

		req := loginRequest(t, email, "wrong-password")
		w := httptest.NewRecorder()

		// Act
		userHandler.Login()(w, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		var resp models.LoginResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Equal(t, "Invalid email or password", resp.Message)
		assert.Equal(t, 2, resp.RemainingTries)
		assert.Empty(t, resp.Token)
	})

	t.Run("Failure - Rate Limited Returns 429", func(t *testing.T) {
		// Arrange
		userHandler, deps := setupUserHandler()

		deps.rateLimitRepo.On("CheckLoginRateLimit", mock.Anything, email).Return(false, 0, 42, nil).Once()

		req := loginRequest(t, email, password)
		w := httptest.NewRecorder()

		// Act
		userHandler.Login()(w, req)

		// Assert
		assert.Equal(t, http.StatusTooManyRequests, w.Code)

		var resp models.LoginResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 42, resp.RetryAfter)

		deps.userRepo.AssertNotCalled(t, "GetUserByEmail", mock.Anything, mock.Anything)
	})
}
