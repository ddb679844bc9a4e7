package repository_test

import (
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velunaskf/veluna-api/internal/models"
	repository "github.com/velunaskf/veluna-api/internal/repositories"
)

func setupUserRepoTest(t *testing.T) (repository.UserRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err, "Failed to create sqlmock")

	t.Cleanup(func() {
		db.Close()
	})

	return repository.NewUserRepo(db), mock
}

func TestCreateUser(t *testing.T) {
	insertSQL := regexp.QuoteMeta(`INSERT INTO users`)

	t.Run("Success", func(t *testing.T) {
		// Arrange
		repo, mock := setupUserRepoTest(t)

		user := &models.User{
			Name:     "Asha Rao",
			Email:    "asha@example.com",
			Password: "hashed",
			Role:     models.RoleCustomer,
		}

		now := time.Now()

		mock.ExpectQuery(insertSQL).
			WithArgs(user.Name, user.Email, user.Password, user.Role).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow(uuid.New(), now, now))

		// Act
		err := repo.CreateUser(t.Context(), user)

		// Assert
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, user.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Duplicate Email", func(t *testing.T) {
		// Arrange
		repo, mock := setupUserRepoTest(t)

		mock.ExpectQuery(insertSQL).
			WillReturnError(&pq.Error{Code: "23505"})

		// Act
		err := repo.CreateUser(t.Context(), &models.User{Email: "asha@example.com"})

		// Assert
		require.ErrorIs(t, err, repository.ErrDuplicateEntry)
	})
}

func TestGetUserByEmail(t *testing.T) {
	selectSQL := regexp.QuoteMeta(`WHERE email = $1`)

	t.Run("Success", func(t *testing.T) {
		// Arrange
		repo, mock := setupUserRepoTest(t)

		userID := uuid.New()
		now := time.Now()

		mock.ExpectQuery(selectSQL).
			WithArgs("asha@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password", "role", "created_at", "updated_at"}).
				AddRow(userID, "Asha Rao", "asha@example.com", "hashed", models.RoleCustomer, now, now))

		// Act
		user, err := repo.GetUserByEmail(t.Context(), "asha@example.com")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, userID, user.ID)
		assert.Equal(t, models.RoleCustomer, user.Role)
	})

	t.Run("Failure - Unknown Email", func(t *testing.T) {
		// Arrange
		repo, mock := setupUserRepoTest(t)

		mock.ExpectQuery(selectSQL).
			WithArgs("nobody@example.com").
			WillReturnError(sql.ErrNoRows)

		// Act
		user, err := repo.GetUserByEmail(t.Context(), "nobody@example.com")

		// Assert
		require.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, user)
	})
}
