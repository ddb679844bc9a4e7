package repository_test

import (
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velunaskf/veluna-api/internal/models"
	repository "github.com/velunaskf/veluna-api/internal/repositories"
)

func setupCartRepoTest(t *testing.T) (repository.CartRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err, "Failed to create sqlmock")

	t.Cleanup(func() {
		db.Close()
	})

	return repository.NewCartRepo(db), mock
}

func TestUpsertCartItem(t *testing.T) {
	upsertSQL := regexp.QuoteMeta(`ON CONFLICT`)

	t.Run("Success - Repeated Add Accumulates Quantity", func(t *testing.T) {
		// Arrange
		repo, mock := setupCartRepoTest(t)

		sessionID := "sess-abc"
		item := &models.CartItem{
			SessionID: &sessionID,
			ProductID: uuid.New(),
			Quantity:  2,
			Price:     299,
		}

		now := time.Now()

		mock.ExpectQuery(upsertSQL).
			WithArgs(nil, sessionID, item.ProductID, 2, 299.0, nil).
			WillReturnRows(sqlmock.NewRows([]string{"id", "quantity", "created_at", "updated_at"}).
				AddRow(uuid.New(), 5, now, now))

		// Act
		err := repo.UpsertItem(t.Context(), item)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 5, item.Quantity, "quantity reflects the accumulated row")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpdateCartItemQuantity(t *testing.T) {
	updateSQL := regexp.QuoteMeta(`UPDATE cart_items SET quantity = $1`)

	t.Run("Failure - Item Belongs To Another Cart", func(t *testing.T) {
		// Arrange
		repo, mock := setupCartRepoTest(t)

		itemID := uuid.New()
		key := models.CartKey{SessionID: "sess-other"}

		mock.ExpectExec(updateSQL).
			WithArgs(3, itemID, "sess-other").
			WillReturnResult(sqlmock.NewResult(0, 0))

		// Act
		err := repo.UpdateItemQuantity(t.Context(), itemID, key, 3)

		// Assert
		require.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestMergeGuestCart(t *testing.T) {
	t.Run("Success - Fold Drop Claim In One Transaction", func(t *testing.T) {
		// Arrange
		repo, mock := setupCartRepoTest(t)

		userID := uuid.New()
		sessionID := "sess-abc"

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`SET quantity = u.quantity + g.quantity`)).
			WithArgs(userID, sessionID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM cart_items g`)).
			WithArgs(sessionID, userID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta(`SET user_id = $1, session_id = NULL`)).
			WithArgs(userID, sessionID).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		// Act
		err := repo.MergeGuestCart(t.Context(), sessionID, userID)

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Fold Error Rolls Back", func(t *testing.T) {
		// Arrange
		repo, mock := setupCartRepoTest(t)

		userID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`SET quantity = u.quantity + g.quantity`)).
			WillReturnError(errors.New("fold failed"))
		mock.ExpectRollback()

		// Act
		err := repo.MergeGuestCart(t.Context(), "sess-abc", userID)

		// Assert
		require.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
