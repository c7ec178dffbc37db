package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nao1215/notification-api/internal/apperror"
)

func TestUserService_CreateUser(t *testing.T) {
	t.Parallel()

	t.Run("ユーザーを作成できる", func(t *testing.T) {
		t.Parallel()

		s := newServices(t)
		s.users.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

		u, err := s.users.CreateUser(context.Background(), CreateUserRequest{
			Email:     "a@x.com",
			FirstName: "A",
			LastName:  "B",
		})
		require.NoError(t, err)
		assert.Positive(t, u.ID)
		assert.Equal(t, "a@x.com", u.Email)
		assert.Equal(t, "A", u.FirstName)
		assert.Equal(t, "B", u.LastName)
		assert.Equal(t, "2024-01-02 03:04:05", u.CreatedAt)
		assert.Equal(t, "2024-01-02 03:04:05", u.UpdatedAt)
		assert.Zero(t, u.NotificationsCount)
	})

	t.Run("同じメールアドレスは他の項目が違っても重複エラーになる", func(t *testing.T) {
		t.Parallel()

		s := newServices(t)
		s.createUser(t, "dup@example.com")

		_, err := s.users.CreateUser(context.Background(), CreateUserRequest{
			Email:     "dup@example.com",
			FirstName: "Other",
			LastName:  "Person",
		})
		requireKind(t, err, apperror.KindConflict)
		assert.EqualError(t, err, "User with email dup@example.com already exists")
	})

	t.Run("検証エラーは保存前に返す", func(t *testing.T) {
		t.Parallel()

		s := newServices(t)
		_, err := s.users.CreateUser(context.Background(), CreateUserRequest{Email: "invalid"})
		requireKind(t, err, apperror.KindValidation)

		users, err := s.users.GetAllUsers(context.Background())
		require.NoError(t, err)
		assert.Empty(t, users)
	})
}

func TestUserService_GetUser(t *testing.T) {
	t.Parallel()

	s := newServices(t)
	created := s.createUser(t, "get@example.com")
	s.createNotification(t, CreateNotificationRequest{Subject: "S", Body: "B", UserID: &created.ID})

	t.Run("通知件数付きで取得できる", func(t *testing.T) {
		u, err := s.users.GetUser(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.Email, u.Email)
		assert.Equal(t, int64(1), u.NotificationsCount)
	})

	t.Run("存在しないIDは NotFound", func(t *testing.T) {
		_, err := s.users.GetUser(context.Background(), 9999)
		requireKind(t, err, apperror.KindNotFound)
		assert.EqualError(t, err, "User with ID 9999 not found")
	})
}

func TestUserService_GetAllUsers(t *testing.T) {
	t.Parallel()

	s := newServices(t)
	s.createUser(t, "first@example.com")
	s.createUser(t, "second@example.com")

	users, err := s.users.GetAllUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "first@example.com", users[0].Email)
	assert.Equal(t, "second@example.com", users[1].Email)
}

func TestUserService_StorageFailure(t *testing.T) {
	t.Parallel()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	mock.ExpectQuery("FROM users").WillReturnError(errors.New("disk I/O error"))

	s := NewUserService(sqlDB, NewValidator(), zap.NewNop())
	_, err = s.GetAllUsers(context.Background())

	requireKind(t, err, apperror.KindInternal)
	assert.NoError(t, mock.ExpectationsWereMet())
}
