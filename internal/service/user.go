package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/nao1215/notification-api/internal/apperror"
	notificationdb "github.com/nao1215/notification-api/internal/notification/db"
)

// UserService はユーザーの作成と参照を扱う。
type UserService struct {
	queries   *notificationdb.Queries
	validator *Validator
	log       *zap.Logger
	now       func() time.Time
}

// NewUserService は新しい UserService を生成する。
func NewUserService(db *sql.DB, v *Validator, log *zap.Logger) *UserService {
	return &UserService{
		queries:   notificationdb.New(db),
		validator: v,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// CreateUser はユーザーを作成する。
// 同じメールアドレスのユーザーが存在する場合は Conflict を返す。
func (s *UserService) CreateUser(ctx context.Context, req CreateUserRequest) (UserResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return UserResponse{}, err
	}

	if _, err := s.queries.GetUserByEmail(ctx, req.Email); err == nil {
		return UserResponse{}, emailExists(req.Email)
	} else if !errors.Is(err, sql.ErrNoRows) {
		return UserResponse{}, fmt.Errorf("ユーザーの検索に失敗: %w", err)
	}

	now := s.now()
	u, err := s.queries.CreateUser(ctx, notificationdb.CreateUserParams{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		if notificationdb.IsUniqueViolation(err) {
			return UserResponse{}, emailExists(req.Email)
		}
		return UserResponse{}, fmt.Errorf("ユーザーの作成に失敗: %w", err)
	}

	s.log.Info("ユーザーを作成しました", zap.Int64("user_id", u.ID))
	return toUserResponse(notificationdb.UserWithCount{User: u}), nil
}

// GetUser はユーザーを取得する。
func (s *UserService) GetUser(ctx context.Context, id int64) (UserResponse, error) {
	u, err := s.queries.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return UserResponse{}, userNotFound(id)
		}
		return UserResponse{}, fmt.Errorf("ユーザーの取得に失敗: %w", err)
	}
	return toUserResponse(u), nil
}

// GetAllUsers はすべてのユーザーを通知件数付きで返す。
func (s *UserService) GetAllUsers(ctx context.Context) ([]UserResponse, error) {
	users, err := s.queries.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("ユーザー一覧の取得に失敗: %w", err)
	}
	responses := make([]UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, toUserResponse(u))
	}
	return responses, nil
}

func userNotFound(id int64) error {
	return apperror.NotFound("User with ID %d not found", id)
}

func emailExists(email string) error {
	return apperror.Conflict("User with email %s already exists", email)
}
