package db

import (
	"context"
	"time"
)

const createUser = `-- name: CreateUser :one
INSERT INTO users (email, first_name, last_name, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)
RETURNING id, email, first_name, last_name, created_at, updated_at
`

// CreateUserParams は CreateUser の引数。
type CreateUserParams struct {
	Email     string
	FirstName string
	LastName  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateUser はユーザーを挿入し、挿入した行を返す。
func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	row := q.db.QueryRowContext(ctx, createUser,
		arg.Email,
		arg.FirstName,
		arg.LastName,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	var i User
	err := row.Scan(
		&i.ID,
		&i.Email,
		&i.FirstName,
		&i.LastName,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getUserByEmail = `-- name: GetUserByEmail :one
SELECT id, email, first_name, last_name, created_at, updated_at
FROM users
WHERE email = ?
`

// GetUserByEmail はメールアドレスでユーザーを取得する。
func (q *Queries) GetUserByEmail(ctx context.Context, email string) (User, error) {
	row := q.db.QueryRowContext(ctx, getUserByEmail, email)
	var i User
	err := row.Scan(
		&i.ID,
		&i.Email,
		&i.FirstName,
		&i.LastName,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const selectUserWithCount = `
SELECT u.id, u.email, u.first_name, u.last_name, u.created_at, u.updated_at,
       (SELECT COUNT(*) FROM notifications n WHERE n.user_id = u.id) AS notifications_count
FROM users u
`

const getUser = `-- name: GetUser :one` + selectUserWithCount + `WHERE u.id = ?
`

// GetUser はIDでユーザーと通知件数を取得する。
func (q *Queries) GetUser(ctx context.Context, id int64) (UserWithCount, error) {
	row := q.db.QueryRowContext(ctx, getUser, id)
	var i UserWithCount
	err := row.Scan(
		&i.ID,
		&i.Email,
		&i.FirstName,
		&i.LastName,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.NotificationsCount,
	)
	return i, err
}

const listUsers = `-- name: ListUsers :many` + selectUserWithCount + `ORDER BY u.id
`

// ListUsers はすべてのユーザーと通知件数をID順に取得する。
func (q *Queries) ListUsers(ctx context.Context) ([]UserWithCount, error) {
	rows, err := q.db.QueryContext(ctx, listUsers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []UserWithCount{}
	for rows.Next() {
		var i UserWithCount
		if err := rows.Scan(
			&i.ID,
			&i.Email,
			&i.FirstName,
			&i.LastName,
			&i.CreatedAt,
			&i.UpdatedAt,
			&i.NotificationsCount,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
