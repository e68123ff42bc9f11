package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Renal37/quickserve/internal/models"
	"github.com/Renal37/quickserve/internal/utils"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrDuplicateUser = errors.New("пользователь уже существует")
)

const (
	InsertUserQuery = `
        INSERT INTO
            users (id, name, email, hash, role)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING created_at
    `
	SelectUserByEmailQuery = `
        SELECT
            id,
            name,
            email,
            hash,
            role,
            created_at
        FROM
            users
        WHERE
            email = $1
    `
	SelectUserByIDQuery = `
        SELECT
            id,
            name,
            email,
            hash,
            role,
            created_at
        FROM
            users
        WHERE
            id = $1
    `
)

type UserDB struct {
	models.User
}

// CreateUser создает нового пользователя в базе данных
func (d *Database) CreateUser(ctx context.Context, user UserDB) (*UserDB, error) {
	var createdAt time.Time
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	err := d.db.QueryRow(ctx, InsertUserQuery, user.ID, user.Name, user.Email, user.Hash, string(user.Role)).Scan(&createdAt)
	if err != nil {
		if _, ok := uniqueViolation(err); ok {
			return nil, ErrDuplicateUser
		}
		return nil, fmt.Errorf("ошибка при создании пользователя: %w", err)
	}

	user.CreatedAt = utils.NewRFC3339Date(createdAt)
	return &user, nil
}

// FindUserByEmail находит пользователя по email
func (d *Database) FindUserByEmail(ctx context.Context, email string) (*UserDB, error) {
	return d.findUser(ctx, SelectUserByEmailQuery, email)
}

// FindUserByID находит пользователя по идентификатору
func (d *Database) FindUserByID(ctx context.Context, userID uuid.UUID) (*UserDB, error) {
	return d.findUser(ctx, SelectUserByIDQuery, userID)
}

func (d *Database) findUser(ctx context.Context, query string, arg interface{}) (*UserDB, error) {
	user := &UserDB{}
	var (
		role      string
		createdAt time.Time
	)

	if err := d.db.QueryRow(ctx, query, arg).Scan(&user.ID, &user.Name, &user.Email, &user.Hash, &role, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка при получении пользователя: %w", err)
	}

	user.Role = models.Role(role)
	user.CreatedAt = utils.NewRFC3339Date(createdAt)
	return user, nil
}
