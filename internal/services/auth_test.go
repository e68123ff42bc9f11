package services

import (
	"context"
	"testing"

	"github.com/Renal37/quickserve/internal/database"
	"github.com/Renal37/quickserve/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserStorage struct {
	users map[string]database.UserDB
}

func (f *fakeUserStorage) CreateUser(_ context.Context, user database.UserDB) (*database.UserDB, error) {
	if _, ok := f.users[user.Email]; ok {
		return nil, database.ErrDuplicateUser
	}
	user.ID = uuid.New()
	f.users[user.Email] = user
	return &user, nil
}

func (f *fakeUserStorage) FindUserByEmail(_ context.Context, email string) (*database.UserDB, error) {
	user, ok := f.users[email]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (f *fakeUserStorage) FindUserByID(_ context.Context, userID uuid.UUID) (*database.UserDB, error) {
	for _, user := range f.users {
		if user.ID == userID {
			found := user
			return &found, nil
		}
	}
	return nil, nil
}

func signup(name, email, password string) models.SignupRequest {
	return models.SignupRequest{Name: &name, Email: &email, Password: &password}
}

func TestAuthServiceRegisterAndLogin(t *testing.T) {
	service := NewAuthService(&fakeUserStorage{users: map[string]database.UserDB{}})
	ctx := context.Background()

	user, err := service.Register(ctx, signup(" Asha ", "Asha@Example.com", "secret1"))
	require.NoError(t, err)
	assert.Equal(t, "Asha", user.Name)
	assert.Equal(t, "asha@example.com", user.Email)
	assert.Equal(t, models.RoleCustomer, user.Role)
	assert.NotEqual(t, "secret1", user.Hash)

	_, err = service.Register(ctx, signup("Asha", "asha@example.com", "secret1"))
	assert.ErrorIs(t, err, ErrUserIsAlreadyRegistered)

	email, password := "ASHA@example.com", "secret1"
	logged, err := service.Login(ctx, models.LoginRequest{Email: &email, Password: &password})
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)

	wrong := "secret2"
	_, err = service.Login(ctx, models.LoginRequest{Email: &email, Password: &wrong})
	assert.ErrorIs(t, err, ErrPasswordIsIncorrect)

	unknown := "nobody@example.com"
	_, err = service.Login(ctx, models.LoginRequest{Email: &unknown, Password: &password})
	assert.ErrorIs(t, err, ErrUserIsNotExist)

	found, err := service.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, found.Email)

	_, err = service.GetUser(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrUserIsNotExist)
}

func TestAuthServiceRegisterValidation(t *testing.T) {
	admin := models.RoleAdmin
	shopkeeper := models.RoleShopkeeper

	withRole := func(req models.SignupRequest, role *models.Role) models.SignupRequest {
		req.Role = role
		return req
	}

	tests := []struct {
		name    string
		req     models.SignupRequest
		wantErr bool
	}{
		{name: "valid shopkeeper", req: withRole(signup("Ravi", "ravi@example.com", "secret1"), &shopkeeper)},
		{name: "empty name", req: signup(" ", "a@example.com", "secret1"), wantErr: true},
		{name: "bad email", req: signup("A", "not-an-email", "secret1"), wantErr: true},
		{name: "short password", req: signup("A", "b@example.com", "12345"), wantErr: true},
		{name: "admin role", req: withRole(signup("A", "c@example.com", "secret1"), &admin), wantErr: true},
	}

	service := NewAuthService(&fakeUserStorage{users: map[string]database.UserDB{}})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := service.Register(context.Background(), tt.req)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, *tt.req.Role, user.Role)
		})
	}
}
