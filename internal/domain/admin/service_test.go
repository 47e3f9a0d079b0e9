package admin

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/bookstore-admin/internal/auth"
	"github.com/example/bookstore-admin/internal/infrastructure/store"
	"github.com/example/bookstore-admin/internal/infrastructure/store/mocks"
)

func newTestAdminService(t *testing.T) (*Service, *mocks.MockDocumentStore, *auth.JWTService) {
	t.Helper()
	docStore := mocks.NewMockDocumentStore()
	jwtService := auth.NewJWTService("test-secret-key-for-testing-purposes", 24*time.Hour)
	return NewService(docStore, jwtService), docStore, jwtService
}

func seedUser(t *testing.T, docStore *mocks.MockDocumentStore, email, password, role string, active bool) string {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	id, err := docStore.Create(context.Background(), Collection, User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     active,
	})
	require.NoError(t, err)
	return id
}

func TestService_Login_Success(t *testing.T) {
	service, docStore, jwtService := newTestAdminService(t)
	id := seedUser(t, docStore, "admin@example.com", "admin123!", RoleAdmin, true)

	token, profile, err := service.Login(context.Background(), "admin@example.com", "admin123!")

	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, id, profile.ID)
	assert.Equal(t, "Test User", profile.Name)
	assert.Equal(t, "admin@example.com", profile.Email)
	assert.Equal(t, RoleAdmin, profile.Role)

	// The token binds the user's id and role
	claims, err := jwtService.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.UserID)
	assert.Equal(t, RoleAdmin, claims.Role)
}

func TestService_Login_StaffRole(t *testing.T) {
	service, docStore, _ := newTestAdminService(t)
	seedUser(t, docStore, "staff@example.com", "staffpass", RoleStaff, true)

	_, profile, err := service.Login(context.Background(), "staff@example.com", "staffpass")

	require.NoError(t, err)
	assert.Equal(t, RoleStaff, profile.Role)
}

func TestService_Login_UnknownEmail(t *testing.T) {
	service, _, _ := newTestAdminService(t)

	token, profile, err := service.Login(context.Background(), "nobody@example.com", "whatever1")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, token)
	assert.Nil(t, profile)
}

func TestService_Login_WrongPassword(t *testing.T) {
	service, docStore, _ := newTestAdminService(t)
	seedUser(t, docStore, "admin@example.com", "admin123!", RoleAdmin, true)

	token, profile, err := service.Login(context.Background(), "admin@example.com", "wrong-password")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, token)
	assert.Nil(t, profile)
}

func TestService_Login_InactiveAccount(t *testing.T) {
	service, docStore, _ := newTestAdminService(t)
	seedUser(t, docStore, "admin@example.com", "admin123!", RoleAdmin, false)

	// The password is correct, but the account is deactivated
	_, _, err := service.Login(context.Background(), "admin@example.com", "admin123!")

	assert.ErrorIs(t, err, ErrInactiveAccount)
}

func TestService_Login_UnauthorizedRole(t *testing.T) {
	service, docStore, _ := newTestAdminService(t)
	seedUser(t, docStore, "intern@example.com", "internpass", "intern", true)

	_, _, err := service.Login(context.Background(), "intern@example.com", "internpass")

	assert.ErrorIs(t, err, ErrUnauthorizedRole)
}

func TestService_EnsureDefault_SeedsOnce(t *testing.T) {
	service, docStore, _ := newTestAdminService(t)
	ctx := context.Background()

	require.NoError(t, service.EnsureDefault(ctx, "Admin", "admin@example.com", "admin123"))

	n, err := docStore.Count(ctx, Collection, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	// A second run must not create another account
	require.NoError(t, service.EnsureDefault(ctx, "Admin", "admin@example.com", "admin123"))
	n, err = docStore.Count(ctx, Collection, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	// The seeded account can log in
	_, profile, err := service.Login(ctx, "admin@example.com", "admin123")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, profile.Role)
	assert.True(t, profileIsActive(t, docStore, profile.ID))
}

func TestService_EnsureDefault_SkipsWhenUsersExist(t *testing.T) {
	service, docStore, _ := newTestAdminService(t)
	ctx := context.Background()
	seedUser(t, docStore, "existing@example.com", "existing1", RoleAdmin, true)

	require.NoError(t, service.EnsureDefault(ctx, "Admin", "admin@example.com", "admin123"))

	found, err := docStore.FindOne(ctx, Collection, store.Filter{"email": "admin@example.com"}, &User{})
	require.NoError(t, err)
	assert.False(t, found)
}

func profileIsActive(t *testing.T, docStore *mocks.MockDocumentStore, id string) bool {
	t.Helper()
	var u User
	found, err := docStore.GetByID(context.Background(), Collection, id, &u)
	require.NoError(t, err)
	require.True(t, found)
	return u.IsActive
}
