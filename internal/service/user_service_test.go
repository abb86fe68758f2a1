package service_test

import (
	"context"
	"net/http"
	"testing"

	"backend/internal/access"
	"backend/internal/model"
	"backend/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newUserEnv(t *testing.T) (*memUsers, service.UserService) {
	t.Helper()
	users := &memUsers{byEmail: map[string]*model.User{}}
	return users, service.NewUserService(users)
}

func addActiveUser(users *memUsers, email, roleName string) *model.User {
	role := model.Role{ID: uuid.New(), Name: roleName}
	user := &model.User{
		ID: uuid.New(), Email: email,
		FirstName: "Test", LastName: "User",
		IsActive: true, RoleID: role.ID, Role: role,
	}
	users.byEmail[email] = user
	return user
}

func TestListUsersReadAll(t *testing.T) {
	users, svc := newUserEnv(t)
	caller := access.Authenticated(addActiveUser(users, "a@test.local", "user"))
	addActiveUser(users, "b@test.local", "user")
	addActiveUser(users, "c@test.local", "user")

	rule := &model.AccessRule{CanReadAll: true}
	list, total, err := svc.ListUsers(context.Background(), caller, rule, 0, 20)
	require.NoError(t, err)
	assert.Len(t, list, 3)
	assert.EqualValues(t, 3, total)
}

func TestListUsersOwnOnly(t *testing.T) {
	users, svc := newUserEnv(t)
	self := addActiveUser(users, "a@test.local", "user")
	addActiveUser(users, "b@test.local", "user")

	rule := &model.AccessRule{CanReadOwn: true}
	list, total, err := svc.ListUsers(context.Background(), access.Authenticated(self), rule, 0, 20)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, self.ID, list[0].ID)
}

func TestGetUserOwnVsForeign(t *testing.T) {
	users, svc := newUserEnv(t)
	self := addActiveUser(users, "a@test.local", "user")
	other := addActiveUser(users, "b@test.local", "user")
	caller := access.Authenticated(self)

	// read-own only: own detail succeeds, someone else's is denied
	rule := &model.AccessRule{CanReadOwn: true}

	got, err := svc.GetUser(context.Background(), caller, rule, self.ID)
	require.NoError(t, err)
	assert.Equal(t, self.Email, got.Email)

	_, err = svc.GetUser(context.Background(), caller, rule, other.ID)
	require.Error(t, err)
	accessErr, ok := access.AsError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, accessErr.Status)
}

func TestGetUserNotFound(t *testing.T) {
	users, svc := newUserEnv(t)
	caller := access.Authenticated(addActiveUser(users, "a@test.local", "user"))

	_, err := svc.GetUser(context.Background(), caller, &model.AccessRule{CanReadAll: true}, uuid.New())
	require.Error(t, err)
	accessErr, ok := access.AsError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, accessErr.Status)
}

func TestGetUserSoftDeletedIsNotFound(t *testing.T) {
	users, svc := newUserEnv(t)
	caller := access.Authenticated(addActiveUser(users, "a@test.local", "admin"))
	deleted := addActiveUser(users, "gone@test.local", "user")
	deleted.IsActive = false

	_, err := svc.GetUser(context.Background(), caller, &model.AccessRule{CanReadAll: true}, deleted.ID)
	require.Error(t, err)
	accessErr, ok := access.AsError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, accessErr.Status)
}

func TestUpdateUserPartial(t *testing.T) {
	users, svc := newUserEnv(t)
	self := addActiveUser(users, "a@test.local", "user")
	caller := access.Authenticated(self)
	rule := &model.AccessRule{CanUpdateOwn: true}

	newFirst := "Renamed"
	newPassword := "newsecret"
	resp, err := svc.UpdateUser(context.Background(), caller, rule, self.ID, service.UpdateUserRequest{
		FirstName: &newFirst,
		Password:  &newPassword,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", resp.FirstName)
	assert.Equal(t, "User", resp.LastName, "untouched fields keep their value")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(self.PasswordHash), []byte("newsecret")))
}

func TestUpdateUserForeignDenied(t *testing.T) {
	users, svc := newUserEnv(t)
	self := addActiveUser(users, "a@test.local", "user")
	other := addActiveUser(users, "b@test.local", "user")
	rule := &model.AccessRule{CanUpdateOwn: true}

	newFirst := "Hacked"
	_, err := svc.UpdateUser(context.Background(), access.Authenticated(self), rule, other.ID, service.UpdateUserRequest{FirstName: &newFirst})
	require.Error(t, err)
	accessErr, ok := access.AsError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, accessErr.Status)
	assert.NotEqual(t, "Hacked", other.FirstName)
}

func TestDeleteUserIsSoft(t *testing.T) {
	users, svc := newUserEnv(t)
	self := addActiveUser(users, "a@test.local", "user")
	rule := &model.AccessRule{CanDeleteOwn: true}

	require.NoError(t, svc.DeleteUser(context.Background(), access.Authenticated(self), rule, self.ID))

	stored := users.byEmail["a@test.local"]
	require.NotNil(t, stored, "row is retained")
	assert.False(t, stored.IsActive)
	assert.NotNil(t, stored.DeletedAt)
}

func TestDeleteUserAllScopeIgnoresOwnership(t *testing.T) {
	users, svc := newUserEnv(t)
	admin := addActiveUser(users, "admin@test.local", "admin")
	victim := addActiveUser(users, "b@test.local", "user")
	rule := &model.AccessRule{CanDeleteAll: true}

	require.NoError(t, svc.DeleteUser(context.Background(), access.Authenticated(admin), rule, victim.ID))
	assert.False(t, victim.IsActive)
}
