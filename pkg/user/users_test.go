package user

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/kekaadrenalin/hookedit/pkg/helper"
)

func Test_CreateUser_happy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "users.yml")

	testUser := User{
		Username: "testuser",
		Email:    "test@example.com",
		Password: "testpassword",
	}

	createdUser, err := CreateUser(path, testUser)

	assert.NoError(t, err, "expected no error during user creation")
	assert.Equal(t, testUser.Username, createdUser.Username, "expected username to match")
	assert.Equal(t, "testuser", createdUser.Name, "expected name to default to username")
	assert.Equal(t, helper.HashPassword("testpassword"), createdUser.Password, "expected password to be hashed")

	usersDB, err := ReadUsersFromFile(path)
	require.NoError(t, err)
	assert.NotNil(t, usersDB.FindByPassword("testuser", "testpassword"))
}

func Test_CreateUser_error_exists(t *testing.T) {
	path := writeUsersFile(t, User{
		Username: "testuser",
		Email:    "test@example.com",
		Name:     "Test User",
		Password: helper.HashPassword("testpassword"),
	})

	_, err := CreateUser(path, User{Username: "testuser", Password: "other"})

	assert.Error(t, err, "expected error during user creation")
}

func Test_CreateUser_error_missing_password(t *testing.T) {
	_, err := CreateUser(filepath.Join(t.TempDir(), "users.yml"), User{Username: "testuser"})

	assert.ErrorIs(t, err, ErrInvalidUser)
}

func Test_ReadUsersFromFile_invalid_hash(t *testing.T) {
	path := writeUsersFile(t, User{Username: "testuser", Password: "plain"})

	_, err := ReadUsersFromFile(path)

	assert.ErrorIs(t, err, ErrInvalidUser)
}

func Test_FindByPassword_happy(t *testing.T) {
	usersDB := newUsersDatabase("testuser", "testpassword")

	foundUser := usersDB.FindByPassword("testuser", "testpassword")
	require.NotNil(t, foundUser, "expected user to be found with correct password")
	assert.Equal(t, "testuser", foundUser.Username, "expected username to match")
}

func Test_FindByPassword_wrong_password(t *testing.T) {
	usersDB := newUsersDatabase("testuser", "testpassword")

	assert.Nil(t, usersDB.FindByPassword("testuser", "wrongpassword"))
	assert.Nil(t, usersDB.FindByPassword("nobody", "testpassword"))
}

func Test_RequireAuthentication_unauthorized(t *testing.T) {
	srv := httptest.NewServer(RequireAuthentication(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err, "expected no error in HTTP request")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "expected HTTP status 401 Unauthorized")
}

func Test_UserFromContext_remote_user(t *testing.T) {
	ctx := context.WithValue(context.Background(), remoteUser, User{Username: "jdoe"})

	found := UserFromContext(ctx)
	require.NotNil(t, found)
	assert.Equal(t, "jdoe", found.Username)

	assert.Nil(t, UserFromContext(context.Background()))
}

func newUsersDatabase(username, password string) *UsersDatabase {
	return &UsersDatabase{
		Users: map[string]*User{
			username: {Username: username, Name: username, Password: helper.HashPassword(password)},
		},
	}
}

func writeUsersFile(t *testing.T, user User) string {
	data := map[string]map[string]User{
		"users": {
			user.Username: user,
		},
	}

	yamlBytes, err := yaml.Marshal(data)
	if err != nil {
		t.Fatalf("failed generate yml string: %s", err)
	}

	path := filepath.Join(t.TempDir(), "users.yml")
	if err = os.WriteFile(path, yamlBytes, 0600); err != nil {
		t.Fatalf("failed to write users file: %s", err)
	}

	return path
}
