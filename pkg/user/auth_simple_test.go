package user

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_AuthSimple_CreateToken_happy(t *testing.T) {
	authContext := NewSimpleAuth(newUsersDatabase("test_user", "test_pass"))

	token, err := authContext.CreateToken("test_user", "test_pass")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
}

func Test_AuthSimple_CreateToken_error(t *testing.T) {
	authContext := NewSimpleAuth(newUsersDatabase("test_user", "test_pass"))

	token, err := authContext.CreateToken("test_user", "wrong_pass")
	assert.Equal(t, ErrInvalidCredentials, err)
	assert.Empty(t, token)
}

func Test_AuthSimple_AuthMiddleware_happy(t *testing.T) {
	authContext := NewSimpleAuth(newUsersDatabase("test_user", "test_pass"))
	token, err := authContext.CreateToken("test_user", "test_pass")
	require.NoError(t, err)

	var seen *User
	handler := authContext.AuthMiddleware(RequireAuthentication(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = UserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})))
	server := httptest.NewServer(handler)
	defer server.Close()

	req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, seen)
	assert.Equal(t, "test_user", seen.Username)
}

func Test_AuthSimple_AuthMiddleware_invalid_token(t *testing.T) {
	authContext := NewSimpleAuth(newUsersDatabase("test_user", "test_pass"))
	other := NewSimpleAuth(newUsersDatabase("test_user", "test_pass"))
	token, err := other.CreateToken("test_user", "test_pass")
	require.NoError(t, err)

	handler := authContext.AuthMiddleware(RequireAuthentication(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))
	server := httptest.NewServer(handler)
	defer server.Close()

	req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
