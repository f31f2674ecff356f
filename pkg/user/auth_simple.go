package user

import (
	"net/http"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
)

const tokenTTL = 24 * time.Hour

type simpleAuthContext struct {
	UsersDatabase *UsersDatabase
	tokenAuth     *jwtauth.JWTAuth
}

// NewSimpleAuth issues HS256 tokens signed with a secret generated at startup.
func NewSimpleAuth(userDatabase *UsersDatabase) *simpleAuthContext {
	return &simpleAuthContext{
		UsersDatabase: userDatabase,
		tokenAuth:     jwtauth.New("HS256", []byte(uuid.NewString()), nil),
	}
}

func (a *simpleAuthContext) AuthMiddleware(next http.Handler) http.Handler {
	return jwtauth.Verify(a.tokenAuth, jwtauth.TokenFromHeader, jwtauth.TokenFromCookie)(next)
}

func (a *simpleAuthContext) CreateToken(username, password string) (string, error) {
	user := a.UsersDatabase.FindByPassword(username, password)
	if user == nil {
		return "", ErrInvalidCredentials
	}

	claims := map[string]interface{}{
		"username": user.Username,
		"email":    user.Email,
		"name":     user.Name,
	}
	jwtauth.SetIssuedNow(claims)
	jwtauth.SetExpiryIn(claims, tokenTTL)

	_, token, err := a.tokenAuth.Encode(claims)
	if err != nil {
		return "", err
	}

	return token, nil
}
