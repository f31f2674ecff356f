package user

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/go-chi/jwtauth/v5"
	"github.com/kekaadrenalin/hookedit/pkg/helper"
	"gopkg.in/yaml.v3"
)

type User struct {
	Username string `json:"username" yaml:"-"`
	Email    string `json:"email" yaml:"email"`
	Name     string `json:"name" yaml:"name"`
	Password string `json:"-" yaml:"password"`
}

type UsersDatabase struct {
	Users    map[string]*User `yaml:"users"`
	LastRead time.Time        `yaml:"-"`
	Path     string           `yaml:"-"`

	mu sync.Mutex
}

type contextKey string

const remoteUser contextKey = "remoteUser"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidUser        = errors.New("invalid user")
)

func ReadUsersFromFile(path string) (*UsersDatabase, error) {
	users, err := decodeUsersFromFile(path)
	if err != nil {
		return nil, err
	}

	users.LastRead = time.Now()
	users.Path = path

	return users, nil
}

// CreateUser adds user to the users file at path, hashing the plain text password.
func CreateUser(path string, user User) (User, error) {
	if user.Username == "" || user.Password == "" {
		return user, fmt.Errorf("%w: username and password are required", ErrInvalidUser)
	}

	user.Password = helper.HashPassword(user.Password)
	if user.Name == "" {
		user.Name = user.Username
	}

	users, err := ReadUsersFromFile(path)
	if err != nil {
		return user, err
	}

	if _, exists := users.Users[user.Username]; exists {
		return user, fmt.Errorf("user %s is exists", user.Username)
	}

	users.Users[user.Username] = &user

	data, err := yaml.Marshal(users)
	if err != nil {
		return user, err
	}

	if err = helper.WriteFileAtomic(path, data); err != nil {
		return user, err
	}

	return user, nil
}

func decodeUsersFromFile(path string) (*UsersDatabase, error) {
	users := &UsersDatabase{Users: map[string]*User{}}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return users, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(users); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	if users.Users == nil {
		users.Users = map[string]*User{}
	}

	for username, user := range users.Users {
		user.Username = username

		if len(user.Password) != 128 {
			return nil, fmt.Errorf("%w: user %s has an invalid password hash", ErrInvalidUser, username)
		}

		if user.Name == "" {
			user.Name = username
		}
	}

	return users, nil
}

func (u *UsersDatabase) readFileIfChanged() error {
	if u.Path == "" {
		return nil
	}

	info, err := os.Stat(u.Path)
	if err != nil {
		return err
	}

	if info.ModTime().After(u.LastRead) {
		log.Infof("Found changes to %s. Updating users...", u.Path)
		users, err := decodeUsersFromFile(u.Path)
		if err != nil {
			return err
		}
		u.Users = users.Users
		u.LastRead = time.Now()
	}

	return nil
}

func (u *UsersDatabase) Find(username string) *User {
	u.mu.Lock()
	defer u.mu.Unlock()

	if err := u.readFileIfChanged(); err != nil {
		log.Errorf("Error reading users file: %s", err)
	}

	user, ok := u.Users[username]
	if !ok {
		return nil
	}

	found := *user

	return &found
}

func (u *UsersDatabase) FindByPassword(username, password string) *User {
	user := u.Find(username)
	if user == nil {
		return nil
	}

	if user.Password != helper.HashPassword(password) {
		return nil
	}

	return user
}

//goland:noinspection GoNameStartsWithPackageName
func UserFromContext(ctx context.Context) *User {
	if user, ok := ctx.Value(remoteUser).(User); ok {
		return &user
	}

	if _, claims, err := jwtauth.FromContext(ctx); err == nil {
		username, ok := claims["username"].(string)
		if !ok || username == "" {
			return nil
		}

		email, _ := claims["email"].(string)
		name, _ := claims["name"].(string)

		return &User{Username: username, Email: email, Name: name}
	}

	return nil
}

func RequireAuthentication(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserFromContext(r.Context()) == nil {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}
