package command

import (
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/kekaadrenalin/hookedit/pkg/types"
	"github.com/kekaadrenalin/hookedit/pkg/user"
)

func CreateUser(args types.Args) (user.User, error) {
	if args.CreateUserCmd.Username == "" {
		log.Fatal("Username is required")
	}

	password := args.CreateUserCmd.Password
	if password == "" {
		password = NewCliInput("Password for "+args.CreateUserCmd.Username, "", 128, true)
	}

	path, err := filepath.Abs(filepath.Join(args.DataDir, "users.yml"))
	if err != nil {
		log.Fatalf("Could not find absolute path to users.yml file: %s", err)
	}

	return user.CreateUser(path, user.User{
		Username: args.CreateUserCmd.Username,
		Password: password,
		Name:     args.CreateUserCmd.Name,
		Email:    args.CreateUserCmd.Email,
	})
}
