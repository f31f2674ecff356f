package main

import (
	"errors"
	"os"
	"reflect"
	"strings"

	"github.com/alexflint/go-arg"
	log "github.com/sirupsen/logrus"

	commands "github.com/kekaadrenalin/hookedit/pkg/command"
	myErrors "github.com/kekaadrenalin/hookedit/pkg/errors"
	argsType "github.com/kekaadrenalin/hookedit/pkg/types"
)

func main() {
	args, subcommand := parseArgs()
	validateEnvVars()

	if subcommand != nil {
		switch subcommand.(type) {
		case *argsType.HealthcheckCmd:
			if err := commands.Healthcheck(args.Addr, args.Base); err != nil {
				log.Fatal(err)
			}

		case *argsType.CreateUserCmd:
			newUser, err := commands.CreateUser(args)
			if err != nil {
				log.Fatalf("Could not create new user: %s", err)
			}

			log.Infof("User %s successfully saved", newUser.Username)

		case *argsType.CreateWebhookCmd:
			_, err := commands.CreateWebhook(args)
			handleEditorError(err)

			log.Infoln("Webhook successfully added")

		case *argsType.EditWebhookCmd:
			_, err := commands.EditWebhook(args)
			handleEditorError(err)

			log.Infoln("Webhook successfully updated")
		}

		os.Exit(0)
	}

	commands.Default(args)
}

func handleEditorError(err error) {
	switch {
	case err == nil:
		return
	case errors.Is(err, commands.ErrCancelled):
		log.Infoln("Good bye! :)")
		os.Exit(0)
	case errors.Is(err, myErrors.ErrLoginRedirect):
		log.Fatal("Session expired or credentials rejected, log in again")
	default:
		log.Fatalf("Webhook editor failed: %s", err)
	}
}

func parseArgs() (argsType.Args, interface{}) {
	var args argsType.Args
	parser := arg.MustParse(&args)

	configureLogger(args.Level)

	if args.Token != "" && args.Username != "" {
		parser.Fail("use either --token or --username, not both")
	}

	return args, parser.Subcommand()
}

func configureLogger(level string) {
	if l, err := log.ParseLevel(level); err == nil {
		log.SetLevel(l)
	} else {
		panic(any(err))
	}

	log.SetFormatter(&log.TextFormatter{
		DisableLevelTruncation: true,
	})
}

func validateEnvVars() {
	argsType := reflect.TypeOf(argsType.Args{})
	expectedEnvs := make(map[string]bool)

	for i := 0; i < argsType.NumField(); i++ {
		field := argsType.Field(i)

		for _, tag := range strings.Split(field.Tag.Get("arg"), ",") {
			if strings.HasPrefix(tag, "env:") {
				expectedEnvs[strings.TrimPrefix(tag, "env:")] = true
			}
		}
	}

	for _, env := range os.Environ() {
		actual := strings.Split(env, "=")[0]

		if strings.HasPrefix(actual, "HOOKEDIT_") && !expectedEnvs[actual] {
			log.Warnf("Unexpected environment variable %s", actual)
		}
	}
}
