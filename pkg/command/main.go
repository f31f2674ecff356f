package command

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/kekaadrenalin/hookedit/pkg/catalog"
	"github.com/kekaadrenalin/hookedit/pkg/helper"
	"github.com/kekaadrenalin/hookedit/pkg/server"
	"github.com/kekaadrenalin/hookedit/pkg/types"
	"github.com/kekaadrenalin/hookedit/pkg/user"
	"github.com/kekaadrenalin/hookedit/pkg/webhook"
)

// Default runs the sandbox webhooks hub until interrupted.
func Default(args types.Args) {
	if !server.ValidAuthProviders[args.AuthProvider] {
		log.Fatalf("Invalid auth provider %s", args.AuthProvider)
	}

	log.Infof("HookEdit version %s", types.Version)

	srv := createServer(args)
	go func() {
		log.Infof("Accepting connections on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	stop()

	log.Info("shutting down gracefully, press Ctrl+C again to force")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal(err)
	}

	log.Debug("shutdown complete")
}

func dataFile(args types.Args, name string) string {
	path, err := filepath.Abs(filepath.Join(args.DataDir, name))
	if err != nil {
		log.Fatalf("Could not find absolute path to %s file: %s", name, err)
	}

	return path
}

func createServer(args types.Args) *http.Server {
	webhooksPath := dataFile(args, "webhooks.yml")
	if err := helper.EnsureDir(webhooksPath); err != nil {
		log.Fatalf("Could not create data directory %s: %s", args.DataDir, err)
	}

	webhooks, err := webhook.ReadWebhooksFromFile(webhooksPath)
	if err != nil {
		log.Fatalf("Could not read webhooks.yml file: %s", err)
	}

	packages, err := catalog.ReadPackagesFromFile(dataFile(args, "packages.yml"))
	if err != nil {
		log.Fatalf("Could not read packages.yml file: %s", err)
	}

	var provider = server.ProviderNone
	var authorizer server.Authorizer

	if args.AuthProvider != string(server.ProviderNone) {
		path := dataFile(args, "users.yml")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			log.Fatalf("Could not find users.yml file at %s", path)
		}

		users, err := user.ReadUsersFromFile(path)
		if err != nil {
			log.Fatalf("Could not read users.yml file at %s: %s", path, err)
		}

		switch server.AuthProvider(args.AuthProvider) {
		case server.ProviderSimple:
			provider = server.ProviderSimple
			authorizer = user.NewSimpleAuth(users)
		case server.ProviderBasic:
			provider = server.ProviderBasic
			authorizer = user.NewBasicAuth(users)
		}
	}

	config := server.Config{
		Addr:     args.Addr,
		Base:     args.Base,
		Version:  types.Version,
		Hostname: args.Hostname,
		Authorization: server.Authorization{
			Provider:   provider,
			Authorizer: authorizer,
		},
	}

	return server.CreateServer(webhooks, packages, config)
}
