package server

import (
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/go-chi/chi/v5"
	"github.com/kekaadrenalin/hookedit/pkg/catalog"
	"github.com/kekaadrenalin/hookedit/pkg/user"
	"github.com/kekaadrenalin/hookedit/pkg/webhook"
)

type AuthProvider string

const (
	ProviderNone   AuthProvider = "none"
	ProviderSimple AuthProvider = "simple"
	ProviderBasic  AuthProvider = "basic"
)

var ValidAuthProviders = map[string]bool{
	string(ProviderNone):   true,
	string(ProviderSimple): true,
	string(ProviderBasic):  true,
}

// Config is a struct for configuring the web service
type Config struct {
	Base          string
	Addr          string
	Version       string
	Hostname      string
	Authorization Authorization
}

type Authorization struct {
	Provider   AuthProvider
	Authorizer Authorizer
}

type Authorizer interface {
	AuthMiddleware(http.Handler) http.Handler
	CreateToken(string, string) (string, error)
}

type handler struct {
	webhooks *webhook.WebhooksDatabase
	packages *catalog.PackagesDatabase
	config   *Config
}

func CreateServer(webhooks *webhook.WebhooksDatabase, packages *catalog.PackagesDatabase, config Config) *http.Server {
	h := &handler{
		webhooks: webhooks,
		packages: packages,
		config:   &config,
	}

	return &http.Server{Addr: config.Addr, Handler: createRouter(h)} //nolint:gosec
}

func createRouter(h *handler) *chi.Mux {
	base := h.config.Base
	r := chi.NewRouter()
	r.Use(cspHeaders)

	if h.config.Authorization.Provider != ProviderNone && h.config.Authorization.Authorizer == nil {
		log.Panic("Authorization provider is set but no authorizer is provided")
	}

	r.Route(base, func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if h.config.Authorization.Provider != ProviderNone {
				r.Use(h.config.Authorization.Authorizer.AuthMiddleware)
				r.Use(user.RequireAuthentication)
			}

			r.Route("/api/v1/webhooks", func(r chi.Router) {
				r.Get("/user", h.listWebhooks)
				r.Post("/user", h.createWebhook)
				r.Get("/org/{orgName}", h.listWebhooks)
				r.Post("/org/{orgName}", h.createWebhook)

				r.Get("/{webhookID}/user", h.getWebhook)
				r.Put("/{webhookID}/user", h.updateWebhook)
				r.Get("/{webhookID}/org/{orgName}", h.getWebhook)
				r.Put("/{webhookID}/org/{orgName}", h.updateWebhook)
			})

			r.Get("/api/v1/packages/search", h.searchPackages)
		})

		if h.config.Authorization.Provider == ProviderSimple {
			r.Post("/api/token", h.createToken)
			r.Delete("/api/token", h.deleteToken)
		}

		r.Get("/healthcheck", h.healthcheck)
		r.Get("/version", h.version)

		defaultHandler := http.StripPrefix(strings.Replace(base+"/", "//", "/", 1), http.HandlerFunc(h.error))
		r.Get("/*", func(w http.ResponseWriter, req *http.Request) {
			defaultHandler.ServeHTTP(w, req)
		})
	})

	if base != "/" {
		r.Get(base, func(w http.ResponseWriter, req *http.Request) {
			http.Redirect(w, req, base+"/", http.StatusMovedPermanently)
		})
	}

	return r
}

func cspHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		next.ServeHTTP(w, r)
	})
}
