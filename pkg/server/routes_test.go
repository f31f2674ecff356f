package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kekaadrenalin/hookedit/pkg/api"
	"github.com/kekaadrenalin/hookedit/pkg/catalog"
	"github.com/kekaadrenalin/hookedit/pkg/editor"
	"github.com/kekaadrenalin/hookedit/pkg/helper"
	"github.com/kekaadrenalin/hookedit/pkg/types"
	"github.com/kekaadrenalin/hookedit/pkg/user"
	"github.com/kekaadrenalin/hookedit/pkg/webhook"
)

const testPackages = `packages:
  - packageId: p1
    kind: 0
    name: nginx
    organizationName: bitnami
  - packageId: p2
    kind: 2
    name: gatekeeper-policies
    userAlias: jdoe
`

func setupServer(t *testing.T, authorization Authorization) (*httptest.Server, *webhook.WebhooksDatabase) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "packages.yml"), []byte(testPackages), 0600))

	webhooks, err := webhook.ReadWebhooksFromFile(filepath.Join(dir, "webhooks.yml"))
	require.NoError(t, err)
	packages, err := catalog.ReadPackagesFromFile(filepath.Join(dir, "packages.yml"))
	require.NoError(t, err)

	h := &handler{
		webhooks: webhooks,
		packages: packages,
		config:   &Config{Base: "/", Version: "test", Authorization: authorization},
	}

	server := httptest.NewServer(createRouter(h))
	t.Cleanup(server.Close)

	return server, webhooks
}

func basicAuthorization() Authorization {
	users := &user.UsersDatabase{Users: map[string]*user.User{
		"jdoe": {Username: "jdoe", Name: "John", Password: helper.HashPassword("secret")},
	}}

	return Authorization{Provider: ProviderBasic, Authorizer: user.NewBasicAuth(users)}
}

func validForm(search []types.Package) editor.Form {
	return editor.New().
		SetName("Release notifier").
		SetURL("https://hooks.example.com/releases").
		AddPackage(search[0])
}

func Test_Server_create_and_update_through_editor(t *testing.T) {
	server, webhooks := setupServer(t, Authorization{Provider: ProviderNone})
	client := api.NewClient(api.Config{BaseURL: server.URL + "/api/v1"})
	ctx := context.Background()

	found, err := client.SearchPackages(ctx, "nginx", nil)
	require.NoError(t, err)
	require.Len(t, found, 1)

	_, result := validForm(found).Submit(ctx, client, "acme")
	require.Equal(t, editor.Success, result.Kind)

	list, err := client.ListWebhooks(ctx, "acme")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "bitnami", list[0].Packages[0].OrganizationName)
	assert.Empty(t, webhooks.List(webhook.UserOwner(anonymous)))

	stored, err := client.GetWebhook(ctx, list[0].WebhookID, "acme")
	require.NoError(t, err)

	f := editor.FromWebhook(stored).
		SetPayloadKind(types.PayloadCustom).
		SetContentType("application/json").
		SetTemplate(editor.SlackPayloadExample).
		ToggleEventKind(types.SecurityAlert)
	_, result = f.Submit(ctx, client, "acme")
	require.Equal(t, editor.Success, result.Kind)

	updated := webhooks.Find(webhook.OrgOwner("acme"), stored.WebhookID)
	require.NotNil(t, updated)
	assert.Equal(t, types.PayloadCustom, updated.PayloadKind())
	assert.Equal(t, []types.EventKind{types.NewPackageRelease, types.SecurityAlert}, updated.EventKinds)
}

func Test_Server_bad_request_message_reaches_editor(t *testing.T) {
	server, _ := setupServer(t, Authorization{Provider: ProviderNone})
	client := api.NewClient(api.Config{BaseURL: server.URL + "/api/v1"})

	unknown := types.Package{PackageID: "missing", Name: "ghost"}
	f, result := validForm([]types.Package{unknown}).Submit(context.Background(), client, "")

	assert.Equal(t, editor.APIError, result.Kind)
	assert.Equal(t, "An error occurred adding the webhook: unknown package missing", f.APIError())
}

func Test_Server_rejects_invalid_body(t *testing.T) {
	server, _ := setupServer(t, Authorization{Provider: ProviderNone})

	resp, err := http.Post(server.URL+"/api/v1/webhooks/user", "application/json", strings.NewReader(`{"name":"","url":"nope","eventKinds":[0],"packages":[{"packageId":"p1"}]}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
}

func Test_Server_update_unknown_webhook(t *testing.T) {
	server, _ := setupServer(t, Authorization{Provider: ProviderNone})
	client := api.NewClient(api.Config{BaseURL: server.URL + "/api/v1"})

	err := client.UpdateWebhook(context.Background(), types.Webhook{
		WebhookID:  "missing",
		Name:       "n",
		URL:        "https://example.com",
		EventKinds: []types.EventKind{types.NewPackageRelease},
		Packages:   []types.Package{{PackageID: "p1"}},
	}, "")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func Test_Server_basic_auth_user_scope(t *testing.T) {
	server, webhooks := setupServer(t, basicAuthorization())
	ctx := context.Background()

	client := api.NewClient(api.Config{BaseURL: server.URL + "/api/v1", Username: "jdoe", Password: "secret"})
	found, err := client.SearchPackages(ctx, "", []string{"p2"})
	require.NoError(t, err)
	require.Len(t, found, 1)

	_, result := validForm(found).Submit(ctx, client, "")
	require.Equal(t, editor.Success, result.Kind)
	assert.Len(t, webhooks.List(webhook.UserOwner("jdoe")), 1)
}

func Test_Server_basic_auth_login_redirect(t *testing.T) {
	server, _ := setupServer(t, basicAuthorization())

	client := api.NewClient(api.Config{BaseURL: server.URL + "/api/v1", Username: "jdoe", Password: "wrong"})
	_, result := validForm([]types.Package{{PackageID: "p1"}}).Submit(context.Background(), client, "")

	assert.Equal(t, editor.AuthError, result.Kind)
}

func Test_Server_search_invalid_limit(t *testing.T) {
	server, _ := setupServer(t, Authorization{Provider: ProviderNone})

	resp, err := http.Get(server.URL + "/api/v1/packages/search?limit=zero")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func Test_Server_healthcheck_and_version(t *testing.T) {
	server, _ := setupServer(t, basicAuthorization())

	resp, err := http.Get(server.URL + "/healthcheck")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(server.URL + "/version")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func Test_Server_simple_auth_token(t *testing.T) {
	users := &user.UsersDatabase{Users: map[string]*user.User{
		"jdoe": {Username: "jdoe", Name: "John", Password: helper.HashPassword("secret")},
	}}
	server, _ := setupServer(t, Authorization{Provider: ProviderSimple, Authorizer: user.NewSimpleAuth(users)})

	req, _ := http.NewRequest(http.MethodPost, server.URL+"/api/token", nil)
	req.SetBasicAuth("jdoe", "secret")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var token string
	for _, cookie := range resp.Cookies() {
		if cookie.Name == jwtCookie {
			token = cookie.Value
		}
	}
	require.NotEmpty(t, token)

	client := api.NewClient(api.Config{BaseURL: server.URL + "/api/v1", Token: token})
	webhooks, err := client.ListWebhooks(context.Background(), "")
	assert.NoError(t, err)
	assert.Empty(t, webhooks)

	unauthenticated := api.NewClient(api.Config{BaseURL: server.URL + "/api/v1"})
	_, err = unauthenticated.ListWebhooks(context.Background(), "")
	assert.Error(t, err)
}
