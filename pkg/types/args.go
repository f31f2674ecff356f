package types

var (
	Version = "head"
)

type Args struct {
	Addr         string `arg:"env:HOOKEDIT_ADDR" default:":8080" help:"sets host:port to bind for the sandbox hub server."`
	Base         string `arg:"env:HOOKEDIT_BASE" default:"/" help:"sets the base for http router."`
	Hostname     string `arg:"env:HOOKEDIT_HOSTNAME" help:"sets the hostname for display."`
	AuthProvider string `arg:"--auth-provider,env:HOOKEDIT_AUTH_PROVIDER" default:"basic" help:"sets the auth provider to use. Currently none, simple and basic are supported."`
	Level        string `arg:"env:HOOKEDIT_LEVEL" default:"info" help:"set log level. Use debug for more logging."`
	DataDir      string `arg:"--data-dir,env:HOOKEDIT_DATA_DIR" default:"./data" help:"directory holding webhooks.yml, packages.yml and users.yml."`

	APIURL   string `arg:"--api-url,env:HOOKEDIT_API_URL" default:"http://localhost:8080/api/v1" help:"base url of the webhooks API used by the editor."`
	Org      string `arg:"--org,env:HOOKEDIT_ORG" help:"organization the webhook belongs to. Empty means the current user."`
	Username string `arg:"--username,env:HOOKEDIT_USERNAME" help:"username used to authenticate against the API."`
	Password string `arg:"--password,env:HOOKEDIT_PASSWORD" help:"password used to authenticate against the API."`
	Token    string `arg:"--token,env:HOOKEDIT_TOKEN" help:"bearer token used to authenticate against the API."`

	HealthcheckCmd   *HealthcheckCmd   `arg:"subcommand:healthcheck" help:"checks if the server is running"`
	CreateUserCmd    *CreateUserCmd    `arg:"subcommand:create-user" help:"creates a new user and saves it in configuration file"`
	CreateWebhookCmd *CreateWebhookCmd `arg:"subcommand:create-webhook" help:"opens the webhook editor to create a new webhook"`
	EditWebhookCmd   *EditWebhookCmd   `arg:"subcommand:edit-webhook" help:"opens the webhook editor for an existing webhook"`
}

type HealthcheckCmd struct {
}

type CreateUserCmd struct {
	Username string `arg:"positional"`
	Password string `arg:"--password, -p" help:"sets the password for the user"`
	Name     string `arg:"--name, -n" help:"sets the display name for the user"`
	Email    string `arg:"--email, -e" help:"sets the email for the user"`
}

type CreateWebhookCmd struct {
}

type EditWebhookCmd struct {
	WebhookID string `arg:"positional" help:"id of the webhook to edit. When omitted the webhook is picked from a list"`
}

func (Args) Version() string {
	return Version
}
