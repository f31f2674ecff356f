package editor

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	myErrors "github.com/kekaadrenalin/hookedit/pkg/errors"
	"github.com/kekaadrenalin/hookedit/pkg/types"
)

type fakeAPI struct {
	created []types.Webhook
	updated []types.Webhook
	orgs    []string
	err     error
}

func (a *fakeAPI) CreateWebhook(_ context.Context, webhook types.Webhook, org string) error {
	a.created = append(a.created, webhook)
	a.orgs = append(a.orgs, org)
	return a.err
}

func (a *fakeAPI) UpdateWebhook(_ context.Context, webhook types.Webhook, org string) error {
	a.updated = append(a.updated, webhook)
	a.orgs = append(a.orgs, org)
	return a.err
}

func Test_Submit_create_happy(t *testing.T) {
	api := &fakeAPI{}

	f, result := validForm().Submit(context.Background(), api, "acme")

	assert.Equal(t, Success, result.Kind)
	assert.False(t, f.Sending())
	assert.Equal(t, "", f.APIError())
	require.Len(t, api.created, 1)
	assert.Empty(t, api.updated)
	assert.Equal(t, "Release notifier", api.created[0].Name)
	assert.Equal(t, []string{"acme"}, api.orgs)
}

func Test_Submit_update_happy(t *testing.T) {
	api := &fakeAPI{}
	f := FromWebhook(types.Webhook{
		WebhookID:  "wh-1",
		Name:       "n",
		URL:        "https://example.com",
		EventKinds: []types.EventKind{types.NewPackageRelease},
		Packages:   []types.Package{nginx},
	})

	_, result := f.Submit(context.Background(), api, "")

	assert.Equal(t, Success, result.Kind)
	require.Len(t, api.updated, 1)
	assert.Equal(t, "wh-1", api.updated[0].WebhookID)
}

func Test_Submit_invalid_makes_no_call(t *testing.T) {
	api := &fakeAPI{}

	f, result := validForm().SetName("").Submit(context.Background(), api, "")

	assert.Equal(t, Invalid, result.Kind)
	assert.Equal(t, []FieldError{{Field: FieldName, Message: msgRequired}}, result.Failures)
	assert.False(t, f.Sending())
	assert.Empty(t, api.created)
}

func Test_Submit_no_packages_makes_no_call(t *testing.T) {
	api := &fakeAPI{}

	f, result := validForm().RemovePackage(nginx.PackageID).Submit(context.Background(), api, "")

	assert.Equal(t, Invalid, result.Kind)
	assert.Equal(t, msgPackagesRequired, f.FieldError(FieldPackages))
	assert.Empty(t, api.created)
}

func Test_Submit_bad_request_message(t *testing.T) {
	api := &fakeAPI{err: &myErrors.HTTPError{StatusCode: http.StatusBadRequest, StatusText: "invalid url"}}

	f, result := validForm().Submit(context.Background(), api, "")

	assert.Equal(t, APIError, result.Kind)
	assert.Equal(t, http.StatusBadRequest, result.StatusCode)
	assert.Equal(t, "An error occurred adding the webhook: invalid url", result.Message)
	assert.Equal(t, result.Message, f.APIError())
}

func Test_Submit_other_status_message(t *testing.T) {
	api := &fakeAPI{err: &myErrors.HTTPError{StatusCode: http.StatusInternalServerError, StatusText: "boom"}}
	f := FromWebhook(types.Webhook{
		WebhookID:  "wh-1",
		Name:       "n",
		URL:        "https://example.com",
		EventKinds: []types.EventKind{types.NewPackageRelease},
		Packages:   []types.Package{nginx},
	})

	f, result := f.Submit(context.Background(), api, "")

	assert.Equal(t, APIError, result.Kind)
	assert.Equal(t, "An error occurred updating the webhook, please try again later", f.APIError())
}

func Test_Submit_network_error_message(t *testing.T) {
	api := &fakeAPI{err: errors.New("connection refused")}

	_, result := validForm().Submit(context.Background(), api, "")

	assert.Equal(t, APIError, result.Kind)
	assert.Equal(t, 0, result.StatusCode)
	assert.Equal(t, "An error occurred adding the webhook, please try again later", result.Message)
}

func Test_Submit_login_redirect(t *testing.T) {
	api := &fakeAPI{err: &myErrors.HTTPError{StatusCode: http.StatusUnauthorized, Err: myErrors.ErrLoginRedirect}}

	f, result := validForm().Submit(context.Background(), api, "")

	assert.Equal(t, AuthError, result.Kind)
	assert.Equal(t, "", f.APIError())
	assert.False(t, f.Sending())
}

func Test_Submit_login_redirect_status_text(t *testing.T) {
	api := &fakeAPI{err: &myErrors.HTTPError{StatusCode: http.StatusBadRequest, StatusText: "ErrLoginRedirect"}}

	f, result := validForm().Submit(context.Background(), api, "")

	assert.Equal(t, AuthError, result.Kind)
	assert.Equal(t, http.StatusBadRequest, result.StatusCode)
	assert.Equal(t, "", f.APIError())
	assert.False(t, f.Sending())
}

func Test_Submit_clears_previous_error(t *testing.T) {
	api := &fakeAPI{err: &myErrors.HTTPError{StatusCode: http.StatusBadRequest, StatusText: "invalid url"}}
	f, _ := validForm().Submit(context.Background(), api, "")
	require.NotEmpty(t, f.APIError())

	api.err = nil
	f, result := f.Submit(context.Background(), api, "")

	assert.Equal(t, Success, result.Kind)
	assert.Equal(t, "", f.APIError())
}

func Test_Begin_in_flight_guard(t *testing.T) {
	f, webhook, _ := validForm().Begin()
	require.NotNil(t, webhook)
	assert.True(t, f.Sending())
	assert.Equal(t, "Adding webhook", f.SubmitLabel())

	_, again, result := f.Begin()
	assert.Nil(t, again)
	assert.Equal(t, InFlight, result.Kind)

	api := &fakeAPI{}
	_, result = f.Submit(context.Background(), api, "")
	assert.Equal(t, InFlight, result.Kind)
	assert.Empty(t, api.created)
}

func Test_Form_edit_clears_api_error(t *testing.T) {
	api := &fakeAPI{err: errors.New("down")}
	f, _ := validForm().Submit(context.Background(), api, "")
	require.NotEmpty(t, f.APIError())

	assert.Equal(t, "", f.SetDescription("x").APIError())
	assert.Equal(t, "", f.DismissError().APIError())
}
