package editor

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	myErrors "github.com/kekaadrenalin/hookedit/pkg/errors"
	"github.com/kekaadrenalin/hookedit/pkg/types"
)

// WebhookAPI persists webhooks for the given organization. An empty org means the current user.
type WebhookAPI interface {
	CreateWebhook(ctx context.Context, webhook types.Webhook, org string) error
	UpdateWebhook(ctx context.Context, webhook types.Webhook, org string) error
}

// PackageSearcher returns packages matching query, leaving out the ones in exclude.
type PackageSearcher interface {
	SearchPackages(ctx context.Context, query string, exclude []string) ([]types.Package, error)
}

type ResultKind int

const (
	Success ResultKind = iota
	Invalid
	AuthError
	APIError
	InFlight
)

func (k ResultKind) String() string {
	switch k {
	case Success:
		return "success"
	case Invalid:
		return "invalid"
	case AuthError:
		return "auth-error"
	case APIError:
		return "api-error"
	case InFlight:
		return "in-flight"
	}

	return fmt.Sprintf("result(%d)", int(k))
}

// Result tells the caller what to do after a submit attempt: close the
// editor on Success, hand over to the login flow on AuthError, keep the
// editor open otherwise.
type Result struct {
	Kind       ResultKind
	StatusCode int
	Message    string
	Failures   []FieldError
	Err        error
}

// Submit validates the form and, when valid, creates or updates the webhook.
func (f Form) Submit(ctx context.Context, api WebhookAPI, org string) (Form, Result) {
	f, webhook, result := f.Begin()
	if webhook == nil {
		return f, result
	}

	return f.Complete(f.Send(ctx, api, *webhook, org))
}

// Begin starts a submission: it clears the previous API error, validates,
// and marks the form in flight. A nil webhook means nothing must be sent and
// the returned result says why.
func (f Form) Begin() (Form, *types.Webhook, Result) {
	if f.sending {
		return f, nil, Result{Kind: InFlight}
	}

	f.apiError = ""

	f, validation := f.Validate()
	if !validation.Valid {
		return f, nil, Result{Kind: Invalid, Failures: validation.Failures}
	}

	f.sending = true

	return f, validation.Webhook, Result{}
}

// Send issues the create or update call matching the form mode.
func (f Form) Send(ctx context.Context, api WebhookAPI, webhook types.Webhook, org string) error {
	if f.IsEdit() {
		return api.UpdateWebhook(ctx, webhook, org)
	}

	return api.CreateWebhook(ctx, webhook, org)
}

// Complete ends the submission started by Begin with the outcome of Send.
func (f Form) Complete(err error) (Form, Result) {
	f.sending = false

	if err == nil {
		return f, Result{Kind: Success}
	}

	if isLoginRedirect(err) {
		return f, Result{Kind: AuthError, StatusCode: myErrors.StatusCode(err), Err: err}
	}

	f.apiError = f.errorMessage(err)

	return f, Result{Kind: APIError, StatusCode: myErrors.StatusCode(err), Message: f.apiError, Err: err}
}

// isLoginRedirect matches the sentinel as well as an HTTPError carrying it only as status text.
func isLoginRedirect(err error) bool {
	if errors.Is(err, myErrors.ErrLoginRedirect) {
		return true
	}

	var httpErr *myErrors.HTTPError
	return errors.As(err, &httpErr) && httpErr.StatusText == myErrors.ErrLoginRedirect.Error()
}

func (f Form) errorMessage(err error) string {
	action := "adding"
	if f.IsEdit() {
		action = "updating"
	}

	message := fmt.Sprintf("An error occurred %s the webhook", action)

	var httpErr *myErrors.HTTPError
	if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusBadRequest {
		return message + ": " + httpErr.StatusText
	}

	return message + ", please try again later"
}

// SubmitLabel is the caption of the submit control for the current state.
func (f Form) SubmitLabel() string {
	switch {
	case f.sending && f.IsEdit():
		return "Updating webhook"
	case f.sending:
		return "Adding webhook"
	case f.IsEdit():
		return "Save"
	}

	return "Add"
}
