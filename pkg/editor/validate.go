package editor

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/kekaadrenalin/hookedit/pkg/types"
)

const (
	FieldName        = "name"
	FieldURL         = "url"
	FieldEventKinds  = "eventKinds"
	FieldPackages    = "packages"
	FieldContentType = "contentType"
	FieldTemplate    = "template"
)

const (
	msgRequired           = "This field is required"
	msgInvalidURL         = "Please enter a valid url"
	msgPackagesRequired   = "At least one package has to be selected"
	msgEventKindsRequired = "At least one event kind has to be selected"
)

var v = newValidator()

func newValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})

	return validate
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Validation struct {
	Valid    bool
	Webhook  *types.Webhook
	Failures []FieldError
}

type candidate struct {
	Name        string            `json:"name" validate:"required"`
	URL         string            `json:"url" validate:"required,url"`
	EventKinds  []types.EventKind `json:"eventKinds" validate:"min=1"`
	Packages    []types.Package   `json:"packages" validate:"min=1"`
	PayloadKind types.PayloadKind `json:"-" validate:"oneof=default custom"`
	ContentType string            `json:"contentType" validate:"required_if=PayloadKind custom"`
	Template    string            `json:"template" validate:"required_if=PayloadKind custom"`
}

// Validate checks the current state and, when it is valid, assembles the
// webhook to send. Inline hints become visible from now on.
func (f Form) Validate() (Form, Validation) {
	failures := check(candidate{
		Name:        f.name,
		URL:         f.url,
		EventKinds:  f.eventKinds,
		Packages:    f.packages,
		PayloadKind: f.payloadKind,
		ContentType: f.contentType,
		Template:    f.template,
	})

	f.validated = true
	f.failures = failures

	if len(failures) > 0 {
		return f, Validation{Failures: failures}
	}

	webhook := f.assemble()

	return f, Validation{Valid: true, Webhook: &webhook}
}

// FieldError returns the inline hint for field, only once validation was attempted.
func (f Form) FieldError(field string) string {
	if !f.validated {
		return ""
	}

	for _, failure := range f.failures {
		if failure.Field == field {
			return failure.Message
		}
	}

	return ""
}

func (f Form) Failures() []FieldError {
	if !f.validated {
		return nil
	}

	return append([]FieldError(nil), f.failures...)
}

func (f Form) assemble() types.Webhook {
	webhook := types.Webhook{
		Name:        f.name,
		Description: f.description,
		URL:         f.url,
		Secret:      f.secret,
		Active:      f.active,
		EventKinds:  f.EventKinds(),
		Packages:    f.Packages(),
	}

	if f.payloadKind == types.PayloadCustom {
		webhook.ContentType = f.contentType
		webhook.Template = f.template
	}

	if f.original != nil {
		webhook.WebhookID = f.original.WebhookID
	}

	return webhook
}

// ValidateWebhook applies the form rules to a webhook received from elsewhere.
// A webhook carrying either a content type or a template is treated as custom.
func ValidateWebhook(w types.Webhook) []FieldError {
	payloadKind := types.PayloadDefault
	if w.ContentType != "" || w.Template != "" {
		payloadKind = types.PayloadCustom
	}

	return check(candidate{
		Name:        w.Name,
		URL:         w.URL,
		EventKinds:  w.EventKinds,
		Packages:    w.Packages,
		PayloadKind: payloadKind,
		ContentType: w.ContentType,
		Template:    w.Template,
	})
}

func check(c candidate) []FieldError {
	err := v.Struct(c)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []FieldError{{Message: err.Error()}}
	}

	failures := make([]FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		failures = append(failures, FieldError{Field: fe.Field(), Message: message(fe)})
	}

	return failures
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "url":
		return msgInvalidURL
	case "min":
		if fe.Field() == FieldPackages {
			return msgPackagesRequired
		}

		return msgEventKindsRequired
	}

	return msgRequired
}
