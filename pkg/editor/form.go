package editor

import (
	"slices"

	"github.com/kekaadrenalin/hookedit/pkg/types"
)

// Form is the state of one editing session. It is a value: every transition
// returns an updated copy and leaves the receiver untouched.
type Form struct {
	original *types.Webhook

	name        string
	description string
	url         string
	secret      string
	active      bool

	eventKinds []types.EventKind
	packages   []types.Package

	payloadKind types.PayloadKind
	contentType string
	template    string

	sending   bool
	validated bool
	apiError  string
	failures  []FieldError
}

// New returns the form used to create a webhook.
func New() Form {
	return Form{
		active:      true,
		eventKinds:  []types.EventKind{types.NewPackageRelease},
		packages:    []types.Package{},
		payloadKind: types.PayloadDefault,
		template:    DefaultPayloadTemplate,
	}
}

// FromWebhook returns the form used to edit an existing webhook.
func FromWebhook(w types.Webhook) Form {
	f := Form{
		original:    &w,
		name:        w.Name,
		description: w.Description,
		url:         w.URL,
		secret:      w.Secret,
		active:      w.Active,
		eventKinds:  slices.Clone(w.EventKinds),
		packages:    slices.Clone(w.Packages),
		payloadKind: w.PayloadKind(),
		contentType: w.ContentType,
		template:    w.Template,
	}

	if len(f.eventKinds) == 0 {
		f.eventKinds = []types.EventKind{types.NewPackageRelease}
	}
	if f.packages == nil {
		f.packages = []types.Package{}
	}
	if f.payloadKind == types.PayloadDefault {
		f.contentType = ""
		f.template = DefaultPayloadTemplate
	}

	return f
}

func (f Form) IsEdit() bool { return f.original != nil }

func (f Form) WebhookID() string {
	if f.original == nil {
		return ""
	}

	return f.original.WebhookID
}

func (f Form) Name() string                   { return f.name }
func (f Form) Description() string            { return f.description }
func (f Form) URL() string                    { return f.url }
func (f Form) Secret() string                 { return f.secret }
func (f Form) Active() bool                   { return f.active }
func (f Form) PayloadKind() types.PayloadKind { return f.payloadKind }
func (f Form) ContentType() string            { return f.contentType }
func (f Form) Template() string               { return f.template }
func (f Form) Sending() bool                  { return f.sending }
func (f Form) Validated() bool                { return f.validated }
func (f Form) APIError() string               { return f.apiError }

func (f Form) EventKinds() []types.EventKind { return slices.Clone(f.eventKinds) }
func (f Form) Packages() []types.Package     { return slices.Clone(f.packages) }

func (f Form) HasEventKind(kind types.EventKind) bool {
	return slices.Contains(f.eventKinds, kind)
}

// PackageIDs returns the ids of the selected packages, used to exclude them from search results.
func (f Form) PackageIDs() []string {
	ids := make([]string, 0, len(f.packages))
	for _, p := range f.packages {
		ids = append(ids, p.PackageID)
	}

	return ids
}

func (f Form) SetName(v string) Form {
	f.name = v
	return f.touched()
}

func (f Form) SetDescription(v string) Form {
	f.description = v
	return f.touched()
}

func (f Form) SetURL(v string) Form {
	f.url = v
	return f.touched()
}

func (f Form) SetSecret(v string) Form {
	f.secret = v
	return f.touched()
}

func (f Form) SetContentType(v string) Form {
	f.contentType = v
	return f.touched()
}

func (f Form) SetTemplate(v string) Form {
	f.template = v
	return f.touched()
}

func (f Form) ToggleActive() Form {
	f.active = !f.active
	return f.touched()
}

// AddPackage appends p unless a package with the same id is already selected.
func (f Form) AddPackage(p types.Package) Form {
	if slices.ContainsFunc(f.packages, func(item types.Package) bool { return item.PackageID == p.PackageID }) {
		return f
	}

	packages := make([]types.Package, 0, len(f.packages)+1)
	packages = append(packages, f.packages...)
	f.packages = append(packages, p)

	return f.touched()
}

func (f Form) RemovePackage(packageID string) Form {
	f.packages = slices.DeleteFunc(slices.Clone(f.packages), func(item types.Package) bool {
		return item.PackageID == packageID
	})

	return f.touched()
}

// ToggleEventKind selects kind, or deselects it when it is not the last selected kind.
func (f Form) ToggleEventKind(kind types.EventKind) Form {
	if !slices.Contains(f.eventKinds, kind) {
		kinds := make([]types.EventKind, 0, len(f.eventKinds)+1)
		kinds = append(kinds, f.eventKinds...)
		f.eventKinds = append(kinds, kind)

		return f.touched()
	}

	// at least one event kind must stay selected
	if len(f.eventKinds) == 1 {
		return f
	}

	f.eventKinds = slices.DeleteFunc(slices.Clone(f.eventKinds), func(item types.EventKind) bool {
		return item == kind
	})

	return f.touched()
}

// SetPayloadKind switches the payload kind. Default restores the built-in
// template and drops the content type; custom starts from an empty template.
func (f Form) SetPayloadKind(kind types.PayloadKind) Form {
	f.payloadKind = kind
	f.validated = false
	f.failures = nil

	if kind == types.PayloadDefault {
		f.contentType = ""
		f.template = DefaultPayloadTemplate
	} else {
		f.template = ""
	}

	return f.touched()
}

// DismissError hides the API error banner.
func (f Form) DismissError() Form {
	f.apiError = ""
	return f
}

func (f Form) touched() Form {
	f.apiError = ""
	return f
}
