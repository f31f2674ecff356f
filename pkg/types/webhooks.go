package types

import (
	"fmt"
	"time"
)

type EventKind int

const (
	NewPackageRelease EventKind = 0
	SecurityAlert     EventKind = 1
)

type EventKindItem struct {
	Kind  EventKind
	Name  string
	Title string
}

// EventKinds lists the triggers a webhook can subscribe to, in display order.
var EventKinds = []EventKindItem{
	{Kind: NewPackageRelease, Name: "package.new-release", Title: "New package release"},
	{Kind: SecurityAlert, Name: "package.security-alert", Title: "Security alert"},
}

func (k EventKind) String() string {
	for _, item := range EventKinds {
		if item.Kind == k {
			return item.Name
		}
	}

	return fmt.Sprintf("event-kind(%d)", int(k))
}

type PayloadKind string

const (
	PayloadDefault PayloadKind = "default"
	PayloadCustom  PayloadKind = "custom"
)

type PackageKind int

const (
	HelmChart   PackageKind = 0
	FalcoRules  PackageKind = 1
	OPAPolicies PackageKind = 2
)

func (k PackageKind) String() string {
	switch k {
	case HelmChart:
		return "helm-chart"
	case FalcoRules:
		return "falco-rules"
	case OPAPolicies:
		return "opa-policies"
	}

	return fmt.Sprintf("package-kind(%d)", int(k))
}

type ChartRepository struct {
	Name        string `json:"name" yaml:"name"`
	DisplayName string `json:"displayName,omitempty" yaml:"displayName,omitempty"`
}

type Package struct {
	PackageID               string           `json:"packageId" yaml:"packageId"`
	Kind                    PackageKind      `json:"kind" yaml:"kind"`
	Name                    string           `json:"name" yaml:"name"`
	NormalizedName          string           `json:"normalizedName,omitempty" yaml:"normalizedName,omitempty"`
	DisplayName             string           `json:"displayName,omitempty" yaml:"displayName,omitempty"`
	LogoImageID             string           `json:"logoImageId,omitempty" yaml:"logoImageId,omitempty"`
	UserAlias               string           `json:"userAlias,omitempty" yaml:"userAlias,omitempty"`
	OrganizationName        string           `json:"organizationName,omitempty" yaml:"organizationName,omitempty"`
	OrganizationDisplayName string           `json:"organizationDisplayName,omitempty" yaml:"organizationDisplayName,omitempty"`
	ChartRepository         *ChartRepository `json:"chartRepository,omitempty" yaml:"chartRepository,omitempty"`
}

func (p Package) Title() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}

	return p.Name
}

func (p Package) Publisher() string {
	publisher := p.UserAlias
	if publisher == "" {
		publisher = p.OrganizationDisplayName
	}
	if publisher == "" {
		publisher = p.OrganizationName
	}

	if p.ChartRepository != nil {
		repo := p.ChartRepository.DisplayName
		if repo == "" {
			repo = p.ChartRepository.Name
		}
		publisher = fmt.Sprintf("%s (repo: %s)", publisher, repo)
	}

	return publisher
}

func (p Package) GetDescription() string {
	return fmt.Sprintf("[%s] %s - %s", p.Kind, p.Title(), p.Publisher())
}

type Webhook struct {
	WebhookID   string      `json:"webhookId,omitempty" yaml:"-"`
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description" yaml:"description"`
	URL         string      `json:"url" yaml:"url"`
	Secret      string      `json:"secret" yaml:"secret"`
	Active      bool        `json:"active" yaml:"active"`
	EventKinds  []EventKind `json:"eventKinds" yaml:"eventKinds"`
	Packages    []Package   `json:"packages" yaml:"packages"`
	ContentType string      `json:"contentType,omitempty" yaml:"contentType,omitempty"`
	Template    string      `json:"template,omitempty" yaml:"template,omitempty"`
	Created     time.Time   `json:"-" yaml:"created"`
}

// PayloadKind reports custom only when both a content type and a template are set.
func (w Webhook) PayloadKind() PayloadKind {
	if w.ContentType != "" && w.Template != "" {
		return PayloadCustom
	}

	return PayloadDefault
}

func (w Webhook) GetDescription() string {
	status := "active"
	if !w.Active {
		status = "inactive"
	}

	return fmt.Sprintf("%s (%s) -> %s", w.Name, status, w.URL)
}
