package editor

const DefaultContentType = "application/cloudevents+json"

// DefaultPayloadTemplate is the CloudEvents envelope used when a webhook has no custom payload.
const DefaultPayloadTemplate = `{
    "specversion" : "1.0",
    "id" : "{{ .Event.id }}",
    "source" : "https://artifacthub.io/cloudevents",
    "type" : "io.artifacthub.{{ .Event.kind }}",
    "datacontenttype" : "application/json",
    "data" : {
        "package": {
            "kind": {{ .Package.kind }},
            "name": "{{ .Package.name }}",
            "version": "{{ .Package.version }}",
            "publisher": "{{ .Package.publisher }}",
            "url": "{{ .Package.url }}"
        }
    }
}`

// SlackPayloadExample is shown next to the custom template input.
const SlackPayloadExample = `{
    "text": "Package {{ .Package.name }} version {{ .Package.version }} released! {{ .Package.url }}"
}`

type TemplateVariable struct {
	Name        string
	Description string
}

var TemplateVariables = []TemplateVariable{
	{Name: "{{ .Event.id }}", Description: "Id of the event triggering the notification."},
	{Name: "{{ .Event.kind }}", Description: "Kind of the event triggering notification. Possible values are package.new-release and package.security-alert."},
	{Name: "{{ .Package.kind }}", Description: "Kind of the package associated with the notification. Possible values are helm-chart, falco-rules and opa-policies."},
	{Name: "{{ .Package.name }}", Description: "Name of the package."},
	{Name: "{{ .Package.version }}", Description: "Version of the new release."},
	{Name: "{{ .Package.publisher }}", Description: "Publisher of the package in the format owner/repository in the case of Helm Charts and owner in the rest."},
	{Name: "{{ .Package.url }}", Description: "URL of the package."},
}
