package webhook

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/kekaadrenalin/hookedit/pkg/helper"
	"github.com/kekaadrenalin/hookedit/pkg/types"
	"gopkg.in/yaml.v3"
)

var ErrNotFound = errors.New("webhook not found")

type Record struct {
	types.Webhook `yaml:",inline"`
	Owner         string    `yaml:"owner"`
	Updated       time.Time `yaml:"updated"`
}

type WebhooksDatabase struct {
	Webhooks map[string]*Record `yaml:"webhooks"`
	LastRead time.Time          `yaml:"-"`
	LastSave time.Time          `yaml:"-"`
	Path     string             `yaml:"-"`

	mu sync.Mutex
}

func UserOwner(username string) string {
	return "user:" + username
}

func OrgOwner(org string) string {
	return "org:" + org
}

func ReadWebhooksFromFile(path string) (*WebhooksDatabase, error) {
	webhooks, err := decodeWebhooksFromFile(path)
	if err != nil {
		return nil, err
	}

	webhooks.LastRead = time.Now()
	webhooks.Path = path

	return webhooks, nil
}

// Create stores a new webhook for owner and returns it with its generated id.
func (d *WebhooksDatabase) Create(owner string, webhookItem types.Webhook) (types.Webhook, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.readFileIfChanged(); err != nil {
		return webhookItem, err
	}

	id, err := helper.NewWebhookID()
	if err != nil {
		return webhookItem, err
	}

	if d.Webhooks[id] != nil {
		return webhookItem, fmt.Errorf("webhook %s is exists", id)
	}

	now := time.Now()
	webhookItem.WebhookID = id
	webhookItem.Created = now

	d.Webhooks[id] = &Record{Webhook: webhookItem, Owner: owner, Updated: now}

	if err := d.save(); err != nil {
		delete(d.Webhooks, id)
		return webhookItem, err
	}

	return webhookItem, nil
}

// Update replaces the webhook with the same id. Webhooks of other owners are reported as missing.
func (d *WebhooksDatabase) Update(owner string, webhookItem types.Webhook) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.readFileIfChanged(); err != nil {
		return err
	}

	current, ok := d.Webhooks[webhookItem.WebhookID]
	if !ok || current.Owner != owner {
		return ErrNotFound
	}

	previous := *current
	webhookItem.Created = current.Created
	current.Webhook = webhookItem
	current.Updated = time.Now()

	if err := d.save(); err != nil {
		*current = previous
		return err
	}

	return nil
}

func (d *WebhooksDatabase) Find(owner string, uuid string) *types.Webhook {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.readFileIfChanged(); err != nil {
		log.Errorf("Error reading webhooks file: %s", err)
	}

	record, ok := d.Webhooks[uuid]
	if !ok || record.Owner != owner {
		return nil
	}

	webhookItem := record.Webhook

	return &webhookItem
}

// List returns the webhooks of owner sorted by name.
func (d *WebhooksDatabase) List(owner string) []types.Webhook {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.readFileIfChanged(); err != nil {
		log.Errorf("Error reading webhooks file: %s", err)
	}

	webhooks := make([]types.Webhook, 0)
	for _, record := range d.Webhooks {
		if record.Owner == owner {
			webhooks = append(webhooks, record.Webhook)
		}
	}

	slices.SortFunc(webhooks, func(a, b types.Webhook) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}

		return strings.Compare(a.WebhookID, b.WebhookID)
	})

	return webhooks
}

func (d *WebhooksDatabase) save() error {
	if d.Path == "" {
		return nil
	}

	data, err := yaml.Marshal(d)
	if err != nil {
		return err
	}

	if err = helper.WriteFileAtomic(d.Path, data); err != nil {
		return err
	}

	d.LastSave = time.Now()
	d.LastRead = d.LastSave

	return nil
}

func decodeWebhooksFromFile(path string) (*WebhooksDatabase, error) {
	webhooks := &WebhooksDatabase{}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		webhooks.Webhooks = map[string]*Record{}

		return webhooks, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(webhooks); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	if webhooks.Webhooks == nil {
		webhooks.Webhooks = map[string]*Record{}
	}

	for uuid, record := range webhooks.Webhooks {
		record.WebhookID = uuid
	}

	return webhooks, nil
}

func (d *WebhooksDatabase) readFileIfChanged() error {
	if d.Path == "" {
		return nil
	}

	info, err := os.Stat(d.Path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	if info.ModTime().After(d.LastRead) {
		log.Infof("Found changes to %s. Updating webhooks...", d.Path)
		webhooks, err := decodeWebhooksFromFile(d.Path)
		if err != nil {
			return err
		}
		d.Webhooks = webhooks.Webhooks
		d.LastRead = time.Now()
	}

	return nil
}
