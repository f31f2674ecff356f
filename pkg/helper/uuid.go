package helper

import (
	"github.com/google/uuid"
)

// NewWebhookID returns a time ordered identifier for a new webhook.
func NewWebhookID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}

	return id.String(), nil
}
