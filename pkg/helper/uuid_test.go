package helper

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func Test_NewWebhookID_happy(t *testing.T) {
	id, err := NewWebhookID()
	assert.NoError(t, err, "expected no error")

	parsed, err := uuid.Parse(id)
	assert.NoError(t, err, "expected generated id to be a valid UUID")
	assert.Equal(t, uuid.Version(7), parsed.Version())
}

func Test_NewWebhookID_unique(t *testing.T) {
	seen := map[string]bool{}

	for i := 0; i < 100; i++ {
		id, err := NewWebhookID()
		assert.NoError(t, err)
		assert.False(t, seen[id], "expected unique id")
		seen[id] = true
	}
}
