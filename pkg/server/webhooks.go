package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	log "github.com/sirupsen/logrus"

	"github.com/go-chi/chi/v5"
	"github.com/kekaadrenalin/hookedit/pkg/editor"
	"github.com/kekaadrenalin/hookedit/pkg/types"
	"github.com/kekaadrenalin/hookedit/pkg/user"
	"github.com/kekaadrenalin/hookedit/pkg/webhook"
)

const anonymous = "anonymous"

func (h *handler) listWebhooks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.webhooks.List(h.owner(r)))
}

func (h *handler) getWebhook(w http.ResponseWriter, r *http.Request) {
	webhookItem := h.webhooks.Find(h.owner(r), chi.URLParam(r, "webhookID"))
	if webhookItem == nil {
		writeError(w, http.StatusNotFound, "webhook not found")
		return
	}

	writeJSON(w, http.StatusOK, webhookItem)
}

func (h *handler) createWebhook(w http.ResponseWriter, r *http.Request) {
	webhookItem, ok := h.webhookFromRequest(w, r)
	if !ok {
		return
	}

	created, err := h.webhooks.Create(h.owner(r), webhookItem)
	if err != nil {
		log.Errorf("could not create webhook: %s", err)
		writeError(w, http.StatusInternalServerError, "")
		return
	}

	log.Infof("webhook created: %s (%s)", created.WebhookID, h.owner(r))

	w.WriteHeader(http.StatusCreated)
}

func (h *handler) updateWebhook(w http.ResponseWriter, r *http.Request) {
	webhookItem, ok := h.webhookFromRequest(w, r)
	if !ok {
		return
	}

	webhookItem.WebhookID = chi.URLParam(r, "webhookID")

	if err := h.webhooks.Update(h.owner(r), webhookItem); err != nil {
		if errors.Is(err, webhook.ErrNotFound) {
			writeError(w, http.StatusNotFound, "webhook not found")
			return
		}

		log.Errorf("could not update webhook %s: %s", webhookItem.WebhookID, err)
		writeError(w, http.StatusInternalServerError, "")
		return
	}

	log.Infof("webhook updated: %s (%s)", webhookItem.WebhookID, h.owner(r))

	w.WriteHeader(http.StatusNoContent)
}

// webhookFromRequest decodes and validates the request body, writing a 400 response when it is not acceptable.
func (h *handler) webhookFromRequest(w http.ResponseWriter, r *http.Request) (types.Webhook, bool) {
	var webhookItem types.Webhook

	if err := json.NewDecoder(r.Body).Decode(&webhookItem); err != nil {
		log.Debugf("invalid webhook body: %s", err)
		writeError(w, http.StatusBadRequest, "invalid webhook")
		return webhookItem, false
	}

	if failures := editor.ValidateWebhook(webhookItem); len(failures) > 0 {
		messages := make([]string, 0, len(failures))
		for _, failure := range failures {
			messages = append(messages, failure.Field+": "+strings.ToLower(failure.Message))
		}

		writeError(w, http.StatusBadRequest, strings.Join(messages, ", "))
		return webhookItem, false
	}

	for i, p := range webhookItem.Packages {
		known := h.packages.Find(p.PackageID)
		if known == nil {
			writeError(w, http.StatusBadRequest, "unknown package "+p.PackageID)
			return webhookItem, false
		}
		webhookItem.Packages[i] = *known
	}

	return webhookItem, true
}

func (h *handler) owner(r *http.Request) string {
	if org := chi.URLParam(r, "orgName"); org != "" {
		return webhook.OrgOwner(org)
	}

	if u := user.UserFromContext(r.Context()); u != nil {
		return webhook.UserOwner(u.Username)
	}

	return webhook.UserOwner(anonymous)
}
