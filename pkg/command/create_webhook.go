package command

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"github.com/kekaadrenalin/hookedit/pkg/api"
	"github.com/kekaadrenalin/hookedit/pkg/editor"
	"github.com/kekaadrenalin/hookedit/pkg/types"
)

// ErrCancelled is returned when the editor is closed without saving.
var ErrCancelled = errors.New("editor closed without saving")

func CreateWebhook(args types.Args) (editor.Result, error) {
	return runEditor(context.Background(), newAPIClient(args), args.Org, editor.New())
}

func EditWebhook(args types.Args) (editor.Result, error) {
	ctx := context.Background()
	client := newAPIClient(args)

	webhookID := args.EditWebhookCmd.WebhookID
	if webhookID == "" {
		webhooks, err := client.ListWebhooks(ctx, args.Org)
		if err != nil {
			return editor.Result{}, err
		}

		if len(webhooks) == 0 {
			return editor.Result{}, fmt.Errorf("no webhooks found")
		}

		webhookID = selectChoice("Select a webhook:", webhookChoices(webhooks))
	}

	webhook, err := client.GetWebhook(ctx, webhookID, args.Org)
	if err != nil {
		return editor.Result{}, err
	}

	log.Debugf("editing webhook %s", webhook.GetDescription())

	return runEditor(ctx, client, args.Org, editor.FromWebhook(webhook))
}

func newAPIClient(args types.Args) *api.Client {
	return api.NewClient(api.Config{
		BaseURL:  args.APIURL,
		Username: args.Username,
		Password: args.Password,
		Token:    args.Token,
	})
}

func runEditor(ctx context.Context, client API, org string, form editor.Form) (editor.Result, error) {
	m, err := tea.NewProgram(newEditorModel(ctx, client, org, form)).Run()
	if err != nil {
		return editor.Result{}, err
	}

	final, ok := m.(editorModel)
	if !ok || final.closed || final.result == nil {
		return editor.Result{}, ErrCancelled
	}

	if final.result.Kind == editor.AuthError {
		return *final.result, final.result.Err
	}

	return *final.result, nil
}
