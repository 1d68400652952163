package ask

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"askai-shortcut/internal/application/port/input"
	"askai-shortcut/internal/application/port/output"
	"askai-shortcut/internal/domain/entity"
)

var _ input.AskExecutor = (*UseCase)(nil)

var ErrEmptyPageURL = errors.New("page URL is required")

// UseCase turns a button press on a page into a filled chat input: it
// composes the question, opens the chat service in a new tab and hands the
// fill message to the tab's handler.
type UseCase struct {
	settings output.SettingsStore
	browser  output.BrowserPort
	handler  input.MessageHandler
	logger   output.LoggerPort
}

func New(
	settings output.SettingsStore,
	browser output.BrowserPort,
	handler input.MessageHandler,
	logger output.LoggerPort,
) *UseCase {
	return &UseCase{
		settings: settings,
		browser:  browser,
		handler:  handler,
		logger:   logger,
	}
}

func (uc *UseCase) Execute(ctx context.Context, req input.AskRequest) (*input.AskResult, error) {
	pageURL := strings.TrimSpace(req.PageURL)
	if pageURL == "" {
		return nil, ErrEmptyPageURL
	}

	settings, err := uc.settings.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	button, ok := settings.Button(req.ButtonID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", entity.ErrButtonNotFound, req.ButtonID)
	}

	question := entity.ComposeQuestion(pageURL, button.Question)

	log := uc.logger.WithFields(map[string]any{
		"button":  button.ID,
		"service": settings.AIServiceURL,
	})
	log.Info("Opening chat service", "page", pageURL)

	page, err := uc.browser.OpenTab(ctx, settings.AIServiceURL)
	if err != nil {
		log.Error("Failed to open chat service", "error", err)
		return nil, fmt.Errorf("open chat service: %w", err)
	}

	ack := uc.handler.Handle(ctx, page, entity.Message{
		Action:   entity.ActionFillInput,
		Question: question,
		Messages: settings.Messages,
	})
	log.Debug("Fill message acknowledged", "status", ack.Status)

	return &input.AskResult{
		Button:   button,
		Question: question,
		TabURL:   page.URL(),
		Ack:      ack,
	}, nil
}
