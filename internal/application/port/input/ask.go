package input

import (
	"context"

	"askai-shortcut/internal/domain/entity"
)

type AskRequest struct {
	ButtonID string
	PageURL  string
}

type AskResult struct {
	Button   entity.Button
	Question string
	TabURL   string
	Ack      entity.Ack
}

type AskExecutor interface {
	Execute(ctx context.Context, req AskRequest) (*AskResult, error)
}
