package input

import (
	"context"

	"askai-shortcut/internal/application/port/output"
	"askai-shortcut/internal/domain/entity"
)

type Filler interface {
	Fill(ctx context.Context, page output.PagePort, req entity.FillRequest) entity.FillOutcome
}

type MessageHandler interface {
	Handle(ctx context.Context, page output.PagePort, msg entity.Message) entity.Ack
	Wait()
}
