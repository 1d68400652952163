package output

import (
	"context"

	"askai-shortcut/internal/domain/entity"
)

type SettingsStore interface {
	Load(ctx context.Context) (entity.Settings, error)
	SetAIServiceURL(ctx context.Context, url string) (string, error)
	AddButton(ctx context.Context, name, question string) (entity.Button, error)
	UpdateButton(ctx context.Context, id, name, question string) (entity.Button, error)
	RemoveButton(ctx context.Context, id string) error
	SetLanguage(ctx context.Context, code string) (string, error)
	Reset(ctx context.Context) error
}
