package output

import (
	"context"
	"time"

	"askai-shortcut/internal/domain/entity"
)

type BrowserPort interface {
	OpenTab(ctx context.Context, url string) (PagePort, error)
	Close()
}

// PagePort is the view of one loaded document the fill logic works against.
// Methods that look something up return a nil element and a nil error when
// nothing matches.
type PagePort interface {
	URL() string

	// MarkInjected sets the page's feature flag and reports whether it was
	// already set.
	MarkInjected(ctx context.Context) (bool, error)
	WaitReady(ctx context.Context) error

	ActiveElement(ctx context.Context) (ElementPort, error)
	QueryAll(ctx context.Context, selector string) ([]ElementPort, error)

	// ObserveMutations delivers one signal per mutation batch that added
	// nodes anywhere in the document. The observer is removed and the
	// channel closed once ctx is done.
	ObserveMutations(ctx context.Context) (<-chan struct{}, error)

	ShowNotification(ctx context.Context, message string, display time.Duration) error
}

type ElementPort interface {
	Info(ctx context.Context) (entity.ElementInfo, error)
	Closest(ctx context.Context, selector string) (ElementPort, error)
	Query(ctx context.Context, selector string) (ElementPort, error)

	Focus(ctx context.Context) error
	Click(ctx context.Context) error

	Value(ctx context.Context) (string, error)
	SetValue(ctx context.Context, value string) error
	// TypeValue clears the value and re-assigns it one character at a time.
	TypeValue(ctx context.Context, value string) error
	SetText(ctx context.Context, text string) error
	// ReplaceContent clears the element and inserts text as a single text
	// node.
	ReplaceContent(ctx context.Context, text string) error
	MoveCaretToEnd(ctx context.Context) error

	Dispatch(ctx context.Context, event entity.SyntheticEvent) error
}
