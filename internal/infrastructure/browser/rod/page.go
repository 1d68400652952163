package rod

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"askai-shortcut/internal/application/port/output"

	"github.com/go-rod/rod"
	"github.com/ysmood/gson"
)

var _ output.PagePort = (*Page)(nil)

// NotificationID is the DOM id given to on-page notifications.
const NotificationID = "askai-notification"

type Page struct {
	page    *rod.Page
	timeout time.Duration
	seq     atomic.Int64
}

func NewPage(page *rod.Page, timeout time.Duration) *Page {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Page{page: page, timeout: timeout}
}

// Rod exposes the underlying page.
func (p *Page) Rod() *rod.Page {
	return p.page
}

func (p *Page) URL() string {
	info, err := p.page.Info()
	if err != nil {
		return ""
	}
	return info.URL
}

func (p *Page) MarkInjected(ctx context.Context) (bool, error) {
	res, err := p.page.Context(ctx).Eval(jsMarkInjected)
	if err != nil {
		return false, fmt.Errorf("mark injected: %w", err)
	}
	return res.Value.Bool(), nil
}

func (p *Page) WaitReady(ctx context.Context) error {
	if err := p.page.Context(ctx).Timeout(p.timeout).Wait(rod.Eval(jsDocumentReady)); err != nil {
		return fmt.Errorf("wait for ready state: %w", err)
	}
	return nil
}

func (p *Page) ActiveElement(ctx context.Context) (output.ElementPort, error) {
	els, err := p.page.Context(ctx).ElementsByJS(rod.Eval(jsActiveElement))
	if err != nil {
		return nil, fmt.Errorf("active element: %w", err)
	}
	if len(els) == 0 {
		return nil, nil
	}
	return newElement(p, els[0]), nil
}

func (p *Page) QueryAll(ctx context.Context, selector string) ([]output.ElementPort, error) {
	els, err := p.page.Context(ctx).Elements(selector)
	if err != nil {
		return nil, fmt.Errorf("query %q: %w", selector, err)
	}
	out := make([]output.ElementPort, 0, len(els))
	for _, el := range els {
		out = append(out, newElement(p, el))
	}
	return out, nil
}

// ObserveMutations installs a MutationObserver that calls back into Go
// through an exposed binding. Bursts are coalesced into a single pending
// signal.
func (p *Page) ObserveMutations(ctx context.Context) (<-chan struct{}, error) {
	name := fmt.Sprintf("__askaiMutation_%d", p.seq.Add(1))

	signals := make(chan struct{}, 1)
	stop, err := p.page.Expose(name, func(gson.JSON) (interface{}, error) {
		select {
		case signals <- struct{}{}:
		default:
		}
		return nil, nil
	})
	if err != nil {
		return nil, fmt.Errorf("expose mutation binding: %w", err)
	}

	if _, err := p.page.Context(ctx).Eval(jsObserveMutations, name); err != nil {
		_ = stop()
		return nil, fmt.Errorf("install mutation observer: %w", err)
	}

	out := make(chan struct{}, 1)
	go func() {
		defer close(out)
		defer func() {
			_, _ = p.page.Timeout(2*time.Second).Eval(jsDisconnectObserver, name)
			_ = stop()
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case <-signals:
				select {
				case out <- struct{}{}:
				default:
				}
			}
		}
	}()

	return out, nil
}

func (p *Page) ShowNotification(ctx context.Context, message string, display time.Duration) error {
	_, err := p.page.Context(ctx).Eval(jsShowNotification, NotificationID, message, display.Milliseconds())
	if err != nil {
		return fmt.Errorf("show notification: %w", err)
	}
	return nil
}

func decode(v gson.JSON, dst any) error {
	raw, err := v.MarshalJSON()
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}
