package filler

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"askai-shortcut/internal/application/port/output"
	"askai-shortcut/internal/domain/entity"
)

// fakePage is an in-memory document. Elements match a selector when their
// tag equals it or it is listed in their selectors.
type fakePage struct {
	mu            sync.Mutex
	url           string
	elements      []*fakeElement
	active        *fakeElement
	observers     map[int]chan struct{}
	nextObserver  int
	observeCalls  int
	deliveries    int
	notifications []string
}

func newFakePage() *fakePage {
	return &fakePage{
		url:       "https://chat.example.com/app",
		observers: make(map[int]chan struct{}),
	}
}

type fakeElement struct {
	page      *fakePage
	name      string
	info      entity.ElementInfo
	selectors []string
	parent    *fakeElement

	value           string
	text            string
	rejectBulkValue bool
	failDispatch    bool

	typed      bool
	caretAtEnd bool
	focusCount int
	clickCount int
	events     []string
}

func visibleInfo(tag string, attrs map[string]string) entity.ElementInfo {
	if attrs == nil {
		attrs = map[string]string{}
	}
	return entity.ElementInfo{
		Tag:        tag,
		Attributes: attrs,
		Display:    "block",
		Visibility: "visible",
		Opacity:    "1",
		Width:      320,
		Height:     48,
	}
}

func (p *fakePage) add(name string, info entity.ElementInfo, selectors ...string) *fakeElement {
	return p.addChild(nil, name, info, selectors...)
}

func (p *fakePage) addChild(parent *fakeElement, name string, info entity.ElementInfo, selectors ...string) *fakeElement {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.insertLocked(parent, name, info, selectors)
}

// appendNode adds an element and notifies every live observer, like a
// framework rendering into the document.
func (p *fakePage) appendNode(name string, info entity.ElementInfo, selectors ...string) *fakeElement {
	p.mu.Lock()
	defer p.mu.Unlock()
	el := p.insertLocked(nil, name, info, selectors)
	for _, ch := range p.observers {
		p.deliveries++
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	return el
}

func (p *fakePage) insertLocked(parent *fakeElement, name string, info entity.ElementInfo, selectors []string) *fakeElement {
	el := &fakeElement{page: p, name: name, info: info, selectors: selectors, parent: parent}
	p.elements = append(p.elements, el)
	return el
}

func (p *fakePage) focus(el *fakeElement) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.active = el
}

func (p *fakePage) observerCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.observers)
}

func (p *fakePage) deliveryCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.deliveries
}

func (p *fakePage) shown() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.notifications)
}

func (p *fakePage) URL() string { return p.url }

func (p *fakePage) MarkInjected(ctx context.Context) (bool, error) { return false, nil }

func (p *fakePage) WaitReady(ctx context.Context) error { return nil }

func (p *fakePage) ActiveElement(ctx context.Context) (output.ElementPort, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.active == nil {
		return nil, nil
	}
	return p.active, nil
}

func (p *fakePage) QueryAll(ctx context.Context, selector string) ([]output.ElementPort, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []output.ElementPort
	for _, el := range p.elements {
		if el.matches(selector) {
			out = append(out, el)
		}
	}
	return out, nil
}

func (p *fakePage) ObserveMutations(ctx context.Context) (<-chan struct{}, error) {
	p.mu.Lock()
	id := p.nextObserver
	p.nextObserver++
	p.observeCalls++
	ch := make(chan struct{}, 1)
	p.observers[id] = ch
	p.mu.Unlock()

	go func() {
		<-ctx.Done()
		p.mu.Lock()
		delete(p.observers, id)
		close(ch)
		p.mu.Unlock()
	}()
	return ch, nil
}

func (p *fakePage) ShowNotification(ctx context.Context, message string, display time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.notifications = append(p.notifications, message)
	return nil
}

func (e *fakeElement) matches(selector string) bool {
	return e.info.Tag == selector || slices.Contains(e.selectors, selector)
}

func (e *fakeElement) Info(ctx context.Context) (entity.ElementInfo, error) {
	return e.info, nil
}

func (e *fakeElement) Closest(ctx context.Context, selector string) (output.ElementPort, error) {
	e.page.mu.Lock()
	defer e.page.mu.Unlock()
	for cur := e; cur != nil; cur = cur.parent {
		if cur.matches(selector) {
			return cur, nil
		}
	}
	return nil, nil
}

func (e *fakeElement) Query(ctx context.Context, selector string) (output.ElementPort, error) {
	e.page.mu.Lock()
	defer e.page.mu.Unlock()
	for _, el := range e.page.elements {
		if el == e || !el.matches(selector) {
			continue
		}
		for anc := el.parent; anc != nil; anc = anc.parent {
			if anc == e {
				return el, nil
			}
		}
	}
	return nil, nil
}

func (e *fakeElement) Focus(ctx context.Context) error {
	e.focusCount++
	return nil
}

func (e *fakeElement) Click(ctx context.Context) error {
	e.clickCount++
	return nil
}

func (e *fakeElement) Value(ctx context.Context) (string, error) {
	return e.value, nil
}

func (e *fakeElement) SetValue(ctx context.Context, value string) error {
	if e.rejectBulkValue && len([]rune(value)) > 1 {
		return nil
	}
	e.value = value
	return nil
}

func (e *fakeElement) TypeValue(ctx context.Context, value string) error {
	e.typed = true
	e.value = ""
	for _, r := range value {
		e.value += string(r)
	}
	return nil
}

func (e *fakeElement) SetText(ctx context.Context, text string) error {
	e.text = text
	return nil
}

func (e *fakeElement) ReplaceContent(ctx context.Context, text string) error {
	e.text = text
	e.caretAtEnd = false
	return nil
}

func (e *fakeElement) MoveCaretToEnd(ctx context.Context) error {
	e.caretAtEnd = true
	return nil
}

func (e *fakeElement) Dispatch(ctx context.Context, event entity.SyntheticEvent) error {
	if e.failDispatch {
		return errors.New("dispatch blocked by page")
	}
	e.events = append(e.events, event.Type)
	return nil
}
