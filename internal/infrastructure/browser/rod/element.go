package rod

import (
	"context"
	"fmt"

	"askai-shortcut/internal/application/port/output"
	"askai-shortcut/internal/domain/entity"

	"github.com/go-rod/rod"
)

var _ output.ElementPort = (*Element)(nil)

type Element struct {
	page *Page
	el   *rod.Element
}

func newElement(page *Page, el *rod.Element) *Element {
	return &Element{page: page, el: el}
}

func (e *Element) eval(ctx context.Context, js string, args ...interface{}) error {
	_, err := e.el.Context(ctx).Eval(js, args...)
	return err
}

func (e *Element) Info(ctx context.Context) (entity.ElementInfo, error) {
	res, err := e.el.Context(ctx).Eval(jsElementInfo)
	if err != nil {
		return entity.ElementInfo{}, fmt.Errorf("element info: %w", err)
	}

	var info entity.ElementInfo
	if err := decode(res.Value, &info); err != nil {
		return entity.ElementInfo{}, fmt.Errorf("decode element info: %w", err)
	}
	return info, nil
}

func (e *Element) Closest(ctx context.Context, selector string) (output.ElementPort, error) {
	els, err := e.page.page.Context(ctx).ElementsByJS(rod.Eval(jsClosest, selector).This(e.el.Object))
	if err != nil {
		return nil, fmt.Errorf("closest %q: %w", selector, err)
	}
	if len(els) == 0 {
		return nil, nil
	}
	return newElement(e.page, els[0]), nil
}

func (e *Element) Query(ctx context.Context, selector string) (output.ElementPort, error) {
	els, err := e.el.Context(ctx).Elements(selector)
	if err != nil {
		return nil, fmt.Errorf("query %q: %w", selector, err)
	}
	if len(els) == 0 {
		return nil, nil
	}
	return newElement(e.page, els[0]), nil
}

func (e *Element) Focus(ctx context.Context) error {
	return e.el.Context(ctx).Focus()
}

func (e *Element) Click(ctx context.Context) error {
	return e.eval(ctx, jsClick)
}

func (e *Element) Value(ctx context.Context) (string, error) {
	res, err := e.el.Context(ctx).Eval(jsValue)
	if err != nil {
		return "", err
	}
	return res.Value.Str(), nil
}

func (e *Element) SetValue(ctx context.Context, value string) error {
	return e.eval(ctx, jsSetValue, value)
}

func (e *Element) TypeValue(ctx context.Context, value string) error {
	return e.eval(ctx, jsTypeValue, value)
}

func (e *Element) SetText(ctx context.Context, text string) error {
	return e.eval(ctx, jsSetText, text)
}

func (e *Element) ReplaceContent(ctx context.Context, text string) error {
	return e.eval(ctx, jsReplaceContent, text)
}

func (e *Element) MoveCaretToEnd(ctx context.Context) error {
	return e.eval(ctx, jsCaretToEnd)
}

func (e *Element) Dispatch(ctx context.Context, event entity.SyntheticEvent) error {
	return e.eval(ctx, jsDispatch, event.Type, string(event.Class), event.Bubbles, event.Cancelable)
}
