package filler

import (
	"context"
	"net/url"
	"sync/atomic"

	"askai-shortcut/internal/application/port/output"
	"askai-shortcut/internal/domain/entity"
	"askai-shortcut/internal/domain/rules"
)

type Match struct {
	Element output.ElementPort
	Info    entity.ElementInfo
	Source  entity.MatchSource
	Rule    string
}

// Locator runs one synchronous search pass over a page: the focused element
// first, then the rule table in priority order.
type Locator struct {
	rules   atomic.Pointer[[]rules.Rule]
	minSize float64
	logger  output.LoggerPort
}

func NewLocator(table rules.Table, minSize float64, logger output.LoggerPort) *Locator {
	if minSize <= 0 {
		minSize = entity.DefaultMinElementSize
	}
	l := &Locator{
		minSize: minSize,
		logger:  logger,
	}
	l.SetRules(table)
	return l
}

// SetRules swaps the rule table. Scans already running keep the old one.
func (l *Locator) SetRules(table rules.Table) {
	ordered := table.Ordered()
	l.rules.Store(&ordered)
}

func (l *Locator) Search(ctx context.Context, page output.PagePort) (*Match, bool) {
	if m, ok := l.Focused(ctx, page); ok {
		return m, true
	}
	return l.Scan(ctx, page)
}

// Focused accepts the page's focused element when it is a visible text
// input. Focus inside a rich-text editor resolves to the editor root.
func (l *Locator) Focused(ctx context.Context, page output.PagePort) (*Match, bool) {
	el, err := page.ActiveElement(ctx)
	if err != nil {
		l.logger.Debug("Active element lookup failed", "error", err)
		return nil, false
	}
	if el == nil {
		return nil, false
	}

	info, err := el.Info(ctx)
	if err != nil || info.IsBody {
		return nil, false
	}
	// The focused leaf itself must be editable; only then is it widened to
	// its rich-text root.
	if !info.Visible(l.minSize) || !info.IsTextInput() {
		return nil, false
	}

	container, err := el.Closest(ctx, entity.RichTextTag)
	if err != nil {
		l.logger.Debug("Rich-text container lookup failed", "error", err)
		return nil, false
	}
	if container != nil {
		if info, err = container.Info(ctx); err != nil {
			return nil, false
		}
		el = container
	}
	return &Match{Element: el, Info: info, Source: entity.SourceFocused}, true
}

// Scan tries each rule in order and returns the first visible match in
// document order.
func (l *Locator) Scan(ctx context.Context, page output.PagePort) (*Match, bool) {
	host := pageHost(page)
	for _, rule := range *l.rules.Load() {
		if ctx.Err() != nil {
			return nil, false
		}
		if !rule.AppliesTo(host) {
			continue
		}

		elements, err := page.QueryAll(ctx, rule.Selector)
		if err != nil {
			l.logger.Debug("Selector query failed", "rule", rule.Name, "error", err)
			continue
		}

		for _, el := range elements {
			info, err := el.Info(ctx)
			if err != nil {
				continue
			}
			if !info.Visible(l.minSize) || !rule.Accepts(info) {
				continue
			}
			return &Match{Element: el, Info: info, Source: entity.SourceRule, Rule: rule.Name}, true
		}
	}
	return nil, false
}

func pageHost(page output.PagePort) string {
	u, err := url.Parse(page.URL())
	if err != nil {
		return ""
	}
	return u.Hostname()
}
