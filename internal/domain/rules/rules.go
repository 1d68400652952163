// Package rules holds the prioritized selector table used to discover a
// page's chat input. New front-ends are supported by adding rows, either in
// Default or in a YAML rules file merged on top of it.
package rules

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"askai-shortcut/internal/domain/entity"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"
)

var ErrInvalidRule = errors.New("invalid rule")

// Rule matches candidates by CSS selector. Match, when set, is an extra
// predicate a visible candidate must also pass. Hosts restricts the rule to
// pages whose host matches one of the glob patterns ("*.example.com").
type Rule struct {
	Name     string                        `yaml:"name"`
	Selector string                        `yaml:"selector"`
	Priority int                           `yaml:"priority"`
	Hosts    []string                      `yaml:"hosts,omitempty"`
	Match    func(entity.ElementInfo) bool `yaml:"-"`

	hostGlobs []glob.Glob
}

func (r Rule) Accepts(info entity.ElementInfo) bool {
	return r.Match == nil || r.Match(info)
}

// AppliesTo reports whether the rule runs on a page served from host.
func (r Rule) AppliesTo(host string) bool {
	if len(r.hostGlobs) == 0 {
		return true
	}
	host = strings.ToLower(host)
	for _, g := range r.hostGlobs {
		if g.Match(host) {
			return true
		}
	}
	return false
}

func (r Rule) compile() (Rule, error) {
	if r.Name == "" {
		return r, fmt.Errorf("%w: name is required (selector %q)", ErrInvalidRule, r.Selector)
	}
	if r.Selector == "" {
		return r, fmt.Errorf("%w: %s: selector is required", ErrInvalidRule, r.Name)
	}

	r.hostGlobs = nil
	for _, pattern := range r.Hosts {
		g, err := glob.Compile(strings.ToLower(pattern), '.')
		if err != nil {
			return r, fmt.Errorf("%w: %s: invalid host pattern %q: %v", ErrInvalidRule, r.Name, pattern, err)
		}
		r.hostGlobs = append(r.hostGlobs, g)
	}
	return r, nil
}

type Table struct {
	rules []Rule
}

func New(rules ...Rule) (Table, error) {
	compiled := make([]Rule, 0, len(rules))
	for _, r := range rules {
		c, err := r.compile()
		if err != nil {
			return Table{}, err
		}
		compiled = append(compiled, c)
	}
	return Table{rules: compiled}, nil
}

// Default is ordered from service-specific markers down to generic fields so
// that a chat prompt wins over an unrelated search box on the same page.
func Default() Table {
	return Table{rules: []Rule{
		{Name: "rich-textarea-ask", Selector: `rich-textarea[aria-label*="Ask"]`, Priority: 150},
		{Name: "rich-textarea-enter", Selector: `rich-textarea[aria-label*="Enter"]`, Priority: 140},
		{Name: "rich-textarea", Selector: `rich-textarea`, Priority: 130},
		{Name: "textarea-aria-ask", Selector: `textarea[aria-label*="Ask"]`, Priority: 120},
		{Name: "textarea-aria-enter", Selector: `textarea[aria-label*="Enter"]`, Priority: 115},
		{Name: "textarea-placeholder-ask", Selector: `textarea[placeholder*="Ask"]`, Priority: 110},
		{Name: "textarea-placeholder-enter", Selector: `textarea[placeholder*="Enter"]`, Priority: 105},
		{Name: "textarea-quill", Selector: `textarea.ql-editor`, Priority: 100},
		{Name: "editable-textbox", Selector: `[contenteditable="true"][role="textbox"]`, Priority: 90},
		{Name: "editable-labelled", Selector: `[contenteditable="true"][aria-label]`, Priority: 85},
		{Name: "editable-div", Selector: `div[contenteditable="true"]`, Priority: 80},
		{Name: "quill-editor", Selector: `.ql-editor`, Priority: 70, Match: entity.ElementInfo.IsTextInput},
		{Name: "data-placeholder-ask", Selector: `[data-placeholder*="Ask"]`, Priority: 60, Match: entity.ElementInfo.IsTextInput},
		{Name: "textarea", Selector: `textarea`, Priority: 20},
		{Name: "input-text", Selector: `input[type="text"]`, Priority: 10},
	}}
}

func (t Table) Len() int {
	return len(t.rules)
}

// Ordered returns the rules by descending priority. Equal priorities keep
// their declaration order.
func (t Table) Ordered() []Rule {
	out := append([]Rule(nil), t.rules...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority > out[j].Priority
	})
	return out
}

// Merge returns a table where rules from extra replace same-named rules and
// new names are appended.
func (t Table) Merge(extra Table) Table {
	merged := append([]Rule(nil), t.rules...)
	index := make(map[string]int, len(merged))
	for i, r := range merged {
		index[r.Name] = i
	}
	for _, r := range extra.rules {
		if i, ok := index[r.Name]; ok {
			merged[i] = r
			continue
		}
		index[r.Name] = len(merged)
		merged = append(merged, r)
	}
	return Table{rules: merged}
}

type file struct {
	Rules []Rule `yaml:"rules"`
}

// Load parses a YAML rules document:
//
//	rules:
//	  - name: chat-box
//	    selector: 'div#prompt[contenteditable="true"]'
//	    priority: 200
func Load(r io.Reader) (Table, error) {
	var f file
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return Table{}, nil
		}
		return Table{}, fmt.Errorf("decode rules: %w", err)
	}
	return New(f.Rules...)
}

func LoadFile(path string) (Table, error) {
	fh, err := os.Open(path)
	if err != nil {
		return Table{}, fmt.Errorf("open rules file: %w", err)
	}
	defer fh.Close()

	t, err := Load(fh)
	if err != nil {
		return Table{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
