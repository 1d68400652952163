package entity

import (
	"strconv"
	"strings"
)

// RichTextTag is the custom element some chat front-ends use as their
// multi-line editor root.
const RichTextTag = "rich-textarea"

// DefaultMinElementSize is the smallest width and height, in CSS pixels,
// an element may render at and still count as visible.
const DefaultMinElementSize = 10.0

type ElementKind string

const (
	KindNone            ElementKind = "none"
	KindRichText        ElementKind = "rich_text"
	KindFormField       ElementKind = "form_field"
	KindContentEditable ElementKind = "content_editable"
)

// ElementInfo is a snapshot of a candidate element read in one round trip.
// Tag is lower-case.
type ElementInfo struct {
	Tag        string            `json:"tag"`
	Attributes map[string]string `json:"attributes"`
	Display    string            `json:"display"`
	Visibility string            `json:"visibility"`
	Opacity    string            `json:"opacity"`
	Width      float64           `json:"width"`
	Height     float64           `json:"height"`
	IsBody     bool              `json:"isBody"`
}

func (i ElementInfo) Attr(name string) (string, bool) {
	v, ok := i.Attributes[name]
	return v, ok
}

// Visible reports whether the element is rendered at a usable size.
func (i ElementInfo) Visible(minSize float64) bool {
	if i.Display == "none" || i.Visibility == "hidden" {
		return false
	}
	if isZeroOpacity(i.Opacity) {
		return false
	}
	return i.Width >= minSize && i.Height >= minSize
}

// Kind classifies the element by how text has to be written into it.
// Plain containers without an editing marker are KindNone.
func (i ElementInfo) Kind() ElementKind {
	switch i.Tag {
	case RichTextTag:
		return KindRichText
	case "textarea":
		return KindFormField
	case "input":
		if isTextInputType(i.Attributes["type"]) {
			return KindFormField
		}
		return KindNone
	}

	if v, ok := i.Attributes["contenteditable"]; ok && !strings.EqualFold(strings.TrimSpace(v), "false") {
		return KindContentEditable
	}
	if strings.EqualFold(i.Attributes["role"], "textbox") {
		return KindContentEditable
	}
	return KindNone
}

func (i ElementInfo) IsTextInput() bool {
	return i.Kind() != KindNone
}

func isTextInputType(t string) bool {
	switch strings.ToLower(strings.TrimSpace(t)) {
	case "", "text", "search", "email", "url", "tel":
		return true
	}
	return false
}

func isZeroOpacity(o string) bool {
	v, err := strconv.ParseFloat(strings.TrimSpace(o), 64)
	return err == nil && v == 0
}
