package entity

type EventClass string

const (
	ClassEvent         EventClass = "Event"
	ClassKeyboardEvent EventClass = "KeyboardEvent"
)

// SyntheticEvent describes a DOM event constructed and dispatched from
// script to mimic user activity.
type SyntheticEvent struct {
	Type       string     `json:"type"`
	Class      EventClass `json:"class"`
	Bubbles    bool       `json:"bubbles"`
	Cancelable bool       `json:"cancelable"`
}

// FillEvents is dispatched, in order, on every element written to. Most
// front-end frameworks sync their model from these rather than from the
// value property.
var FillEvents = []SyntheticEvent{
	{Type: "input", Class: ClassEvent, Bubbles: true, Cancelable: true},
	{Type: "change", Class: ClassEvent, Bubbles: true, Cancelable: true},
	{Type: "keydown", Class: ClassKeyboardEvent, Bubbles: true, Cancelable: true},
	{Type: "keyup", Class: ClassKeyboardEvent, Bubbles: true, Cancelable: true},
}
