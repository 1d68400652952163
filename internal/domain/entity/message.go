package entity

// ActionFillInput is the only action the fill trigger responds to.
const ActionFillInput = "fillAIServiceInput"

type Message struct {
	Action   string   `json:"action"`
	Question string   `json:"question"`
	Messages Messages `json:"messages"`
}

type AckStatus string

const (
	AckSuccess   AckStatus = "success"
	AckIgnored   AckStatus = "ignored"
	AckDuplicate AckStatus = "duplicate"
	AckRejected  AckStatus = "rejected"
)

type Ack struct {
	Status AckStatus `json:"status"`
}
