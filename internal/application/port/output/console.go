package output

import "askai-shortcut/internal/domain/entity"

// ConsolePort renders CLI results for a person at a terminal.
type ConsolePort interface {
	ShowButtons(settings entity.Settings)
	ShowAsk(button entity.Button, tabURL string, ack entity.Ack)
	ShowServiceURL(url string)
	ShowButtonAdded(button entity.Button)
	ShowButtonUpdated(button entity.Button)
	ShowButtonRemoved(id string)
	ShowLanguage(code string)
	ShowWaiting(message string)
	ShowError(err error)
}
