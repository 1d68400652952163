package userinteraction

import (
	"fmt"
	"io"
	"os"
	"strings"

	"askai-shortcut/internal/application/port/output"
	"askai-shortcut/internal/domain/entity"

	"github.com/fatih/color"
)

var _ output.ConsolePort = (*Console)(nil)

type Console struct {
	out io.Writer
}

func NewConsole() *Console {
	return &Console{out: color.Output}
}

func NewConsoleTo(w io.Writer) *Console {
	if w == nil {
		w = os.Stdout
	}
	return &Console{out: w}
}

func (c *Console) ShowButtons(settings entity.Settings) {
	dim := color.New(color.Faint)
	dim.Fprintf(c.out, "AI service: %s\n", settings.AIServiceURL)
	dim.Fprintf(c.out, "Language: %s\n", settings.Language)

	cyan := color.New(color.FgCyan, color.Bold)
	for i, b := range settings.Buttons {
		cyan.Fprintf(c.out, "\n%d. %s", i+1, b.Name)
		dim.Fprintf(c.out, " [%s]\n", b.ID)
		fmt.Fprintf(c.out, "   %s\n", truncate(firstLine(b.Question), 80))
	}
}

func (c *Console) ShowAsk(button entity.Button, tabURL string, ack entity.Ack) {
	switch ack.Status {
	case entity.AckSuccess:
		green := color.New(color.FgGreen)
		green.Fprintf(c.out, "✓ %s → %s\n", button.Name, tabURL)
	case entity.AckDuplicate:
		yellow := color.New(color.FgYellow)
		yellow.Fprintf(c.out, "⏸ %s: the tab already has a fill in progress\n", button.Name)
	default:
		red := color.New(color.FgRed)
		red.Fprintf(c.out, "❌ %s: fill message %s\n", button.Name, ack.Status)
	}
}

func (c *Console) ShowServiceURL(url string) {
	green := color.New(color.FgGreen)
	green.Fprintf(c.out, "✓ AI service set to %s\n", url)
}

func (c *Console) ShowButtonAdded(button entity.Button) {
	green := color.New(color.FgGreen)
	green.Fprintf(c.out, "✓ Added %s", button.Name)
	color.New(color.Faint).Fprintf(c.out, " [%s]\n", button.ID)
}

func (c *Console) ShowButtonUpdated(button entity.Button) {
	green := color.New(color.FgGreen)
	green.Fprintf(c.out, "✓ Saved %s", button.Name)
	color.New(color.Faint).Fprintf(c.out, " [%s]\n", button.ID)
}

func (c *Console) ShowLanguage(code string) {
	green := color.New(color.FgGreen)
	green.Fprintf(c.out, "✓ Language set to %s\n", code)
}

func (c *Console) ShowButtonRemoved(id string) {
	green := color.New(color.FgGreen)
	green.Fprintf(c.out, "✓ Removed %s\n", id)
}

func (c *Console) ShowWaiting(message string) {
	dim := color.New(color.Faint)
	dim.Fprintln(c.out, message)
}

func (c *Console) ShowError(err error) {
	red := color.New(color.FgRed)
	red.Fprint(c.out, "❌ Error: ")
	fmt.Fprintln(c.out, err)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen]) + "..."
}
