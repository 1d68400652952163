package entity

import (
	"errors"
	"fmt"
)

const DefaultAIServiceURL = "https://gemini.google.com/app"

type Button struct {
	ID       string `yaml:"id" json:"id"`
	Name     string `yaml:"name" json:"name"`
	Question string `yaml:"question" json:"question"`
}

type Messages struct {
	QuestionLoaded string `yaml:"question_loaded" json:"question_loaded"`
	InputNotFound  string `yaml:"input_not_found" json:"input_not_found"`
}

type Settings struct {
	AIServiceURL string   `yaml:"ai_service_url" json:"ai_service_url"`
	Language     string   `yaml:"language" json:"language"`
	Buttons      []Button `yaml:"buttons" json:"buttons"`
	Messages     Messages `yaml:"messages" json:"messages"`
}

func DefaultMessages() Messages {
	return Messages{
		QuestionLoaded: "AskAIShortcut has loaded the question! You can edit or press Enter to submit.",
		InputNotFound:  "Could not find the AI chat input field. Please paste the question manually.",
	}
}

func DefaultButtons() []Button {
	return []Button{
		{
			ID:   "button1",
			Name: "💡 Buying advice",
			Question: "I need buying advice for this product, please help me understand:\n" +
				"- Is this a good deal?\n" +
				"- What are the pros and cons?\n" +
				"- Are there better alternatives?\n" +
				"- What should I consider before buying?\n" +
				"- Is this product worth the price?\n" +
				"- What do the reviews say? Do they appear authentic, or do they show signs of AI generation and manipulation?\n" +
				"- What's the price history? Has it been cheaper before?\n" +
				"- Are there any hidden or long-term costs (accessories, maintenance, subscriptions)?",
		},
		{
			ID:   "button2",
			Name: "🔍 Content analysis",
			Question: "Analyze this content for editorial bias\n" +
				"Identify any omitted context, missing facts, or logical leaps\n" +
				"Verify authenticity and logic\n" +
				"What is the primary goal (e.g., to inform, persuade, or sell). Identify if the content uses " +
				"'outrage engagement' or specific emotional triggers to influence a vote, a purchase, or social sharing.",
		},
	}
}

func DefaultSettings() Settings {
	return Settings{
		AIServiceURL: DefaultAIServiceURL,
		Language:     "en",
		Buttons:      DefaultButtons(),
		Messages:     DefaultMessages(),
	}
}

// WithDefaults fills empty fields from DefaultSettings.
func (s Settings) WithDefaults() Settings {
	def := DefaultSettings()
	if s.AIServiceURL == "" {
		s.AIServiceURL = def.AIServiceURL
	}
	if s.Language == "" {
		s.Language = def.Language
	}
	if len(s.Buttons) == 0 {
		s.Buttons = def.Buttons
	}
	if s.Messages.QuestionLoaded == "" {
		s.Messages.QuestionLoaded = def.Messages.QuestionLoaded
	}
	if s.Messages.InputNotFound == "" {
		s.Messages.InputNotFound = def.Messages.InputNotFound
	}
	return s
}

// Button returns the button with the given id; an empty id selects the
// first one.
func (s Settings) Button(id string) (Button, bool) {
	if id == "" {
		if len(s.Buttons) == 0 {
			return Button{}, false
		}
		return s.Buttons[0], true
	}
	for _, b := range s.Buttons {
		if b.ID == id {
			return b, true
		}
	}
	return Button{}, false
}

// ComposeQuestion builds the text sent to the chat service for a page.
func ComposeQuestion(pageURL, question string) string {
	return fmt.Sprintf("Context: %s\n\nTask: %s", pageURL, question)
}

var ErrButtonNotFound = errors.New("button not found")
