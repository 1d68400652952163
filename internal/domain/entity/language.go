package entity

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/language"
)

var ErrUnsupportedLanguage = errors.New("unsupported language")

var catalog = map[string]Messages{
	"en": DefaultMessages(),
	"de": {
		QuestionLoaded: "AskAIShortcut hat die Frage geladen! Sie können sie bearbeiten oder mit Enter absenden.",
		InputNotFound:  "Das Eingabefeld des KI-Chats wurde nicht gefunden. Bitte fügen Sie die Frage manuell ein.",
	},
	"es": {
		QuestionLoaded: "¡AskAIShortcut ha cargado la pregunta! Puedes editarla o pulsar Enter para enviarla.",
		InputNotFound:  "No se encontró el campo de entrada del chat de IA. Pega la pregunta manualmente.",
	},
	"fr": {
		QuestionLoaded: "AskAIShortcut a chargé la question ! Vous pouvez la modifier ou appuyer sur Entrée pour l'envoyer.",
		InputNotFound:  "Impossible de trouver le champ de saisie du chat IA. Veuillez coller la question manuellement.",
	},
}

// NormalizeLanguage reduces a BCP 47 tag to its base language, so "de-AT"
// and "de_at" both become "de". Unparseable input is only lowercased.
func NormalizeLanguage(code string) string {
	code = strings.TrimSpace(code)
	tag, err := language.Parse(code)
	if err != nil {
		return strings.ToLower(code)
	}
	base, _ := tag.Base()
	return base.String()
}

// MessagesFor returns the built-in notification texts for a language.
func MessagesFor(code string) (Messages, bool) {
	m, ok := catalog[NormalizeLanguage(code)]
	return m, ok
}

func Languages() []string {
	codes := make([]string, 0, len(catalog))
	for code := range catalog {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// SwitchLanguage selects the catalogue messages for code. Messages the
// user has customised are kept; only those still equal to the previous
// language's defaults are replaced.
func (s Settings) SwitchLanguage(code string) (Settings, error) {
	code = NormalizeLanguage(code)
	next, ok := catalog[code]
	if !ok {
		return s, fmt.Errorf("%w: %q (available: %s)", ErrUnsupportedLanguage, code, strings.Join(Languages(), ", "))
	}

	prev, ok := MessagesFor(s.Language)
	if !ok {
		prev = DefaultMessages()
	}
	if s.Messages.QuestionLoaded == "" || s.Messages.QuestionLoaded == prev.QuestionLoaded {
		s.Messages.QuestionLoaded = next.QuestionLoaded
	}
	if s.Messages.InputNotFound == "" || s.Messages.InputNotFound == prev.InputNotFound {
		s.Messages.InputNotFound = next.InputNotFound
	}
	s.Language = code
	return s, nil
}
