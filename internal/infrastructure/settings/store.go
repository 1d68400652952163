// Package settings persists user-configurable buttons and the AI service
// URL as a YAML document.
package settings

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"askai-shortcut/internal/application/port/output"
	"askai-shortcut/internal/domain/entity"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

var _ output.SettingsStore = (*FileStore)(nil)

var (
	ErrEmptyURL   = errors.New("AI service URL cannot be empty")
	ErrLastButton = errors.New("at least one button is required")
)

var schemeRe = regexp.MustCompile(`(?i)^https?://`)

type FileStore struct {
	path  string
	mu    sync.Mutex
	newID func() string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{
		path:  path,
		newID: uuid.NewString,
	}
}

func (s *FileStore) Path() string {
	return s.path
}

// Load returns defaults when the file does not exist yet.
func (s *FileStore) Load(ctx context.Context) (entity.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *FileStore) SetAIServiceURL(ctx context.Context, raw string) (string, error) {
	url, err := NormalizeURL(raw)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cur, err := s.loadLocked()
	if err != nil {
		return "", err
	}
	cur.AIServiceURL = url
	return url, s.saveLocked(cur)
}

func (s *FileStore) AddButton(ctx context.Context, name, question string) (entity.Button, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, err := s.loadLocked()
	if err != nil {
		return entity.Button{}, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = fmt.Sprintf("Button %d", len(cur.Buttons)+1)
	}
	b := entity.Button{
		ID:       "button-" + s.newID(),
		Name:     name,
		Question: strings.TrimSpace(question),
	}
	cur.Buttons = append(cur.Buttons, b)
	return b, s.saveLocked(cur)
}

// UpdateButton replaces a button's name and question. An empty name falls
// back to "Button N" for the button's position.
func (s *FileStore) UpdateButton(ctx context.Context, id, name, question string) (entity.Button, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, err := s.loadLocked()
	if err != nil {
		return entity.Button{}, err
	}

	idx := indexOf(cur.Buttons, id)
	if idx < 0 {
		return entity.Button{}, fmt.Errorf("%w: %s", entity.ErrButtonNotFound, id)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = fmt.Sprintf("Button %d", idx+1)
	}
	cur.Buttons[idx].Name = name
	cur.Buttons[idx].Question = strings.TrimSpace(question)
	return cur.Buttons[idx], s.saveLocked(cur)
}

func (s *FileStore) RemoveButton(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, err := s.loadLocked()
	if err != nil {
		return err
	}

	idx := indexOf(cur.Buttons, id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", entity.ErrButtonNotFound, id)
	}
	if len(cur.Buttons) == 1 {
		return ErrLastButton
	}

	cur.Buttons = append(cur.Buttons[:idx], cur.Buttons[idx+1:]...)
	return s.saveLocked(cur)
}

// SetLanguage stores the language and switches notification messages that
// are still at their previous defaults.
func (s *FileStore) SetLanguage(ctx context.Context, code string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, err := s.loadLocked()
	if err != nil {
		return "", err
	}
	next, err := cur.SwitchLanguage(code)
	if err != nil {
		return "", err
	}
	return next.Language, s.saveLocked(next)
}

func (s *FileStore) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(entity.DefaultSettings())
}

func (s *FileStore) loadLocked() (entity.Settings, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return entity.DefaultSettings(), nil
	}
	if err != nil {
		return entity.Settings{}, fmt.Errorf("read settings: %w", err)
	}

	var st entity.Settings
	if err := yaml.Unmarshal(data, &st); err != nil {
		return entity.Settings{}, fmt.Errorf("parse settings %s: %w", s.path, err)
	}
	return st.WithDefaults(), nil
}

func (s *FileStore) saveLocked(st entity.Settings) error {
	data, err := yaml.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create settings dir: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace settings: %w", err)
	}
	return nil
}

func indexOf(buttons []entity.Button, id string) int {
	for i, b := range buttons {
		if b.ID == id {
			return i
		}
	}
	return -1
}

// NormalizeURL trims the URL and adds an https scheme when none is given.
func NormalizeURL(raw string) (string, error) {
	url := strings.TrimSpace(raw)
	if url == "" {
		return "", ErrEmptyURL
	}
	if !schemeRe.MatchString(url) {
		url = "https://" + url
	}
	return url, nil
}
