package settings

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"askai-shortcut/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	s := NewFileStore(filepath.Join(t.TempDir(), "conf", "settings.yaml"))
	s.newID = func() string { return "fixed" }
	return s
}

func TestLoad_DefaultsWhenMissing(t *testing.T) {
	s := newTestStore(t)

	st, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultSettings(), st)
}

func TestLoad_FillsMissingFields(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0o755))
	require.NoError(t, os.WriteFile(s.Path(), []byte(`
ai_service_url: https://chat.example.com
messages:
  question_loaded: Ready!
`), 0o644))

	st, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://chat.example.com", st.AIServiceURL)
	assert.Equal(t, "Ready!", st.Messages.QuestionLoaded)
	assert.Equal(t, entity.DefaultMessages().InputNotFound, st.Messages.InputNotFound)
	assert.Len(t, st.Buttons, 2)
}

func TestLoad_InvalidYAML(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0o755))
	require.NoError(t, os.WriteFile(s.Path(), []byte("buttons: [unclosed"), 0o644))

	_, err := s.Load(context.Background())
	assert.Error(t, err)
}

func TestSetAIServiceURL(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	got, err := s.SetAIServiceURL(ctx, "  chat.example.com/new  ")
	require.NoError(t, err)
	assert.Equal(t, "https://chat.example.com/new", got)

	got, err = s.SetAIServiceURL(ctx, "HTTP://localhost:8080/chat")
	require.NoError(t, err)
	assert.Equal(t, "HTTP://localhost:8080/chat", got)

	st, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "HTTP://localhost:8080/chat", st.AIServiceURL)

	_, err = s.SetAIServiceURL(ctx, "   ")
	assert.ErrorIs(t, err, ErrEmptyURL)
}

func TestAddAndRemoveButton(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	b, err := s.AddButton(ctx, "  ", " Summarize this page ")
	require.NoError(t, err)
	assert.Equal(t, "button-fixed", b.ID)
	assert.Equal(t, "Button 3", b.Name)
	assert.Equal(t, "Summarize this page", b.Question)

	st, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, st.Buttons, 3)
	assert.Equal(t, b, st.Buttons[2])

	require.NoError(t, s.RemoveButton(ctx, "button1"))
	require.NoError(t, s.RemoveButton(ctx, "button2"))

	err = s.RemoveButton(ctx, "button-fixed")
	assert.ErrorIs(t, err, ErrLastButton)

	err = s.RemoveButton(ctx, "nope")
	assert.ErrorIs(t, err, entity.ErrButtonNotFound)

	st, err = s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, st.Buttons, 1)
	assert.Equal(t, "button-fixed", st.Buttons[0].ID)
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.SetAIServiceURL(ctx, "chat.example.com")
	require.NoError(t, err)
	require.NoError(t, s.Reset(ctx))

	st, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultAIServiceURL, st.AIServiceURL)
}

func TestUpdateButton(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	b, err := s.UpdateButton(ctx, "button2", "  Fact check ", "  Verify every claim on this page.  ")
	require.NoError(t, err)
	assert.Equal(t, entity.Button{ID: "button2", Name: "Fact check", Question: "Verify every claim on this page."}, b)

	b, err = s.UpdateButton(ctx, "button2", " ", "")
	require.NoError(t, err)
	assert.Equal(t, "Button 2", b.Name)
	assert.Empty(t, b.Question)

	st, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, st.Buttons, 2)
	assert.Equal(t, entity.DefaultButtons()[0], st.Buttons[0])
	assert.Equal(t, b, st.Buttons[1])

	_, err = s.UpdateButton(ctx, "nope", "x", "y")
	assert.ErrorIs(t, err, entity.ErrButtonNotFound)
}

func TestSetLanguage(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	code, err := s.SetLanguage(ctx, "ES")
	require.NoError(t, err)
	assert.Equal(t, "es", code)

	es, _ := entity.MessagesFor("es")
	st, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "es", st.Language)
	assert.Equal(t, es, st.Messages)

	_, err = s.SetLanguage(ctx, "klingon")
	assert.ErrorIs(t, err, entity.ErrUnsupportedLanguage)

	st, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "es", st.Language)
}
