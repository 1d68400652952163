package env

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEnvServiceFrom_OverlayWins(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("ASKAI_TEST_URL=https://base.example\nASKAI_TEST_ONLY_BASE=1\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.test"), []byte("ASKAI_TEST_URL=https://overlay.example\n"), 0o644))

	t.Setenv("APP_ENV", "test")
	t.Setenv("ASKAI_TEST_URL", "")
	t.Setenv("ASKAI_TEST_ONLY_BASE", "")
	os.Unsetenv("ASKAI_TEST_URL")
	os.Unsetenv("ASKAI_TEST_ONLY_BASE")

	svc := NewEnvServiceFrom(dir)

	assert.Equal(t, []string{".env", ".env.test"}, svc.Loaded())
	assert.Equal(t, "https://overlay.example", svc.Get("ASKAI_TEST_URL"))
	assert.Equal(t, "1", svc.Get("ASKAI_TEST_ONLY_BASE"))
}

func TestTypedGetters(t *testing.T) {
	svc := &EnvService{}

	t.Setenv("ASKAI_TEST_BOOL", "true")
	t.Setenv("ASKAI_TEST_BAD_BOOL", "maybe")
	t.Setenv("ASKAI_TEST_INT", "42")
	t.Setenv("ASKAI_TEST_FLOAT", "12.5")
	t.Setenv("ASKAI_TEST_DURATION", "750ms")
	t.Setenv("ASKAI_TEST_BAD_DURATION", "soon")

	assert.True(t, svc.GetBool("ASKAI_TEST_BOOL", false))
	assert.True(t, svc.GetBool("ASKAI_TEST_BAD_BOOL", true))
	assert.False(t, svc.GetBool("ASKAI_TEST_UNSET", false))
	assert.Equal(t, 42, svc.GetInt("ASKAI_TEST_INT", 0))
	assert.Equal(t, 12.5, svc.GetFloat("ASKAI_TEST_FLOAT", 0))
	assert.Equal(t, 750*time.Millisecond, svc.GetDuration("ASKAI_TEST_DURATION", time.Second))
	assert.Equal(t, time.Second, svc.GetDuration("ASKAI_TEST_BAD_DURATION", time.Second))
	assert.Equal(t, "fallback", svc.GetWithDefault("ASKAI_TEST_UNSET", "fallback"))
}

func TestMustGet_PanicsWhenMissing(t *testing.T) {
	svc := &EnvService{}
	assert.Panics(t, func() { svc.MustGet("ASKAI_TEST_SURELY_UNSET") })
}
