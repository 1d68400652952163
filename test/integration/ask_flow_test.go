package integration

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"askai-shortcut/internal/application/port/input"
	"askai-shortcut/internal/di"
	"askai-shortcut/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chatService imitates an AI chat page whose prompt box reports every input
// event back to the server.
type chatService struct {
	mu      sync.Mutex
	reports []string
}

const chatPage = `<!DOCTYPE html>
<html>
<head><title>Chat</title></head>
<body>
	<div id="root"></div>
	<script>
		setTimeout(() => {
			const ta = document.createElement('textarea');
			ta.setAttribute('placeholder', 'Ask me anything');
			ta.rows = 4;
			ta.cols = 60;
			ta.addEventListener('input', () => fetch('/report', { method: 'POST', body: ta.value }));
			document.getElementById('root').appendChild(ta);
		}, 300);
	</script>
</body>
</html>`

func (c *chatService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/report" {
		body, _ := io.ReadAll(r.Body)
		c.mu.Lock()
		c.reports = append(c.reports, string(body))
		c.mu.Unlock()
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, chatPage)
}

func (c *chatService) last() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.reports) == 0 {
		return ""
	}
	return c.reports[len(c.reports)-1]
}

func newContainer(t *testing.T, serviceURL string) *di.Container {
	t.Helper()
	if testing.Short() {
		t.Skip("launches a headless browser")
	}

	ctx := context.Background()
	settingsFile := filepath.Join(t.TempDir(), "settings.yaml")

	c, err := di.NewContainer(ctx, di.Config{
		SettingsFile:     settingsFile,
		SearchTimeout:    5 * time.Second,
		ReadyDelay:       50 * time.Millisecond,
		WithBrowser:      true,
		BrowserHeadless:  true,
		BrowserNoSandbox: true,
	})
	require.NoError(t, err)
	t.Cleanup(c.Close)

	_, err = c.Settings.SetAIServiceURL(ctx, serviceURL)
	require.NoError(t, err)
	return c
}

func TestAskFlow_FillsChatInput(t *testing.T) {
	service := &chatService{}
	server := httptest.NewServer(service)
	defer server.Close()

	c := newContainer(t, server.URL)
	const pageURL = "https://shop.example.com/item/42"

	res, err := c.Ask.Execute(context.Background(), input.AskRequest{ButtonID: "button1", PageURL: pageURL})
	require.NoError(t, err)
	assert.Equal(t, entity.AckSuccess, res.Ack.Status)

	c.Handler.Wait()

	want := entity.ComposeQuestion(pageURL, entity.DefaultButtons()[0].Question)
	assert.Eventually(t, func() bool { return service.last() == want }, 3*time.Second, 50*time.Millisecond)
}

func TestAskFlow_OverHTTP(t *testing.T) {
	service := &chatService{}
	server := httptest.NewServer(service)
	defer server.Close()

	c := newContainer(t, server.URL)
	srv, err := c.NewServer(context.Background(), "127.0.0.1:0", true)
	require.NoError(t, err)
	api := httptest.NewServer(srv.Handler())
	defer api.Close()

	resp, err := http.Post(api.URL+"/v1/ask", "application/json",
		strings.NewReader(`{"button_id":"button2","page_url":"https://news.example.com/story"}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	c.Handler.Wait()

	want := entity.ComposeQuestion("https://news.example.com/story", entity.DefaultButtons()[1].Question)
	assert.Eventually(t, func() bool { return service.last() == want }, 3*time.Second, 50*time.Millisecond)

	metrics, err := http.Get(api.URL + "/metrics")
	require.NoError(t, err)
	defer metrics.Body.Close()
	body, err := io.ReadAll(metrics.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `status="filled"} 1`)
}
