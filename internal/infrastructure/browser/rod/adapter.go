package rod

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"askai-shortcut/internal/application/port/output"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

var _ output.BrowserPort = (*BrowserAdapter)(nil)

var ErrInvalidURL = errors.New("invalid URL")

const defaultTimeout = 30 * time.Second

type BrowserAdapter struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	timeout  time.Duration

	mu     sync.Mutex
	closed bool
}

type BrowserConfig struct {
	Headless  bool
	NoSandbox bool
	DevTools  bool
	// Bin overrides the browser binary the launcher would download or find.
	Bin string
	// ControlURL connects to an already running browser instead of
	// launching one.
	ControlURL string
	Timeout    time.Duration
}

func DefaultConfig() BrowserConfig {
	return BrowserConfig{
		Headless:  false,
		NoSandbox: false,
		DevTools:  false,
		Timeout:   defaultTimeout,
	}
}

func NewBrowserAdapter(ctx context.Context, cfg BrowserConfig) (*BrowserAdapter, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	controlURL := cfg.ControlURL
	var l *launcher.Launcher
	if controlURL == "" {
		l = launcher.New().
			Context(ctx).
			Headless(cfg.Headless).
			Devtools(cfg.DevTools).
			NoSandbox(cfg.NoSandbox).
			Delete("use-mock-keychain")
		if cfg.Bin != "" {
			l = l.Bin(cfg.Bin)
		}

		u, err := l.Launch()
		if err != nil {
			return nil, fmt.Errorf("failed to launch browser: %w", err)
		}
		controlURL = u
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		if l != nil {
			l.Kill()
			l.Cleanup()
		}
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	return &BrowserAdapter{
		browser:  browser,
		launcher: l,
		timeout:  cfg.Timeout,
	}, nil
}

// OpenTab opens rawURL in a new tab and waits for it to load.
func (b *BrowserAdapter) OpenTab(ctx context.Context, rawURL string) (output.PagePort, error) {
	if err := validateURL(rawURL); err != nil {
		return nil, err
	}

	b.mu.Lock()
	closed := b.closed
	b.mu.Unlock()
	if closed {
		return nil, errors.New("browser is closed")
	}

	page, err := b.browser.Context(ctx).Page(proto.TargetCreateTarget{URL: rawURL})
	if err != nil {
		return nil, fmt.Errorf("open tab: %w", err)
	}
	if _, err := page.Activate(); err != nil {
		return nil, fmt.Errorf("activate tab: %w", err)
	}

	if err := page.Context(ctx).Timeout(b.timeout).WaitLoad(); err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("wait for load: %w", err)
	}
	return NewPage(page.Context(context.Background()), b.timeout), nil
}

func (b *BrowserAdapter) IsReady() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return !b.closed && b.browser != nil
}

func (b *BrowserAdapter) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true

	if b.browser != nil {
		_ = b.browser.Close()
	}
	if b.launcher != nil {
		b.launcher.Kill()
		b.launcher.Cleanup()
	}
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidURL, raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: missing host", ErrInvalidURL)
	}
	return nil
}
