package di

import (
	"context"
	"errors"
	"fmt"
	"time"

	"askai-shortcut/internal/application/port/input"
	"askai-shortcut/internal/application/port/output"
	"askai-shortcut/internal/domain/rules"
	"askai-shortcut/internal/infrastructure/browser/rod"
	"askai-shortcut/internal/infrastructure/logger"
	"askai-shortcut/internal/infrastructure/metrics"
	"askai-shortcut/internal/infrastructure/settings"
	"askai-shortcut/internal/infrastructure/userinteraction"
	"askai-shortcut/internal/infrastructure/watch"
	"askai-shortcut/internal/transport/httpapi"
	"askai-shortcut/internal/usecase/ask"
	"askai-shortcut/internal/usecase/filler"
	"askai-shortcut/internal/usecase/trigger"

	"github.com/prometheus/client_golang/prometheus"
)

type Container struct {
	Logger   output.LoggerPort
	Settings output.SettingsStore
	Console  output.ConsolePort
	Registry *prometheus.Registry
	Metrics  output.MetricsPort
	Rules    rules.Table

	Filler  input.Filler
	Handler input.MessageHandler

	// Set only when Config.WithBrowser is true.
	Browser output.BrowserPort
	Ask     input.AskExecutor

	fill      *filler.UseCase
	rulesFile string
}

type Config struct {
	LogLevel     string
	LogDir       string
	LogConsole   bool
	SettingsFile string
	RulesFile    string

	SearchTimeout        time.Duration
	ReadyDelay           time.Duration
	NotificationDuration time.Duration
	MinElementSize       float64

	WithBrowser      bool
	BrowserHeadless  bool
	BrowserNoSandbox bool
	BrowserBin       string
	BrowserURL       string
}

func NewContainer(ctx context.Context, cfg Config) (*Container, error) {
	log, err := logger.NewLoggerAdapter(logger.Config{
		Level:   cfg.LogLevel,
		Dir:     cfg.LogDir,
		RunName: "askai",
		Console: cfg.LogConsole,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	c := &Container{
		Logger:   log,
		Settings: settings.NewFileStore(cfg.SettingsFile),
		Console:  userinteraction.NewConsole(),
		Registry: prometheus.NewRegistry(),
	}

	m, err := metrics.NewPrometheus(c.Registry)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}
	c.Metrics = m

	c.Rules, err = loadRules(cfg.RulesFile)
	if err != nil {
		c.Close()
		return nil, err
	}

	st, err := c.Settings.Load(ctx)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	c.fill = filler.New(c.Rules, filler.Config{
		SearchTimeout:        cfg.SearchTimeout,
		NotificationDuration: cfg.NotificationDuration,
		MinElementSize:       cfg.MinElementSize,
		Messages:             st.Messages,
	}, log, m)
	c.Filler = c.fill
	c.Handler = trigger.New(c.fill, log, m, cfg.ReadyDelay)
	c.rulesFile = cfg.RulesFile

	log.Debug("Core wired", "settings", cfg.SettingsFile, "rules", c.Rules.Len())
	if !cfg.WithBrowser {
		return c, nil
	}

	browserCfg := rod.DefaultConfig()
	browserCfg.Headless = cfg.BrowserHeadless
	browserCfg.NoSandbox = cfg.BrowserNoSandbox
	browserCfg.Bin = cfg.BrowserBin
	browserCfg.ControlURL = cfg.BrowserURL
	browser, err := rod.NewBrowserAdapter(ctx, browserCfg)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to create browser: %w", err)
	}
	c.Browser = browser
	c.Ask = ask.New(c.Settings, browser, c.Handler, log)

	return c, nil
}

// NewServer wires the HTTP transport. base bounds every fill the server
// starts.
func (c *Container) NewServer(base context.Context, addr string, jsonLogs bool) (*httpapi.Server, error) {
	if c.Ask == nil {
		return nil, errors.New("http server requires a browser")
	}
	return httpapi.NewServer(base, httpapi.Config{Addr: addr, JSONLogs: jsonLogs}, c.Ask, c.Settings, c.Registry, c.Logger), nil
}

// RulesWatcher reloads the configured rules file into the filler. It is nil
// when no rules file is configured.
func (c *Container) RulesWatcher() *watch.RulesWatcher {
	if c.rulesFile == "" {
		return nil
	}
	return watch.NewRulesWatcher(c.rulesFile, c.fill, c.Logger)
}

func (c *Container) Close() {
	if c.Browser != nil {
		c.Browser.Close()
	}
	if c.Logger != nil {
		c.Logger.Close()
	}
}

func loadRules(path string) (rules.Table, error) {
	table := rules.Default()
	if path == "" {
		return table, nil
	}
	extra, err := rules.LoadFile(path)
	if err != nil {
		return rules.Table{}, fmt.Errorf("failed to load rules: %w", err)
	}
	return table.Merge(extra), nil
}
