package filler

import (
	"context"
	"fmt"
	"time"

	"askai-shortcut/internal/application/port/input"
	"askai-shortcut/internal/application/port/output"
	"askai-shortcut/internal/domain/entity"
	"askai-shortcut/internal/domain/rules"
)

var _ input.Filler = (*UseCase)(nil)

const (
	defaultSearchTimeout        = 15 * time.Second
	defaultNotificationDuration = 10 * time.Second
)

type Config struct {
	SearchTimeout        time.Duration
	NotificationDuration time.Duration
	MinElementSize       float64
	Messages             entity.Messages
}

func DefaultConfig() Config {
	return Config{
		SearchTimeout:        defaultSearchTimeout,
		NotificationDuration: defaultNotificationDuration,
		MinElementSize:       entity.DefaultMinElementSize,
		Messages:             entity.DefaultMessages(),
	}
}

type UseCase struct {
	locator *Locator
	cfg     Config
	logger  output.LoggerPort
	metrics output.MetricsPort
}

func New(table rules.Table, cfg Config, logger output.LoggerPort, metrics output.MetricsPort) *UseCase {
	def := DefaultConfig()
	if cfg.SearchTimeout <= 0 {
		cfg.SearchTimeout = def.SearchTimeout
	}
	if cfg.NotificationDuration <= 0 {
		cfg.NotificationDuration = def.NotificationDuration
	}
	if cfg.Messages.QuestionLoaded == "" {
		cfg.Messages.QuestionLoaded = def.Messages.QuestionLoaded
	}
	if cfg.Messages.InputNotFound == "" {
		cfg.Messages.InputNotFound = def.Messages.InputNotFound
	}

	return &UseCase{
		locator: NewLocator(table, cfg.MinElementSize, logger),
		cfg:     cfg,
		logger:  logger,
		metrics: metrics,
	}
}

// SetRules replaces the locator's rule table for attempts that start
// afterwards.
func (uc *UseCase) SetRules(table rules.Table) {
	uc.locator.SetRules(table)
}

// Fill locates the page's chat input and writes req.Text into it. Failures
// are reported through on-page notifications and logs only; the returned
// outcome is informational.
func (uc *UseCase) Fill(ctx context.Context, page output.PagePort, req entity.FillRequest) (outcome entity.FillOutcome) {
	start := time.Now()
	log := uc.logger.WithFields(map[string]any{
		"page":     page.URL(),
		"text_len": len(req.Text),
	})

	defer func() {
		if r := recover(); r != nil {
			outcome = entity.FillOutcome{
				Status: entity.FillStatusMutationFailed,
				Err:    fmt.Errorf("panic during fill: %v", r),
			}
		}
		outcome.Duration = time.Since(start)
		if uc.metrics != nil {
			uc.metrics.RecordFill(outcome)
		}
		log.Info("Fill attempt finished",
			"status", outcome.Status,
			"source", outcome.Source,
			"rule", outcome.Rule,
			"kind", outcome.Kind,
			"duration_ms", outcome.Duration.Milliseconds(),
		)
	}()

	return uc.attempt(ctx, page, req, log)
}

// attempt owns the search state machine. The search timer and the mutation
// observer share searchCtx, so cancelling it on a match tears down both.
func (uc *UseCase) attempt(ctx context.Context, page output.PagePort, req entity.FillRequest, log output.LoggerPort) entity.FillOutcome {
	state := entity.NewSearchState()

	searchCtx, cancel := context.WithTimeout(ctx, uc.cfg.SearchTimeout)
	defer cancel()

	log.Debug("Searching for input field")
	if m, ok := uc.locator.Search(searchCtx, page); ok {
		return uc.complete(ctx, page, state, cancel, m, req, log)
	}

	log.Debug("Input field not present yet, observing mutations")
	mutations, err := page.ObserveMutations(searchCtx)
	if err != nil {
		log.Warn("Mutation observer unavailable, waiting for timeout", "error", err)
	}

	for {
		select {
		case _, ok := <-mutations:
			if !ok {
				mutations = nil
				continue
			}
			m, found := uc.locator.Scan(searchCtx, page)
			if !found {
				continue
			}
			m.Source = entity.SourceObserver
			return uc.complete(ctx, page, state, cancel, m, req, log)

		case <-searchCtx.Done():
			return uc.expire(ctx, page, state, req, log)
		}
	}
}

func (uc *UseCase) complete(
	ctx context.Context,
	page output.PagePort,
	state *entity.SearchState,
	stopSearch context.CancelFunc,
	m *Match,
	req entity.FillRequest,
	log output.LoggerPort,
) entity.FillOutcome {
	if !state.MarkFound() {
		return entity.FillOutcome{Status: entity.FillStatusCancelled}
	}
	stopSearch()

	outcome := entity.FillOutcome{
		Source: m.Source,
		Rule:   m.Rule,
		Kind:   m.Info.Kind(),
	}
	log.Info("Input field found", "source", m.Source, "rule", m.Rule, "tag", m.Info.Tag)

	if err := uc.write(ctx, m, req.Text); err != nil {
		log.Error("Filling input field failed", "error", err)
		outcome.Status = entity.FillStatusMutationFailed
		outcome.Err = err
		return outcome
	}

	if err := page.ShowNotification(ctx, uc.messages(req).QuestionLoaded, uc.cfg.NotificationDuration); err != nil {
		log.Warn("Notification failed", "error", err)
	}
	outcome.Status = entity.FillStatusFilled
	return outcome
}

func (uc *UseCase) expire(ctx context.Context, page output.PagePort, state *entity.SearchState, req entity.FillRequest, log output.LoggerPort) entity.FillOutcome {
	if ctx.Err() != nil {
		log.Debug("Fill attempt cancelled", "error", ctx.Err())
		return entity.FillOutcome{Status: entity.FillStatusCancelled, Err: ctx.Err()}
	}
	if !state.MarkTimedOut() {
		return entity.FillOutcome{Status: entity.FillStatusCancelled}
	}

	log.Warn("Input field not found before timeout", "timeout", uc.cfg.SearchTimeout.String())
	if err := page.ShowNotification(ctx, uc.messages(req).InputNotFound, uc.cfg.NotificationDuration); err != nil {
		log.Warn("Notification failed", "error", err)
	}
	return entity.FillOutcome{Status: entity.FillStatusNotFound}
}

func (uc *UseCase) messages(req entity.FillRequest) entity.Messages {
	m := req.Messages
	if m.QuestionLoaded == "" {
		m.QuestionLoaded = uc.cfg.Messages.QuestionLoaded
	}
	if m.InputNotFound == "" {
		m.InputNotFound = uc.cfg.Messages.InputNotFound
	}
	return m
}
