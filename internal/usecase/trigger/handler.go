package trigger

import (
	"context"
	"strings"
	"sync"
	"time"

	"askai-shortcut/internal/application/port/input"
	"askai-shortcut/internal/application/port/output"
	"askai-shortcut/internal/domain/entity"
)

var _ input.MessageHandler = (*Handler)(nil)

const DefaultReadyDelay = 500 * time.Millisecond

// Handler answers fill messages straight away and runs the fill itself in
// the background once the page is ready.
type Handler struct {
	filler     input.Filler
	logger     output.LoggerPort
	metrics    output.MetricsPort
	readyDelay time.Duration
	wg         sync.WaitGroup
}

func New(filler input.Filler, logger output.LoggerPort, metrics output.MetricsPort, readyDelay time.Duration) *Handler {
	if readyDelay < 0 {
		readyDelay = DefaultReadyDelay
	}
	return &Handler{
		filler:     filler,
		logger:     logger,
		metrics:    metrics,
		readyDelay: readyDelay,
	}
}

func (h *Handler) Handle(ctx context.Context, page output.PagePort, msg entity.Message) entity.Ack {
	ack := h.handle(ctx, page, msg)
	if h.metrics != nil {
		h.metrics.RecordAck(ack.Status)
	}
	return ack
}

func (h *Handler) handle(ctx context.Context, page output.PagePort, msg entity.Message) entity.Ack {
	log := h.logger.WithFields(map[string]any{
		"page":   page.URL(),
		"action": msg.Action,
	})

	if msg.Action != entity.ActionFillInput {
		log.Debug("Ignoring message")
		return entity.Ack{Status: entity.AckIgnored}
	}
	if strings.TrimSpace(msg.Question) == "" {
		log.Warn("Rejecting fill message without a question")
		return entity.Ack{Status: entity.AckRejected}
	}

	already, err := page.MarkInjected(ctx)
	if err != nil {
		log.Error("Could not reach page", "error", err)
		return entity.Ack{Status: entity.AckRejected}
	}
	if already {
		log.Info("Page already has a fill attempt, skipping")
		return entity.Ack{Status: entity.AckDuplicate}
	}

	h.wg.Add(1)
	go h.run(ctx, page, entity.FillRequest{Text: msg.Question, Messages: msg.Messages}, log)

	return entity.Ack{Status: entity.AckSuccess}
}

func (h *Handler) run(ctx context.Context, page output.PagePort, req entity.FillRequest, log output.LoggerPort) {
	defer h.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			log.Error("Fill attempt panicked", "panic", r)
		}
	}()

	if err := page.WaitReady(ctx); err != nil {
		log.Warn("Page did not become ready", "error", err)
		return
	}
	// Client-rendered pages often mount their input after the load event.
	if err := sleepWithContext(ctx, h.readyDelay); err != nil {
		log.Debug("Fill cancelled before start", "error", err)
		return
	}

	h.filler.Fill(ctx, page, req)
}

// Wait blocks until every fill started by Handle has finished.
func (h *Handler) Wait() {
	h.wg.Wait()
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
