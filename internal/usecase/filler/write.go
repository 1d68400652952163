package filler

import (
	"context"
	"fmt"

	"askai-shortcut/internal/application/port/output"
	"askai-shortcut/internal/domain/entity"
)

func (uc *UseCase) write(ctx context.Context, m *Match, text string) error {
	el := m.Element

	// Some pages only build their editor on first interaction.
	if err := el.Focus(ctx); err != nil {
		return fmt.Errorf("focus: %w", err)
	}
	if err := el.Click(ctx); err != nil {
		return fmt.Errorf("click: %w", err)
	}

	switch m.Info.Kind() {
	case entity.KindRichText:
		return uc.writeRichText(ctx, el, text)
	case entity.KindFormField:
		if err := uc.writeFormField(ctx, el, text); err != nil {
			return err
		}
	default:
		if err := writeEditable(ctx, el, text); err != nil {
			return err
		}
	}
	return dispatchFillEvents(ctx, el)
}

func (uc *UseCase) writeRichText(ctx context.Context, root output.ElementPort, text string) error {
	paragraph, err := root.Query(ctx, "p")
	if err != nil {
		return fmt.Errorf("find editor paragraph: %w", err)
	}

	if paragraph == nil {
		uc.logger.Debug("Rich-text editor has no paragraph, writing to root")
		if err := writeEditable(ctx, root, text); err != nil {
			return err
		}
		return dispatchFillEvents(ctx, root)
	}

	if err := paragraph.SetText(ctx, text); err != nil {
		return fmt.Errorf("set paragraph text: %w", err)
	}
	if err := paragraph.Focus(ctx); err != nil {
		return fmt.Errorf("focus paragraph: %w", err)
	}
	if err := dispatchFillEvents(ctx, paragraph); err != nil {
		return err
	}
	return dispatchFillEvents(ctx, root)
}

// writeFormField falls back to per-character assignment when the page
// resets bulk writes to the value property.
func (uc *UseCase) writeFormField(ctx context.Context, el output.ElementPort, text string) error {
	if err := el.SetValue(ctx, text); err != nil {
		return fmt.Errorf("set value: %w", err)
	}

	got, err := el.Value(ctx)
	if err != nil {
		return fmt.Errorf("read value: %w", err)
	}
	if got == text || text == "" {
		return nil
	}

	uc.logger.Debug("Value assignment did not stick, typing characters", "got_len", len(got))
	if err := el.TypeValue(ctx, text); err != nil {
		return fmt.Errorf("type value: %w", err)
	}
	return nil
}

func writeEditable(ctx context.Context, el output.ElementPort, text string) error {
	if err := el.ReplaceContent(ctx, text); err != nil {
		return fmt.Errorf("replace content: %w", err)
	}
	if err := el.MoveCaretToEnd(ctx); err != nil {
		return fmt.Errorf("move caret: %w", err)
	}
	return nil
}

func dispatchFillEvents(ctx context.Context, el output.ElementPort) error {
	for _, ev := range entity.FillEvents {
		if err := el.Dispatch(ctx, ev); err != nil {
			return fmt.Errorf("dispatch %s: %w", ev.Type, err)
		}
	}
	return nil
}
