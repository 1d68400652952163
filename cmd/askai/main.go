package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"askai-shortcut/internal/infrastructure/env"
	"askai-shortcut/internal/infrastructure/userinteraction"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd(env.NewEnvService())
	if err := root.ExecuteContext(ctx); err != nil {
		userinteraction.NewConsole().ShowError(err)
		stop()
		os.Exit(1)
	}
}
