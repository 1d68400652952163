package main

import (
	"askai-shortcut/internal/application/port/output"
	"askai-shortcut/internal/di"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newServeCmd(cfg output.ConfigPort, g *globalFlags) *cobra.Command {
	var (
		addr       string
		jsonLogs   bool
		headless   bool
		watchRules bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Accept ask requests over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			dc := g.containerConfig(cfg)
			dc.WithBrowser = true
			dc.BrowserHeadless = headless
			dc.BrowserBin = cfg.Get("ASKAI_BROWSER_BIN")
			dc.BrowserURL = cfg.Get("ASKAI_BROWSER_URL")

			container, err := di.NewContainer(ctx, dc)
			if err != nil {
				return err
			}
			defer container.Close()

			srv, err := container.NewServer(ctx, addr, jsonLogs)
			if err != nil {
				return err
			}

			group, gctx := errgroup.WithContext(ctx)
			group.Go(func() error { return srv.ListenAndServe(gctx) })
			if w := container.RulesWatcher(); w != nil && watchRules {
				group.Go(func() error { return w.Run(gctx) })
			}
			err = group.Wait()
			container.Handler.Wait()
			return err
		},
	}

	f := cmd.Flags()
	f.StringVar(&addr, "addr", cfg.GetWithDefault("ASKAI_HTTP_ADDR", "127.0.0.1:8787"), "listen address")
	f.BoolVar(&jsonLogs, "json-logs", false, "log requests as JSON")
	f.BoolVar(&headless, "headless", cfg.GetBool("ASKAI_HEADLESS", false), "run the browser headless")
	f.BoolVar(&watchRules, "watch-rules", true, "reload --rules when the file changes")

	return cmd
}
