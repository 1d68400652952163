package main

import (
	"askai-shortcut/internal/application/port/input"
	"askai-shortcut/internal/application/port/output"
	"askai-shortcut/internal/di"

	"github.com/spf13/cobra"
)

func newAskCmd(cfg output.ConfigPort, g *globalFlags) *cobra.Command {
	var (
		req        input.AskRequest
		headless   bool
		browserBin string
		browserURL string
		closeAfter bool
	)

	cmd := &cobra.Command{
		Use:   "ask --url <page>",
		Short: "Open the AI service and load a question about a page",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			dc := g.containerConfig(cfg)
			dc.WithBrowser = true
			dc.BrowserHeadless = headless
			dc.BrowserBin = browserBin
			dc.BrowserURL = browserURL

			container, err := di.NewContainer(ctx, dc)
			if err != nil {
				return err
			}
			defer container.Close()

			res, err := container.Ask.Execute(ctx, req)
			if err != nil {
				return err
			}
			container.Console.ShowAsk(res.Button, res.TabURL, res.Ack)

			container.Handler.Wait()
			if closeAfter || ctx.Err() != nil {
				return nil
			}

			container.Console.ShowWaiting("Browser stays open. Press Ctrl+C to exit.")
			<-ctx.Done()
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.PageURL, "url", "", "URL of the page to ask about")
	f.StringVarP(&req.ButtonID, "button", "b", "", "button id (default: first button)")
	f.BoolVar(&headless, "headless", cfg.GetBool("ASKAI_HEADLESS", false), "run the browser headless")
	f.StringVar(&browserBin, "browser-bin", cfg.Get("ASKAI_BROWSER_BIN"), "browser binary")
	f.StringVar(&browserURL, "browser-url", cfg.Get("ASKAI_BROWSER_URL"), "DevTools URL of a running browser")
	f.BoolVar(&closeAfter, "close", false, "exit once the fill attempt finishes")
	_ = cmd.MarkFlagRequired("url")

	return cmd
}
