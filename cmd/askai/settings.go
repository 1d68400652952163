package main

import (
	"askai-shortcut/internal/application/port/output"
	"askai-shortcut/internal/domain/entity"
	"askai-shortcut/internal/infrastructure/settings"
	"askai-shortcut/internal/infrastructure/userinteraction"

	"github.com/spf13/cobra"
)

// Settings commands touch only the YAML file, so they skip the container
// and never start a browser.
func settingsDeps(g *globalFlags) (output.SettingsStore, output.ConsolePort) {
	return settings.NewFileStore(g.settingsFile), userinteraction.NewConsole()
}

func newButtonsCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buttons",
		Short: "Manage question buttons",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List buttons",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, console := settingsDeps(g)
			st, err := store.Load(cmd.Context())
			if err != nil {
				return err
			}
			console.ShowButtons(st)
			return nil
		},
	}

	var name, question string
	add := &cobra.Command{
		Use:   "add --question <text>",
		Short: "Add a button",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, console := settingsDeps(g)
			b, err := store.AddButton(cmd.Context(), name, question)
			if err != nil {
				return err
			}
			console.ShowButtonAdded(b)
			return nil
		},
	}
	add.Flags().StringVar(&name, "name", "", "button label")
	add.Flags().StringVar(&question, "question", "", "question sent with the page URL")
	_ = add.MarkFlagRequired("question")

	var newName, newQuestion string
	edit := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a button's name or question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, console := settingsDeps(g)
			st, err := store.Load(cmd.Context())
			if err != nil {
				return err
			}

			// Flags left unset keep the stored value.
			n, q := newName, newQuestion
			if cur, ok := st.Button(args[0]); ok {
				if !cmd.Flags().Changed("name") {
					n = cur.Name
				}
				if !cmd.Flags().Changed("question") {
					q = cur.Question
				}
			}

			b, err := store.UpdateButton(cmd.Context(), args[0], n, q)
			if err != nil {
				return err
			}
			console.ShowButtonUpdated(b)
			return nil
		},
	}
	edit.Flags().StringVar(&newName, "name", "", "new button label; empty restores \"Button N\"")
	edit.Flags().StringVar(&newQuestion, "question", "", "new question")
	edit.MarkFlagsOneRequired("name", "question")

	remove := &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a button",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, console := settingsDeps(g)
			if err := store.RemoveButton(cmd.Context(), args[0]); err != nil {
				return err
			}
			console.ShowButtonRemoved(args[0])
			return nil
		},
	}

	cmd.AddCommand(list, add, edit, remove)
	return cmd
}

func newSetURLCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "set-url <url>",
		Short: "Set the AI chat service URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, console := settingsDeps(g)
			u, err := store.SetAIServiceURL(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			console.ShowServiceURL(u)
			return nil
		},
	}
}

func newSetLanguageCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:       "set-language <code>",
		Short:     "Set the language of on-page notifications",
		Args:      cobra.ExactArgs(1),
		ValidArgs: entity.Languages(),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, console := settingsDeps(g)
			code, err := store.SetLanguage(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			console.ShowLanguage(code)
			return nil
		},
	}
}

func newResetCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore default buttons and service URL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, console := settingsDeps(g)
			if err := store.Reset(cmd.Context()); err != nil {
				return err
			}
			st, err := store.Load(cmd.Context())
			if err != nil {
				return err
			}
			console.ShowButtons(st)
			return nil
		},
	}
}
