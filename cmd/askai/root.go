package main

import (
	"os"
	"path/filepath"

	"askai-shortcut/internal/application/port/output"
	"askai-shortcut/internal/di"
	"askai-shortcut/internal/domain/entity"
	"askai-shortcut/internal/usecase/filler"
	"askai-shortcut/internal/usecase/trigger"

	"github.com/spf13/cobra"
)

type globalFlags struct {
	settingsFile string
	rulesFile    string
	logLevel     string
	logDir       string
	verbose      bool
}

func newRootCmd(cfg output.ConfigPort) *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:           "askai",
		Short:         "Send the current page to an AI chat service with a preset question",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&g.settingsFile, "settings", cfg.GetWithDefault("ASKAI_SETTINGS_FILE", defaultSettingsFile()), "settings YAML file")
	pf.StringVar(&g.rulesFile, "rules", cfg.Get("ASKAI_RULES_FILE"), "extra input locator rules (YAML)")
	pf.StringVar(&g.logLevel, "log-level", cfg.GetWithDefault("ASKAI_LOG_LEVEL", "info"), "log level")
	pf.StringVar(&g.logDir, "log-dir", cfg.Get("ASKAI_LOG_DIR"), "directory for JSON run logs")
	pf.BoolVarP(&g.verbose, "verbose", "v", false, "log to stderr")

	root.AddCommand(
		newAskCmd(cfg, g),
		newServeCmd(cfg, g),
		newButtonsCmd(g),
		newSetURLCmd(g),
		newSetLanguageCmd(g),
		newResetCmd(g),
	)
	return root
}

// containerConfig maps env and flags onto the container. Flags win over env.
func (g *globalFlags) containerConfig(cfg output.ConfigPort) di.Config {
	def := filler.DefaultConfig()
	return di.Config{
		LogLevel:             g.logLevel,
		LogDir:               g.logDir,
		LogConsole:           g.verbose,
		SettingsFile:         g.settingsFile,
		RulesFile:            g.rulesFile,
		SearchTimeout:        cfg.GetDuration("ASKAI_SEARCH_TIMEOUT", def.SearchTimeout),
		ReadyDelay:           cfg.GetDuration("ASKAI_READY_DELAY", trigger.DefaultReadyDelay),
		NotificationDuration: cfg.GetDuration("ASKAI_NOTIFY_DURATION", def.NotificationDuration),
		MinElementSize:       cfg.GetFloat("ASKAI_MIN_ELEMENT_SIZE", entity.DefaultMinElementSize),
	}
}

func defaultSettingsFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "askai-settings.yaml"
	}
	return filepath.Join(dir, "askai", "settings.yaml")
}
