// Package cmd implements the dinoguessr command line.
package cmd

import (
	"context"
	"fmt"

	"github.com/zjrosen/dinoguessr/internal/config"
	"github.com/zjrosen/dinoguessr/internal/log"
	"github.com/zjrosen/dinoguessr/internal/quiz"
	"github.com/zjrosen/dinoguessr/internal/session"
	"github.com/zjrosen/dinoguessr/internal/telemetry"
	"github.com/zjrosen/dinoguessr/internal/ui/game"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var (
	cfgFile        string
	cfg            config.Config
	source         *config.Source
	closeLog       func() error
	flagDifficulty string
	flagMute       bool
)

var rootCmd = &cobra.Command{
	Use:   "dinoguessr",
	Short: "Guess the dinosaur from a blurred picture",
	Long: `DinoGuessr is a terminal quiz. Each round shows a blurred dinosaur that
sharpens over time; pick the right name from the options before it is fully revealed.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	PersistentPostRun: func(*cobra.Command, []string) { flushLog() },
	RunE:              runGame,
}

// Execute runs the root command.
func Execute(version string) error {
	rootCmd.Version = version
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default ~/.config/dinoguessr/config.yaml)")
	rootCmd.Flags().StringVarP(&flagDifficulty, "difficulty", "d", "", "preselect a difficulty (easy, medium or hard)")
	rootCmd.Flags().BoolVar(&flagMute, "mute", false, "disable sound effects")
}

func loadConfig(cmd *cobra.Command, args []string) error {
	flushLog()
	src, err := config.NewSource(cfgFile)
	if err != nil {
		return err
	}
	c, err := src.Config()
	if err != nil {
		return err
	}
	closer, err := log.Init(c.Log.File, c.Log.Level)
	if err != nil {
		return fmt.Errorf("initializing log: %w", err)
	}
	cfg, source, closeLog = c, src, closer
	log.Debug(log.CatConfig, "Config loaded", "file", src.File(), "store", c.Store.Backend)
	return nil
}

func flushLog() {
	if closeLog == nil {
		return
	}
	_ = closeLog()
	closeLog = nil
}

func runGame(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	difficulty := quiz.Difficulty("")
	if flagDifficulty != "" {
		d, err := quiz.ParseDifficulty(flagDifficulty)
		if err != nil {
			return err
		}
		difficulty = d
	}

	shutdown, err := telemetry.Setup(ctx, cfg.Tracing)
	if err != nil {
		return fmt.Errorf("setting up tracing: %w", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.ErrorErr(log.CatTrace, "Tracing shutdown failed", err)
		}
	}()

	b, err := openBackends(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer b.Close()

	synth := newSynthesizer(ctx, cfg.Audio, flagMute || !cfg.Audio.Enabled, b.prefs)
	defer synth.Close()

	if difficulty == "" {
		difficulty = b.prefs.LoadDifficulty(ctx)
	}
	opts := []session.Option{
		session.WithDifficulty(difficulty),
		session.WithDifficultySaver(b.prefs),
	}
	if b.results != nil {
		opts = append(opts, session.WithRecorder(b.results))
	}
	ctrl := session.New(synth, newProvider(ctx, cfg.Quiz), opts...)

	source.Watch(func(c config.Config) {
		if err := log.SetLevel(c.Log.Level); err != nil {
			log.ErrorErr(log.CatConfig, "Ignoring log level change", err)
		}
	})

	model := game.New(ctrl, synth, game.WithContext(ctx), game.WithFetchTimeout(fetchTimeout(cfg.Quiz)))
	defer model.Close()

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
