package cmd

import (
	"fmt"
	"time"

	"github.com/zjrosen/dinoguessr/internal/audio"

	"github.com/gopxl/beep"
	"github.com/spf13/cobra"
)

var soundsCmd = &cobra.Command{
	Use:   "sounds",
	Short: "Preview or export the game's sound effects",
}

var soundsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sound effects",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, ev := range audio.Events() {
			r := audio.RecipeFor(ev)
			fmt.Fprintf(cmd.OutOrStdout(), "  %-10s  %-8s  %s\n", ev, r.Wave, r.Duration)
		}
		return nil
	},
}

var soundsPlayCmd = &cobra.Command{
	Use:       "play <sound>",
	Short:     "Play one sound effect through the speaker",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"start", "transition", "correct", "incorrect"},
	RunE:      runSoundsPlay,
}

var soundsExportCmd = &cobra.Command{
	Use:   "export <dir>",
	Short: "Write every sound effect as a WAV file",
	Args:  cobra.ExactArgs(1),
	RunE:  runSoundsExport,
}

func init() {
	soundsCmd.AddCommand(soundsListCmd, soundsPlayCmd, soundsExportCmd)
	rootCmd.AddCommand(soundsCmd)
}

func runSoundsPlay(cmd *cobra.Command, args []string) error {
	ev, err := audio.ParseEvent(args[0])
	if err != nil {
		return err
	}

	synth := audio.NewSynthesizer(audio.NewSpeakerOutput(cfg.Audio.Buffer), audio.Config{
		SampleRate: beep.SampleRate(cfg.Audio.SampleRate),
		Volume:     1,
	})
	defer synth.Close()

	synth.Play(ev)
	if synth.Inert() {
		return fmt.Errorf("no audio device available")
	}

	// Let the voice drain through the speaker buffer before closing.
	wait := audio.RecipeFor(ev).Duration + 2*cfg.Audio.Buffer
	select {
	case <-time.After(wait):
	case <-cmd.Context().Done():
	}
	return nil
}

func runSoundsExport(cmd *cobra.Command, args []string) error {
	written, err := audio.ExportAll(args[0], beep.SampleRate(cfg.Audio.SampleRate))
	for _, path := range written {
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}
	return err
}
