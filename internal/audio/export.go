package audio

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

// Stream returns a standalone streamer rendering ev once at rate.
func Stream(ev Event, rate beep.SampleRate) beep.Streamer {
	return newVoice(RecipeFor(ev), rate, nil)
}

// WriteWAV encodes ev as 16-bit stereo PCM to path.
func WriteWAV(path string, ev Event, rate beep.SampleRate) (retErr error) {
	f, err := os.Create(path) //nolint:gosec // path chosen by the user
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && retErr == nil {
			retErr = fmt.Errorf("closing %s: %w", path, closeErr)
		}
	}()

	format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	if err := wav.Encode(f, Stream(ev, rate), format); err != nil {
		return fmt.Errorf("encoding %s: %w", ev, err)
	}
	return nil
}

// ExportAll writes <event>.wav for every event into dir and returns the paths.
func ExportAll(dir string, rate beep.SampleRate) ([]string, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("creating %s: %w", dir, err)
	}
	var written []string
	for _, ev := range Events() {
		path := filepath.Join(dir, ev.String()+".wav")
		if err := WriteWAV(path, ev, rate); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}
