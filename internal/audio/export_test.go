package audio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gopxl/beep/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "sounds")

	paths, err := ExportAll(dir, testRate)
	require.NoError(t, err)
	require.Len(t, paths, len(Events()))

	for i, ev := range Events() {
		assert.Equal(t, filepath.Join(dir, ev.String()+".wav"), paths[i])

		f, err := os.Open(paths[i])
		require.NoError(t, err)

		s, format, err := wav.Decode(f)
		require.NoError(t, err)
		assert.Equal(t, testRate, format.SampleRate)
		assert.Equal(t, 2, format.NumChannels)
		assert.Equal(t, testRate.N(RecipeFor(ev).Duration), s.Len(), ev.String())
		require.NoError(t, s.Close())
	}
}

func TestWriteWAV_BadPath(t *testing.T) {
	err := WriteWAV(filepath.Join(t.TempDir(), "missing", "start.wav"), EventStart, testRate)
	require.Error(t, err)
}
