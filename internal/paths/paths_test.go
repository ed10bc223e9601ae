package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", filepath.FromSlash("/xdg/config"))
	require.Equal(t, filepath.FromSlash("/xdg/config/dinoguessr"), ConfigDir())
	require.Equal(t, filepath.FromSlash("/xdg/config/dinoguessr/config.yaml"), ConfigFile())
}

func TestConfigDir_Home(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", filepath.FromSlash("/home/player"))
	require.Equal(t, filepath.FromSlash("/home/player/.config/dinoguessr"), ConfigDir())
}

func TestDataDir_XDG(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", filepath.FromSlash("/xdg/data"))
	require.Equal(t, filepath.FromSlash("/xdg/data/dinoguessr/dinoguessr.db"), DatabaseFile())
	require.Equal(t, filepath.FromSlash("/xdg/data/dinoguessr/dinoguessr.log"), LogFile())
}

func TestExpand(t *testing.T) {
	t.Setenv("HOME", filepath.FromSlash("/home/player"))

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"tilde prefix", "~/games/dino.db", filepath.FromSlash("/home/player/games/dino.db")},
		{"bare tilde", "~", filepath.FromSlash("/home/player")},
		{"absolute", "/var/dino.db", "/var/dino.db"},
		{"relative", "dino.db", "dino.db"},
		{"tilde in middle", "a/~/b", "a/~/b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Expand(tt.in))
		})
	}
}
