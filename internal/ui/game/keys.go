package game

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds every binding the game screens respond to.
type KeyMap struct {
	Prev       key.Binding
	Next       key.Binding
	Start      key.Binding
	Answer     key.Binding
	Hint       key.Binding
	VolumeUp   key.Binding
	VolumeDown key.Binding
	PlayAgain  key.Binding
	Home       key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Prev:       key.NewBinding(key.WithKeys("left", "shift+tab"), key.WithHelp("←/→", "difficulty")),
		Next:       key.NewBinding(key.WithKeys("right", "tab")),
		Start:      key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "start")),
		Answer:     key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "answer")),
		Hint:       key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "hint")),
		VolumeUp:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "volume")),
		VolumeDown: key.NewBinding(key.WithKeys("-", "_")),
		PlayAgain:  key.NewBinding(key.WithKeys("enter", "r"), key.WithHelp("enter", "play again")),
		Home:       key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "home")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}
