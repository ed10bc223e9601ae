package quiz

import (
	"fmt"
	"strings"
)

// Difficulty is a preset controlling option count and round count.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// DefaultDifficulty is used when no valid preference is stored.
const DefaultDifficulty = Medium

// Difficulties returns all presets, easiest first.
func Difficulties() []Difficulty {
	return []Difficulty{Easy, Medium, Hard}
}

// ParseDifficulty accepts the stored lowercase names, ignoring case and spaces.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", fmt.Errorf("unknown difficulty %q", s)
	}
	return d, nil
}

// Valid reports whether d is one of the three presets.
func (d Difficulty) Valid() bool {
	switch d {
	case Easy, Medium, Hard:
		return true
	}
	return false
}

// Options returns the number of choices per question: 2, 3 or 4.
func (d Difficulty) Options() int {
	switch d {
	case Easy:
		return 2
	case Medium:
		return 3
	case Hard:
		return 4
	}
	return 0
}

// Rounds returns the number of questions per game: 5, 7 or 10.
func (d Difficulty) Rounds() int {
	switch d {
	case Easy:
		return 5
	case Medium:
		return 7
	case Hard:
		return 10
	}
	return 0
}

// Label returns the capitalized display name.
func (d Difficulty) Label() string {
	if d == "" {
		return ""
	}
	return strings.ToUpper(string(d[:1])) + string(d[1:])
}

func (d Difficulty) String() string { return string(d) }
