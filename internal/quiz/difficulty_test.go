package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDifficulty_Parameters(t *testing.T) {
	tests := []struct {
		d       Difficulty
		options int
		rounds  int
		label   string
	}{
		{Easy, 2, 5, "Easy"},
		{Medium, 3, 7, "Medium"},
		{Hard, 4, 10, "Hard"},
	}
	for _, tt := range tests {
		t.Run(string(tt.d), func(t *testing.T) {
			assert.Equal(t, tt.options, tt.d.Options())
			assert.Equal(t, tt.rounds, tt.d.Rounds())
			assert.Equal(t, tt.label, tt.d.Label())
			assert.True(t, tt.d.Valid())
		})
	}
}

func TestDifficulty_Invalid(t *testing.T) {
	d := Difficulty("nightmare")
	assert.False(t, d.Valid())
	assert.Zero(t, d.Options())
	assert.Zero(t, d.Rounds())
}

func TestParseDifficulty(t *testing.T) {
	d, err := ParseDifficulty("  HARD ")
	require.NoError(t, err)
	assert.Equal(t, Hard, d)

	_, err = ParseDifficulty("extreme")
	require.Error(t, err)

	_, err = ParseDifficulty("")
	require.Error(t, err)
}

func TestDifficulties_Order(t *testing.T) {
	assert.Equal(t, []Difficulty{Easy, Medium, Hard}, Difficulties())
	assert.Equal(t, Medium, DefaultDifficulty)
}
