package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecomposePoints(t *testing.T) {
	t.Run("splits total into app, event and quiz points", func(t *testing.T) {
		b := DecomposePoints(200, 2, 3)

		assert.Equal(t, 100, b.AppPoints)
		assert.Equal(t, 90, b.EventPoints)
		assert.Equal(t, 10, b.QuizPoints)
		assert.Equal(t, 200, b.Total)
	})

	t.Run("remainder can be negative when the stored total drifted", func(t *testing.T) {
		b := DecomposePoints(40, 1, 0)

		assert.Equal(t, 50, b.AppPoints)
		assert.Equal(t, -10, b.QuizPoints)
	})

	t.Run("zero activity", func(t *testing.T) {
		b := DecomposePoints(0, 0, 0)

		assert.Equal(t, 0, b.AppPoints)
		assert.Equal(t, 0, b.EventPoints)
		assert.Equal(t, 0, b.QuizPoints)
	})
}
