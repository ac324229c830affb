package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpdateElo(t *testing.T) {
	t.Run("Equal ratings shift by half the K factor", func(t *testing.T) {
		// Given: two 1200-rated players
		// When: A beats B
		newA, newB := UpdateElo(1200, 1200, true)

		// Then: 16 points move from the loser to the winner
		assert.InDelta(t, 1216.0, newA, 0.001)
		assert.InDelta(t, 1184.0, newB, 0.001)
	})

	t.Run("An upset moves more points than an expected win", func(t *testing.T) {
		// Given: an underdog beating a much stronger player
		underdogNew, favoriteNew := UpdateElo(1200, 1400, true)

		// Then: the underdog gains more than half the K factor
		assert.Greater(t, underdogNew-1200, 16.0)
		assert.Less(t, favoriteNew, 1400.0)
	})

	t.Run("Total rating is conserved", func(t *testing.T) {
		newA, newB := UpdateElo(1321, 1187, false)

		assert.InDelta(t, 1321+1187, newA+newB, 0.001)
	})
}
