package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekritpn/kawio/internal/apperror"
	"github.com/dekritpn/kawio/internal/entity"
	"github.com/dekritpn/kawio/internal/othello"
	"github.com/dekritpn/kawio/testing/suite"
)

func TestPlayerRepository(t *testing.T) {
	t.Run("Stores and retrieves a player", func(t *testing.T) {
		ctx, st := suite.New(t)

		playerRepo := NewPlayerRepository(st.Redis)

		// Given: a player seated in a match
		player := &entity.Player{ID: "alice", Color: othello.Black, MatchID: "m-123"}

		// When: storing and re-reading it
		require.NoError(t, playerRepo.CreateOrUpdate(ctx, player))
		retrieved, err := playerRepo.GetByID(ctx, "alice")

		// Then: all fields survive the round trip
		require.NoError(t, err)
		assert.Equal(t, player.ID, retrieved.ID)
		assert.Equal(t, player.Color, retrieved.Color)
		assert.Equal(t, player.MatchID, retrieved.MatchID)
	})

	t.Run("Returns ErrPlayerNotFound for a missing ID", func(t *testing.T) {
		ctx, st := suite.New(t)

		playerRepo := NewPlayerRepository(st.Redis)

		_, err := playerRepo.GetByID(ctx, "nobody")

		assert.ErrorIs(t, err, apperror.ErrPlayerNotFound)
	})
}
