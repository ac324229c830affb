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

func TestMatchRepository_CreateOrUpdate(t *testing.T) {
	ctx, st := suite.New(t)

	matchRepo := NewMatchRepository(st.Redis)

	// Given: a freshly created match
	match := entity.NewMatch("m-123", &entity.Player{ID: "alice"})

	// When: CreateOrUpdate is called
	err := matchRepo.CreateOrUpdate(ctx, match)

	// Then: no error should be returned
	require.NoError(t, err)
}

func TestMatchRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		matchRepo := NewMatchRepository(st.Redis)

		// Given: a stored match with a started game
		match := entity.NewMatch("m-123", &entity.Player{ID: "alice"})
		require.NoError(t, match.AddOpponent(&entity.Player{ID: "bob"}))
		require.NoError(t, matchRepo.CreateOrUpdate(ctx, match))

		// When: GetByID is called with the existing ID
		retrieved, err := matchRepo.GetByID(ctx, match.ID)

		// Then: the match comes back with its game state intact
		require.NoError(t, err)
		assert.Equal(t, match.ID, retrieved.ID)
		assert.Equal(t, entity.StatusActive, retrieved.Status)
		require.NotNil(t, retrieved.Game)
		assert.Equal(t, match.Game.Black, retrieved.Game.Black)
		assert.Equal(t, match.Game.White, retrieved.Game.White)
		assert.Equal(t, othello.Black, retrieved.Game.Turn)
		require.Len(t, retrieved.Players, 2)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		matchRepo := NewMatchRepository(st.Redis)

		// When: GetByID is called with a non-existent ID
		_, err := matchRepo.GetByID(ctx, "no-such-match")

		// Then: an ErrUnknownMatch error should be returned
		require.Error(t, err)
		assert.ErrorIs(t, err, apperror.ErrUnknownMatch)
	})
}

func TestMatchRepository_DeleteByID(t *testing.T) {
	ctx, st := suite.New(t)

	matchRepo := NewMatchRepository(st.Redis)

	// Given: a stored match
	match := entity.NewMatch("m-123", &entity.Player{ID: "alice"})
	require.NoError(t, matchRepo.CreateOrUpdate(ctx, match))

	// When: DeleteByID is called
	require.NoError(t, matchRepo.DeleteByID(ctx, match.ID))

	// Then: the match is gone
	_, err := matchRepo.GetByID(ctx, match.ID)
	assert.ErrorIs(t, err, apperror.ErrUnknownMatch)
}
