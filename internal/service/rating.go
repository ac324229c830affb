package service

import (
	"context"
	"fmt"
	"math"

	"github.com/dekritpn/kawio/internal/repository"
)

// eloK is the rating change ceiling per game.
const eloK = 32

// RatingService applies Elo updates and win/loss counters once a match
// between two human players ends decisively. Bot games and draws leave the
// ratings untouched.
type RatingService interface {
	RecordResult(ctx context.Context, winner, loser string) error
}

type ratingServiceImpl struct {
	statsRepo repository.StatsRepository
}

func NewRatingService(statsRepo repository.StatsRepository) RatingService {
	return &ratingServiceImpl{
		statsRepo: statsRepo,
	}
}

func (that *ratingServiceImpl) RecordResult(ctx context.Context, winner, loser string) error {
	if err := that.statsRepo.EnsurePlayer(ctx, winner); err != nil {
		return fmt.Errorf("failed to ensure winner row: %w", err)
	}

	if err := that.statsRepo.EnsurePlayer(ctx, loser); err != nil {
		return fmt.Errorf("failed to ensure loser row: %w", err)
	}

	winnerElo, err := that.statsRepo.GetElo(ctx, winner)
	if err != nil {
		return fmt.Errorf("failed to get winner elo: %w", err)
	}

	loserElo, err := that.statsRepo.GetElo(ctx, loser)
	if err != nil {
		return fmt.Errorf("failed to get loser elo: %w", err)
	}

	newWinnerElo, newLoserElo := UpdateElo(winnerElo, loserElo, true)

	if err = that.statsRepo.UpdateElo(ctx, winner, newWinnerElo); err != nil {
		return fmt.Errorf("failed to update winner elo: %w", err)
	}

	if err = that.statsRepo.UpdateElo(ctx, loser, newLoserElo); err != nil {
		return fmt.Errorf("failed to update loser elo: %w", err)
	}

	if err = that.statsRepo.IncrementResult(ctx, winner, true); err != nil {
		return fmt.Errorf("failed to record win: %w", err)
	}

	if err = that.statsRepo.IncrementResult(ctx, loser, false); err != nil {
		return fmt.Errorf("failed to record loss: %w", err)
	}

	return nil
}

// UpdateElo returns the post-game ratings of two players, K=32. The expected
// score follows the standard logistic curve on the rating difference.
func UpdateElo(ratingA, ratingB float64, aWon bool) (newA, newB float64) {
	expectedA := 1.0 / (1.0 + math.Pow(10, (ratingB-ratingA)/400.0))
	expectedB := 1.0 - expectedA

	scoreA := 0.0
	if aWon {
		scoreA = 1.0
	}
	scoreB := 1.0 - scoreA

	newA = ratingA + eloK*(scoreA-expectedA)
	newB = ratingB + eloK*(scoreB-expectedB)

	return newA, newB
}
