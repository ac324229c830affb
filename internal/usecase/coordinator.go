package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dekritpn/kawio/internal/apperror"
	"github.com/dekritpn/kawio/internal/entity"
	"github.com/dekritpn/kawio/internal/othello"
)

type matchRepo interface {
	CreateOrUpdate(ctx context.Context, match *entity.Match) error
	GetByID(ctx context.Context, id string) (*entity.Match, error)
	DeleteByID(ctx context.Context, id string) error
}

type playerRepo interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
}

type botService interface {
	ChooseMove(game *othello.Game) (pos int, pass bool)
}

type ratingService interface {
	RecordResult(ctx context.Context, winner, loser string) error
}

// Notifier receives one snapshot per applied transition, in the order the
// transitions happened. The websocket hub implements it; tests plug in a
// recorder.
type Notifier interface {
	Notify(matchID string, snapshot *othello.Snapshot)
}

// matchEntry is one slot of the match arena. Its mutex is the only scope
// allowed to mutate the match; turnSeq grows with every transition so that
// stale timers and stale search results can recognize themselves.
type matchEntry struct {
	mu      sync.Mutex
	match   *entity.Match
	turnSeq uint64
}

// Coordinator owns every live match and serializes all mutation per match.
// Human moves apply synchronously once the match lock is held; the automated
// reply is computed off-lock and re-enters through the same apply path.
type Coordinator struct {
	logger *slog.Logger

	matchRepo  matchRepo
	playerRepo playerRepo
	bot        botService
	rating     ratingService
	notifier   Notifier

	turnTimeout time.Duration

	mu      sync.RWMutex
	entries map[string]*matchEntry

	queueMu sync.Mutex
	queue   []string
}

func NewCoordinator(
	logger *slog.Logger,
	matches matchRepo,
	players playerRepo,
	bot botService,
	rating ratingService,
	notifier Notifier,
	turnTimeout time.Duration,
) *Coordinator {
	return &Coordinator{
		logger: logger,

		matchRepo:  matches,
		playerRepo: players,
		bot:        bot,
		rating:     rating,
		notifier:   notifier,

		turnTimeout: turnTimeout,

		entries: make(map[string]*matchEntry),
	}
}

// CreateMatch opens a new match with the creator seated as Black. With
// withBot the automated opponent takes White immediately and the match
// starts; otherwise it waits for JoinMatch.
func (that *Coordinator) CreateMatch(ctx context.Context, playerID string, withBot bool) (*entity.Match, error) {
	creator := &entity.Player{ID: playerID}
	match := entity.NewMatch(uuid.NewString(), creator)

	if withBot {
		if err := match.AddOpponent(&entity.Player{ID: entity.BotID}); err != nil {
			return nil, fmt.Errorf("failed to seat bot: %w", err)
		}
	}

	if err := that.playerRepo.CreateOrUpdate(ctx, creator); err != nil {
		return nil, fmt.Errorf("failed to update player: %w", err)
	}

	if err := that.matchRepo.CreateOrUpdate(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	entry := &matchEntry{match: match}

	that.mu.Lock()
	that.entries[match.ID] = entry
	that.mu.Unlock()

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if match.IsActive() {
		that.announceStartLocked(entry)
	}

	return match.Clone(), nil
}

// JoinMatch seats playerID as White in a waiting match and starts it.
func (that *Coordinator) JoinMatch(ctx context.Context, matchID, playerID string) (*entity.Match, error) {
	entry, err := that.entry(ctx, matchID)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	match := entry.match

	if _, err = match.ColorOf(playerID); err == nil {
		// already seated, joining again is a no-op
		return match.Clone(), nil
	}

	if match.IsFinished() {
		return nil, fmt.Errorf("%w: match %s is finished", apperror.ErrInactiveMatch, matchID)
	}

	opponent := &entity.Player{ID: playerID}
	if err = match.AddOpponent(opponent); err != nil {
		return nil, err
	}

	if err = that.playerRepo.CreateOrUpdate(ctx, opponent); err != nil {
		return nil, fmt.Errorf("failed to update player: %w", err)
	}

	if err = that.matchRepo.CreateOrUpdate(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to update match: %w", err)
	}

	that.announceStartLocked(entry)

	return match.Clone(), nil
}

// JoinMatchmaking pairs the player with the earliest waiting one. The
// returned match is nil while the player sits alone in the queue.
func (that *Coordinator) JoinMatchmaking(ctx context.Context, playerID string) (*entity.Match, error) {
	that.queueMu.Lock()

	for _, queued := range that.queue {
		if queued == playerID {
			that.queueMu.Unlock()
			return nil, nil
		}
	}

	if len(that.queue) == 0 {
		that.queue = append(that.queue, playerID)
		that.queueMu.Unlock()
		return nil, nil
	}

	opponent := that.queue[0]
	that.queue = that.queue[1:]
	that.queueMu.Unlock()

	match, err := that.CreateMatch(ctx, opponent, false)
	if err != nil {
		return nil, err
	}

	return that.JoinMatch(ctx, match.ID, playerID)
}

// SubmitMove validates and applies one human move, then schedules the
// automated reply when the next mover is the bot. The returned snapshot is
// the state right after the human move.
func (that *Coordinator) SubmitMove(ctx context.Context, matchID, playerID, coord string) (*othello.Snapshot, error) {
	pos, err := othello.CoordToPos(coord)
	if err != nil {
		return nil, err
	}

	entry, err := that.entry(ctx, matchID)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	match := entry.match

	if err = match.ConfirmActiveState(); err != nil {
		return nil, err
	}

	color, err := match.ColorOf(playerID)
	if err != nil {
		return nil, err
	}

	if match.Game.Turn != color {
		return nil, fmt.Errorf("%w: %s to move", apperror.ErrNotYourTurn, match.Game.Turn)
	}

	if err = match.Game.MakeMove(pos); err != nil {
		return nil, err
	}

	return that.finishTransitionLocked(ctx, entry), nil
}

// SubmitPass applies an explicit pass. It is only allowed when the player
// really has no legal move; otherwise the caller gets ErrMoveRequired.
func (that *Coordinator) SubmitPass(ctx context.Context, matchID, playerID string) (*othello.Snapshot, error) {
	entry, err := that.entry(ctx, matchID)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	match := entry.match

	if err = match.ConfirmActiveState(); err != nil {
		return nil, err
	}

	color, err := match.ColorOf(playerID)
	if err != nil {
		return nil, err
	}

	if match.Game.Turn != color {
		return nil, fmt.Errorf("%w: %s to move", apperror.ErrNotYourTurn, match.Game.Turn)
	}

	if match.Game.HasLegalMove(color) {
		return nil, fmt.Errorf("%w: %s has a legal move", apperror.ErrMoveRequired, color)
	}

	match.Game.Pass()

	return that.finishTransitionLocked(ctx, entry), nil
}

// State returns a consistent snapshot of the match's game.
func (that *Coordinator) State(ctx context.Context, matchID string) (*othello.Snapshot, error) {
	entry, err := that.entry(ctx, matchID)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	return snapshotLocked(entry.match), nil
}

// snapshotLocked renders the game and overlays the match outcome, which can
// diverge from the board after a forfeit. Caller holds the entry lock.
func snapshotLocked(match *entity.Match) *othello.Snapshot {
	snapshot := match.Game.Snapshot()

	if match.IsFinished() {
		snapshot.GameOver = true
		snapshot.Winner = match.Winner
	}

	return snapshot
}

// Match returns a detached copy of the match record, for transports that
// need status and seating next to the board. The live record never leaves
// the entry lock.
func (that *Coordinator) Match(ctx context.Context, matchID string) (*entity.Match, error) {
	entry, err := that.entry(ctx, matchID)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	return entry.match.Clone(), nil
}

// entry returns the arena slot for a match, falling back to the repository
// so that a restarted server resumes its live matches.
func (that *Coordinator) entry(ctx context.Context, matchID string) (*matchEntry, error) {
	that.mu.RLock()
	entry, ok := that.entries[matchID]
	that.mu.RUnlock()

	if ok {
		return entry, nil
	}

	match, err := that.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if entry, ok = that.entries[matchID]; ok {
		return entry, nil
	}

	entry = &matchEntry{match: match}
	that.entries[matchID] = entry

	return entry, nil
}

// announceStartLocked emits the opening snapshot of a freshly activated
// match and arms the first turn timer. Caller holds the entry lock.
func (that *Coordinator) announceStartLocked(entry *matchEntry) {
	entry.turnSeq++

	if that.notifier != nil {
		that.notifier.Notify(entry.match.ID, snapshotLocked(entry.match))
	}

	that.scheduleNextActorLocked(entry)
}

// finishTransitionLocked runs the shared tail of every applied transition:
// terminal handling, persistence, the notification side effect and the
// scheduling of whoever acts next. Caller holds the entry lock.
func (that *Coordinator) finishTransitionLocked(ctx context.Context, entry *matchEntry) *othello.Snapshot {
	log := that.logger.With("method", "finishTransitionLocked", "matchID", entry.match.ID)

	entry.turnSeq++
	match := entry.match

	if match.IsActive() && match.Game.IsGameOver() {
		match.Finish(match.Game.Winner())
		that.recordResult(ctx, match)
	}

	if err := that.matchRepo.CreateOrUpdate(ctx, match); err != nil {
		// the in-memory arena stays authoritative, losing a save must not
		// roll back an applied move
		log.Error("failed to persist match", "error", err)
	}

	snapshot := snapshotLocked(match)

	if that.notifier != nil {
		that.notifier.Notify(match.ID, snapshot)
	}

	if match.IsActive() {
		that.scheduleNextActorLocked(entry)
	}

	return snapshot
}

// scheduleNextActorLocked hands the turn to the automated opponent or arms
// the human turn timer. Caller holds the entry lock.
func (that *Coordinator) scheduleNextActorLocked(entry *matchEntry) {
	next := entry.match.PlayerByColor(entry.match.Game.Turn)
	if next == nil {
		return
	}

	if next.IsBot() {
		go that.playBotMove(entry.match.ID, entry.turnSeq)
		return
	}

	if that.turnTimeout > 0 {
		matchID := entry.match.ID
		seq := entry.turnSeq
		time.AfterFunc(that.turnTimeout, func() {
			that.expireTurn(matchID, seq)
		})
	}
}

// playBotMove computes the automated reply off-lock and applies it through
// the same path as a human move. A result computed for a superseded turn is
// discarded.
func (that *Coordinator) playBotMove(matchID string, seq uint64) {
	log := that.logger.With("method", "playBotMove", "matchID", matchID)
	ctx := context.Background()

	entry, err := that.entry(ctx, matchID)
	if err != nil {
		log.Error("failed to resolve match", "error", err)
		return
	}

	entry.mu.Lock()
	if entry.turnSeq != seq || !entry.match.IsActive() {
		entry.mu.Unlock()
		return
	}
	game := entry.match.Game.Clone()
	entry.mu.Unlock()

	pos, pass := that.bot.ChooseMove(game)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.turnSeq != seq || !entry.match.IsActive() {
		log.Info("discarding stale search result")
		return
	}

	if pass {
		// unreachable through normal play, the engine skips a moveless
		// side inside MakeMove; kept so a hand-loaded match can't wedge
		entry.match.Game.Pass()
	} else if err = entry.match.Game.MakeMove(pos); err != nil {
		log.Error("bot move rejected", "error", err)
		return
	}

	that.finishTransitionLocked(ctx, entry)
}

// expireTurn forfeits the match if the same turn is still pending when the
// turn timer fires.
func (that *Coordinator) expireTurn(matchID string, seq uint64) {
	log := that.logger.With("method", "expireTurn", "matchID", matchID)
	ctx := context.Background()

	entry, err := that.entry(ctx, matchID)
	if err != nil {
		log.Error("failed to resolve match", "error", err)
		return
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.turnSeq != seq || !entry.match.IsActive() {
		return
	}

	winner := entry.match.Game.Turn.Opponent()
	entry.match.Finish(&winner)
	that.recordResult(ctx, entry.match)

	log.Info("turn timer expired, match forfeited", "winner", winner)

	entry.turnSeq++

	if err = that.matchRepo.CreateOrUpdate(ctx, entry.match); err != nil {
		log.Error("failed to persist match", "error", err)
	}

	if that.notifier != nil {
		that.notifier.Notify(entry.match.ID, snapshotLocked(entry.match))
	}
}

// recordResult feeds a decisive human-vs-human outcome into the rating
// service. Draws and bot games leave the ratings alone.
func (that *Coordinator) recordResult(ctx context.Context, match *entity.Match) {
	log := that.logger.With("method", "recordResult", "matchID", match.ID)

	if that.rating == nil || match.HasBot() || match.Winner == "" {
		return
	}

	winner := match.PlayerByColor(othello.Player(match.Winner))
	loser := match.PlayerByColor(othello.Player(match.Winner).Opponent())
	if winner == nil || loser == nil {
		return
	}

	if err := that.rating.RecordResult(ctx, winner.ID, loser.ID); err != nil {
		log.Error("failed to record result", "error", err)
	}
}
