package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/rocketscienceinc/boardgame-backend/internal/apperror"
	"github.com/rocketscienceinc/boardgame-backend/internal/entity"
)

// Phase is the engine lifecycle: NotStarted -> InProgress -> Over.
type Phase string

const (
	PhaseNotStarted Phase = "not_started"
	PhaseInProgress Phase = "in_progress"
	PhaseOver       Phase = "over"
)

type roller interface {
	Roll() []int
	LastValues() []int
}

// Engine is the turn state machine. It owns the only cross-player rules
// (rent, pass-go, elimination) and runs strictly single-threaded: turn
// operations are sequential calls, action resolution may recurse within the
// same call stack.
type Engine struct {
	logger *slog.Logger

	board   *entity.Board
	players []*entity.Player
	dice    roller

	phase             Phase
	activePlayerIndex int
	winner            *entity.Player
	extraTurn         bool

	pending *pendingDecision

	observers   []subscription
	nextSubID   int
	eventQueue  []Event
	dispatching bool

	// pickChance selects one of the six chance effects; swapped out in tests.
	pickChance func() int
}

func NewEngine(logger *slog.Logger, board *entity.Board, dice roller) *Engine {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	return &Engine{
		logger:            logger.With("component", "engine"),
		board:             board,
		dice:              dice,
		phase:             PhaseNotStarted,
		activePlayerIndex: -1,
		pickChance:        func() int { return rng.Intn(chanceEffectCount) },
	}
}

func (that *Engine) Board() *entity.Board { return that.board }

func (that *Engine) Phase() Phase { return that.phase }

func (that *Engine) Players() []*entity.Player { return that.players }

func (that *Engine) Winner() *entity.Player { return that.winner }

// ActivePlayer - the player whose turn it is, nil before initialization.
func (that *Engine) ActivePlayer() *entity.Player {
	if that.activePlayerIndex < 0 || that.activePlayerIndex >= len(that.players) {
		return nil
	}

	return that.players[that.activePlayerIndex]
}

// AddPlayer - registers a player before the game starts. Nil players and
// duplicate names are rejected.
func (that *Engine) AddPlayer(player *entity.Player) error {
	if that.phase != PhaseNotStarted {
		return apperror.ErrGameAlreadyStarted
	}

	if player == nil || player.Name == "" {
		return fmt.Errorf("%w: nil or unnamed player", apperror.ErrInvalidPlayer)
	}

	for _, existing := range that.players {
		if existing.Name == player.Name {
			return fmt.Errorf("%w: duplicate name %q", apperror.ErrInvalidPlayer, player.Name)
		}
	}

	that.players = append(that.players, player)

	return nil
}

// InitializeGame - selects the first non-bankrupt player as active and,
// unless resuming a persisted session, places everyone on the first tile.
func (that *Engine) InitializeGame(resume bool) error {
	if that.phase != PhaseNotStarted {
		return apperror.ErrGameAlreadyStarted
	}

	if len(that.players) == 0 {
		return fmt.Errorf("%w: no players registered", apperror.ErrInvalidPlayer)
	}

	if !resume {
		for _, player := range that.players {
			player.CurrentTileID = that.board.FirstTileID()
		}
	}

	that.activePlayerIndex = -1
	for i, player := range that.players {
		if player.IsActive() {
			that.activePlayerIndex = i
			break
		}
	}

	that.phase = PhaseInProgress

	if active := that.ActivePlayer(); active != nil {
		that.publish(Event{Type: EventCurrentPlayerChanged, Player: active.Name})
	}

	return nil
}

// SetCurrentPlayer - moves the turn to the named player, used when resuming
// a persisted session whose roster records the active player.
func (that *Engine) SetCurrentPlayer(name string) error {
	for i, player := range that.players {
		if player.Name != name {
			continue
		}

		if !player.IsActive() {
			return fmt.Errorf("%w: %q is bankrupt", apperror.ErrInvalidPlayer, name)
		}

		if that.activePlayerIndex != i {
			that.activePlayerIndex = i
			that.publish(Event{Type: EventCurrentPlayerChanged, Player: player.Name})
		}

		return nil
	}

	return fmt.Errorf("%w: no player named %q", apperror.ErrInvalidPlayer, name)
}

// ProcessTurn - runs the active player's turn: consume a pending skip, serve
// jail time, or roll and move. May leave a decision pending, in which case
// the turn completes when the presentation layer resolves it.
func (that *Engine) ProcessTurn() error {
	if that.phase == PhaseNotStarted {
		return apperror.ErrGameIsNotStarted
	}
	if that.phase == PhaseOver {
		return apperror.ErrGameFinished
	}
	if that.pending != nil {
		return apperror.ErrDecisionPending
	}

	player := that.ActivePlayer()
	if player == nil || !player.IsActive() {
		that.AdvanceToNextPlayer()
		return nil
	}

	if player.SkipNextTurn {
		player.SkipNextTurn = false
		that.publish(Event{Type: EventTurnSkipped, Player: player.Name})
		that.maybeFinishTurn()

		return nil
	}

	if player.Jailed {
		if err := that.serveJailTurn(player); err != nil {
			return err
		}

		that.maybeFinishTurn()

		return nil
	}

	if err := that.moveByRoll(player); err != nil {
		return err
	}

	that.maybeFinishTurn()

	return nil
}

// moveByRoll - rolls the dice and walks the board, triggering the landing
// tile's action. Does not finish the turn; callers do that once any pending
// decision has been resolved.
func (that *Engine) moveByRoll(player *entity.Player) error {
	values := that.dice.Roll()
	steps := entity.Sum(values)

	if that.board.Variant.IsProperty() && entity.IsDoubles(values) {
		// Doubles grant an additional turn before advancing.
		that.extraTurn = true
	}

	return that.moveSteps(player, steps, values)
}

// moveSteps - walks the next chain, clamping on the race chain and wrapping
// on the property ring. A wrap (destination id below origin id) credits the
// pass-go reward once.
func (that *Engine) moveSteps(player *entity.Player, steps int, dice []int) error {
	from := player.CurrentTileID

	to, err := that.walk(from, steps)
	if err != nil {
		return err
	}

	player.CurrentTileID = to

	if that.board.Variant.IsProperty() && to < from {
		player.Receive(PassGoReward)
		that.publish(Event{Type: EventPassGo, Player: player.Name, Amount: PassGoReward})
	}

	that.publish(Event{
		Type:       EventPlayerMoved,
		Player:     player.Name,
		FromTileID: from,
		ToTileID:   to,
		Dice:       dice,
	})

	return that.performTile(player, to)
}

func (that *Engine) walk(from, steps int) (int, error) {
	current, err := that.board.GetTile(from)
	if err != nil {
		return 0, err
	}

	for i := 0; i < steps; i++ {
		if !current.HasNext() {
			// Chain ran out before the roll was exhausted: clamp.
			break
		}

		next, err := that.board.GetTile(current.NextID)
		if err != nil {
			return 0, fmt.Errorf("%w: tile %d links to %d", apperror.ErrIllegalTileReference, current.ID, current.NextID)
		}

		current = next
	}

	return current.ID, nil
}

// AdvanceToNextPlayer - rotates the turn forward, skipping bankrupt players.
// Rotation stops after a full cycle so a lone survivor cannot loop forever.
// Emits current-player-changed only when the identity actually changed, and
// always re-checks the win condition.
func (that *Engine) AdvanceToNextPlayer() {
	if that.phase != PhaseInProgress {
		return
	}

	previous := that.activePlayerIndex
	count := len(that.players)

	for offset := 1; offset <= count; offset++ {
		index := (previous + offset) % count
		if that.players[index].IsActive() {
			that.activePlayerIndex = index
			break
		}
	}

	if that.activePlayerIndex != previous {
		that.publish(Event{Type: EventCurrentPlayerChanged, Player: that.players[that.activePlayerIndex].Name})
	}

	that.checkWinCondition()
}

// maybeFinishTurn - completes the turn unless a decision is still pending.
func (that *Engine) maybeFinishTurn() {
	if that.pending != nil {
		return
	}

	that.finishTurn()
}

func (that *Engine) finishTurn() {
	that.checkWinCondition()
	if that.phase == PhaseOver {
		return
	}

	if that.extraTurn {
		that.extraTurn = false
		return
	}

	that.AdvanceToNextPlayer()
}

// checkWinCondition - race: someone reached the terminal tile; property:
// exactly one non-bankrupt player remains.
func (that *Engine) checkWinCondition() {
	if that.phase != PhaseInProgress {
		return
	}

	if that.board.Variant.IsRace() {
		for _, player := range that.players {
			if player.IsActive() && player.CurrentTileID == that.board.LastTileID() {
				that.declareWinner(player)
				return
			}
		}

		return
	}

	var survivor *entity.Player
	active := 0
	for _, player := range that.players {
		if player.IsActive() {
			survivor = player
			active++
		}
	}

	if active == 1 && len(that.players) > 1 {
		that.declareWinner(survivor)
	}
}

func (that *Engine) declareWinner(player *entity.Player) {
	that.phase = PhaseOver
	that.winner = player

	that.logger.Info("game won", "player", player.Name)
	that.publish(Event{Type: EventGameWon, Winner: player.Name})
}

// declareBankruptcy - the full sequence: mark the player, atomically release
// every property they own, and drop their transient flags. The player stays
// in the roster but leaves the rotation.
func (that *Engine) declareBankruptcy(player *entity.Player) {
	player.Bankrupt = true
	player.ClearProperties()
	player.SkipNextTurn = false
	player.Jailed = false
	player.JailTurnCount = 0
	player.FreeParking = false

	that.board.ReleaseProperties(player.Name)

	that.logger.Info("player bankrupt", "player", player.Name)
	that.publish(Event{Type: EventPlayerBankrupt, Player: player.Name})
}

// transfer - moves amount between players, debit before credit, never
// partially applied. A failed debit bankrupts the payer and pays nothing.
func (that *Engine) transfer(from, to *entity.Player, amount int) bool {
	if !from.Pay(amount) {
		that.declareBankruptcy(from)
		return false
	}

	to.Receive(amount)

	return true
}

// payBank - like transfer, but the money leaves the game.
func (that *Engine) payBank(player *entity.Player, amount int) bool {
	if !player.Pay(amount) {
		that.declareBankruptcy(player)
		return false
	}

	return true
}
