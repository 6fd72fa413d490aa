package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/rocketscienceinc/boardgame-backend/internal/apperror"
	"github.com/rocketscienceinc/boardgame-backend/internal/entity"
	"github.com/rocketscienceinc/boardgame-backend/internal/game"
	"github.com/rocketscienceinc/boardgame-backend/internal/repository"
)

type saveStore interface {
	Put(ctx context.Context, slot string, save *repository.SavedGame) error
	Get(ctx context.Context, slot string) (*repository.SavedGame, error)
	List(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, slot string) error
}

// PlayerSpec describes a participant joining a fresh game.
type PlayerSpec struct {
	Name  string `json:"name"`
	Token string `json:"token"`
}

// State is a read-only snapshot of the session for the presentation layer.
type State struct {
	Variant      entity.Variant   `json:"variant"`
	Phase        game.Phase       `json:"phase"`
	ActivePlayer string           `json:"active_player,omitempty"`
	Winner       string           `json:"winner,omitempty"`
	Players      []*entity.Player `json:"players"`
	LastDice     []int            `json:"last_dice,omitempty"`
}

// GameManager owns the single live session. The engine itself is strictly
// sequential; the manager serializes access to it so transports can call in
// from handler goroutines.
type GameManager struct {
	logger *slog.Logger
	store  saveStore

	mu      sync.Mutex
	engine  *game.Engine
	dice    *entity.DiceSet
	variant entity.Variant

	observersMu sync.RWMutex
	observers   map[int]game.Observer
	nextSubID   int
}

func NewGameManager(logger *slog.Logger, store saveStore) *GameManager {
	return &GameManager{
		logger:    logger.With("component", "game_manager"),
		store:     store,
		observers: make(map[int]game.Observer),
	}
}

// NewGame - starts a fresh session on the given variant, discarding any
// previous one. Subscribers carry over.
func (that *GameManager) NewGame(variant entity.Variant, specs []PlayerSpec) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	board, err := entity.BuildBoard(variant)
	if err != nil {
		return fmt.Errorf("failed to build board: %w", err)
	}

	dice := entity.NewDiceSet(variant.DiceCount(), nil)
	engine := game.NewEngine(that.logger, board, dice)

	for _, spec := range specs {
		if err = engine.AddPlayer(entity.NewPlayer(spec.Name, spec.Token, game.StartingMoney)); err != nil {
			return fmt.Errorf("failed to add player: %w", err)
		}
	}

	engine.Subscribe(game.ObserverFunc(that.fanOut))

	if err = engine.InitializeGame(false); err != nil {
		return fmt.Errorf("failed to initialize game: %w", err)
	}

	that.engine = engine
	that.dice = dice
	that.variant = variant

	that.logger.Info("new game started", "variant", variant, "players", len(specs))

	return nil
}

// RollDice - processes the active player's turn.
func (that *GameManager) RollDice() error {
	that.mu.Lock()
	defer that.mu.Unlock()

	engine, err := that.requireEngine()
	if err != nil {
		return err
	}

	return engine.ProcessTurn()
}

// AdvanceTurn - rotates to the next player without rolling.
func (that *GameManager) AdvanceTurn() error {
	that.mu.Lock()
	defer that.mu.Unlock()

	engine, err := that.requireEngine()
	if err != nil {
		return err
	}

	engine.AdvanceToNextPlayer()

	return nil
}

func (that *GameManager) ResolvePropertyPurchase(accept bool) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	engine, err := that.requireEngine()
	if err != nil {
		return err
	}

	return engine.ResolvePropertyPurchase(accept)
}

func (that *GameManager) ResolveTaxChoice(usePercent bool) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	engine, err := that.requireEngine()
	if err != nil {
		return err
	}

	return engine.ResolveTaxChoice(usePercent)
}

func (that *GameManager) ResolveJailChoice(payBail bool) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	engine, err := that.requireEngine()
	if err != nil {
		return err
	}

	return engine.ResolveJailChoice(payBail)
}

// Save - snapshots the board layout and the player roster into a slot.
func (that *GameManager) Save(ctx context.Context, slot string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	engine, err := that.requireEngine()
	if err != nil {
		return err
	}

	board, err := repository.EncodeBoard(engine.Board())
	if err != nil {
		return fmt.Errorf("failed to encode board: %w", err)
	}

	players, err := repository.EncodePlayers(engine.Players(), engine.ActivePlayer())
	if err != nil {
		return fmt.Errorf("failed to encode players: %w", err)
	}

	if err = that.store.Put(ctx, slot, &repository.SavedGame{Board: board, Players: players}); err != nil {
		return fmt.Errorf("failed to store save %q: %w", slot, err)
	}

	that.logger.Info("game saved", "slot", slot, "variant", that.variant)

	return nil
}

// Load - rehydrates a session from a slot. Any failure leaves the running
// session in its prior state.
func (that *GameManager) Load(ctx context.Context, slot string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	saved, err := that.store.Get(ctx, slot)
	if err != nil {
		return fmt.Errorf("failed to fetch save %q: %w", slot, err)
	}

	board, err := repository.DecodeBoard(saved.Board, slot)
	if err != nil {
		return err
	}

	players, currentName, err := repository.DecodePlayers(saved.Players, board, slot)
	if err != nil {
		return err
	}

	dice := entity.NewDiceSet(board.Variant.DiceCount(), nil)
	engine := game.NewEngine(that.logger, board, dice)

	for _, player := range players {
		if err = engine.AddPlayer(player); err != nil {
			return fmt.Errorf("failed to add player: %w", err)
		}
	}

	engine.Subscribe(game.ObserverFunc(that.fanOut))

	if err = engine.InitializeGame(true); err != nil {
		return fmt.Errorf("failed to initialize game: %w", err)
	}

	if currentName != "" {
		if err = engine.SetCurrentPlayer(currentName); err != nil {
			return fmt.Errorf("failed to restore current player: %w", err)
		}
	}

	// The session swaps in only after every step succeeded.
	that.engine = engine
	that.dice = dice
	that.variant = board.Variant

	that.logger.Info("game loaded", "slot", slot, "variant", board.Variant)

	return nil
}

// ListSaves - names of the stored slots.
func (that *GameManager) ListSaves(ctx context.Context) ([]string, error) {
	return that.store.List(ctx)
}

// State - a snapshot for rendering. Players and dice values are copied so
// transports can marshal the snapshot after the lock is released, while the
// next turn already mutates the live session.
func (that *GameManager) State() *State {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.engine == nil {
		return &State{Phase: game.PhaseNotStarted}
	}

	players := make([]*entity.Player, 0, len(that.engine.Players()))
	for _, player := range that.engine.Players() {
		copied := *player
		copied.OwnedPropertyIDs = slices.Clone(player.OwnedPropertyIDs)
		players = append(players, &copied)
	}

	state := &State{
		Variant: that.variant,
		Phase:   that.engine.Phase(),
		Players: players,
	}

	if active := that.engine.ActivePlayer(); active != nil {
		state.ActivePlayer = active.Name
	}
	if winner := that.engine.Winner(); winner != nil {
		state.Winner = winner.Name
	}
	if that.dice != nil {
		state.LastDice = slices.Clone(that.dice.LastValues())
	}

	return state
}

// Subscribe - registers an observer for engine events across sessions.
func (that *GameManager) Subscribe(observer game.Observer) int {
	that.observersMu.Lock()
	defer that.observersMu.Unlock()

	that.nextSubID++
	that.observers[that.nextSubID] = observer

	return that.nextSubID
}

func (that *GameManager) Unsubscribe(id int) {
	that.observersMu.Lock()
	defer that.observersMu.Unlock()

	delete(that.observers, id)
}

func (that *GameManager) fanOut(event game.Event) {
	that.observersMu.RLock()
	defer that.observersMu.RUnlock()

	for _, observer := range that.observers {
		observer.Notify(event)
	}
}

func (that *GameManager) requireEngine() (*game.Engine, error) {
	if that.engine == nil {
		return nil, apperror.ErrGameIsNotStarted
	}

	return that.engine, nil
}
