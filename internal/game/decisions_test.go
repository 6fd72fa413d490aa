package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/boardgame-backend/internal/apperror"
	"github.com/rocketscienceinc/boardgame-backend/internal/entity"
)

func TestDecisions_Guards(t *testing.T) {
	t.Run("resolving with nothing pending fails", func(t *testing.T) {
		engine, _ := newTestEngine(t, entity.VariantPropertyClassic, nil, "alice", "bob")

		assert.ErrorIs(t, engine.ResolvePropertyPurchase(true), apperror.ErrNoPendingDecision)
		assert.ErrorIs(t, engine.ResolveTaxChoice(true), apperror.ErrNoPendingDecision)
		assert.ErrorIs(t, engine.ResolveJailChoice(true), apperror.ErrNoPendingDecision)
	})

	t.Run("resolving with the wrong type leaves the request pending", func(t *testing.T) {
		// Given: a pending buy decision
		engine, _ := newTestEngine(t, entity.VariantPropertyClassic, [][]int{{1}}, "alice", "bob")
		require.NoError(t, engine.ProcessTurn())

		// When: answering it as a tax choice
		err := engine.ResolveTaxChoice(true)

		// Then: the mismatch is rejected and the buy request survives
		assert.ErrorIs(t, err, apperror.ErrWrongDecisionType)

		kind, _, pending := engine.PendingDecision()
		require.True(t, pending)
		assert.Equal(t, DecisionBuyProperty, kind)
	})
}

func TestDecisions_BuyProperty(t *testing.T) {
	t.Run("declining leaves the property unowned", func(t *testing.T) {
		// Given: alice on an unowned property
		engine, recorder := newTestEngine(t, entity.VariantPropertyClassic, [][]int{{1}}, "alice", "bob")
		require.NoError(t, engine.ProcessTurn())

		// When: declining
		require.NoError(t, engine.ResolvePropertyPurchase(false))

		// Then: no money moved, nobody owns the tile, the turn passed
		alice := playerNamed(t, engine, "alice")
		assert.Equal(t, StartingMoney, alice.Money)
		assert.Empty(t, alice.OwnedPropertyIDs)

		tile, err := engine.Board().GetTile(2)
		require.NoError(t, err)
		assert.Empty(t, tile.Property().Owner)

		assert.Equal(t, 1, recorder.count(EventPurchaseDeclined))
		assert.Equal(t, "bob", engine.ActivePlayer().Name)
	})

	t.Run("accepting transfers ownership for the cost", func(t *testing.T) {
		engine, recorder := newTestEngine(t, entity.VariantPropertyClassic, [][]int{{1}}, "alice", "bob")
		require.NoError(t, engine.ProcessTurn())

		require.NoError(t, engine.ResolvePropertyPurchase(true))

		alice := playerNamed(t, engine, "alice")
		assert.Equal(t, StartingMoney-60, alice.Money)
		assert.True(t, alice.OwnsProperty(2))

		tile, err := engine.Board().GetTile(2)
		require.NoError(t, err)
		assert.Equal(t, "alice", tile.Property().Owner)
		assert.Equal(t, 1, recorder.count(EventPropertyPurchased))
	})

	t.Run("accepting beyond your means is a voluntary bankruptcy", func(t *testing.T) {
		// Given: alice with less than the cost
		engine, _ := newTestEngine(t, entity.VariantPropertyClassic, [][]int{{1}}, "alice", "bob")
		playerNamed(t, engine, "alice").Money = 10
		require.NoError(t, engine.ProcessTurn())

		// When: accepting anyway
		require.NoError(t, engine.ResolvePropertyPurchase(true))

		// Then: alice is out and the tile stays unowned
		assert.True(t, playerNamed(t, engine, "alice").Bankrupt)

		tile, err := engine.Board().GetTile(2)
		require.NoError(t, err)
		assert.Empty(t, tile.Property().Owner)
	})
}

func TestDecisions_Tax(t *testing.T) {
	// Lands alice on the tax tile at 5 with a four-step roll.
	landOnTax := func(t *testing.T) (*Engine, *eventRecorder) {
		t.Helper()

		engine, recorder := newTestEngine(t, entity.VariantPropertyClassic, [][]int{{3, 1}}, "alice", "bob")
		require.NoError(t, engine.ProcessTurn())

		kind, _, pending := engine.PendingDecision()
		require.True(t, pending)
		require.Equal(t, DecisionTaxChoice, kind)

		return engine, recorder
	}

	t.Run("percent of the current balance", func(t *testing.T) {
		engine, recorder := landOnTax(t)

		require.NoError(t, engine.ResolveTaxChoice(true))

		assert.Equal(t, StartingMoney-150, playerNamed(t, engine, "alice").Money)

		paid := recorder.ofType(EventTaxPaid)
		require.Len(t, paid, 1)
		assert.Equal(t, 150, paid[0].Amount)
	})

	t.Run("the fixed amount", func(t *testing.T) {
		engine, _ := landOnTax(t)

		require.NoError(t, engine.ResolveTaxChoice(false))

		assert.Equal(t, StartingMoney-100, playerNamed(t, engine, "alice").Money)
		assert.Equal(t, "bob", engine.ActivePlayer().Name)
	})
}

func TestDecisions_Jail(t *testing.T) {
	// Puts alice in jail with the given served-turn count and starts her turn.
	jailedTurn := func(t *testing.T, served int, rolls [][]int) (*Engine, *eventRecorder) {
		t.Helper()

		engine, recorder := newTestEngine(t, entity.VariantPropertyClassic, rolls, "alice", "bob")
		alice := playerNamed(t, engine, "alice")
		alice.CurrentTileID = entity.PropertyJailTileID
		alice.Jailed = true
		alice.JailTurnCount = served

		require.NoError(t, engine.ProcessTurn())

		return engine, recorder
	}

	t.Run("below the threshold the player chooses bail or a roll", func(t *testing.T) {
		engine, _ := jailedTurn(t, 0, nil)

		kind, decider, pending := engine.PendingDecision()
		require.True(t, pending)
		assert.Equal(t, DecisionJailChoice, kind)
		assert.Equal(t, "alice", decider.Name)
		assert.Equal(t, 1, playerNamed(t, engine, "alice").JailTurnCount)
	})

	t.Run("paying bail releases and moves in the same turn", func(t *testing.T) {
		// Given: a jail choice, with a 5 queued for the post-release move
		engine, recorder := jailedTurn(t, 0, [][]int{{2, 3}})

		// When: paying bail
		require.NoError(t, engine.ResolveJailChoice(true))

		// Then: alice is free, lighter by the bail, and moved to tile 16
		alice := playerNamed(t, engine, "alice")
		assert.False(t, alice.Jailed)
		assert.Equal(t, 0, alice.JailTurnCount)
		assert.Equal(t, StartingMoney-BailAmount, alice.Money)
		assert.Equal(t, 16, alice.CurrentTileID)
		assert.Equal(t, 1, recorder.count(EventJailReleased))

		// Then: the landing tile parked a nested buy decision
		kind, _, pending := engine.PendingDecision()
		require.True(t, pending)
		assert.Equal(t, DecisionBuyProperty, kind)
		assert.Equal(t, "alice", engine.ActivePlayer().Name)
	})

	t.Run("rolling doubles escapes without an extra turn", func(t *testing.T) {
		// Given: a jail choice, with doubles queued for the attempt
		engine, _ := jailedTurn(t, 0, [][]int{{2, 2}})

		// When: choosing to roll
		require.NoError(t, engine.ResolveJailChoice(false))

		// Then: alice escaped and moved four, landing on an unowned property
		alice := playerNamed(t, engine, "alice")
		assert.False(t, alice.Jailed)
		assert.Equal(t, StartingMoney, alice.Money)
		assert.Equal(t, 15, alice.CurrentTileID)

		kind, _, pending := engine.PendingDecision()
		require.True(t, pending)
		require.Equal(t, DecisionBuyProperty, kind)

		// When: declining the purchase
		require.NoError(t, engine.ResolvePropertyPurchase(false))

		// Then: escape doubles grant no extra turn
		assert.Equal(t, "bob", engine.ActivePlayer().Name)
	})

	t.Run("a failed doubles attempt stays in jail", func(t *testing.T) {
		engine, recorder := jailedTurn(t, 0, [][]int{{1, 2}})

		require.NoError(t, engine.ResolveJailChoice(false))

		alice := playerNamed(t, engine, "alice")
		assert.True(t, alice.Jailed)
		assert.Equal(t, 1, alice.JailTurnCount)
		assert.Equal(t, entity.PropertyJailTileID, alice.CurrentTileID)
		assert.Equal(t, 1, recorder.count(EventJailStay))
		assert.Equal(t, "bob", engine.ActivePlayer().Name)
	})

	t.Run("the third turn releases without any decision", func(t *testing.T) {
		// Given: two turns already served, a 4 queued for the release move
		engine, recorder := jailedTurn(t, 2, [][]int{{1, 3}})

		// Then: no jail decision was requested and alice already moved
		alice := playerNamed(t, engine, "alice")
		assert.False(t, alice.Jailed)
		assert.Equal(t, 0, alice.JailTurnCount)
		assert.Equal(t, 15, alice.CurrentTileID)
		assert.Equal(t, 1, recorder.count(EventJailReleased))

		kind, _, pending := engine.PendingDecision()
		require.True(t, pending)
		assert.Equal(t, DecisionBuyProperty, kind)
	})

	t.Run("bail beyond the balance is a bankruptcy", func(t *testing.T) {
		// Given: a jail choice alice cannot afford
		engine, _ := jailedTurn(t, 0, nil)
		playerNamed(t, engine, "alice").Money = 20

		// When: paying bail anyway
		require.NoError(t, engine.ResolveJailChoice(true))

		// Then: alice is out and bob wins the two-player game
		assert.True(t, playerNamed(t, engine, "alice").Bankrupt)
		assert.Equal(t, PhaseOver, engine.Phase())
		require.NotNil(t, engine.Winner())
		assert.Equal(t, "bob", engine.Winner().Name)
	})
}
