package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/boardgame-backend/internal/apperror"
	"github.com/rocketscienceinc/boardgame-backend/internal/entity"
)

func TestActions_Ladders(t *testing.T) {
	t.Run("an up ladder carries the player to its destination", func(t *testing.T) {
		// Given: alice one tile before the ladder at tile 4
		engine, _ := newTestEngine(t, entity.VariantRaceClassic, [][]int{{1}}, "alice", "bob")
		alice := playerNamed(t, engine, "alice")
		alice.CurrentTileID = 3

		// When: landing on it
		require.NoError(t, engine.ProcessTurn())

		// Then: alice stands at the ladder's destination
		assert.Equal(t, 14, alice.CurrentTileID)
		assert.Equal(t, "bob", engine.ActivePlayer().Name)
	})

	t.Run("a down ladder slides the player back", func(t *testing.T) {
		// Given: alice one tile before the slide at tile 17
		engine, _ := newTestEngine(t, entity.VariantRaceClassic, [][]int{{1}}, "alice", "bob")
		alice := playerNamed(t, engine, "alice")
		alice.CurrentTileID = 16

		// When: landing on it
		require.NoError(t, engine.ProcessTurn())

		// Then: alice slid down to tile 7
		assert.Equal(t, 7, alice.CurrentTileID)
	})

	t.Run("a ladder to a missing tile is a corrupt-board failure", func(t *testing.T) {
		// Given: a two-tile board whose ladder points off the edge
		board := entity.NewBoard(entity.VariantRaceClassic)
		require.NoError(t, board.AddTile(&entity.Tile{ID: 1, NextID: 2}))
		require.NoError(t, board.AddTile(&entity.Tile{
			ID:     2,
			Action: &entity.LadderAction{DestinationID: 99, Direction: entity.DirectionUp},
		}))

		engine := NewEngine(testLogger(), board, &scriptedRoller{rolls: [][]int{{1}}})
		require.NoError(t, engine.AddPlayer(entity.NewPlayer("alice", "hat", StartingMoney)))
		require.NoError(t, engine.InitializeGame(false))

		// When/Then: landing on it surfaces the broken reference
		assert.ErrorIs(t, engine.ProcessTurn(), apperror.ErrIllegalTileReference)
	})
}

func TestActions_BackToStart(t *testing.T) {
	// Given: alice one tile before the back-to-start at tile 39
	engine, _ := newTestEngine(t, entity.VariantRaceClassic, [][]int{{1}}, "alice", "bob")
	alice := playerNamed(t, engine, "alice")
	alice.CurrentTileID = 38

	// When: landing on it
	require.NoError(t, engine.ProcessTurn())

	// Then: alice is back on the first tile
	assert.Equal(t, engine.Board().FirstTileID(), alice.CurrentTileID)
}

func TestActions_Wait(t *testing.T) {
	// Given: alice one tile before the wait at tile 13
	engine, recorder := newTestEngine(t, entity.VariantRaceClassic, [][]int{{1}, {1}}, "alice", "bob")
	alice := playerNamed(t, engine, "alice")
	alice.CurrentTileID = 12

	// When: landing on it
	require.NoError(t, engine.ProcessTurn())

	// Then: the skip flag is set and the turn passes on
	assert.True(t, alice.SkipNextTurn)
	assert.Equal(t, 1, recorder.count(EventWaitImposed))
	assert.Equal(t, "bob", engine.ActivePlayer().Name)

	// When: bob takes his turn and alice's comes back around
	require.NoError(t, engine.ProcessTurn())
	require.NoError(t, engine.ProcessTurn())

	// Then: alice sat out without moving
	assert.Equal(t, 13, alice.CurrentTileID)
	assert.False(t, alice.SkipNextTurn)
	assert.Equal(t, 1, recorder.count(EventTurnSkipped))
	assert.Equal(t, "bob", engine.ActivePlayer().Name)
}

func TestActions_Rent(t *testing.T) {
	t.Run("base rent is a fraction of the cost", func(t *testing.T) {
		// Given: bob owning one of the two brown tiles
		engine, recorder := newTestEngine(t, entity.VariantPropertyClassic, [][]int{{1}}, "alice", "bob")
		ownTile(t, engine, "bob", 2)

		// When: alice lands on it
		require.NoError(t, engine.ProcessTurn())

		// Then: she pays 2/10 of the 60 cost
		assert.Equal(t, StartingMoney-12, playerNamed(t, engine, "alice").Money)
		assert.Equal(t, StartingMoney+12, playerNamed(t, engine, "bob").Money)

		paid := recorder.ofType(EventRentPaid)
		require.Len(t, paid, 1)
		assert.Equal(t, 12, paid[0].Amount)
		assert.Equal(t, "bob", paid[0].Counterparty)
	})

	t.Run("a complete color group charges the full cost", func(t *testing.T) {
		// Given: bob owning the whole brown group
		engine, _ := newTestEngine(t, entity.VariantPropertyClassic, [][]int{{1}}, "alice", "bob")
		ownTile(t, engine, "bob", 2, 3)

		// When: alice lands on tile 2
		require.NoError(t, engine.ProcessTurn())

		// Then: she pays the full 60
		assert.Equal(t, StartingMoney-60, playerNamed(t, engine, "alice").Money)
		assert.Equal(t, StartingMoney+60, playerNamed(t, engine, "bob").Money)
	})

	t.Run("landing on your own property is free", func(t *testing.T) {
		engine, recorder := newTestEngine(t, entity.VariantPropertyClassic, [][]int{{1}}, "alice", "bob")
		ownTile(t, engine, "alice", 2)

		require.NoError(t, engine.ProcessTurn())

		assert.Equal(t, StartingMoney, playerNamed(t, engine, "alice").Money)
		assert.Equal(t, 0, recorder.count(EventRentPaid))
	})

	t.Run("free parking waives one rent", func(t *testing.T) {
		// Given: alice holding the free-parking waiver, bob owning the group
		engine, recorder := newTestEngine(t, entity.VariantPropertyClassic, [][]int{{1}}, "alice", "bob")
		ownTile(t, engine, "bob", 2, 3)
		alice := playerNamed(t, engine, "alice")
		alice.FreeParking = true

		// When: alice lands on bob's property
		require.NoError(t, engine.ProcessTurn())

		// Then: no money moves and the waiver is spent
		assert.Equal(t, StartingMoney, alice.Money)
		assert.Equal(t, StartingMoney, playerNamed(t, engine, "bob").Money)
		assert.False(t, alice.FreeParking)
		assert.Equal(t, 1, recorder.count(EventRentWaived))
	})

	t.Run("unpayable rent bankrupts the tenant and ends a two-player game", func(t *testing.T) {
		// Given: alice nearly broke but propertied, bob holding a monopoly
		engine, recorder := newTestEngine(t, entity.VariantPropertyClassic, [][]int{{1}}, "alice", "bob")
		ownTile(t, engine, "bob", 2, 3)
		ownTile(t, engine, "alice", 4)
		alice := playerNamed(t, engine, "alice")
		alice.Money = 10

		// When: alice lands on the monopoly
		require.NoError(t, engine.ProcessTurn())

		// Then: alice is out, her property is released, bob gets no rent and wins
		assert.True(t, alice.Bankrupt)
		assert.Empty(t, alice.OwnedPropertyIDs)
		assert.Equal(t, StartingMoney, playerNamed(t, engine, "bob").Money)
		assert.Equal(t, 1, recorder.count(EventPlayerBankrupt))

		tile, err := engine.Board().GetTile(4)
		require.NoError(t, err)
		assert.Empty(t, tile.Property().Owner)

		assert.Equal(t, PhaseOver, engine.Phase())
		require.NotNil(t, engine.Winner())
		assert.Equal(t, "bob", engine.Winner().Name)
	})
}

func TestActions_FreeParkingGrant(t *testing.T) {
	// Given: alice one tile before free parking
	engine, recorder := newTestEngine(t, entity.VariantPropertyClassic, [][]int{{1}}, "alice", "bob")
	alice := playerNamed(t, engine, "alice")
	alice.CurrentTileID = 20

	// When: landing on it
	require.NoError(t, engine.ProcessTurn())

	// Then: the waiver is granted
	assert.True(t, alice.FreeParking)
	assert.Equal(t, 1, recorder.count(EventFreeParkingGranted))
}

func TestActions_WealthTax(t *testing.T) {
	t.Run("charges the flat amount", func(t *testing.T) {
		// Given: alice one tile before the wealth tax at tile 39
		engine, recorder := newTestEngine(t, entity.VariantPropertyClassic, [][]int{{1}}, "alice", "bob")
		alice := playerNamed(t, engine, "alice")
		alice.CurrentTileID = 38

		// When: landing on it
		require.NoError(t, engine.ProcessTurn())

		// Then: the flat amount leaves the game
		assert.Equal(t, StartingMoney-75, alice.Money)

		paid := recorder.ofType(EventTaxPaid)
		require.Len(t, paid, 1)
		assert.Equal(t, 75, paid[0].Amount)
	})

	t.Run("an uncoverable charge is a bankruptcy without partial payment", func(t *testing.T) {
		// Given: alice short of the 75 charge
		engine, recorder := newTestEngine(t, entity.VariantPropertyClassic, [][]int{{1}}, "alice", "bob")
		alice := playerNamed(t, engine, "alice")
		alice.CurrentTileID = 38
		alice.Money = 50

		// When: landing on the wealth tax
		require.NoError(t, engine.ProcessTurn())

		// Then: alice is out, her balance untouched, and bob wins
		assert.True(t, alice.Bankrupt)
		assert.Equal(t, 50, alice.Money)
		assert.Equal(t, 0, recorder.count(EventTaxPaid))
		assert.Equal(t, 1, recorder.count(EventPlayerBankrupt))

		assert.Equal(t, PhaseOver, engine.Phase())
		require.NotNil(t, engine.Winner())
		assert.Equal(t, "bob", engine.Winner().Name)
	})
}

func TestActions_GoToJail(t *testing.T) {
	// Given: alice one tile before go-to-jail
	engine, recorder := newTestEngine(t, entity.VariantPropertyClassic, [][]int{{1}}, "alice", "bob")
	alice := playerNamed(t, engine, "alice")
	alice.CurrentTileID = 30

	// When: landing on it
	require.NoError(t, engine.ProcessTurn())

	// Then: alice sits in jail with a pending skip and a fresh count
	assert.Equal(t, entity.PropertyJailTileID, alice.CurrentTileID)
	assert.True(t, alice.Jailed)
	assert.True(t, alice.SkipNextTurn)
	assert.Equal(t, 0, alice.JailTurnCount)
	assert.Equal(t, 1, recorder.count(EventPlayerJailed))
	assert.Equal(t, "bob", engine.ActivePlayer().Name)

	// Then: the relocation into jail is announced like any other move
	moved := recorder.ofType(EventPlayerMoved)
	require.Len(t, moved, 2)
	assert.Equal(t, entity.PropertyGoToJailTileID, moved[1].FromTileID)
	assert.Equal(t, entity.PropertyJailTileID, moved[1].ToTileID)
}

func TestActions_JailVisitIsFree(t *testing.T) {
	// Given: alice one tile before the jail tile, not jailed
	engine, _ := newTestEngine(t, entity.VariantPropertyClassic, [][]int{{1}}, "alice", "bob")
	alice := playerNamed(t, engine, "alice")
	alice.CurrentTileID = 10

	// When: landing on it
	require.NoError(t, engine.ProcessTurn())

	// Then: just visiting
	assert.Equal(t, entity.PropertyJailTileID, alice.CurrentTileID)
	assert.False(t, alice.Jailed)
	assert.Equal(t, "bob", engine.ActivePlayer().Name)
}

func TestActions_Chance(t *testing.T) {
	// Lands alice on the chance tile with a stubbed effect selector.
	landOnChance := func(t *testing.T, effect int, names ...string) (*Engine, *eventRecorder) {
		t.Helper()

		engine, recorder := newTestEngine(t, entity.VariantPropertyClassic, [][]int{{3, 1}}, names...)
		engine.pickChance = func() int { return effect }
		playerNamed(t, engine, names[0]).CurrentTileID = 4

		return engine, recorder
	}

	t.Run("forward moves three tiles and triggers the landing action", func(t *testing.T) {
		// Given: the forward effect; three past the chance tile is the jail visit
		engine, _ := landOnChance(t, chanceEffectForward, "alice", "bob")

		// When: taking the turn
		require.NoError(t, engine.ProcessTurn())

		// Then: alice moved 4 -> 8 -> 11 and is only visiting
		alice := playerNamed(t, engine, "alice")
		assert.Equal(t, entity.PropertyJailTileID, alice.CurrentTileID)
		assert.False(t, alice.Jailed)
	})

	t.Run("a chance tile reached through chance does not re-trigger", func(t *testing.T) {
		// Given: alice three tiles before the chance tile
		engine, _ := newTestEngine(t, entity.VariantPropertyClassic, nil, "alice", "bob")
		engine.pickChance = func() int { t.Fatal("chance re-triggered"); return 0 }
		alice := playerNamed(t, engine, "alice")
		alice.CurrentTileID = 5

		// When: a forward effect walks her onto it
		require.NoError(t, engine.moveStepsNoChance(alice, chanceForwardSteps))

		// Then: she stands there without drawing again
		assert.Equal(t, entity.PropertyChanceTileID, alice.CurrentTileID)
	})

	t.Run("credit pays the player from the bank", func(t *testing.T) {
		engine, recorder := landOnChance(t, chanceEffectCredit, "alice", "bob")

		require.NoError(t, engine.ProcessTurn())

		assert.Equal(t, StartingMoney+chanceCreditAmount, playerNamed(t, engine, "alice").Money)
		assert.Equal(t, 1, recorder.count(EventMoneyTransferred))
	})

	t.Run("debit pays the bank", func(t *testing.T) {
		engine, _ := landOnChance(t, chanceEffectDebit, "alice", "bob")

		require.NoError(t, engine.ProcessTurn())

		assert.Equal(t, StartingMoney-chanceDebitAmount, playerNamed(t, engine, "alice").Money)
	})

	t.Run("landmark teleports to the bucket's station", func(t *testing.T) {
		// Given: the landmark effect; the chance tile sits in the first bucket
		engine, _ := landOnChance(t, chanceEffectLandmark, "alice", "bob")

		// When: taking the turn
		require.NoError(t, engine.ProcessTurn())

		// Then: alice stands on the station and its buy decision is pending
		assert.Equal(t, 6, playerNamed(t, engine, "alice").CurrentTileID)

		kind, _, pending := engine.PendingDecision()
		require.True(t, pending)
		assert.Equal(t, DecisionBuyProperty, kind)
	})

	t.Run("collect takes from every other player", func(t *testing.T) {
		engine, _ := landOnChance(t, chanceEffectCollect, "alice", "bob", "carol")

		require.NoError(t, engine.ProcessTurn())

		assert.Equal(t, StartingMoney+2*chanceTransferAmount, playerNamed(t, engine, "alice").Money)
		assert.Equal(t, StartingMoney-chanceTransferAmount, playerNamed(t, engine, "bob").Money)
		assert.Equal(t, StartingMoney-chanceTransferAmount, playerNamed(t, engine, "carol").Money)
	})

	t.Run("collect bankrupts a payer who cannot cover it", func(t *testing.T) {
		// Given: carol too broke to pay
		engine, _ := landOnChance(t, chanceEffectCollect, "alice", "bob", "carol")
		playerNamed(t, engine, "carol").Money = 20

		// When: the collect resolves
		require.NoError(t, engine.ProcessTurn())

		// Then: bob paid, carol is out and paid nothing
		assert.Equal(t, StartingMoney+chanceTransferAmount, playerNamed(t, engine, "alice").Money)
		assert.Equal(t, StartingMoney-chanceTransferAmount, playerNamed(t, engine, "bob").Money)
		assert.True(t, playerNamed(t, engine, "carol").Bankrupt)
		assert.Equal(t, 20, playerNamed(t, engine, "carol").Money)
	})

	t.Run("payout pays every other player", func(t *testing.T) {
		engine, _ := landOnChance(t, chanceEffectPayout, "alice", "bob", "carol")

		require.NoError(t, engine.ProcessTurn())

		assert.Equal(t, StartingMoney-2*chanceTransferAmount, playerNamed(t, engine, "alice").Money)
		assert.Equal(t, StartingMoney+chanceTransferAmount, playerNamed(t, engine, "bob").Money)
		assert.Equal(t, StartingMoney+chanceTransferAmount, playerNamed(t, engine, "carol").Money)
	})

	t.Run("payout stops at the payer's bankruptcy", func(t *testing.T) {
		// Given: alice able to cover only the first payout
		engine, _ := landOnChance(t, chanceEffectPayout, "alice", "bob", "carol")
		playerNamed(t, engine, "alice").Money = 60

		// When: the payout resolves
		require.NoError(t, engine.ProcessTurn())

		// Then: bob got paid, carol did not, alice is out
		assert.True(t, playerNamed(t, engine, "alice").Bankrupt)
		assert.Equal(t, StartingMoney+chanceTransferAmount, playerNamed(t, engine, "bob").Money)
		assert.Equal(t, StartingMoney, playerNamed(t, engine, "carol").Money)
		assert.Equal(t, PhaseInProgress, engine.Phase())
	})
}
