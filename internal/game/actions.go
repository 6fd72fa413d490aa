package game

import (
	"fmt"

	"github.com/rocketscienceinc/boardgame-backend/internal/apperror"
	"github.com/rocketscienceinc/boardgame-backend/internal/entity"
)

// performTile - triggers the action attached to a tile, if any. Actions
// trigger uniformly on landing for both variants.
func (that *Engine) performTile(player *entity.Player, tileID int) error {
	tile, err := that.board.GetTile(tileID)
	if err != nil {
		return err
	}

	if tile.Action == nil {
		return nil
	}

	return that.performAction(player, tile, tile.Action, true)
}

// performAction - dispatches over the closed action union. allowChance is
// false when the call was reached through a chance effect, which must not
// re-trigger itself.
func (that *Engine) performAction(player *entity.Player, tile *entity.Tile, action entity.Action, allowChance bool) error {
	switch act := action.(type) {
	case *entity.LadderAction:
		return that.performLadder(player, tile, act)

	case *entity.BackToStartAction:
		that.relocate(player, that.board.FirstTileID())
		return nil

	case *entity.WaitAction:
		player.SkipNextTurn = true
		that.publish(Event{Type: EventWaitImposed, Player: player.Name, TileID: tile.ID})
		return nil

	case *entity.PropertyAction:
		return that.performProperty(player, tile, act)

	case *entity.ChanceAction:
		if !allowChance {
			return nil
		}
		return that.performChance(player)

	case *entity.TaxAction:
		that.requestTaxDecision(player, act)
		return nil

	case *entity.WealthTaxAction:
		if that.payBank(player, act.Amount) {
			that.publish(Event{Type: EventTaxPaid, Player: player.Name, Amount: act.Amount})
		}
		return nil

	case *entity.StartAction:
		// Landing on or passing start is a single reward; the wrap credit in
		// the move already covered it.
		return nil

	case *entity.JailAction:
		// Landing here while free is just visiting. Jailed occupants are
		// handled at the start of their turn by serveJailTurn.
		return nil

	case *entity.GoToJailAction:
		return that.performGoToJail(player, tile, act)

	case *entity.FreeParkingAction:
		player.FreeParking = true
		that.publish(Event{Type: EventFreeParkingGranted, Player: player.Name})
		return nil

	default:
		return fmt.Errorf("unknown action type %q on tile %d", action.Type(), tile.ID)
	}
}

// performLadder - relocates unconditionally. A destination missing from the
// board means a corrupt asset, not a recoverable condition.
func (that *Engine) performLadder(player *entity.Player, tile *entity.Tile, act *entity.LadderAction) error {
	if _, err := that.board.GetTile(act.DestinationID); err != nil {
		return fmt.Errorf("%w: ladder at tile %d points to %d", apperror.ErrIllegalTileReference, tile.ID, act.DestinationID)
	}

	that.relocate(player, act.DestinationID)

	return nil
}

func (that *Engine) performGoToJail(player *entity.Player, tile *entity.Tile, act *entity.GoToJailAction) error {
	if _, err := that.board.GetTile(act.JailTileID); err != nil {
		return fmt.Errorf("%w: go-to-jail at tile %d points to %d", apperror.ErrIllegalTileReference, tile.ID, act.JailTileID)
	}

	that.relocate(player, act.JailTileID)

	player.Jailed = true
	player.JailTurnCount = 0
	player.SkipNextTurn = true

	that.publish(Event{Type: EventPlayerJailed, Player: player.Name, TileID: act.JailTileID})

	return nil
}

// relocate - moves a player without dice, emitting a move notification.
func (that *Engine) relocate(player *entity.Player, tileID int) {
	from := player.CurrentTileID
	player.CurrentTileID = tileID

	that.publish(Event{Type: EventPlayerMoved, Player: player.Name, FromTileID: from, ToTileID: tileID})
}

// performProperty - the four property cases: unowned (buy decision), owned
// by another with free-parking immunity, owned by another (rent), own.
func (that *Engine) performProperty(player *entity.Player, tile *entity.Tile, act *entity.PropertyAction) error {
	switch {
	case !act.IsOwned():
		that.requestBuyDecision(player, tile, act)
		return nil

	case act.Owner == player.Name:
		return nil

	case player.FreeParking:
		player.FreeParking = false
		that.publish(Event{Type: EventRentWaived, Player: player.Name, Counterparty: act.Owner, TileID: tile.ID})
		return nil

	default:
		rent := act.Cost * rentMultiplier / rentDivisor
		if that.board.ColorGroupOwned(act.ColorGroup, act.Owner) {
			// Monopoly bonus: full cost.
			rent = act.Cost
		}

		owner := that.playerByName(act.Owner)
		if owner == nil {
			return fmt.Errorf("%w: property %q owned by unknown player %q", apperror.ErrInvalidPlayer, act.Name, act.Owner)
		}

		if that.transfer(player, owner, rent) {
			that.publish(Event{Type: EventRentPaid, Player: player.Name, Counterparty: act.Owner, TileID: tile.ID, Amount: rent})
		}

		return nil
	}
}

// performChance - uniformly selects one of six effects.
func (that *Engine) performChance(player *entity.Player) error {
	switch that.pickChance() {
	case chanceEffectForward:
		// Forward 3, triggering the landing tile's action, but a chance
		// tile reached this way does not re-trigger.
		return that.moveStepsNoChance(player, chanceForwardSteps)

	case chanceEffectCredit:
		player.Receive(chanceCreditAmount)
		that.publish(Event{Type: EventMoneyTransferred, Player: player.Name, Amount: chanceCreditAmount})
		return nil

	case chanceEffectDebit:
		if that.payBank(player, chanceDebitAmount) {
			that.publish(Event{Type: EventMoneyTransferred, Player: player.Name, Amount: -chanceDebitAmount})
		}
		return nil

	case chanceEffectLandmark:
		return that.performLandmarkTeleport(player)

	case chanceEffectCollect:
		// Every other active player pays this one; a shortfall bankrupts
		// only that payer, the remaining transfers still execute.
		for _, other := range that.players {
			if other == player || !other.IsActive() {
				continue
			}

			if that.transfer(other, player, chanceTransferAmount) {
				that.publish(Event{Type: EventMoneyTransferred, Player: other.Name, Counterparty: player.Name, Amount: chanceTransferAmount})
			}
		}
		return nil

	case chanceEffectPayout:
		// This player pays every other active player in rotation order; a
		// shortfall bankrupts the payer and stops further payouts.
		for _, other := range that.players {
			if other == player || !other.IsActive() {
				continue
			}

			if !that.transfer(player, other, chanceTransferAmount) {
				return nil
			}

			that.publish(Event{Type: EventMoneyTransferred, Player: player.Name, Counterparty: other.Name, Amount: chanceTransferAmount})
		}
		return nil

	default:
		return nil
	}
}

// moveStepsNoChance - a fixed-step walk whose landing action resolves with
// chance suppressed.
func (that *Engine) moveStepsNoChance(player *entity.Player, steps int) error {
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

	that.publish(Event{Type: EventPlayerMoved, Player: player.Name, FromTileID: from, ToTileID: to})

	tile, err := that.board.GetTile(to)
	if err != nil {
		return err
	}

	if tile.Action == nil {
		return nil
	}

	return that.performAction(player, tile, tile.Action, false)
}

// performLandmarkTeleport - teleports to the nearest landmark for the
// current position bucket and performs that tile's action. No bucket match
// is a no-op.
func (that *Engine) performLandmarkTeleport(player *entity.Player) error {
	landmarkID := entity.LandmarkForPosition(player.CurrentTileID)
	if landmarkID == 0 {
		return nil
	}

	tile, err := that.board.GetTile(landmarkID)
	if err != nil {
		return fmt.Errorf("%w: landmark teleport to %d", apperror.ErrIllegalTileReference, landmarkID)
	}

	that.relocate(player, landmarkID)

	if tile.Action == nil {
		return nil
	}

	return that.performAction(player, tile, tile.Action, false)
}

func (that *Engine) playerByName(name string) *entity.Player {
	for _, player := range that.players {
		if player.Name == name {
			return player
		}
	}

	return nil
}
