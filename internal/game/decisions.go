package game

import (
	"fmt"

	"github.com/rocketscienceinc/boardgame-backend/internal/apperror"
	"github.com/rocketscienceinc/boardgame-backend/internal/entity"
)

// DecisionType identifies an outstanding request on the decision port.
type DecisionType string

const (
	DecisionBuyProperty DecisionType = "buy_property"
	DecisionTaxChoice   DecisionType = "tax_choice"
	DecisionJailChoice  DecisionType = "jail_choice"
)

// pendingDecision parks the rest of a suspended turn. The engine never
// blocks waiting for input: an action publishes a decision-requested event,
// records the continuation here, and the turn resumes when the presentation
// layer calls the matching Resolve method exactly once.
type pendingDecision struct {
	kind    DecisionType
	player  *entity.Player
	resolve func(choice bool) error
}

// PendingDecision - the outstanding request, if any.
func (that *Engine) PendingDecision() (DecisionType, *entity.Player, bool) {
	if that.pending == nil {
		return "", nil, false
	}

	return that.pending.kind, that.pending.player, true
}

func (that *Engine) requestDecision(kind DecisionType, player *entity.Player, tileID int, resolve func(choice bool) error) {
	that.pending = &pendingDecision{
		kind:    kind,
		player:  player,
		resolve: resolve,
	}

	that.publish(Event{Type: EventDecisionRequested, Player: player.Name, TileID: tileID, Decision: kind})
}

// ResolvePropertyPurchase - answers a pending buy/decline request.
func (that *Engine) ResolvePropertyPurchase(accept bool) error {
	return that.resolveDecision(DecisionBuyProperty, accept)
}

// ResolveTaxChoice - answers a pending tax request: percent-of-money when
// usePercent is true, the fixed amount otherwise.
func (that *Engine) ResolveTaxChoice(usePercent bool) error {
	return that.resolveDecision(DecisionTaxChoice, usePercent)
}

// ResolveJailChoice - answers a pending jail request: pay bail when payBail
// is true, attempt to roll doubles otherwise.
func (that *Engine) ResolveJailChoice(payBail bool) error {
	return that.resolveDecision(DecisionJailChoice, payBail)
}

func (that *Engine) resolveDecision(kind DecisionType, choice bool) error {
	if that.pending == nil {
		return apperror.ErrNoPendingDecision
	}

	if that.pending.kind != kind {
		return fmt.Errorf("%w: %s is pending", apperror.ErrWrongDecisionType, that.pending.kind)
	}

	pending := that.pending
	that.pending = nil

	if err := pending.resolve(choice); err != nil {
		return err
	}

	// The continuation may have parked a nested decision (a jail roll that
	// lands on an unowned property, say); only a fully resolved turn ends.
	that.maybeFinishTurn()

	return nil
}

func (that *Engine) requestBuyDecision(player *entity.Player, tile *entity.Tile, act *entity.PropertyAction) {
	that.requestDecision(DecisionBuyProperty, player, tile.ID, func(accept bool) error {
		if !accept {
			that.publish(Event{Type: EventPurchaseDeclined, Player: player.Name, TileID: tile.ID})
			return nil
		}

		if !player.Pay(act.Cost) {
			that.declareBankruptcy(player)
			return nil
		}

		act.Owner = player.Name
		player.AddProperty(tile.ID)
		that.publish(Event{Type: EventPropertyPurchased, Player: player.Name, TileID: tile.ID, Amount: act.Cost})

		return nil
	})
}

func (that *Engine) requestTaxDecision(player *entity.Player, act *entity.TaxAction) {
	that.requestDecision(DecisionTaxChoice, player, player.CurrentTileID, func(usePercent bool) error {
		amount := act.Fixed
		if usePercent {
			amount = player.Money * act.Percent / 100
		}

		if that.payBank(player, amount) {
			that.publish(Event{Type: EventTaxPaid, Player: player.Name, Amount: amount})
		}

		return nil
	})
}

// serveJailTurn - a jailed player's turn. The count goes up first; at the
// release threshold the player walks free without any decision, otherwise
// they choose between bail and a doubles attempt.
func (that *Engine) serveJailTurn(player *entity.Player) error {
	player.JailTurnCount++

	if player.JailTurnCount >= jailReleaseTurnCount {
		that.releaseFromJail(player)
		return that.moveByRoll(player)
	}

	that.requestDecision(DecisionJailChoice, player, player.CurrentTileID, func(payBail bool) error {
		if payBail {
			if !that.payBank(player, BailAmount) {
				return nil
			}

			that.releaseFromJail(player)

			return that.moveByRoll(player)
		}

		values := that.dice.Roll()
		if !entity.IsDoubles(values) {
			that.publish(Event{Type: EventJailStay, Player: player.Name, Dice: values})
			return nil
		}

		that.releaseFromJail(player)

		return that.moveSteps(player, entity.Sum(values), values)
	})

	return nil
}

func (that *Engine) releaseFromJail(player *entity.Player) {
	player.Jailed = false
	player.JailTurnCount = 0

	that.publish(Event{Type: EventJailReleased, Player: player.Name})
}
