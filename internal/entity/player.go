package entity

import "slices"

// Player holds per-participant mutable state. A non-bankrupt player always
// has a tile once the game is initialized; money never goes negative — a
// deduction that would do so fails and the caller routes it into bankruptcy.
type Player struct {
	Name             string `json:"name"`
	Token            string `json:"token"`
	Money            int    `json:"money"`
	CurrentTileID    int    `json:"current_tile_id,omitempty"`
	OwnedPropertyIDs []int  `json:"owned_property_ids,omitempty"`
	SkipNextTurn     bool   `json:"skip_next_turn,omitempty"`
	Bankrupt         bool   `json:"bankrupt,omitempty"`
	Jailed           bool   `json:"jailed,omitempty"`
	JailTurnCount    int    `json:"jail_turn_count,omitempty"`
	FreeParking      bool   `json:"free_parking,omitempty"`
}

func NewPlayer(name, token string, money int) *Player {
	return &Player{
		Name:  name,
		Token: token,
		Money: money,
	}
}

// Pay - deducts amount, all-or-nothing. Returns false and leaves the balance
// untouched when funds are insufficient.
func (that *Player) Pay(amount int) bool {
	if amount > that.Money {
		return false
	}

	that.Money -= amount

	return true
}

func (that *Player) Receive(amount int) {
	that.Money += amount
}

func (that *Player) OwnsProperty(tileID int) bool {
	return slices.Contains(that.OwnedPropertyIDs, tileID)
}

func (that *Player) AddProperty(tileID int) {
	if that.OwnsProperty(tileID) {
		return
	}

	that.OwnedPropertyIDs = append(that.OwnedPropertyIDs, tileID)
}

// ClearProperties - drops all ownership records and returns them.
func (that *Player) ClearProperties() []int {
	cleared := that.OwnedPropertyIDs
	that.OwnedPropertyIDs = nil

	return cleared
}

func (that *Player) IsActive() bool {
	return !that.Bankrupt
}
