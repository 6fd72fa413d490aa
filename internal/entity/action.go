package entity

// ActionType discriminates the closed set of tile effects.
type ActionType string

const (
	ActionLadder      ActionType = "ladder"
	ActionBackToStart ActionType = "back_to_start"
	ActionWait        ActionType = "wait"
	ActionProperty    ActionType = "property"
	ActionChance      ActionType = "chance"
	ActionTax         ActionType = "tax"
	ActionWealthTax   ActionType = "wealth_tax"
	ActionStart       ActionType = "start"
	ActionJail        ActionType = "jail"
	ActionGoToJail    ActionType = "go_to_jail"
	ActionFreeParking ActionType = "free_parking"
)

const (
	DirectionUp   = "up"
	DirectionDown = "down"
)

// Action is the tagged union of per-tile effects. All variants are immutable
// configuration fixed at board-build time; PropertyAction.Owner is the only
// mutable field.
type Action interface {
	Type() ActionType
}

// LadderAction relocates the occupant to DestinationID unconditionally.
type LadderAction struct {
	DestinationID int
	Direction     string
}

func (that *LadderAction) Type() ActionType { return ActionLadder }

// BackToStartAction relocates the occupant to the board's first tile.
type BackToStartAction struct{}

func (that *BackToStartAction) Type() ActionType { return ActionBackToStart }

// WaitAction makes the occupant skip their next turn.
type WaitAction struct{}

func (that *WaitAction) Type() ActionType { return ActionWait }

// PropertyAction is a purchasable tile. Owner holds the owning player's name,
// empty while unowned.
type PropertyAction struct {
	Name       string
	Cost       int
	ColorGroup string
	Owner      string
}

func (that *PropertyAction) Type() ActionType { return ActionProperty }

func (that *PropertyAction) IsOwned() bool { return that.Owner != "" }

// ChanceAction triggers one of six random effects.
type ChanceAction struct{}

func (that *ChanceAction) Type() ActionType { return ActionChance }

// TaxAction charges either Percent of the occupant's money or the Fixed
// amount, at the occupant's choice.
type TaxAction struct {
	Percent int
	Fixed   int
}

func (that *TaxAction) Type() ActionType { return ActionTax }

// WealthTaxAction charges Amount unconditionally.
type WealthTaxAction struct {
	Amount int
}

func (that *WealthTaxAction) Type() ActionType { return ActionWealthTax }

// StartAction marks the ring's start tile. The pass-go credit comes from the
// move that lands on or passes it, not from the tile itself.
type StartAction struct{}

func (that *StartAction) Type() ActionType { return ActionStart }

// JailAction holds jailed occupants; landing on it while free is a no-op.
type JailAction struct{}

func (that *JailAction) Type() ActionType { return ActionJail }

// GoToJailAction sends the occupant to the designated jail tile.
type GoToJailAction struct {
	JailTileID int
}

func (that *GoToJailAction) Type() ActionType { return ActionGoToJail }

// FreeParkingAction grants a one-shot rent immunity.
type FreeParkingAction struct{}

func (that *FreeParkingAction) Type() ActionType { return ActionFreeParking }
