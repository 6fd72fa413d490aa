package entity

// Tile is a node in the board graph: a stable id, a single outgoing link and
// an optional action. NextID of 0 marks the terminal tile of a race chain.
type Tile struct {
	ID     int    `json:"id"`
	NextID int    `json:"next_id,omitempty"`
	Action Action `json:"-"`
}

func (that *Tile) HasNext() bool {
	return that.NextID != 0
}

// Property - returns the tile's property action, or nil if the tile is not a
// property.
func (that *Tile) Property() *PropertyAction {
	property, ok := that.Action.(*PropertyAction)
	if !ok {
		return nil
	}

	return property
}
