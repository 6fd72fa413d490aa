package entity

const raceTileCount = 90

// The three race layouts differ in density and polarity of their ladders.
// Keys are tile ids; a tile appears in at most one entry per layout.
var (
	// raceClassicLayout - a balanced mix of climbs and slides.
	raceClassicLayout = map[int]Action{
		4:  &LadderAction{DestinationID: 14, Direction: DirectionUp},
		9:  &LadderAction{DestinationID: 31, Direction: DirectionUp},
		13: &WaitAction{},
		17: &LadderAction{DestinationID: 7, Direction: DirectionDown},
		21: &LadderAction{DestinationID: 42, Direction: DirectionUp},
		28: &LadderAction{DestinationID: 84, Direction: DirectionUp},
		39: &BackToStartAction{},
		45: &WaitAction{},
		51: &LadderAction{DestinationID: 67, Direction: DirectionUp},
		54: &LadderAction{DestinationID: 34, Direction: DirectionDown},
		62: &LadderAction{DestinationID: 19, Direction: DirectionDown},
		64: &LadderAction{DestinationID: 60, Direction: DirectionDown},
		72: &LadderAction{DestinationID: 88, Direction: DirectionUp},
		77: &WaitAction{},
		87: &LadderAction{DestinationID: 24, Direction: DirectionDown},
	}

	// raceLuckyLayout - dense and mostly upward.
	raceLuckyLayout = map[int]Action{
		3:  &LadderAction{DestinationID: 22, Direction: DirectionUp},
		8:  &LadderAction{DestinationID: 30, Direction: DirectionUp},
		11: &LadderAction{DestinationID: 26, Direction: DirectionUp},
		20: &LadderAction{DestinationID: 38, Direction: DirectionUp},
		27: &LadderAction{DestinationID: 56, Direction: DirectionUp},
		31: &LadderAction{DestinationID: 14, Direction: DirectionDown},
		36: &LadderAction{DestinationID: 55, Direction: DirectionUp},
		44: &LadderAction{DestinationID: 58, Direction: DirectionUp},
		47: &BackToStartAction{},
		49: &LadderAction{DestinationID: 70, Direction: DirectionUp},
		50: &WaitAction{},
		60: &LadderAction{DestinationID: 79, Direction: DirectionUp},
		66: &LadderAction{DestinationID: 89, Direction: DirectionUp},
		68: &LadderAction{DestinationID: 85, Direction: DirectionUp},
		75: &LadderAction{DestinationID: 86, Direction: DirectionUp},
		82: &LadderAction{DestinationID: 41, Direction: DirectionDown},
	}

	// raceBrutalLayout - dense and mostly downward.
	raceBrutalLayout = map[int]Action{
		7:  &LadderAction{DestinationID: 35, Direction: DirectionUp},
		16: &LadderAction{DestinationID: 6, Direction: DirectionDown},
		18: &WaitAction{},
		24: &LadderAction{DestinationID: 5, Direction: DirectionDown},
		33: &LadderAction{DestinationID: 12, Direction: DirectionDown},
		40: &LadderAction{DestinationID: 59, Direction: DirectionUp},
		47: &LadderAction{DestinationID: 26, Direction: DirectionDown},
		52: &LadderAction{DestinationID: 29, Direction: DirectionDown},
		55: &WaitAction{},
		61: &LadderAction{DestinationID: 43, Direction: DirectionDown},
		66: &BackToStartAction{},
		69: &LadderAction{DestinationID: 32, Direction: DirectionDown},
		73: &WaitAction{},
		78: &LadderAction{DestinationID: 53, Direction: DirectionDown},
		81: &BackToStartAction{},
		84: &LadderAction{DestinationID: 63, Direction: DirectionDown},
		89: &LadderAction{DestinationID: 48, Direction: DirectionDown},
	}
)

// newRaceBoard - builds the linear 90-tile chain: each tile links to id+1,
// the last one is left unlinked, then the layout's actions are attached.
func newRaceBoard(variant Variant, name string, layout map[int]Action) (*Board, error) {
	board := NewBoard(variant)
	board.Name = name
	board.Description = "Linear 90-tile ladder race"

	for id := 1; id <= raceTileCount; id++ {
		next := id + 1
		if id == raceTileCount {
			next = 0
		}

		if err := board.AddTile(&Tile{ID: id, NextID: next}); err != nil {
			return nil, err
		}
	}

	for id, action := range layout {
		tile, err := board.GetTile(id)
		if err != nil {
			return nil, err
		}

		tile.Action = action
	}

	return board, nil
}
