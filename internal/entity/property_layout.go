package entity

const propertyTileCount = 40

// Fixed positions of the special tiles on the 40-tile ring.
const (
	PropertyStartTileID       = 1
	PropertyTaxTileID         = 5
	PropertyChanceTileID      = 8
	PropertyJailTileID        = 11
	PropertyFreeParkingTileID = 21
	PropertyGoToJailTileID    = 31
	PropertyWealthTaxTileID   = 39
)

const (
	defaultTaxPercent      = 10
	defaultTaxFixed        = 100
	defaultWealthTaxAmount = 75
)

// ColorGroupLandmark is the 4-member group of high-traffic landmark tiles the
// chance teleport targets.
const ColorGroupLandmark = "landmark"

// landmarkTileIDs, in ring order. LandmarkForPosition picks the nearest one
// by position bucket.
var landmarkTileIDs = [4]int{6, 16, 26, 36}

// LandmarkForPosition - maps a current position to its bucket's landmark
// tile, or 0 when the position is off the ring.
func LandmarkForPosition(position int) int {
	switch {
	case position >= 1 && position <= 10:
		return landmarkTileIDs[0]
	case position >= 11 && position <= 20:
		return landmarkTileIDs[1]
	case position >= 21 && position <= 30:
		return landmarkTileIDs[2]
	case position >= 31 && position <= 40:
		return landmarkTileIDs[3]
	default:
		return 0
	}
}

type propertyEntry struct {
	id    int
	name  string
	cost  int
	group string
}

// The fixed property catalog: nine color groups of sizes 2-4 plus the
// landmark group.
var propertyCatalog = []propertyEntry{
	{2, "Old Mill Lane", 60, "brown"},
	{3, "Tannery Row", 60, "brown"},

	{4, "Harbour Walk", 100, "light_blue"},
	{7, "Pier Street", 100, "light_blue"},
	{9, "Gull Avenue", 120, "light_blue"},

	{10, "Orchard Road", 140, "pink"},
	{12, "Cider Square", 140, "pink"},
	{13, "Blossom Court", 160, "pink"},

	{14, "Foundry Street", 180, "orange"},
	{15, "Anvil Yard", 180, "orange"},
	{17, "Forge Crescent", 200, "orange"},

	{18, "Market Parade", 220, "red"},
	{19, "Butcher's Walk", 220, "red"},
	{20, "Cloth Hall Row", 240, "red"},

	{22, "Garrison Road", 260, "yellow"},
	{23, "Bastion Place", 260, "yellow"},
	{24, "Rampart Street", 280, "yellow"},

	{25, "University Green", 300, "green"},
	{27, "Scholar's Gate", 300, "green"},
	{28, "Library Walk", 300, "green"},
	{29, "Observatory Hill", 320, "green"},

	{30, "Cathedral Close", 340, "blue"},
	{32, "Bishop's Row", 340, "blue"},
	{33, "Choir Lane", 360, "blue"},
	{34, "Bell Tower Square", 380, "blue"},

	{35, "Palace Avenue", 400, "purple"},
	{37, "Crown Esplanade", 400, "purple"},
	{38, "Regent's Terrace", 420, "purple"},
	{40, "King's Plaza", 450, "purple"},

	{6, "North Station", 200, ColorGroupLandmark},
	{16, "East Station", 200, ColorGroupLandmark},
	{26, "South Station", 200, ColorGroupLandmark},
	{36, "West Station", 200, ColorGroupLandmark},
}

// newPropertyBoard - builds the wrapping 40-tile ring and attaches one of
// each special tile plus the property catalog.
func newPropertyBoard(variant Variant) (*Board, error) {
	board := NewBoard(variant)
	board.Name = "Property Classic"
	board.Description = "Wrapping 40-tile property ring"

	for id := 1; id <= propertyTileCount; id++ {
		next := id + 1
		if id == propertyTileCount {
			next = 1
		}

		if err := board.AddTile(&Tile{ID: id, NextID: next}); err != nil {
			return nil, err
		}
	}

	specials := map[int]Action{
		PropertyStartTileID:       &StartAction{},
		PropertyTaxTileID:         &TaxAction{Percent: defaultTaxPercent, Fixed: defaultTaxFixed},
		PropertyChanceTileID:      &ChanceAction{},
		PropertyJailTileID:        &JailAction{},
		PropertyFreeParkingTileID: &FreeParkingAction{},
		PropertyGoToJailTileID:    &GoToJailAction{JailTileID: PropertyJailTileID},
		PropertyWealthTaxTileID:   &WealthTaxAction{Amount: defaultWealthTaxAmount},
	}

	for id, action := range specials {
		tile, err := board.GetTile(id)
		if err != nil {
			return nil, err
		}

		tile.Action = action
	}

	for _, entry := range propertyCatalog {
		tile, err := board.GetTile(entry.id)
		if err != nil {
			return nil, err
		}

		tile.Action = &PropertyAction{
			Name:       entry.name,
			Cost:       entry.cost,
			ColorGroup: entry.group,
		}
	}

	return board, nil
}
