package entity

import (
	"fmt"
	"sort"

	"github.com/rocketscienceinc/boardgame-backend/internal/apperror"
)

// Board is an id-keyed registry of tiles. It is built exactly once per game
// session by a variant builder and never mutated afterwards, except through
// the tiles it owns.
type Board struct {
	Name        string
	Description string
	Variant     Variant

	tiles       map[int]*Tile
	firstTileID int
	lastTileID  int
}

func NewBoard(variant Variant) *Board {
	return &Board{
		Variant: variant,
		tiles:   make(map[int]*Tile),
	}
}

// AddTile - registers a tile. Ids must be unique within the board.
func (that *Board) AddTile(tile *Tile) error {
	if tile == nil {
		return fmt.Errorf("nil tile")
	}

	if _, ok := that.tiles[tile.ID]; ok {
		return fmt.Errorf("duplicate tile id %d", tile.ID)
	}

	that.tiles[tile.ID] = tile

	if that.firstTileID == 0 || tile.ID < that.firstTileID {
		that.firstTileID = tile.ID
	}
	if tile.ID > that.lastTileID {
		that.lastTileID = tile.ID
	}

	return nil
}

// GetTile - looks a tile up by id. An unknown id is a lookup failure,
// distinct from a tile without an action.
func (that *Board) GetTile(id int) (*Tile, error) {
	tile, ok := that.tiles[id]
	if !ok {
		return nil, fmt.Errorf("%w: tile %d", apperror.ErrTileNotFound, id)
	}

	return tile, nil
}

func (that *Board) FirstTileID() int { return that.firstTileID }

func (that *Board) LastTileID() int { return that.lastTileID }

func (that *Board) TileCount() int { return len(that.tiles) }

// Tiles - returns all tiles ordered by id, for deterministic serialization.
func (that *Board) Tiles() []*Tile {
	tiles := make([]*Tile, 0, len(that.tiles))
	for _, tile := range that.tiles {
		tiles = append(tiles, tile)
	}

	sort.Slice(tiles, func(i, j int) bool { return tiles[i].ID < tiles[j].ID })

	return tiles
}

// ColorGroupOwned - reports whether owner holds every property in the group.
func (that *Board) ColorGroupOwned(group, owner string) bool {
	found := false

	for _, tile := range that.tiles {
		property := tile.Property()
		if property == nil || property.ColorGroup != group {
			continue
		}

		found = true
		if property.Owner != owner {
			return false
		}
	}

	return found
}

// ReleaseProperties - clears ownership of every property held by owner and
// returns the released tile ids. Used by the bankruptcy sequence.
func (that *Board) ReleaseProperties(owner string) []int {
	var released []int

	for _, tile := range that.tiles {
		property := tile.Property()
		if property == nil || property.Owner != owner {
			continue
		}

		property.Owner = ""
		released = append(released, tile.ID)
	}

	sort.Ints(released)

	return released
}
