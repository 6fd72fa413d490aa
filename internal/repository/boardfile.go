package repository

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/boardgame-backend/internal/apperror"
	"github.com/rocketscienceinc/boardgame-backend/internal/entity"
)

// boardDocument is the external board file shape. The chain topology is not
// stored: it is rebuilt deterministically from the variant id by the same
// builder used for a fresh game, then actions are overlaid by tile id.
type boardDocument struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	VariantID   string         `json:"variantId"`
	Tiles       []tileDocument `json:"tiles"`
}

type tileDocument struct {
	ID         int    `json:"id"`
	ActionType string `json:"actionType"`

	DestinationID int    `json:"destinationId,omitempty"`
	Direction     string `json:"direction,omitempty"`

	PropertyName string `json:"propertyName,omitempty"`
	Cost         int    `json:"cost,omitempty"`
	ColorGroup   string `json:"colorGroup,omitempty"`

	Percent int `json:"percent,omitempty"`
	Fixed   int `json:"fixed,omitempty"`

	Amount int `json:"amount,omitempty"`

	JailTileID int `json:"jailTileId,omitempty"`
}

// EncodeBoard - serializes the board's layout and actions. Ownership is not
// part of the board file; it is re-resolved from the player roster on load.
func EncodeBoard(board *entity.Board) ([]byte, error) {
	document := boardDocument{
		Name:        board.Name,
		Description: board.Description,
		VariantID:   string(board.Variant),
	}

	for _, tile := range board.Tiles() {
		if tile.Action == nil {
			continue
		}

		document.Tiles = append(document.Tiles, tileToDocument(tile))
	}

	data, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal board: %w", err)
	}

	return data, nil
}

// DecodeBoard - rebuilds the variant's topology and overlays the stored
// actions. Malformed data surfaces as a BoardFileError; the caller's session
// is left in its prior state.
func DecodeBoard(data []byte, slot string) (*entity.Board, error) {
	var document boardDocument
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, &apperror.BoardFileError{Slot: slot, Err: fmt.Errorf("failed to unmarshal board: %w", err)}
	}

	variant := entity.Variant(document.VariantID)

	board, err := entity.BuildBoard(variant)
	if err != nil {
		return nil, &apperror.BoardFileError{Slot: slot, Variant: document.VariantID, Err: err}
	}

	if document.Name != "" {
		board.Name = document.Name
	}
	if document.Description != "" {
		board.Description = document.Description
	}

	for _, tileDoc := range document.Tiles {
		tile, err := board.GetTile(tileDoc.ID)
		if err != nil {
			return nil, &apperror.BoardFileError{Slot: slot, Variant: document.VariantID, Err: err}
		}

		action, err := documentToAction(&tileDoc)
		if err != nil {
			return nil, &apperror.BoardFileError{Slot: slot, Variant: document.VariantID, Err: err}
		}

		tile.Action = action
	}

	return board, nil
}

func tileToDocument(tile *entity.Tile) tileDocument {
	document := tileDocument{
		ID:         tile.ID,
		ActionType: string(tile.Action.Type()),
	}

	switch act := tile.Action.(type) {
	case *entity.LadderAction:
		document.DestinationID = act.DestinationID
		document.Direction = act.Direction
	case *entity.PropertyAction:
		document.PropertyName = act.Name
		document.Cost = act.Cost
		document.ColorGroup = act.ColorGroup
	case *entity.TaxAction:
		document.Percent = act.Percent
		document.Fixed = act.Fixed
	case *entity.WealthTaxAction:
		document.Amount = act.Amount
	case *entity.GoToJailAction:
		document.JailTileID = act.JailTileID
	}

	return document
}

func documentToAction(document *tileDocument) (entity.Action, error) {
	switch entity.ActionType(document.ActionType) {
	case entity.ActionLadder:
		return &entity.LadderAction{DestinationID: document.DestinationID, Direction: document.Direction}, nil
	case entity.ActionBackToStart:
		return &entity.BackToStartAction{}, nil
	case entity.ActionWait:
		return &entity.WaitAction{}, nil
	case entity.ActionProperty:
		return &entity.PropertyAction{Name: document.PropertyName, Cost: document.Cost, ColorGroup: document.ColorGroup}, nil
	case entity.ActionChance:
		return &entity.ChanceAction{}, nil
	case entity.ActionTax:
		return &entity.TaxAction{Percent: document.Percent, Fixed: document.Fixed}, nil
	case entity.ActionWealthTax:
		return &entity.WealthTaxAction{Amount: document.Amount}, nil
	case entity.ActionStart:
		return &entity.StartAction{}, nil
	case entity.ActionJail:
		return &entity.JailAction{}, nil
	case entity.ActionGoToJail:
		return &entity.GoToJailAction{JailTileID: document.JailTileID}, nil
	case entity.ActionFreeParking:
		return &entity.FreeParkingAction{}, nil
	default:
		return nil, fmt.Errorf("unknown action type %q on tile %d", document.ActionType, document.ID)
	}
}
