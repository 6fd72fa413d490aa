package repository

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/boardgame-backend/internal/apperror"
	"github.com/rocketscienceinc/boardgame-backend/internal/entity"
)

// The player roster is a delimited text file: an optional CURRENT_PLAYER
// header, then one line per player:
//
//	name,token,currentTileId,money,propId1;propId2[,flags]
//
// Properties are referenced by tile id, resolved against the rebuilt board.
// The trailing flags field (bankrupt, jailed:<n>, skip, parking) appears only
// when at least one flag is set.
const currentPlayerPrefix = "CURRENT_PLAYER:"

const (
	flagBankrupt = "bankrupt"
	flagJailed   = "jailed"
	flagSkip     = "skip"
	flagParking  = "parking"
)

// EncodePlayers - serializes the roster. current may be nil.
func EncodePlayers(players []*entity.Player, current *entity.Player) ([]byte, error) {
	var buf bytes.Buffer

	if current != nil {
		fmt.Fprintf(&buf, "%s%s\n", currentPlayerPrefix, current.Name)
	}

	for _, player := range players {
		if strings.ContainsAny(player.Name, ",;:") || strings.ContainsAny(player.Token, ",;:") {
			return nil, fmt.Errorf("player %q: names and tokens must not contain delimiters", player.Name)
		}

		properties := make([]string, 0, len(player.OwnedPropertyIDs))
		for _, id := range player.OwnedPropertyIDs {
			properties = append(properties, strconv.Itoa(id))
		}

		fields := []string{
			player.Name,
			player.Token,
			strconv.Itoa(player.CurrentTileID),
			strconv.Itoa(player.Money),
			strings.Join(properties, ";"),
		}

		if flags := encodeFlags(player); flags != "" {
			fields = append(fields, flags)
		}

		fmt.Fprintln(&buf, strings.Join(fields, ","))
	}

	return buf.Bytes(), nil
}

// DecodePlayers - parses the roster and re-resolves property ownership
// against the board. Returns the players and the recorded current player's
// name, empty when the header is absent.
func DecodePlayers(data []byte, board *entity.Board, slot string) ([]*entity.Player, string, error) {
	var players []*entity.Player
	currentName := ""

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if lineNo == 1 && strings.HasPrefix(line, currentPlayerPrefix) {
			currentName = strings.TrimSpace(strings.TrimPrefix(line, currentPlayerPrefix))
			continue
		}

		player, err := decodePlayerLine(line, board)
		if err != nil {
			return nil, "", &apperror.PlayerFileError{Slot: slot, Err: fmt.Errorf("line %d: %w", lineNo, err)}
		}

		players = append(players, player)
	}

	if err := scanner.Err(); err != nil {
		return nil, "", &apperror.PlayerFileError{Slot: slot, Err: err}
	}

	if currentName != "" && findPlayer(players, currentName) == nil {
		return nil, "", &apperror.PlayerFileError{Slot: slot, Err: fmt.Errorf("current player %q is not in the roster", currentName)}
	}

	return players, currentName, nil
}

func decodePlayerLine(line string, board *entity.Board) (*entity.Player, error) {
	fields := strings.Split(line, ",")
	if len(fields) < 5 || len(fields) > 6 {
		return nil, fmt.Errorf("expected 5 or 6 fields, got %d", len(fields))
	}

	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	if fields[0] == "" {
		return nil, fmt.Errorf("empty player name")
	}

	tileID, err := strconv.Atoi(fields[2])
	if err != nil {
		return nil, fmt.Errorf("invalid tile id %q: %w", fields[2], err)
	}

	if _, err = board.GetTile(tileID); err != nil {
		return nil, err
	}

	money, err := strconv.Atoi(fields[3])
	if err != nil {
		return nil, fmt.Errorf("invalid money %q: %w", fields[3], err)
	}

	player := entity.NewPlayer(fields[0], fields[1], money)
	player.CurrentTileID = tileID

	if err = resolveProperties(player, fields[4], board); err != nil {
		return nil, err
	}

	if len(fields) == 6 {
		if err = decodeFlags(player, fields[5]); err != nil {
			return nil, err
		}
	}

	return player, nil
}

// resolveProperties - re-establishes ownership on the board's property
// tiles. Referencing a tile that is not a property is a roster error.
func resolveProperties(player *entity.Player, field string, board *entity.Board) error {
	if field == "" {
		return nil
	}

	for _, raw := range strings.Split(field, ";") {
		id, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("invalid property id %q: %w", raw, err)
		}

		tile, err := board.GetTile(id)
		if err != nil {
			return err
		}

		property := tile.Property()
		if property == nil {
			return fmt.Errorf("tile %d is not a property", id)
		}

		if property.IsOwned() && property.Owner != player.Name {
			return fmt.Errorf("property %d claimed by both %q and %q", id, property.Owner, player.Name)
		}

		property.Owner = player.Name
		player.AddProperty(id)
	}

	return nil
}

func encodeFlags(player *entity.Player) string {
	var flags []string

	if player.Bankrupt {
		flags = append(flags, flagBankrupt)
	}
	if player.Jailed {
		flags = append(flags, fmt.Sprintf("%s:%d", flagJailed, player.JailTurnCount))
	}
	if player.SkipNextTurn {
		flags = append(flags, flagSkip)
	}
	if player.FreeParking {
		flags = append(flags, flagParking)
	}

	return strings.Join(flags, ";")
}

func decodeFlags(player *entity.Player, field string) error {
	if field == "" {
		return nil
	}

	for _, flag := range strings.Split(field, ";") {
		name, value, _ := strings.Cut(flag, ":")

		switch name {
		case flagBankrupt:
			player.Bankrupt = true
		case flagJailed:
			player.Jailed = true
			count, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("invalid jail turn count %q: %w", value, err)
			}
			player.JailTurnCount = count
		case flagSkip:
			player.SkipNextTurn = true
		case flagParking:
			player.FreeParking = true
		default:
			return fmt.Errorf("unknown player flag %q", flag)
		}
	}

	return nil
}

func findPlayer(players []*entity.Player, name string) *entity.Player {
	for _, player := range players {
		if player.Name == name {
			return player
		}
	}

	return nil
}
