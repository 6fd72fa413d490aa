package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rocketscienceinc/boardgame-backend/internal/apperror"
)

const (
	boardFileSuffix  = ".board.json"
	playerFileSuffix = ".players.txt"
)

// FileSaveStore keeps each slot as a pair of files in a saves directory.
type FileSaveStore struct {
	dir string
}

func NewFileSaveStore(dir string) (*FileSaveStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create saves directory: %w", err)
	}

	return &FileSaveStore{dir: dir}, nil
}

func (that *FileSaveStore) Put(_ context.Context, slot string, save *SavedGame) error {
	if err := validateSlot(slot); err != nil {
		return err
	}

	if err := os.WriteFile(that.boardPath(slot), save.Board, 0o644); err != nil {
		return fmt.Errorf("failed to write board file: %w", err)
	}

	if err := os.WriteFile(that.playerPath(slot), save.Players, 0o644); err != nil {
		return fmt.Errorf("failed to write player file: %w", err)
	}

	return nil
}

func (that *FileSaveStore) Get(_ context.Context, slot string) (*SavedGame, error) {
	if err := validateSlot(slot); err != nil {
		return nil, err
	}

	board, err := os.ReadFile(that.boardPath(slot))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: save %q", apperror.ErrNotFound, slot)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read board file: %w", err)
	}

	players, err := os.ReadFile(that.playerPath(slot))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &apperror.PlayerFileError{Slot: slot, Err: fmt.Errorf("player file missing for existing board file")}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read player file: %w", err)
	}

	return &SavedGame{Board: board, Players: players}, nil
}

func (that *FileSaveStore) List(_ context.Context) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(that.dir, "*"+boardFileSuffix))
	if err != nil {
		return nil, fmt.Errorf("failed to list saves: %w", err)
	}

	slots := make([]string, 0, len(matches))
	for _, match := range matches {
		slots = append(slots, strings.TrimSuffix(filepath.Base(match), boardFileSuffix))
	}

	sort.Strings(slots)

	return slots, nil
}

func (that *FileSaveStore) Delete(_ context.Context, slot string) error {
	if err := validateSlot(slot); err != nil {
		return err
	}

	if err := os.Remove(that.boardPath(slot)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete board file: %w", err)
	}

	if err := os.Remove(that.playerPath(slot)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete player file: %w", err)
	}

	return nil
}

func (that *FileSaveStore) boardPath(slot string) string {
	return filepath.Join(that.dir, slot+boardFileSuffix)
}

func (that *FileSaveStore) playerPath(slot string) string {
	return filepath.Join(that.dir, slot+playerFileSuffix)
}

func validateSlot(slot string) error {
	if slot == "" || strings.ContainsAny(slot, "/\\") || slot != filepath.Base(slot) {
		return fmt.Errorf("invalid save slot name %q", slot)
	}

	return nil
}
