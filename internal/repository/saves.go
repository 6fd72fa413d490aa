package repository

import "context"

// SavedGame carries the two encoded companion documents of a save slot. The
// documents are byte-identical regardless of which store holds them.
type SavedGame struct {
	Board   []byte
	Players []byte
}

// SaveStore abstracts where save slots live.
type SaveStore interface {
	Put(ctx context.Context, slot string, save *SavedGame) error
	Get(ctx context.Context, slot string) (*SavedGame, error)
	List(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, slot string) error
}
