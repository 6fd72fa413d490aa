package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/boardgame-backend/internal/apperror"
)

// SQLiteSaveStore keeps each slot as a row holding both documents.
type SQLiteSaveStore struct {
	conn *sql.DB
}

func NewSQLiteSaveStore(conn *sql.DB) *SQLiteSaveStore {
	return &SQLiteSaveStore{conn: conn}
}

func (that *SQLiteSaveStore) Put(ctx context.Context, slot string, save *SavedGame) error {
	if err := validateSlot(slot); err != nil {
		return err
	}

	query := `INSERT INTO saves (slot, board, players, updated_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(slot) DO UPDATE SET board = excluded.board, players = excluded.players, updated_at = excluded.updated_at`

	if _, err := that.conn.ExecContext(ctx, query, slot, save.Board, save.Players); err != nil {
		return fmt.Errorf("can't save slot %q: %w", slot, err)
	}

	return nil
}

func (that *SQLiteSaveStore) Get(ctx context.Context, slot string) (*SavedGame, error) {
	if err := validateSlot(slot); err != nil {
		return nil, err
	}

	query := `SELECT board, players FROM saves WHERE slot = ?`

	save := &SavedGame{}

	err := that.conn.QueryRowContext(ctx, query, slot).Scan(&save.Board, &save.Players)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: save %q", apperror.ErrNotFound, slot)
	}
	if err != nil {
		return nil, fmt.Errorf("can't load slot %q: %w", slot, err)
	}

	return save, nil
}

func (that *SQLiteSaveStore) List(ctx context.Context) ([]string, error) {
	query := `SELECT slot FROM saves ORDER BY slot`

	rows, err := that.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("can't list slots: %w", err)
	}
	defer rows.Close()

	var slots []string
	for rows.Next() {
		var slot string
		if err = rows.Scan(&slot); err != nil {
			return nil, fmt.Errorf("can't scan slot: %w", err)
		}

		slots = append(slots, slot)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't list slots: %w", err)
	}

	return slots, nil
}

func (that *SQLiteSaveStore) Delete(ctx context.Context, slot string) error {
	if err := validateSlot(slot); err != nil {
		return err
	}

	query := `DELETE FROM saves WHERE slot = ?`

	if _, err := that.conn.ExecContext(ctx, query, slot); err != nil {
		return fmt.Errorf("can't delete slot %q: %w", slot, err)
	}

	return nil
}
