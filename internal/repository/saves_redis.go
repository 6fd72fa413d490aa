package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/boardgame-backend/internal/apperror"
)

const redisSlotSetKey = "saves"

// RedisSaveStore keeps each slot under a pair of keys plus a membership set
// for listing.
type RedisSaveStore struct {
	client *redis.Client
}

func NewRedisSaveStore(client *redis.Client) *RedisSaveStore {
	return &RedisSaveStore{client: client}
}

func (that *RedisSaveStore) Put(ctx context.Context, slot string, save *SavedGame) error {
	if err := validateSlot(slot); err != nil {
		return err
	}

	if err := that.client.Set(ctx, boardKey(slot), save.Board, 0).Err(); err != nil {
		return fmt.Errorf("failed to set board document: %w", err)
	}

	if err := that.client.Set(ctx, playerKey(slot), save.Players, 0).Err(); err != nil {
		return fmt.Errorf("failed to set player document: %w", err)
	}

	if err := that.client.SAdd(ctx, redisSlotSetKey, slot).Err(); err != nil {
		return fmt.Errorf("failed to register save slot: %w", err)
	}

	return nil
}

func (that *RedisSaveStore) Get(ctx context.Context, slot string) (*SavedGame, error) {
	if err := validateSlot(slot); err != nil {
		return nil, err
	}

	board, err := that.client.Get(ctx, boardKey(slot)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: save %q", apperror.ErrNotFound, slot)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get board document: %w", err)
	}

	players, err := that.client.Get(ctx, playerKey(slot)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, &apperror.PlayerFileError{Slot: slot, Err: fmt.Errorf("player document missing for existing board document")}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player document: %w", err)
	}

	return &SavedGame{Board: board, Players: players}, nil
}

func (that *RedisSaveStore) List(ctx context.Context) ([]string, error) {
	slots, err := that.client.SMembers(ctx, redisSlotSetKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list save slots: %w", err)
	}

	sort.Strings(slots)

	return slots, nil
}

func (that *RedisSaveStore) Delete(ctx context.Context, slot string) error {
	if err := validateSlot(slot); err != nil {
		return err
	}

	if err := that.client.Del(ctx, boardKey(slot), playerKey(slot)).Err(); err != nil {
		return fmt.Errorf("failed to delete save documents: %w", err)
	}

	if err := that.client.SRem(ctx, redisSlotSetKey, slot).Err(); err != nil {
		return fmt.Errorf("failed to unregister save slot: %w", err)
	}

	return nil
}

func boardKey(slot string) string { return "save:" + slot + ":board" }

func playerKey(slot string) string { return "save:" + slot + ":players" }
