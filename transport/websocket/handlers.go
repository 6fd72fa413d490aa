package websocket

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/boardgame-backend/internal/entity"
	"github.com/rocketscienceinc/boardgame-backend/internal/game"
	"github.com/rocketscienceinc/boardgame-backend/internal/usecase"
)

const actionGameEvent = "game:event"

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Payload struct {
	Variant  string               `json:"variant,omitempty"`
	Players  []usecase.PlayerSpec `json:"players,omitempty"`
	Decision string               `json:"decision,omitempty"`
	Choice   *bool                `json:"choice,omitempty"`
	Slot     string               `json:"slot,omitempty"`
}

type ResponsePayload struct {
	State *usecase.State `json:"state,omitempty"`
	Slots []string       `json:"slots,omitempty"`
	Error string         `json:"error,omitempty"`
}

// dispatch - routes one raw client message to its handler.
func (that *Server) dispatch(ctx context.Context, client *Client, data []byte) {
	log := that.logger.With("method", "dispatch")

	var message Message
	if err := json.Unmarshal(data, &message); err != nil {
		log.Error("failed to unmarshal message", "error", err)
		return
	}

	handler, ok := that.handlers[message.Action]
	if !ok {
		log.Error("unknown action", "action", message.Action)
		that.sendError(client, message.Action, fmt.Sprintf("unknown action %q", message.Action))
		return
	}

	if err := handler(ctx, client, &message); err != nil {
		log.Error("error processing message", "action", message.Action, "error", err)
	}
}

func (that *Server) handleNewGame(_ context.Context, client *Client, msg *Message) error {
	var payload Payload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return that.sendError(client, msg.Action, fmt.Sprintf("invalid payload: %v", err))
	}

	variant := entity.Variant(payload.Variant)
	if !variant.IsValid() {
		return that.sendError(client, msg.Action, fmt.Sprintf("unknown variant %q", payload.Variant))
	}

	if err := that.gameManager.NewGame(variant, payload.Players); err != nil {
		return that.sendError(client, msg.Action, err.Error())
	}

	return that.sendState(client, msg.Action)
}

func (that *Server) handleRoll(_ context.Context, client *Client, msg *Message) error {
	if err := that.gameManager.RollDice(); err != nil {
		return that.sendError(client, msg.Action, err.Error())
	}

	return that.sendState(client, msg.Action)
}

func (that *Server) handleAdvance(_ context.Context, client *Client, msg *Message) error {
	if err := that.gameManager.AdvanceTurn(); err != nil {
		return that.sendError(client, msg.Action, err.Error())
	}

	return that.sendState(client, msg.Action)
}

// handleDecision - the decision-port surface: the client answers exactly one
// outstanding request.
func (that *Server) handleDecision(_ context.Context, client *Client, msg *Message) error {
	var payload Payload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return that.sendError(client, msg.Action, fmt.Sprintf("invalid payload: %v", err))
	}

	if payload.Choice == nil {
		return that.sendError(client, msg.Action, "choice is required")
	}

	var err error
	switch game.DecisionType(payload.Decision) {
	case game.DecisionBuyProperty:
		err = that.gameManager.ResolvePropertyPurchase(*payload.Choice)
	case game.DecisionTaxChoice:
		err = that.gameManager.ResolveTaxChoice(*payload.Choice)
	case game.DecisionJailChoice:
		err = that.gameManager.ResolveJailChoice(*payload.Choice)
	default:
		return that.sendError(client, msg.Action, fmt.Sprintf("unknown decision %q", payload.Decision))
	}

	if err != nil {
		return that.sendError(client, msg.Action, err.Error())
	}

	return that.sendState(client, msg.Action)
}

func (that *Server) handleSave(ctx context.Context, client *Client, msg *Message) error {
	var payload Payload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return that.sendError(client, msg.Action, fmt.Sprintf("invalid payload: %v", err))
	}

	if err := that.gameManager.Save(ctx, payload.Slot); err != nil {
		return that.sendError(client, msg.Action, err.Error())
	}

	return that.sendState(client, msg.Action)
}

func (that *Server) handleLoad(ctx context.Context, client *Client, msg *Message) error {
	var payload Payload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return that.sendError(client, msg.Action, fmt.Sprintf("invalid payload: %v", err))
	}

	if err := that.gameManager.Load(ctx, payload.Slot); err != nil {
		return that.sendError(client, msg.Action, err.Error())
	}

	return that.sendState(client, msg.Action)
}

func (that *Server) handleListSaves(ctx context.Context, client *Client, msg *Message) error {
	slots, err := that.gameManager.ListSaves(ctx)
	if err != nil {
		return that.sendError(client, msg.Action, err.Error())
	}

	return that.send(client, msg.Action, ResponsePayload{Slots: slots})
}

func (that *Server) handleState(_ context.Context, client *Client, msg *Message) error {
	return that.sendState(client, msg.Action)
}

func (that *Server) sendState(client *Client, action string) error {
	return that.send(client, action, ResponsePayload{State: that.gameManager.State()})
}

func (that *Server) sendError(client *Client, action, errorMsg string) error {
	return that.send(client, action, ResponsePayload{Error: errorMsg})
}

func (that *Server) send(client *Client, action string, payload ResponsePayload) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	data, err := json.Marshal(Message{Action: action, Payload: raw})
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	client.sendMessage(data)

	return nil
}

// broadcastEvent - fans an engine notification out to every client.
func (that *Server) broadcastEvent(event game.Event) {
	raw, err := json.Marshal(event)
	if err != nil {
		that.logger.Error("failed to marshal event", "error", err)
		return
	}

	data, err := json.Marshal(Message{Action: actionGameEvent, Payload: raw})
	if err != nil {
		that.logger.Error("failed to marshal event message", "error", err)
		return
	}

	that.hub.Broadcast(data)
}
