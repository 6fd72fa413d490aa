package game

// EventType tags the notifications fanned out to observers.
type EventType string

const (
	EventCurrentPlayerChanged EventType = "current_player_changed"
	EventPlayerMoved          EventType = "player_moved"
	EventTurnSkipped          EventType = "turn_skipped"
	EventWaitImposed          EventType = "wait_imposed"
	EventPassGo               EventType = "pass_go"
	EventPropertyPurchased    EventType = "property_purchased"
	EventPurchaseDeclined     EventType = "purchase_declined"
	EventRentPaid             EventType = "rent_paid"
	EventRentWaived           EventType = "rent_waived"
	EventTaxPaid              EventType = "tax_paid"
	EventMoneyTransferred     EventType = "money_transferred"
	EventFreeParkingGranted   EventType = "free_parking_granted"
	EventPlayerJailed         EventType = "player_jailed"
	EventJailReleased         EventType = "jail_released"
	EventJailStay             EventType = "jail_stay"
	EventPlayerBankrupt       EventType = "player_bankrupt"
	EventDecisionRequested    EventType = "decision_requested"
	EventGameWon              EventType = "game_won"
)

// Event is a single engine notification. Fields besides Type are filled
// depending on the event.
type Event struct {
	Type         EventType    `json:"type"`
	Player       string       `json:"player,omitempty"`
	Counterparty string       `json:"counterparty,omitempty"`
	FromTileID   int          `json:"from_tile_id,omitempty"`
	ToTileID     int          `json:"to_tile_id,omitempty"`
	TileID       int          `json:"tile_id,omitempty"`
	Dice         []int        `json:"dice,omitempty"`
	Amount       int          `json:"amount,omitempty"`
	Decision     DecisionType `json:"decision,omitempty"`
	Winner       string       `json:"winner,omitempty"`
}

// Observer receives engine events. Handlers must not drive the engine from
// inside Notify; follow-up calls belong after dispatch returns.
type Observer interface {
	Notify(event Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(event Event)

func (that ObserverFunc) Notify(event Event) { that(event) }

type subscription struct {
	id       int
	observer Observer
}

// Subscribe - registers an observer and returns its subscription id.
func (that *Engine) Subscribe(observer Observer) int {
	that.nextSubID++
	that.observers = append(that.observers, subscription{id: that.nextSubID, observer: observer})

	return that.nextSubID
}

// Unsubscribe - drops a subscription. Safe to call from within a handler;
// the current dispatch keeps its snapshot.
func (that *Engine) Unsubscribe(id int) {
	for i, sub := range that.observers {
		if sub.id == id {
			that.observers = append(that.observers[:i], that.observers[i+1:]...)
			return
		}
	}
}

// publish - queues an event and drains the queue unless a dispatch is
// already running. Action resolution may recurse, so events raised during a
// dispatch are delivered in order after the current one completes, against a
// snapshot of the observer list.
func (that *Engine) publish(event Event) {
	that.eventQueue = append(that.eventQueue, event)

	if that.dispatching {
		return
	}

	that.dispatching = true
	defer func() { that.dispatching = false }()

	for len(that.eventQueue) > 0 {
		next := that.eventQueue[0]
		that.eventQueue = that.eventQueue[1:]

		snapshot := make([]subscription, len(that.observers))
		copy(snapshot, that.observers)

		for _, sub := range snapshot {
			sub.observer.Notify(next)
		}
	}
}
